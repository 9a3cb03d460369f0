package components

import "github.com/yohamta/donburi"

type FoodData struct {
	Seq     uint64 // spawn order, only used to order collision pairs
	Variant int
	Radius  float64
}

var Food = donburi.NewComponentType[FoodData]()
