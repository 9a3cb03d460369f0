package components

import "github.com/yohamta/donburi"

type OwnerData struct {
	PlayerID string
}

var Owner = donburi.NewComponentType[OwnerData]()
