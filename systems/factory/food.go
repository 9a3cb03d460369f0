package factory

import (
	"github.com/automoto/orbs-mp/archetypes"
	"github.com/automoto/orbs-mp/arena"
	"github.com/automoto/orbs-mp/components"
	cfg "github.com/automoto/orbs-mp/config"
	"github.com/automoto/orbs-mp/tags"
	"github.com/yohamta/donburi"
)

func CreateFood(a *arena.Arena, x, y float64, variant int) *donburi.Entry {
	food := archetypes.Food.Spawn(a.World)

	r := cfg.Food.Radius
	components.Food.SetValue(food, components.FoodData{
		Seq:     a.NextFoodSeq(),
		Variant: variant,
		Radius:  r,
	})
	components.Position.SetValue(food, components.Vector{X: x, Y: y})
	attachObject(a, food, x, y, r, tags.ResolvFood)

	return food
}
