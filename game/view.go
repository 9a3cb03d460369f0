package game

import (
	"github.com/automoto/orbs-mp/components"
	"github.com/automoto/orbs-mp/systems"
	"github.com/automoto/orbs-mp/tags"
	"github.com/yohamta/donburi"
)

// OrbView is what a renderer needs to draw one orb.
type OrbView struct {
	ID         string
	PlayerID   string
	X, Y       float64
	Radius     float64
	Scale      float32 // cosmetic, radius / base sprite radius
	Local      bool
	Spawned    bool
	ColorIndex int
}

type FoodView struct {
	X, Y    float64
	Radius  float64
	Variant int
}

// Orbs lists every orb in ascending id order.
func (g *Game) Orbs() []OrbView {
	a := g.Arena
	views := make([]OrbView, 0, a.OrbCount())
	for _, id := range a.OrbIDs() {
		e, ok := a.Orb(id)
		if !ok {
			continue
		}
		orb := components.Orb.Get(e)
		pos := components.Position.Get(e)
		owner := components.Owner.Get(e).PlayerID
		v := OrbView{
			ID:       orb.ID,
			PlayerID: owner,
			X:        pos.X,
			Y:        pos.Y,
			Radius:   orb.Radius,
			Scale:    components.Scale.Get(e).Current,
			Local:    orb.Kind == components.LocalOrb,
			Spawned:  orb.Spawned,
		}
		if p, ok := a.Player(owner); ok {
			v.ColorIndex = components.Player.Get(p).ColorIndex
		}
		views = append(views, v)
	}
	return views
}

func (g *Game) Foods() []FoodView {
	var views []FoodView
	tags.Food.Each(g.Arena.World, func(e *donburi.Entry) {
		food := components.Food.Get(e)
		pos := components.Position.Get(e)
		views = append(views, FoodView{X: pos.X, Y: pos.Y, Radius: food.Radius, Variant: food.Variant})
	})
	return views
}

// Center is the local player's mean position, used by the camera.
func (g *Game) Center() (components.Vector, bool) {
	return systems.PlayerPosition(g.Arena, g.PlayerID)
}

// Size is the sum of the local player's orb radii.
func (g *Game) Size() float64 {
	return systems.PlayerSize(g.Arena, g.PlayerID)
}

// RemotePlayers counts remote players currently in view.
func (g *Game) RemotePlayers() int {
	n := 0
	for _, id := range g.Arena.PlayerIDs() {
		if id != g.PlayerID {
			n++
		}
	}
	return n
}

// Dropped is the number of inbound frames that failed to decode.
func (g *Game) Dropped() int {
	return g.dropped
}
