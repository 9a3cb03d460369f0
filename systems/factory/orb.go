package factory

import (
	"github.com/automoto/orbs-mp/archetypes"
	"github.com/automoto/orbs-mp/arena"
	"github.com/automoto/orbs-mp/components"
	cfg "github.com/automoto/orbs-mp/config"
	"github.com/automoto/orbs-mp/tags"
	"github.com/solarlune/resolv"
	"github.com/yohamta/donburi"
)

// CreateLocalOrb spawns an orb simulated by this client. An empty orbID is
// replaced with a fresh one from the arena.
func CreateLocalOrb(a *arena.Arena, playerID, orbID string, x, y, r float64) *donburi.Entry {
	if orbID == "" {
		orbID = a.NewID()
	}
	orb := archetypes.LocalOrb.Spawn(a.World)

	components.Orb.SetValue(orb, components.OrbData{
		ID:        orbID,
		Kind:      components.LocalOrb,
		Radius:    r,
		CanReform: true,
		CreatedAt: a.Now,
	})
	components.Owner.SetValue(orb, components.OwnerData{PlayerID: playerID})
	components.Position.SetValue(orb, components.Vector{X: x, Y: y})
	setScale(orb, r)
	attachObject(a, orb, x, y, r, tags.ResolvLocalOrb)

	a.IndexOrb(orbID, orb.Entity())
	return orb
}

// CreateRemoteOrb spawns the local shadow of another client's orb at its
// reported position.
func CreateRemoteOrb(a *arena.Arena, playerID, orbID string, x, y, r float64) *donburi.Entry {
	orb := archetypes.RemoteOrb.Spawn(a.World)

	components.Orb.SetValue(orb, components.OrbData{
		ID:        orbID,
		Kind:      components.RemoteOrb,
		Radius:    r,
		CanReform: true,
		CreatedAt: a.Now,
	})
	components.Owner.SetValue(orb, components.OwnerData{PlayerID: playerID})
	components.Position.SetValue(orb, components.Vector{X: x, Y: y})
	components.Enemy.SetValue(orb, components.EnemyData{
		LastReportedX: x,
		LastReportedY: y,
	})
	setScale(orb, r)
	attachObject(a, orb, x, y, r, tags.ResolvRemoteOrb)

	a.IndexOrb(orbID, orb.Entity())
	return orb
}

func setScale(e *donburi.Entry, r float64) {
	s := float32(r / cfg.Orb.BaseSpriteRadius)
	components.Scale.SetValue(e, components.ScaleData{
		Current: s,
		Target:  s,
	})
}

func attachObject(a *arena.Arena, e *donburi.Entry, x, y, r float64, tag string) {
	obj := resolv.NewObject(x-r, y-r, 2*r, 2*r, tag)
	obj.Data = e.Entity()
	components.Object.SetValue(e, components.ObjectData{Object: obj})
	a.Space.Add(obj)
}
