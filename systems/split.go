package systems

import (
	"math"

	"github.com/automoto/orbs-mp/arena"
	"github.com/automoto/orbs-mp/components"
	cfg "github.com/automoto/orbs-mp/config"
	"github.com/automoto/orbs-mp/systems/factory"
	"github.com/yohamta/donburi"
)

// Split halves a local orb and ejects the other half toward target. It
// returns the new fragment, or nil when the orb is too small to split.
func Split(a *arena.Arena, e *donburi.Entry, target components.Vector) *donburi.Entry {
	orb := components.Orb.Get(e)
	if orb.Kind != components.LocalOrb || orb.Radius < cfg.Orb.SplitThreshold {
		return nil
	}

	pos := *components.Position.Get(e)
	dir, ok := target.Sub(pos).Unit()
	if !ok {
		dir = components.Vector{X: 1}
	}
	half := math.Floor(orb.Radius / 2)
	owner := components.Owner.Get(e).PlayerID

	SetRadius(e, half)

	frag := factory.CreateLocalOrb(a, owner, "", pos.X, pos.Y, half)
	fragOrb := components.Orb.Get(frag)
	fragOrb.Spawned = true
	fragOrb.CanReform = false
	components.Launch.SetValue(frag, components.LaunchData{
		X: dir.X * cfg.Orb.LaunchSpeed,
		Y: dir.Y * cfg.Orb.LaunchSpeed,
	})

	a.Timers.Schedule(a.Now+cfg.Orb.SpawnedDelay, fragOrb.ID, frag.Entity(), arena.ClearSpawned)
	a.Timers.Schedule(a.Now+cfg.Orb.ReformDelay, fragOrb.ID, frag.Entity(), arena.EnableReform)

	return frag
}

// SplitPlayer splits every orb the player owned when the call started.
// Fragments created during the pass are not split again.
func SplitPlayer(a *arena.Arena, playerID string, target components.Vector) []*donburi.Entry {
	snapshot := PlayerOrbs(a, playerID)
	entities := make([]donburi.Entity, len(snapshot))
	for i, e := range snapshot {
		entities[i] = e.Entity()
	}

	var fragments []*donburi.Entry
	for _, entity := range entities {
		if !a.World.Valid(entity) {
			continue
		}
		if frag := Split(a, a.World.Entry(entity), target); frag != nil {
			fragments = append(fragments, frag)
		}
	}
	return fragments
}
