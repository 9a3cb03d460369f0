package systems

import (
	"github.com/automoto/orbs-mp/arena"
	"github.com/automoto/orbs-mp/components"
)

// RunTimers applies every timer due at the arena's current time. A timer
// whose entity was destroyed, or whose handle now names a different orb,
// does nothing. It returns the number of effects applied.
func RunTimers(a *arena.Arena) int {
	applied := 0
	for _, t := range a.Timers.PopDue(a.Now) {
		if !a.World.Valid(t.Entity) {
			continue
		}
		e := a.World.Entry(t.Entity)
		if !e.HasComponent(components.Orb) {
			continue
		}
		orb := components.Orb.Get(e)
		if orb.ID != t.OrbID {
			continue
		}
		switch t.Effect {
		case arena.ClearSpawned:
			orb.Spawned = false
		case arena.EnableReform:
			orb.CanReform = true
		}
		applied++
	}
	return applied
}
