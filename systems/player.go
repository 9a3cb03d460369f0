package systems

import (
	"github.com/automoto/orbs-mp/arena"
	"github.com/automoto/orbs-mp/components"
	"github.com/automoto/orbs-mp/shared/messages"
	"github.com/yohamta/donburi"
)

// PlayerOrbs returns the orbs owned by playerID in ascending id order.
func PlayerOrbs(a *arena.Arena, playerID string) []*donburi.Entry {
	var orbs []*donburi.Entry
	for _, id := range a.OrbIDs() {
		e, ok := a.Orb(id)
		if !ok {
			continue
		}
		if components.Owner.Get(e).PlayerID == playerID {
			orbs = append(orbs, e)
		}
	}
	return orbs
}

// orbIDs copies ids out of entries so the entities can be removed safely.
func orbIDs(entries []*donburi.Entry) []string {
	ids := make([]string, len(entries))
	for i, e := range entries {
		ids[i] = components.Orb.Get(e).ID
	}
	return ids
}

// PlayerAlive reports whether the player still owns at least one orb.
func PlayerAlive(a *arena.Arena, playerID string) bool {
	return len(PlayerOrbs(a, playerID)) > 0
}

// PlayerPosition is the mean center of the player's orbs.
func PlayerPosition(a *arena.Arena, playerID string) (components.Vector, bool) {
	orbs := PlayerOrbs(a, playerID)
	if len(orbs) == 0 {
		return components.Vector{}, false
	}
	var sum components.Vector
	for _, e := range orbs {
		sum = sum.Add(*components.Position.Get(e))
	}
	return sum.Scale(1 / float64(len(orbs))), true
}

// PlayerSize sums the radii of the player's orbs.
func PlayerSize(a *arena.Arena, playerID string) float64 {
	var total float64
	for _, e := range PlayerOrbs(a, playerID) {
		total += components.Orb.Get(e).Radius
	}
	return total
}

// Snapshot encodes the player's orb set for a position event.
func Snapshot(a *arena.Arena, playerID string) messages.PositionEvent {
	orbs := PlayerOrbs(a, playerID)
	states := make([]messages.OrbState, 0, len(orbs))
	for _, e := range orbs {
		orb := components.Orb.Get(e)
		pos := components.Position.Get(e)
		states = append(states, messages.OrbState{
			ID: orb.ID,
			X:  pos.X,
			Y:  pos.Y,
			R:  orb.Radius,
		})
	}
	return messages.NewPositionEvent(playerID, states)
}

// pruneRemotePlayer drops a remote player record once it owns no orbs.
func pruneRemotePlayer(a *arena.Arena, playerID string) {
	e, ok := a.Player(playerID)
	if !ok || components.Player.Get(e).Local {
		return
	}
	if !PlayerAlive(a, playerID) {
		a.RemovePlayer(playerID)
	}
}
