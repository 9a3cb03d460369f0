package systems

import (
	"log"
	"time"

	"github.com/automoto/orbs-mp/arena"
	"github.com/automoto/orbs-mp/components"
	"github.com/automoto/orbs-mp/shared/messages"
	"github.com/automoto/orbs-mp/systems/factory"
	"github.com/automoto/orbs-mp/tags"
	"github.com/yohamta/donburi"
)

// Reconciler keeps the client's shadow copies of remote orbs in line with
// what their owners report.
type Reconciler struct {
	// LocalID is this client's player id; reports carrying it are ignored.
	LocalID string
	// Blend is the fixed per-tick interpolation weight.
	Blend float64
	// PruneMissing drops remote orbs absent from their owner's snapshot.
	PruneMissing bool
	// StaleAfter drops remote players not heard from for this long. Zero
	// keeps them until a removal notice arrives.
	StaleAfter time.Duration
}

// ApplyPosition records a snapshot of one remote player's orbs, lazily
// creating any orb it has not seen before.
func (r *Reconciler) ApplyPosition(a *arena.Arena, ev messages.PositionEvent) {
	if ev.ID == r.LocalID {
		return
	}
	if p, ok := a.Player(ev.ID); ok && components.Player.Get(p).Local {
		return
	}

	states := reportedOrbs(ev)
	if _, ok := a.Player(ev.ID); !ok && len(states) > 0 {
		factory.CreateRemotePlayer(a, ev.ID)
	}
	if p, ok := a.Player(ev.ID); ok {
		components.Player.Get(p).LastHeard = a.Now
	}

	seen := make(map[string]struct{}, len(states))
	for _, s := range states {
		seen[s.ID] = struct{}{}

		e, ok := a.Orb(s.ID)
		if !ok {
			factory.CreateRemoteOrb(a, ev.ID, s.ID, s.X, s.Y, s.R)
			continue
		}
		if components.Orb.Get(e).Kind != components.RemoteOrb {
			log.Printf("[reconcile] player %q reported orb %q which is local, ignoring", ev.ID, s.ID)
			continue
		}
		enemy := components.Enemy.Get(e)
		enemy.LastReportedX = s.X
		enemy.LastReportedY = s.Y
		enemy.Reports++
		components.Owner.Get(e).PlayerID = ev.ID
		if components.Orb.Get(e).Radius != s.R {
			SetRadius(e, s.R)
		}
	}

	if r.PruneMissing && !ev.IsLegacy() {
		for _, id := range orbIDs(PlayerOrbs(a, ev.ID)) {
			if _, ok := seen[id]; !ok {
				a.RemoveOrb(id)
			}
		}
	}
	pruneRemotePlayer(a, ev.ID)
}

// reportedOrbs returns the usable orbs of a snapshot. States without an id
// or with a non-positive radius are dropped.
func reportedOrbs(ev messages.PositionEvent) []messages.OrbState {
	all := ev.OrbStates()
	states := make([]messages.OrbState, 0, len(all))
	for _, s := range all {
		if s.ID == "" || s.R <= 0 {
			continue
		}
		states = append(states, s)
	}
	return states
}

// Interpolate moves every remote orb a fixed fraction of the way toward its
// last reported position. The step is per tick and not scaled by time.
func (r *Reconciler) Interpolate(a *arena.Arena) {
	tags.RemoteOrb.Each(a.World, func(e *donburi.Entry) {
		enemy := components.Enemy.Get(e)
		pos := components.Position.Get(e)
		target := components.Vector{X: enemy.LastReportedX, Y: enemy.LastReportedY}
		*pos = pos.Add(target.Sub(*pos).Scale(r.Blend))
	})
}

// Remove handles an orb-removed notice. id may name a single orb or, for
// legacy clients and disconnects, a whole player. It returns how many orbs
// were removed.
func (r *Reconciler) Remove(a *arena.Arena, id string) int {
	if id == "" {
		return 0
	}
	removed := 0
	var owners []string

	if e, ok := a.Orb(id); ok {
		owners = append(owners, components.Owner.Get(e).PlayerID)
		if a.RemoveOrb(id) {
			removed++
		}
	}
	if _, ok := a.Player(id); ok {
		for _, orbID := range orbIDs(PlayerOrbs(a, id)) {
			if a.RemoveOrb(orbID) {
				removed++
			}
		}
		owners = append(owners, id)
	}

	for _, owner := range owners {
		pruneRemotePlayer(a, owner)
	}
	return removed
}

// ExpireStale removes remote players whose last report is at least
// StaleAfter old, along with their orbs. It returns the number of players
// removed.
func (r *Reconciler) ExpireStale(a *arena.Arena) int {
	if r.StaleAfter <= 0 {
		return 0
	}
	var stale []string
	for _, id := range a.PlayerIDs() {
		e, ok := a.Player(id)
		if !ok {
			continue
		}
		p := components.Player.Get(e)
		if !p.Local && a.Now-p.LastHeard >= r.StaleAfter {
			stale = append(stale, id)
		}
	}
	for _, id := range stale {
		log.Printf("[reconcile] player %q silent for %s, dropping", id, r.StaleAfter)
		for _, orbID := range orbIDs(PlayerOrbs(a, id)) {
			a.RemoveOrb(orbID)
		}
		a.RemovePlayer(id)
	}
	return len(stale)
}
