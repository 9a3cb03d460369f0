// Package arena owns the client-local entity store: a donburi world of orbs,
// players and food, a stable-id index over it, the resolv broad-phase space
// and the simulated clock that drives one-shot timers.
package arena

import (
	"sort"
	"time"

	"github.com/automoto/orbs-mp/components"
	"github.com/google/uuid"
	"github.com/solarlune/resolv"
	"github.com/yohamta/donburi"
)

type Arena struct {
	World  donburi.World
	Space  *resolv.Space
	Timers *Timers

	Width  float64
	Height float64

	// Now is simulated time since the arena was created.
	Now time.Duration

	// NewID mints orb ids. Replaced in tests for stable ordering.
	NewID func() string

	orbs    map[string]donburi.Entity
	players map[string]donburi.Entity
	foodSeq uint64
}

func New(width, height float64, cellSize int) *Arena {
	return &Arena{
		World:   donburi.NewWorld(),
		Space:   resolv.NewSpace(int(width), int(height), cellSize, cellSize),
		Timers:  NewTimers(),
		Width:   width,
		Height:  height,
		NewID:   uuid.NewString,
		orbs:    make(map[string]donburi.Entity),
		players: make(map[string]donburi.Entity),
	}
}

// Advance moves the simulated clock forward.
func (a *Arena) Advance(dt time.Duration) {
	if dt > 0 {
		a.Now += dt
	}
}

// Orb returns the live entry for an orb id.
func (a *Arena) Orb(id string) (*donburi.Entry, bool) {
	e, ok := a.orbs[id]
	if !ok || !a.World.Valid(e) {
		return nil, false
	}
	return a.World.Entry(e), true
}

func (a *Arena) IndexOrb(id string, e donburi.Entity) {
	a.orbs[id] = e
}

// OrbIDs returns every indexed orb id in ascending order.
func (a *Arena) OrbIDs() []string {
	ids := make([]string, 0, len(a.orbs))
	for id := range a.orbs {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

func (a *Arena) OrbCount() int {
	return len(a.orbs)
}

// RemoveOrb destroys the orb with id, dropping its broad-phase object.
// It reports whether an orb was removed.
func (a *Arena) RemoveOrb(id string) bool {
	e, ok := a.orbs[id]
	if !ok {
		return false
	}
	delete(a.orbs, id)
	if !a.World.Valid(e) {
		return false
	}
	a.Destroy(a.World.Entry(e))
	return true
}

// Destroy removes any entry from the world, including its resolv object.
func (a *Arena) Destroy(entry *donburi.Entry) {
	if entry.HasComponent(components.Object) {
		if obj := components.Object.Get(entry); obj.Object != nil && obj.Space != nil {
			a.Space.Remove(obj.Object)
		}
	}
	a.World.Remove(entry.Entity())
}

// Player returns the live entry for a player id.
func (a *Arena) Player(id string) (*donburi.Entry, bool) {
	e, ok := a.players[id]
	if !ok || !a.World.Valid(e) {
		return nil, false
	}
	return a.World.Entry(e), true
}

func (a *Arena) IndexPlayer(id string, e donburi.Entity) {
	a.players[id] = e
}

// PlayerIDs returns every indexed player id in ascending order.
func (a *Arena) PlayerIDs() []string {
	ids := make([]string, 0, len(a.players))
	for id := range a.players {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// RemovePlayer drops the player record. Orbs it owns are left untouched.
func (a *Arena) RemovePlayer(id string) bool {
	e, ok := a.players[id]
	if !ok {
		return false
	}
	delete(a.players, id)
	if a.World.Valid(e) {
		a.World.Remove(e)
	}
	return true
}

// NextFoodSeq hands out the ordering key for a new food entity.
func (a *Arena) NextFoodSeq() uint64 {
	a.foodSeq++
	return a.foodSeq
}

// Clamp keeps a point inside the arena rectangle.
func (a *Arena) Clamp(p components.Vector) components.Vector {
	return components.Vector{
		X: clamp(p.X, 0, a.Width),
		Y: clamp(p.Y, 0, a.Height),
	}
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
