package systems

import (
	"fmt"
	"sort"

	"github.com/automoto/orbs-mp/arena"
	"github.com/automoto/orbs-mp/components"
	"github.com/automoto/orbs-mp/tags"
	"github.com/solarlune/resolv"
	"github.com/yohamta/donburi"
)

type pairKind int

const (
	pairSelf pairKind = iota
	pairCross
	pairFood
)

// Pair is one overlapping couple found by the broad phase. A is always a
// local orb; B is a local orb with a larger id, a remote orb or a food.
type Pair struct {
	A, B       donburi.Entity
	AKey, BKey string
	kind       pairKind
}

// CollisionResult lists what the pass changed.
type CollisionResult struct {
	Merged     []string // local orbs swallowed by a sibling
	EatenOrbs  []string // remote orbs consumed; each needs an orb-removed event
	EatenFoods int
}

// SyncObjects copies every orb's center and radius into its resolv object.
func SyncObjects(a *arena.Arena) {
	components.Orb.Each(a.World, func(e *donburi.Entry) {
		obj := components.Object.Get(e)
		if obj.Object == nil {
			return
		}
		r := components.Orb.Get(e).Radius
		pos := components.Position.Get(e)
		obj.X = pos.X - r
		obj.Y = pos.Y - r
		obj.W = 2 * r
		obj.H = 2 * r
		obj.Update()
	})
}

// FindPairs runs the broad phase from every local orb and returns the
// overlapping pairs sorted by (AKey, BKey).
func FindPairs(a *arena.Arena) []Pair {
	SyncObjects(a)

	var pairs []Pair
	for _, id := range a.OrbIDs() {
		e, ok := a.Orb(id)
		if !ok || !e.HasComponent(tags.LocalOrb) {
			continue
		}
		obj := components.Object.Get(e)
		check := obj.Check(0, 0, tags.ResolvLocalOrb, tags.ResolvRemoteOrb, tags.ResolvFood)
		if check == nil {
			continue
		}
		for _, other := range check.Objects {
			if p, ok := narrowPhase(a, e, other); ok {
				pairs = append(pairs, p)
			}
		}
	}

	sort.Slice(pairs, func(i, j int) bool {
		if pairs[i].AKey != pairs[j].AKey {
			return pairs[i].AKey < pairs[j].AKey
		}
		return pairs[i].BKey < pairs[j].BKey
	})
	return pairs
}

func narrowPhase(a *arena.Arena, e *donburi.Entry, other *resolv.Object) (Pair, bool) {
	entity, ok := other.Data.(donburi.Entity)
	if !ok || entity == e.Entity() || !a.World.Valid(entity) {
		return Pair{}, false
	}
	o := a.World.Entry(entity)

	orb := components.Orb.Get(e)
	pos := *components.Position.Get(e)
	p := Pair{A: e.Entity(), AKey: orb.ID}

	var otherR float64
	switch {
	case o.HasComponent(tags.Food):
		food := components.Food.Get(o)
		otherR = food.Radius
		p.kind = pairFood
		p.BKey = foodKey(food.Seq)
	case o.HasComponent(tags.LocalOrb):
		oo := components.Orb.Get(o)
		if oo.ID <= orb.ID {
			// reported from the other orb's side
			return Pair{}, false
		}
		otherR = oo.Radius
		p.kind = pairSelf
		p.BKey = oo.ID
	case o.HasComponent(tags.RemoteOrb):
		oo := components.Orb.Get(o)
		otherR = oo.Radius
		p.kind = pairCross
		p.BKey = oo.ID
	default:
		return Pair{}, false
	}

	if pos.Dist(*components.Position.Get(o)) >= orb.Radius+otherR {
		return Pair{}, false
	}
	p.B = entity
	return p, true
}

// foodKey sorts after any orb id sharing its prefix and keeps spawn order.
func foodKey(seq uint64) string {
	return fmt.Sprintf("~food-%020d", seq)
}

// ResolveCollisions detects every overlapping pair, then resolves them in
// sorted order. A pair whose entity was consumed by an earlier pair in the
// same pass is skipped.
func ResolveCollisions(a *arena.Arena) CollisionResult {
	var res CollisionResult
	for _, p := range FindPairs(a) {
		if !a.World.Valid(p.A) || !a.World.Valid(p.B) {
			continue
		}
		x, y := a.World.Entry(p.A), a.World.Entry(p.B)

		switch p.kind {
		case pairSelf:
			resolveSelf(a, x, y, &res)
		case pairCross:
			if id := EatRemote(a, x, y); id != "" {
				res.EatenOrbs = append(res.EatenOrbs, id)
			}
		case pairFood:
			EatFood(a, x, y)
			res.EatenFoods++
		}
	}
	return res
}

func resolveSelf(a *arena.Arena, x, y *donburi.Entry, res *CollisionResult) {
	xo, yo := components.Orb.Get(x), components.Orb.Get(y)
	if components.Owner.Get(x).PlayerID != components.Owner.Get(y).PlayerID {
		return
	}
	if CanMerge(xo, yo) {
		if id := Merge(a, x, y); id != "" {
			res.Merged = append(res.Merged, id)
		}
		return
	}
	if !xo.Spawned && !yo.Spawned {
		separate(a, x, y)
	}
}
