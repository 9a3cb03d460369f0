package systems

import (
	"github.com/automoto/orbs-mp/arena"
	"github.com/automoto/orbs-mp/components"
	cfg "github.com/automoto/orbs-mp/config"
	"github.com/yohamta/donburi"
)

// CanEat reports whether an attacker of radius attackerR is strictly more
// than EatMargin times the victim's radius.
func CanEat(attackerR, victimR float64) bool {
	return attackerR > victimR*cfg.Orb.EatMargin
}

// Contains reports whether the circle (center, r) contains point p.
func Contains(center components.Vector, r float64, p components.Vector) bool {
	return center.Dist(p) < r
}

// CanMerge is the same-player exclusion predicate: a pair may merge only
// once both orbs have finished their reform cooldown.
func CanMerge(a, b *components.OrbData) bool {
	return a.CanReform && b.CanReform
}

// mergeOrder picks which of two same-player orbs swallows the other. The
// consumer's circle must contain the victim's center. When both contain
// each other the larger radius wins, then the smaller id.
func mergeOrder(x, y *donburi.Entry) (consumer, victim *donburi.Entry, ok bool) {
	xo, yo := components.Orb.Get(x), components.Orb.Get(y)
	xp, yp := *components.Position.Get(x), *components.Position.Get(y)

	xEats := Contains(xp, xo.Radius, yp)
	yEats := Contains(yp, yo.Radius, xp)
	switch {
	case xEats && yEats:
		if yo.Radius > xo.Radius || (yo.Radius == xo.Radius && yo.ID < xo.ID) {
			return y, x, true
		}
		return x, y, true
	case xEats:
		return x, y, true
	case yEats:
		return y, x, true
	}
	return nil, nil, false
}

// Merge resolves a same-player overlap. It reports the id of the swallowed
// orb, or "" when nothing merged.
func Merge(a *arena.Arena, x, y *donburi.Entry) string {
	if !CanMerge(components.Orb.Get(x), components.Orb.Get(y)) {
		return ""
	}
	consumer, victim, ok := mergeOrder(x, y)
	if !ok {
		return ""
	}
	v := components.Orb.Get(victim)
	victimID, victimR := v.ID, v.Radius

	Grow(consumer, victimR)
	a.RemoveOrb(victimID)
	return victimID
}

// EatRemote lets a local attacker consume a remote victim. It reports the
// victim's id, or "" when the size margin or containment test fails.
func EatRemote(a *arena.Arena, attacker, victim *donburi.Entry) string {
	ao, vo := components.Orb.Get(attacker), components.Orb.Get(victim)
	if ao.Kind != components.LocalOrb || vo.Kind != components.RemoteOrb {
		return ""
	}
	ap, vp := *components.Position.Get(attacker), *components.Position.Get(victim)
	if !CanEat(ao.Radius, vo.Radius) || !Contains(ap, ao.Radius, vp) {
		return ""
	}
	victimID, victimR := vo.ID, vo.Radius
	owner := components.Owner.Get(victim).PlayerID

	Grow(attacker, victimR)
	a.RemoveOrb(victimID)
	pruneRemotePlayer(a, owner)
	return victimID
}

// EatFood consumes a food entity and grows the orb.
func EatFood(a *arena.Arena, orb, food *donburi.Entry) {
	Grow(orb, cfg.Food.Growth)
	a.Destroy(food)
}

// separate pushes two overlapping orbs apart along their center line.
func separate(a *arena.Arena, x, y *donburi.Entry) {
	xo, yo := components.Orb.Get(x), components.Orb.Get(y)
	xp, yp := components.Position.Get(x), components.Position.Get(y)

	d := yp.Sub(*xp)
	dist := d.Len()
	overlap := xo.Radius + yo.Radius - dist
	if overlap <= 0 {
		return
	}
	dir, ok := d.Unit()
	if !ok {
		dir = components.Vector{X: 1}
	}
	push := dir.Scale(overlap / 2)
	*xp = a.Clamp(xp.Sub(push))
	*yp = a.Clamp(yp.Add(push))
}
