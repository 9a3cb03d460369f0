package systems

import (
	"math"
	"testing"
	"time"

	"github.com/automoto/orbs-mp/components"
	"github.com/automoto/orbs-mp/shared/messages"
	"github.com/automoto/orbs-mp/systems/factory"
)

func newReconciler() *Reconciler {
	return &Reconciler{LocalID: "me", Blend: 0.2, PruneMissing: true}
}

func TestInterpolationErrorShrinksGeometrically(t *testing.T) {
	a := newTestArena()
	r := newReconciler()
	r.ApplyPosition(a, messages.NewPositionEvent("them", []messages.OrbState{{ID: "t1", X: 0, Y: 0, R: 20}}))
	r.ApplyPosition(a, messages.NewPositionEvent("them", []messages.OrbState{{ID: "t1", X: 100, Y: -50, R: 20}}))

	e, ok := a.Orb("t1")
	if !ok {
		t.Fatalf("remote orb not created")
	}
	target := components.Vector{X: 100, Y: -50}
	initial := components.Position.Get(e).Dist(target)
	if initial == 0 {
		t.Fatalf("orb should start away from its new target")
	}

	for k := 1; k <= 30; k++ {
		r.Interpolate(a)
		got := components.Position.Get(e).Dist(target)
		want := initial * math.Pow(0.8, float64(k))
		if math.Abs(got-want) > 1e-9 {
			t.Fatalf("tick %d: error %v, want %v", k, got, want)
		}
	}
}

func TestApplyPositionCreatesLazily(t *testing.T) {
	a := newTestArena()
	r := newReconciler()
	r.ApplyPosition(a, messages.NewPositionEvent("them", []messages.OrbState{
		{ID: "t1", X: 10, Y: 20, R: 30},
		{ID: "t2", X: 40, Y: 50, R: 12},
	}))

	if _, ok := a.Player("them"); !ok {
		t.Fatalf("remote player not registered")
	}
	e, ok := a.Orb("t2")
	if !ok {
		t.Fatalf("t2 not created")
	}
	orb := components.Orb.Get(e)
	if orb.Kind != components.RemoteOrb || orb.Radius != 12 {
		t.Fatalf("t2 = %+v", *orb)
	}
	if p := *components.Position.Get(e); p.X != 40 || p.Y != 50 {
		t.Fatalf("t2 created at %+v, want reported position", p)
	}

	r.ApplyPosition(a, messages.NewPositionEvent("them", []messages.OrbState{{ID: "t2", X: 44, Y: 50, R: 18}}))
	if _, ok := a.Orb("t1"); ok {
		t.Fatalf("t1 should be pruned once missing from its owner's snapshot")
	}
	e, _ = a.Orb("t2")
	if r := components.Orb.Get(e).Radius; r != 18 {
		t.Fatalf("radius = %v, want 18", r)
	}
	if en := components.Enemy.Get(e); en.LastReportedX != 44 || en.Reports != 1 {
		t.Fatalf("enemy = %+v", *en)
	}
}

func TestApplyPositionLegacyAndOwnEcho(t *testing.T) {
	a := newTestArena()
	factory.CreateLocalPlayer(a, "me")
	r := newReconciler()

	r.ApplyPosition(a, messages.NewPositionEvent("me", []messages.OrbState{{ID: "ghost", X: 1, Y: 1, R: 5}}))
	if _, ok := a.Orb("ghost"); ok {
		t.Fatalf("own echo created a remote orb")
	}

	x, y, size := 300.0, 400.0, 25.0
	r.ApplyPosition(a, messages.PositionEvent{ID: "old", X: &x, Y: &y, Size: &size})
	e, ok := a.Orb("old")
	if !ok {
		t.Fatalf("legacy report should create orb keyed by player id")
	}
	if components.Orb.Get(e).Radius != 25 {
		t.Fatalf("legacy size not applied")
	}
}

func TestApplyPositionSkipsLocalIDs(t *testing.T) {
	a := newTestArena()
	factory.CreateLocalOrb(a, "me", "shared", 10, 10, 30)
	r := newReconciler()

	r.ApplyPosition(a, messages.NewPositionEvent("them", []messages.OrbState{{ID: "shared", X: 900, Y: 900, R: 99}}))
	e, _ := a.Orb("shared")
	if orb := components.Orb.Get(e); orb.Kind != components.LocalOrb || orb.Radius != 30 {
		t.Fatalf("local orb overwritten: %+v", *orb)
	}
}

func TestRemoveByOrbAndPlayer(t *testing.T) {
	a := newTestArena()
	r := newReconciler()
	r.ApplyPosition(a, messages.NewPositionEvent("them", []messages.OrbState{
		{ID: "t1", X: 10, Y: 20, R: 30},
		{ID: "t2", X: 40, Y: 50, R: 12},
	}))

	if n := r.Remove(a, "t1"); n != 1 {
		t.Fatalf("removed %d, want 1", n)
	}
	if _, ok := a.Player("them"); !ok {
		t.Fatalf("player dropped while it still owns t2")
	}
	if n := r.Remove(a, "them"); n != 1 {
		t.Fatalf("removing by player id removed %d, want 1", n)
	}
	if _, ok := a.Player("them"); ok {
		t.Fatalf("empty remote player not dropped")
	}
	if n := r.Remove(a, "nobody"); n != 0 {
		t.Fatalf("unknown id removed %d", n)
	}
}

func TestRemoveLocalOrb(t *testing.T) {
	a := newTestArena()
	factory.CreateLocalPlayer(a, "me")
	factory.CreateLocalOrb(a, "me", "mine", 10, 10, 30)
	r := newReconciler()

	if n := r.Remove(a, "mine"); n != 1 {
		t.Fatalf("removed %d, want 1", n)
	}
	if _, ok := a.Player("me"); !ok {
		t.Fatalf("local player record must survive")
	}
	if !PlayerAlive(a, "me") {
		t.Fatalf("local player still owns its spawn orb")
	}
}

func TestApplyPositionSkipsNonPositiveRadius(t *testing.T) {
	a := newTestArena()
	r := newReconciler()

	x, y := 300.0, 400.0
	r.ApplyPosition(a, messages.PositionEvent{ID: "old", X: &x, Y: &y})
	if _, ok := a.Orb("old"); ok {
		t.Fatalf("legacy report without size created an orb")
	}
	if _, ok := a.Player("old"); ok {
		t.Fatalf("player with no usable orbs should not be tracked")
	}

	r.ApplyPosition(a, messages.NewPositionEvent("them", []messages.OrbState{
		{ID: "t1", X: 10, Y: 10, R: 20},
		{ID: "t2", X: 50, Y: 50, R: 0},
		{ID: "t3", X: 90, Y: 90, R: -4},
	}))
	if _, ok := a.Orb("t1"); !ok {
		t.Fatalf("valid orb not created")
	}
	for _, id := range []string{"t2", "t3"} {
		if _, ok := a.Orb(id); ok {
			t.Fatalf("orb %s with non-positive radius created", id)
		}
	}
	if a.OrbCount() != 1 {
		t.Fatalf("orb count = %d, want 1", a.OrbCount())
	}
}

func TestExpireStaleDropsSilentPlayers(t *testing.T) {
	a := newTestArena()
	factory.CreateLocalPlayer(a, "me")
	r := newReconciler()
	r.StaleAfter = 3 * time.Second

	r.ApplyPosition(a, messages.NewPositionEvent("quiet", []messages.OrbState{{ID: "q1", X: 10, Y: 10, R: 20}}))
	r.ApplyPosition(a, messages.NewPositionEvent("chatty", []messages.OrbState{{ID: "c1", X: 90, Y: 90, R: 20}}))

	a.Advance(2 * time.Second)
	r.ApplyPosition(a, messages.NewPositionEvent("chatty", []messages.OrbState{{ID: "c1", X: 95, Y: 90, R: 20}}))
	if n := r.ExpireStale(a); n != 0 {
		t.Fatalf("expired %d players before the timeout", n)
	}

	a.Advance(time.Second)
	if n := r.ExpireStale(a); n != 1 {
		t.Fatalf("expired %d players, want 1", n)
	}
	if _, ok := a.Player("quiet"); ok {
		t.Fatalf("silent player still tracked")
	}
	if _, ok := a.Orb("q1"); ok {
		t.Fatalf("silent player's orb still present")
	}
	if _, ok := a.Orb("c1"); !ok {
		t.Fatalf("active player's orb expired")
	}
	if !PlayerAlive(a, "me") {
		t.Fatalf("local player must never expire")
	}
}

func TestExpireStaleDisabledByDefault(t *testing.T) {
	a := newTestArena()
	r := newReconciler()
	r.ApplyPosition(a, messages.NewPositionEvent("them", []messages.OrbState{{ID: "t1", X: 10, Y: 10, R: 20}}))
	a.Advance(time.Hour)
	if n := r.ExpireStale(a); n != 0 || a.OrbCount() != 1 {
		t.Fatalf("expired %d with StaleAfter unset", n)
	}
}
