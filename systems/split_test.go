package systems

import (
	"testing"
	"time"

	"github.com/automoto/orbs-mp/components"
	"github.com/automoto/orbs-mp/systems/factory"
)

func TestSplitHalvesToFloor(t *testing.T) {
	a := newTestArena()
	parent := factory.CreateLocalOrb(a, "p", "parent", 1000, 1000, 45)

	frag := Split(a, parent, components.Vector{X: 2000, Y: 1000})
	if frag == nil {
		t.Fatalf("split returned nil for radius 45")
	}
	if r := components.Orb.Get(parent).Radius; r != 22 {
		t.Fatalf("parent radius = %v, want 22", r)
	}
	fo := components.Orb.Get(frag)
	if fo.Radius != 22 {
		t.Fatalf("fragment radius = %v, want 22", fo.Radius)
	}
	if !fo.Spawned || fo.CanReform {
		t.Fatalf("fragment flags = %+v, want spawned and not reformable", *fo)
	}
	if p := *components.Position.Get(frag); p.X != 1000 || p.Y != 1000 {
		t.Fatalf("fragment at %+v, want parent position", p)
	}
	if l := components.Launch.Get(frag); l.X <= 0 || l.Y != 0 {
		t.Fatalf("launch = %+v, want +X toward target", *l)
	}
	if got := len(PlayerOrbs(a, "p")); got != 2 {
		t.Fatalf("player owns %d orbs, want 2", got)
	}
}

func TestSplitBelowThresholdIsNoop(t *testing.T) {
	a := newTestArena()
	e := factory.CreateLocalOrb(a, "p", "small", 100, 100, 19.9)

	if frag := Split(a, e, components.Vector{X: 200, Y: 100}); frag != nil {
		t.Fatalf("split of radius 19.9 produced a fragment")
	}
	if r := components.Orb.Get(e).Radius; r != 19.9 {
		t.Fatalf("radius changed to %v", r)
	}
	if a.Timers.Len() != 0 {
		t.Fatalf("no-op split scheduled %d timers", a.Timers.Len())
	}

	edge := factory.CreateLocalOrb(a, "p", "edge", 300, 300, 20)
	if frag := Split(a, edge, components.Vector{}); frag == nil {
		t.Fatalf("radius 20 should split")
	}
}

func TestSplitReformsAfterExactlyTenSeconds(t *testing.T) {
	a := newTestArena()
	parent := factory.CreateLocalOrb(a, "p", "parent", 1000, 1000, 40)
	frag := Split(a, parent, components.Vector{X: 1100, Y: 1000})
	fragID := components.Orb.Get(frag).ID

	a.Advance(10*time.Second - time.Millisecond)
	RunTimers(a)
	fo := components.Orb.Get(frag)
	if fo.Spawned {
		t.Fatalf("spawned should have cleared after 200ms")
	}
	if CanMerge(components.Orb.Get(parent), fo) {
		t.Fatalf("pair merged before the cooldown ended")
	}

	a.Advance(time.Millisecond)
	RunTimers(a)
	if !CanMerge(components.Orb.Get(parent), components.Orb.Get(frag)) {
		t.Fatalf("pair still excluded at exactly 10s")
	}

	// put the fragment back inside its parent and let the pass merge them
	*components.Position.Get(frag) = components.Vector{X: 1001, Y: 1000}
	*components.Position.Get(parent) = components.Vector{X: 1000, Y: 1000}
	res := ResolveCollisions(a)
	if len(res.Merged) != 1 {
		t.Fatalf("merged = %v, want one orb", res.Merged)
	}
	orbs := PlayerOrbs(a, "p")
	if len(orbs) != 1 {
		t.Fatalf("player owns %d orbs after merge, want 1", len(orbs))
	}
	if r := components.Orb.Get(orbs[0]).Radius; r != 40 {
		t.Fatalf("merged radius = %v, want 40", r)
	}
	if res.Merged[0] != fragID && res.Merged[0] != "parent" {
		t.Fatalf("unexpected merged id %q", res.Merged[0])
	}
}

func TestSplitPlayerUsesSnapshot(t *testing.T) {
	a := newTestArena()
	factory.CreateLocalOrb(a, "p", "a", 500, 500, 80)
	factory.CreateLocalOrb(a, "p", "b", 900, 500, 40)

	frags := SplitPlayer(a, "p", components.Vector{X: 700, Y: 900})
	if len(frags) != 2 {
		t.Fatalf("got %d fragments, want 2", len(frags))
	}
	orbs := PlayerOrbs(a, "p")
	if len(orbs) != 4 {
		t.Fatalf("player owns %d orbs, want 4", len(orbs))
	}
	var total float64
	for _, e := range orbs {
		total += components.Orb.Get(e).Radius
	}
	if total != 120 {
		t.Fatalf("total radius = %v, want 120", total)
	}
}
