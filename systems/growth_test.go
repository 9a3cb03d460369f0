package systems

import (
	"testing"
	"time"

	"github.com/automoto/orbs-mp/components"
	cfg "github.com/automoto/orbs-mp/config"
	"github.com/automoto/orbs-mp/systems/factory"
)

func TestGrowIsAdditiveInAnyOrder(t *testing.T) {
	amounts := []float64{1, 8, 0.5, 13, 2}
	reversed := []float64{2, 13, 0.5, 8, 1}

	a := newTestArena()
	x := factory.CreateLocalOrb(a, "p", "x", 100, 100, 30)
	y := factory.CreateLocalOrb(a, "p", "y", 500, 500, 30)
	for i := range amounts {
		Grow(x, amounts[i])
		Grow(y, reversed[i])
	}

	rx := components.Orb.Get(x).Radius
	ry := components.Orb.Get(y).Radius
	if !near(rx, 54.5) || !near(ry, 54.5) {
		t.Fatalf("radii = %v, %v; want 54.5 both", rx, ry)
	}
}

func TestGrowAppliesRadiusBeforeTween(t *testing.T) {
	a := newTestArena()
	e := factory.CreateLocalOrb(a, "p", "x", 100, 100, 32)

	Grow(e, 32)

	if r := components.Orb.Get(e).Radius; r != 64 {
		t.Fatalf("radius = %v, want 64 immediately", r)
	}
	s := components.Scale.Get(e)
	if s.Current != 1 || s.Target != 2 || s.Tween == nil {
		t.Fatalf("scale = %+v, want tween from 1 to 2", *s)
	}

	UpdateScales(a.World, time.Duration(float64(time.Second)*float64(cfg.Orb.GrowTweenSeconds))+time.Millisecond)

	s = components.Scale.Get(e)
	if s.Current != 2 || s.Tween != nil {
		t.Fatalf("scale after tween = %+v, want settled at 2", *s)
	}
}
