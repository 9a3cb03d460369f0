package systems

import (
	"time"

	"github.com/automoto/orbs-mp/components"
	cfg "github.com/automoto/orbs-mp/config"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
	"github.com/yohamta/donburi"
)

// Grow adds amount to the orb's radius. Physics sees the new radius at once;
// only the drawn scale animates toward it.
func Grow(e *donburi.Entry, amount float64) {
	orb := components.Orb.Get(e)
	orb.Radius += amount
	retargetScale(e, orb.Radius)
}

// SetRadius replaces the orb's radius outright.
func SetRadius(e *donburi.Entry, r float64) {
	orb := components.Orb.Get(e)
	orb.Radius = r
	retargetScale(e, r)
}

func retargetScale(e *donburi.Entry, r float64) {
	if !e.HasComponent(components.Scale) {
		return
	}
	s := components.Scale.Get(e)
	target := float32(r / cfg.Orb.BaseSpriteRadius)
	if target == s.Target {
		return
	}
	s.Target = target
	s.Tween = gween.New(s.Current, target, cfg.Orb.GrowTweenSeconds, ease.OutQuad)
}

// UpdateScales advances every running scale transition.
func UpdateScales(w donburi.World, dt time.Duration) {
	step := float32(dt.Seconds())
	components.Scale.Each(w, func(e *donburi.Entry) {
		s := components.Scale.Get(e)
		if s.Tween == nil {
			return
		}
		current, finished := s.Tween.Update(step)
		s.Current = current
		if finished {
			s.Current = s.Target
			s.Tween = nil
		}
	})
}
