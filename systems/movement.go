package systems

import (
	"math"
	"time"

	"github.com/automoto/orbs-mp/arena"
	"github.com/automoto/orbs-mp/components"
	cfg "github.com/automoto/orbs-mp/config"
	"github.com/automoto/orbs-mp/tags"
	"github.com/yohamta/donburi"
)

// launchRest is the launch speed below which the impulse is dropped.
const launchRest = 1.0

// OrbSpeed is the per-tick speed of an orb of radius r; larger orbs are slower.
func OrbSpeed(r float64) float64 {
	return math.Max(cfg.Movement.BaseSpeed-cfg.Movement.SizeFactor*r, cfg.Movement.MinSpeed)
}

// SeekVelocity is the stateless control law: full speed toward target,
// easing off linearly inside SlowdownRange.
func SeekVelocity(pos, target components.Vector, r float64) components.Vector {
	d := target.Sub(pos)
	dist := d.Len()
	if dist == 0 {
		return components.Vector{}
	}
	ease := math.Min(math.Max(dist/cfg.Movement.SlowdownRange, 0), 1)
	return d.Scale(OrbSpeed(r) * ease / dist)
}

// UpdateMovement steers every local orb toward target, applies any split
// impulse and keeps the orb inside the arena.
func UpdateMovement(a *arena.Arena, target components.Vector, dt time.Duration) {
	secs := dt.Seconds()
	drag := math.Pow(cfg.Orb.LaunchDamping, secs)

	tags.LocalOrb.Each(a.World, func(e *donburi.Entry) {
		orb := components.Orb.Get(e)
		pos := components.Position.Get(e)

		v := SeekVelocity(*pos, target, orb.Radius)
		components.Velocity.SetValue(e, components.VelocityData{X: v.X, Y: v.Y})

		launch := components.Launch.Get(e)
		next := pos.Add(v).Add(components.Vector{X: launch.X * secs, Y: launch.Y * secs})
		*pos = a.Clamp(next)

		launch.X *= drag
		launch.Y *= drag
		speed := math.Hypot(launch.X, launch.Y)
		if orb.Spawned && speed < cfg.Orb.SpawnedSpeed {
			orb.Spawned = false
		}
		if speed < launchRest {
			launch.X, launch.Y = 0, 0
		}
	})
}
