package components

import "github.com/yohamta/donburi"

// VelocityData is the target-seeking control velocity in units per tick.
// It is recomputed from scratch every tick.
type VelocityData struct {
	X, Y float64
}

var Velocity = donburi.NewComponentType[VelocityData]()

// LaunchData is the split impulse in units per second. It decays with drag
// and is added on top of the control velocity.
type LaunchData struct {
	X, Y float64
}

var Launch = donburi.NewComponentType[LaunchData]()
