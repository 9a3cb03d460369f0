package systems

import (
	"math"

	"github.com/automoto/orbs-mp/components"
	cfg "github.com/automoto/orbs-mp/config"
)

// Camera eases toward the local player's center of mass and zooms out as the
// player grows. It holds no engine state so the client can draw with it and
// tests can drive it directly.
type Camera struct {
	X, Y float64
	Zoom float64
}

func NewCamera(x, y float64) *Camera {
	return &Camera{X: x, Y: y, Zoom: 1}
}

// Follow moves the camera one frame toward target. size is the player's
// total radius.
func (c *Camera) Follow(target components.Vector, size float64) {
	c.X += (target.X - c.X) * cfg.Camera.Smoothing
	c.Y += (target.Y - c.Y) * cfg.Camera.Smoothing

	c.Zoom += (TargetZoom(size) - c.Zoom) * cfg.Camera.ZoomSmoothing
}

// TargetZoom is the zoom the camera settles at for a player of the given size.
func TargetZoom(size float64) float64 {
	if size <= cfg.Camera.ReferenceSize {
		return 1
	}
	return math.Max(math.Sqrt(cfg.Camera.ReferenceSize/size), cfg.Camera.MinZoom)
}

// ToScreen maps a world point into a square frame of the given size.
func (c *Camera) ToScreen(x, y, frame float64) (float64, float64) {
	half := frame / 2
	return (x-c.X)*c.Zoom + half, (y-c.Y)*c.Zoom + half
}

// ToWorld maps a screen point back into the arena.
func (c *Camera) ToWorld(sx, sy, frame float64) (float64, float64) {
	half := frame / 2
	return (sx-half)/c.Zoom + c.X, (sy-half)/c.Zoom + c.Y
}
