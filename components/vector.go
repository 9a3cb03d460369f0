package components

import "math"

// Vector represents a 2D vector.
type Vector struct {
	X, Y float64
}

func (v Vector) Sub(o Vector) Vector    { return Vector{X: v.X - o.X, Y: v.Y - o.Y} }
func (v Vector) Add(o Vector) Vector    { return Vector{X: v.X + o.X, Y: v.Y + o.Y} }
func (v Vector) Scale(s float64) Vector { return Vector{X: v.X * s, Y: v.Y * s} }
func (v Vector) Len() float64           { return math.Hypot(v.X, v.Y) }
func (v Vector) Dist(o Vector) float64  { return v.Sub(o).Len() }

// Unit returns the normalized vector, or false for the zero vector.
func (v Vector) Unit() (Vector, bool) {
	l := v.Len()
	if l == 0 {
		return Vector{}, false
	}
	return Vector{X: v.X / l, Y: v.Y / l}, true
}
