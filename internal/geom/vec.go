// Package geom provides the small 2D vector and scalar helpers shared by the
// layout, particle, and scene packages.
package geom

import "math"

// Vec2 is a 2D point or direction in canvas coordinates.
type Vec2 struct {
	X, Y float64
}

func V(x, y float64) Vec2 { return Vec2{X: x, Y: y} }

func (v Vec2) Add(o Vec2) Vec2      { return Vec2{v.X + o.X, v.Y + o.Y} }
func (v Vec2) Sub(o Vec2) Vec2      { return Vec2{v.X - o.X, v.Y - o.Y} }
func (v Vec2) Scale(s float64) Vec2 { return Vec2{v.X * s, v.Y * s} }

func (v Vec2) Len() float64 { return math.Hypot(v.X, v.Y) }

// Dist returns the Euclidean distance between v and o.
func (v Vec2) Dist(o Vec2) float64 { return v.Sub(o).Len() }

// Lerp moves v toward o by fraction t (t=0 keeps v, t=1 reaches o).
func (v Vec2) Lerp(o Vec2, t float64) Vec2 {
	return Vec2{v.X + (o.X-v.X)*t, v.Y + (o.Y-v.Y)*t}
}

// Polar returns the point at distance r from origin in direction angle
// (radians, measured from the positive X axis).
func Polar(origin Vec2, angle, r float64) Vec2 {
	return Vec2{origin.X + math.Cos(angle)*r, origin.Y + math.Sin(angle)*r}
}

func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func Lerp(a, b, t float64) float64 { return a + (b-a)*t }
