package dynamo

import "math"

type Vec2 struct {
	X, Y float64
}

func V(x, y float64) Vec2 { return Vec2{X: x, Y: y} }

func (v Vec2) Add(o Vec2) Vec2 { return Vec2{v.X + o.X, v.Y + o.Y} }

func (v Vec2) Sub(o Vec2) Vec2 { return Vec2{v.X - o.X, v.Y - o.Y} }

func (v Vec2) Scale(f float64) Vec2 { return Vec2{v.X * f, v.Y * f} }

func (v Vec2) Len() float64 { return math.Hypot(v.X, v.Y) }

func (v Vec2) Dist(o Vec2) float64 { return o.Sub(v).Len() }

// Unit returns v scaled to length 1. A zero vector stays zero.
func (v Vec2) Unit() Vec2 {
	l := v.Len()
	if l == 0 {
		l = 1
	}
	return Vec2{v.X / l, v.Y / l}
}

// Perp returns v rotated a quarter turn: (-y, x).
func (v Vec2) Perp() Vec2 { return Vec2{-v.Y, v.X} }

func (v Vec2) IsValid() bool {
	return !math.IsNaN(v.X) && !math.IsNaN(v.Y) && !math.IsInf(v.X, 0) && !math.IsInf(v.Y, 0)
}

func Clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

func Lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

// Source is satisfied by *rand.Rand.
type Source interface {
	Float64() float64
}

// Uniform draws from [a, b).
func Uniform(src Source, a, b float64) float64 {
	return a + src.Float64()*(b-a)
}
