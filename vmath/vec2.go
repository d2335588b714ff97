package vmath

import (
	"math"
)

// Vec2 is a float64 2D vector in world units
type Vec2 struct {
	X, Y float64
}

func V2Add(a, b Vec2) Vec2 {
	return Vec2{a.X + b.X, a.Y + b.Y}
}

func V2Scale(v Vec2, s float64) Vec2 {
	return Vec2{v.X * s, v.Y * s}
}

func V2Mag(v Vec2) float64 {
	return math.Hypot(v.X, v.Y)
}

// V2Heading returns the facing angle of v for an asset drawn pointing up
// atan2(y, x) + π/2; zero vector yields π/2
func V2Heading(v Vec2) float64 {
	return math.Atan2(v.Y, v.X) + math.Pi/2
}

// V2Finite reports whether both components are neither NaN nor ±Inf
func V2Finite(v Vec2) bool {
	return !math.IsNaN(v.X) && !math.IsNaN(v.Y) && !math.IsInf(v.X, 0) && !math.IsInf(v.Y, 0)
}

// ApproxEqual compares with absolute tolerance eps
func ApproxEqual(a, b, eps float64) bool {
	return math.Abs(a-b) <= eps
}
