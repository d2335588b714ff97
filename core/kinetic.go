package core

import "github.com/lixenwraith/dart-pop/vmath"

// Kinetic holds the continuous motion state of a body in world units
// Velocity is per tick, not per second
type Kinetic struct {
	Pos vmath.Vec2
	Vel vmath.Vec2
}
