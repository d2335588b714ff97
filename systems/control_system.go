package systems

import (
	"github.com/lixenwraith/dart-pop/sensor"
	"github.com/lixenwraith/dart-pop/vmath"
)

// MapControl turns a tilt sample into projectile acceleration
// Tilting one way pushes the dart the other way; z is ignored
// Garbled samples count as level
func MapControl(s sensor.Sample, sensitivity float64) vmath.Vec2 {
	if !s.Valid() {
		return vmath.Vec2{}
	}
	return vmath.Vec2{X: -s.X * sensitivity, Y: -s.Y * sensitivity}
}
