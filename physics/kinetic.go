package physics

import (
	"github.com/lixenwraith/dart-pop/core"
	"github.com/lixenwraith/dart-pop/vmath"
)

// Integrate performs one damped step: v = (v + a) * damping; p = p + v
// Velocity is per tick, so there is no dt term
func Integrate(k *core.Kinetic, accel vmath.Vec2, damping float64) {
	k.Vel = vmath.V2Add(k.Vel, accel)
	Damp(k, damping)
	k.Pos = vmath.V2Add(k.Pos, k.Vel)
}

// Damp scales velocity by factor, factor < 1 drains speed every tick
func Damp(k *core.Kinetic, factor float64) {
	k.Vel = vmath.V2Scale(k.Vel, factor)
}

// ClampAxis keeps *pos within [-bound, bound]; on contact the position is pinned
// to the edge and *vel is multiplied by bounce. Returns true if clamped
func ClampAxis(pos, vel *float64, bound, bounce float64) bool {
	if *pos > bound {
		*pos = bound
		*vel *= bounce
		return true
	}
	if *pos < -bound {
		*pos = -bound
		*vel *= bounce
		return true
	}
	return false
}

// ClampBounds handles both axes independently, each may clamp in the same call
func ClampBounds(k *core.Kinetic, boundX, boundY, bounce float64) (clampedX, clampedY bool) {
	clampedX = ClampAxis(&k.Pos.X, &k.Vel.X, boundX, bounce)
	clampedY = ClampAxis(&k.Pos.Y, &k.Vel.Y, boundY, bounce)
	return clampedX, clampedY
}
