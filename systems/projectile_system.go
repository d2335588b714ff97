package systems

import (
	"github.com/lixenwraith/dart-pop/components"
	"github.com/lixenwraith/dart-pop/physics"
	"github.com/lixenwraith/dart-pop/vmath"
)

// UpdateProjectile integrates the dart for one tick
// velocity += accel, velocity *= damping, position += velocity,
// rotation follows velocity, then each axis is clamped with an inelastic bounce
func UpdateProjectile(p *components.Projectile, accel vmath.Vec2, bounds Bounds, tun Tuning) {
	physics.Integrate(&p.Kinetic, accel, tun.Damping)
	p.Rotation = vmath.V2Heading(p.Vel)

	boundX, boundY := bounds.Inset(p.Geometry.Width, p.Geometry.Height)
	physics.ClampBounds(&p.Kinetic, boundX, boundY, tun.Bounce)
}
