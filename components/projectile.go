package components

import (
	"github.com/lixenwraith/dart-pop/core"
	"github.com/lixenwraith/dart-pop/vmath"
)

// Projectile is the single player-controlled dart, created at session start and never destroyed
type Projectile struct {
	core.Kinetic
	Rotation float64 // Facing angle in radians, asset points up at 0
	Geometry ProjectileGeometry
}

// NewProjectile places a resting dart at the origin
func NewProjectile(geo ProjectileGeometry) *Projectile {
	p := &Projectile{Geometry: geo}
	p.Reset()
	return p
}

// Reset returns the dart to its origin state
func (p *Projectile) Reset() {
	p.Pos = vmath.Vec2{}
	p.Vel = vmath.Vec2{}
	p.Rotation = vmath.V2Heading(vmath.Vec2{})
}

// Bounds returns the full extent box used for collision
func (p *Projectile) Bounds() vmath.Rect {
	return vmath.RectCentered(p.Pos, p.Geometry.Width, p.Geometry.Height)
}
