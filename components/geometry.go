package components

import "github.com/lixenwraith/dart-pop/vmath"

// RegionSize is the size of a shape region in world units
type RegionSize struct {
	W, H float64
}

// TargetGeometry describes a balloon relative to its origin, the head center
// Computed once from the loaded shape; boxes are derived from it on every update
type TargetGeometry struct {
	Height       float64 // Full height, head plus string
	Width        float64 // Widest region
	Head         RegionSize
	String       RegionSize
	StringOffset vmath.Vec2 // Center of string box relative to origin
}

// NewTargetGeometry stacks the string region directly below the head
func NewTargetGeometry(head, str RegionSize) TargetGeometry {
	return TargetGeometry{
		Height:       head.H + str.H,
		Width:        max(head.W, str.W),
		Head:         head,
		String:       str,
		StringOffset: vmath.Vec2{X: 0, Y: -(head.H/2 + str.H/2)},
	}
}

// HeadBox returns the collidable head box at origin and scale
func (g TargetGeometry) HeadBox(origin, scale vmath.Vec2) vmath.Rect {
	return vmath.RectCentered(origin, g.Head.W*scale.X, g.Head.H*scale.Y)
}

// StringBox returns the decorative string box at origin and scale
func (g TargetGeometry) StringBox(origin, scale vmath.Vec2) vmath.Rect {
	offset := vmath.Vec2{X: g.StringOffset.X * scale.X, Y: g.StringOffset.Y * scale.Y}
	return vmath.RectOffset(origin, offset, g.String.W*scale.X, g.String.H*scale.Y)
}

// ProjectileGeometry is the dart's full collidable extent
type ProjectileGeometry struct {
	Width, Height float64
}
