package vmath

// Rect is an axis-aligned bounding box in world units, Y up
type Rect struct {
	MinX, MinY float64
	MaxX, MaxY float64
}

// RectCentered builds a box of size w×h centered on c
func RectCentered(c Vec2, w, h float64) Rect {
	hw, hh := w/2, h/2
	return Rect{MinX: c.X - hw, MinY: c.Y - hh, MaxX: c.X + hw, MaxY: c.Y + hh}
}

// RectOffset builds a box of size w×h whose center sits at origin + offset
func RectOffset(origin, offset Vec2, w, h float64) Rect {
	return RectCentered(V2Add(origin, offset), w, h)
}

func (r Rect) Width() float64  { return r.MaxX - r.MinX }
func (r Rect) Height() float64 { return r.MaxY - r.MinY }

func (r Rect) Center() Vec2 {
	return Vec2{(r.MinX + r.MaxX) / 2, (r.MinY + r.MaxY) / 2}
}

// Empty reports a box with no area
func (r Rect) Empty() bool {
	return r.MaxX <= r.MinX || r.MaxY <= r.MinY
}

// Intersects is the standard AABB overlap test: intervals overlap on both axes
// Touching edges do not count as overlap
func (r Rect) Intersects(o Rect) bool {
	if r.Empty() || o.Empty() {
		return false
	}
	if r.MinX >= o.MaxX || o.MinX >= r.MaxX {
		return false
	}
	if r.MinY >= o.MaxY || o.MinY >= r.MaxY {
		return false
	}
	return true
}
