package components

import "github.com/lixenwraith/dart-pop/vmath"

// TargetState is the lifecycle state of a balloon
type TargetState uint8

const (
	StateRising TargetState = iota // Moving up, collidable
	StatePopped                    // Shrinking, terminal
)

func (s TargetState) String() string {
	switch s {
	case StateRising:
		return "rising"
	case StatePopped:
		return "popped"
	default:
		return "unknown"
	}
}

// Target is a spawned balloon
type Target struct {
	ID       uint64
	Category Category
	Pos      vmath.Vec2 // Head center
	Scale    vmath.Vec2
	Drift    float64 // Sway magnitude in [0, Category.Speed)
	State    TargetState
	Geometry TargetGeometry

	// Derived boxes, refreshed by UpdateBounds
	Head   vmath.Rect
	String vmath.Rect
}

// NewTarget creates a Rising balloon at unit scale
func NewTarget(id uint64, cat Category, pos vmath.Vec2, drift float64, geo TargetGeometry) *Target {
	t := &Target{
		ID:       id,
		Category: cat,
		Pos:      pos,
		Scale:    vmath.Vec2{X: 1, Y: 1},
		Drift:    drift,
		State:    StateRising,
		Geometry: geo,
	}
	t.UpdateBounds()
	return t
}

// Rising reports whether the target can still be hit
func (t *Target) Rising() bool {
	return t.State == StateRising
}

// Pop moves a Rising target to Popped, returns false if already popped
func (t *Target) Pop() bool {
	if t.State != StateRising {
		return false
	}
	t.State = StatePopped
	return true
}

// Shrink lowers both scale axes by step, clamped at zero
func (t *Target) Shrink(step float64) {
	t.Scale.X = max(0, t.Scale.X-step)
	t.Scale.Y = max(0, t.Scale.Y-step)
}

// UpdateBounds recomputes head and string boxes from position and scale
func (t *Target) UpdateBounds() {
	t.Head = t.Geometry.HeadBox(t.Pos, t.Scale)
	t.String = t.Geometry.StringBox(t.Pos, t.Scale)
}

// Expired is the removal predicate: fully shrunk, or risen past the top edge
// viewHeight is the visible half height with the camera centered on the origin
func (t *Target) Expired(viewHeight float64) bool {
	return t.Scale.X <= 0 || t.Scale.Y <= 0 || t.Pos.Y > t.Geometry.Height+viewHeight
}
