package engine

import (
	"math"

	"github.com/lixenwraith/dart-pop/constants"
	"github.com/lixenwraith/dart-pop/systems"
)

// Drawable is the render surface size in terminal cells
type Drawable struct {
	Cols, Rows int
}

// Normalized replaces degenerate sizes with a 1×1 surface
func (d Drawable) Normalized() Drawable {
	return Drawable{Cols: max(1, d.Cols), Rows: max(1, d.Rows)}
}

// Viewport is a perspective camera looking at the play plane from Distance
type Viewport struct {
	FOVDegrees float64 // Vertical field of view
	Distance   float64
	CellAspect float64 // Cell width over cell height
}

// DefaultViewport returns the built-in camera
func DefaultViewport() Viewport {
	return Viewport{
		FOVDegrees: constants.CameraFOVDegrees,
		Distance:   constants.CameraDistance,
		CellAspect: constants.CellAspect,
	}
}

// HalfHeight is the visible half height of the play plane
func (v Viewport) HalfHeight() float64 {
	return math.Tan(v.FOVDegrees*math.Pi/360) * v.Distance
}

// Bounds derives the visible half extents for a drawable
func (v Viewport) Bounds(d Drawable) systems.Bounds {
	d = d.Normalized()
	half := v.HalfHeight()
	aspect := float64(d.Cols) * v.CellAspect / float64(d.Rows)
	return systems.Bounds{HalfWidth: half * aspect, HalfHeight: half}
}
