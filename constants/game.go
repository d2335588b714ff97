package constants

import "time"

// Game Loop Timing Constants
const (
	// FrameUpdateInterval is the tick interval bound to display refresh (~60 FPS)
	FrameUpdateInterval = 16 * time.Millisecond

	// MinFrameInterval guards against a busy loop from a zero or tiny configured interval
	MinFrameInterval = 4 * time.Millisecond
)

// Camera defaults, world units are the camera's scene units
const (
	// CameraFOVDegrees is the vertical field of view
	CameraFOVDegrees = 75.0

	// CameraDistance is the distance from camera to the play plane
	CameraDistance = 5.0

	// CellAspect is terminal cell width divided by cell height
	CellAspect = 0.5
)
