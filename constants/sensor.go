package constants

import "time"

// Sensor update intervals requested from remote devices
const (
	SensorIntervalSlow   = 1000 * time.Millisecond
	SensorIntervalNormal = time.Second / 60
	SensorIntervalFast   = 16 * time.Millisecond
)

// Keyboard tilt emulation
const (
	// KeyTiltMagnitude is the tilt reported while an arrow key is held
	KeyTiltMagnitude = 1.0

	// KeyTiltHold is how long one key press keeps the tilt, terminals send no key-up
	KeyTiltHold = 150 * time.Millisecond
)

// Ingest server limits
const (
	IngestReadLimit     = 4096
	IngestHelloTimeout  = 5 * time.Second
	IngestWriteTimeout  = 2 * time.Second
	IngestShutdownGrace = 5 * time.Second
)
