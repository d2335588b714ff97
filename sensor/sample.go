// Package sensor holds the latest tilt reading shared between producers and the tick
package sensor

import (
	"math"
	"sync/atomic"
	"time"
)

// Sample is one 3-axis tilt reading in device units
type Sample struct {
	X, Y, Z float64
	At      time.Time // Arrival time, zero when unknown
}

// Valid reports whether the x and y axes are usable
func (s Sample) Valid() bool {
	return finite(s.X) && finite(s.Y)
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

// Reader is the pull-based accessor consumed by the tick
type Reader interface {
	Load() Sample
}

// Cell is a single-slot latest-value holder
// Producers overwrite, the tick reads whatever is there; neither side blocks
type Cell struct {
	latest atomic.Pointer[Sample]
	paused atomic.Bool
}

// NewCell creates an empty cell
func NewCell() *Cell {
	return &Cell{}
}

// Store publishes s as the latest reading, dropped while paused
func (c *Cell) Store(s Sample) {
	if c.paused.Load() {
		return
	}
	c.latest.Store(&s)
}

// Load returns the latest reading or the zero sample if none arrived
func (c *Cell) Load() Sample {
	if c.paused.Load() {
		return Sample{}
	}
	if p := c.latest.Load(); p != nil {
		return *p
	}
	return Sample{}
}

// Reset forgets the last reading
func (c *Cell) Reset() {
	c.latest.Store(nil)
}

// SetPaused toggles intake, a paused cell reads as zero
func (c *Cell) SetPaused(paused bool) {
	c.paused.Store(paused)
	if paused {
		c.latest.Store(nil)
	}
}

// Paused reports the intake state
func (c *Cell) Paused() bool {
	return c.paused.Load()
}
