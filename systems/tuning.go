// Package systems holds the per-tick simulation steps
// Each step is a function of the state it mutates plus explicit inputs
package systems

import (
	"time"

	"github.com/lixenwraith/dart-pop/constants"
)

// Tuning carries every gameplay constant a tick needs
type Tuning struct {
	Sensitivity float64
	Damping     float64
	Bounce      float64

	BaseVelocity float64
	SwayConstant float64
	ShrinkStep   float64
	MaxTargets   int

	SpawnBase      time.Duration
	SpawnVariation time.Duration
}

// DefaultTuning returns the built-in gameplay constants
func DefaultTuning() Tuning {
	return Tuning{
		Sensitivity:    constants.Sensitivity,
		Damping:        constants.Damping,
		Bounce:         constants.BounceFactor,
		BaseVelocity:   constants.BaseVelocity,
		SwayConstant:   constants.SwayConstant,
		ShrinkStep:     constants.ShrinkStep,
		MaxTargets:     constants.MaxTargets,
		SpawnBase:      constants.SpawnBaseInterval,
		SpawnVariation: constants.SpawnVariation,
	}
}

// Bounds are the visible half extents of the play plane
type Bounds struct {
	HalfWidth, HalfHeight float64
}

// Inset shrinks the bounds by an object's half size, never below zero
func (b Bounds) Inset(w, h float64) (boundX, boundY float64) {
	return max(0, b.HalfWidth-w/2), max(0, b.HalfHeight-h/2)
}

// Rand is the random source used by spawning, *rand.Rand satisfies it
type Rand interface {
	Float64() float64
}
