package constants

import "time"

// Projectile Controller
const (
	// Sensitivity scales tilt into per-tick acceleration
	Sensitivity = 0.1

	// Damping is the per-tick velocity multiplier, must stay below 1
	Damping = 0.95

	// BounceFactor multiplies the clamped axis velocity on wall contact
	BounceFactor = -0.5

	// ProjectileHeight is the world-space height of the dart, width follows the shape aspect
	ProjectileHeight = 0.6
)

// Targets
const (
	// MaxTargets caps live targets, popped-but-shrinking ones included
	MaxTargets = 8

	// TargetHeight is the world-space height of a balloon including its string
	TargetHeight = 1.2

	// BaseVelocity is the rise per tick before the tier speed multiplier
	BaseVelocity = 0.02

	// SwayConstant scales the horizontal drift term
	SwayConstant = 0.005

	// ShrinkStep is subtracted from both scale axes per tick once popped
	ShrinkStep = 0.05
)

// Spawner
const (
	// SpawnBaseInterval is the minimum delay between spawn attempts
	SpawnBaseInterval = 500 * time.Millisecond

	// SpawnVariation is the random extra delay added on top of the base
	SpawnVariation = 1500 * time.Millisecond
)
