// Package config loads runtime settings from TOML, an optional .env file and DARTPOP_* variables
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/lixenwraith/dart-pop/audio"
	"github.com/lixenwraith/dart-pop/constants"
	"github.com/lixenwraith/dart-pop/engine"
	"github.com/lixenwraith/dart-pop/network"
	"github.com/lixenwraith/dart-pop/sensor"
	"github.com/lixenwraith/dart-pop/systems"
)

// Config is the full runtime configuration
type Config struct {
	Loop    LoopConfig    `toml:"loop"`
	Camera  CameraConfig  `toml:"camera"`
	Physics PhysicsConfig `toml:"physics"`
	Targets TargetsConfig `toml:"targets"`
	Spawner SpawnerConfig `toml:"spawner"`
	Sensor  SensorConfig  `toml:"sensor"`
	Audio   AudioConfig   `toml:"audio"`
	Assets  AssetsConfig  `toml:"assets"`
	Ingest  IngestConfig  `toml:"ingest"`
}

type LoopConfig struct {
	Interval time.Duration `toml:"interval"`
}

type CameraConfig struct {
	FOVDegrees float64 `toml:"fov_degrees"`
	Distance   float64 `toml:"distance"`
	CellAspect float64 `toml:"cell_aspect"`
}

type PhysicsConfig struct {
	Sensitivity      float64 `toml:"sensitivity"`
	Damping          float64 `toml:"damping"`
	Bounce           float64 `toml:"bounce"`
	ProjectileHeight float64 `toml:"projectile_height"`
}

type TargetsConfig struct {
	Max          int     `toml:"max"`
	Height       float64 `toml:"height"`
	BaseVelocity float64 `toml:"base_velocity"`
	Sway         float64 `toml:"sway"`
	ShrinkStep   float64 `toml:"shrink_step"`
}

type SpawnerConfig struct {
	Base      time.Duration `toml:"base"`
	Variation time.Duration `toml:"variation"`
	Seed      int64         `toml:"seed"` // 0 seeds from the clock
}

type SensorConfig struct {
	Rate         string        `toml:"rate"`
	KeyMagnitude float64       `toml:"key_magnitude"`
	KeyHold      time.Duration `toml:"key_hold"`
}

type AudioConfig struct {
	Enabled    bool    `toml:"enabled"`
	Volume     float64 `toml:"volume"`
	SampleRate int     `toml:"sample_rate"`
}

type AssetsConfig struct {
	Dir string `toml:"dir"` // Empty uses the built-in shapes
}

type IngestConfig struct {
	Enabled  bool   `toml:"enabled"`
	Address  string `toml:"address"`
	MaxPeers int    `toml:"max_peers"`
}

// Default returns the built-in configuration
func Default() *Config {
	ac := audio.DefaultConfig()
	nc := network.DefaultConfig()
	return &Config{
		Loop: LoopConfig{Interval: constants.FrameUpdateInterval},
		Camera: CameraConfig{
			FOVDegrees: constants.CameraFOVDegrees,
			Distance:   constants.CameraDistance,
			CellAspect: constants.CellAspect,
		},
		Physics: PhysicsConfig{
			Sensitivity:      constants.Sensitivity,
			Damping:          constants.Damping,
			Bounce:           constants.BounceFactor,
			ProjectileHeight: constants.ProjectileHeight,
		},
		Targets: TargetsConfig{
			Max:          constants.MaxTargets,
			Height:       constants.TargetHeight,
			BaseVelocity: constants.BaseVelocity,
			Sway:         constants.SwayConstant,
			ShrinkStep:   constants.ShrinkStep,
		},
		Spawner: SpawnerConfig{
			Base:      constants.SpawnBaseInterval,
			Variation: constants.SpawnVariation,
		},
		Sensor: SensorConfig{
			Rate:         sensor.RateNormal.String(),
			KeyMagnitude: constants.KeyTiltMagnitude,
			KeyHold:      constants.KeyTiltHold,
		},
		Audio: AudioConfig{
			Enabled:    ac.Enabled,
			Volume:     ac.MasterVolume,
			SampleRate: ac.SampleRate,
		},
		Ingest: IngestConfig{
			Enabled:  nc.Enabled,
			Address:  nc.Address,
			MaxPeers: nc.MaxPeers,
		},
	}
}

// Validate reports every out-of-range setting at once
func (c *Config) Validate() error {
	var errs []error
	check := func(ok bool, format string, args ...any) {
		if !ok {
			errs = append(errs, fmt.Errorf(format, args...))
		}
	}

	check(c.Loop.Interval > 0, "loop.interval must be positive, got %v", c.Loop.Interval)

	check(c.Camera.FOVDegrees > 0 && c.Camera.FOVDegrees < 180, "camera.fov_degrees must be in (0, 180), got %g", c.Camera.FOVDegrees)
	check(c.Camera.Distance > 0, "camera.distance must be positive, got %g", c.Camera.Distance)
	check(c.Camera.CellAspect > 0, "camera.cell_aspect must be positive, got %g", c.Camera.CellAspect)

	check(c.Physics.Sensitivity >= 0, "physics.sensitivity must not be negative, got %g", c.Physics.Sensitivity)
	check(c.Physics.Damping >= 0 && c.Physics.Damping < 1, "physics.damping must be in [0, 1), got %g", c.Physics.Damping)
	check(c.Physics.Bounce >= -1 && c.Physics.Bounce <= 0, "physics.bounce must be in [-1, 0], got %g", c.Physics.Bounce)
	check(c.Physics.ProjectileHeight > 0, "physics.projectile_height must be positive, got %g", c.Physics.ProjectileHeight)

	check(c.Targets.Max >= 1, "targets.max must be at least 1, got %d", c.Targets.Max)
	check(c.Targets.Height > 0, "targets.height must be positive, got %g", c.Targets.Height)
	check(c.Targets.BaseVelocity > 0, "targets.base_velocity must be positive, got %g", c.Targets.BaseVelocity)
	check(c.Targets.Sway >= 0, "targets.sway must not be negative, got %g", c.Targets.Sway)
	check(c.Targets.ShrinkStep > 0 && c.Targets.ShrinkStep <= 1, "targets.shrink_step must be in (0, 1], got %g", c.Targets.ShrinkStep)

	check(c.Spawner.Base > 0, "spawner.base must be positive, got %v", c.Spawner.Base)
	check(c.Spawner.Variation >= 0, "spawner.variation must not be negative, got %v", c.Spawner.Variation)

	if _, err := sensor.ParseRate(c.Sensor.Rate); err != nil {
		errs = append(errs, fmt.Errorf("sensor.rate: %w", err))
	}
	check(c.Sensor.KeyMagnitude > 0, "sensor.key_magnitude must be positive, got %g", c.Sensor.KeyMagnitude)
	check(c.Sensor.KeyHold > 0, "sensor.key_hold must be positive, got %v", c.Sensor.KeyHold)

	check(c.Audio.Volume >= 0 && c.Audio.Volume <= 1, "audio.volume must be in [0, 1], got %g", c.Audio.Volume)
	check(c.Audio.SampleRate > 0, "audio.sample_rate must be positive, got %d", c.Audio.SampleRate)

	if c.Ingest.Enabled {
		check(c.Ingest.Address != "", "ingest.address is required when ingest is enabled")
		check(c.Ingest.MaxPeers >= 1, "ingest.max_peers must be at least 1, got %d", c.Ingest.MaxPeers)
	}

	return errors.Join(errs...)
}

// Tuning converts the gameplay sections
func (c *Config) Tuning() systems.Tuning {
	return systems.Tuning{
		Sensitivity:    c.Physics.Sensitivity,
		Damping:        c.Physics.Damping,
		Bounce:         c.Physics.Bounce,
		BaseVelocity:   c.Targets.BaseVelocity,
		SwayConstant:   c.Targets.Sway,
		ShrinkStep:     c.Targets.ShrinkStep,
		MaxTargets:     c.Targets.Max,
		SpawnBase:      c.Spawner.Base,
		SpawnVariation: c.Spawner.Variation,
	}
}

// Viewport converts the camera section
func (c *Config) Viewport() engine.Viewport {
	return engine.Viewport{
		FOVDegrees: c.Camera.FOVDegrees,
		Distance:   c.Camera.Distance,
		CellAspect: c.Camera.CellAspect,
	}
}

// AudioConfig converts the audio section
func (c *Config) AudioConfig() audio.Config {
	return audio.Config{
		Enabled:      c.Audio.Enabled,
		MasterVolume: c.Audio.Volume,
		SampleRate:   c.Audio.SampleRate,
	}
}

// SensorRate parses the configured rate, normal when invalid
func (c *Config) SensorRate() sensor.Rate {
	r, _ := sensor.ParseRate(c.Sensor.Rate)
	return r
}

// IngestConfig converts the ingest section, timing stays at the built-in limits
func (c *Config) IngestConfig() *network.Config {
	nc := network.DefaultConfig()
	nc.Enabled = c.Ingest.Enabled
	nc.Address = c.Ingest.Address
	nc.MaxPeers = c.Ingest.MaxPeers
	nc.Rate = c.SensorRate()
	return nc
}
