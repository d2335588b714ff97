package audio

import "github.com/lixenwraith/dart-pop/constants"

// Config controls sound output
type Config struct {
	Enabled      bool
	MasterVolume float64 // 0.0 - 1.0
	SampleRate   int
}

// DefaultConfig returns audio enabled at full volume
func DefaultConfig() Config {
	return Config{
		Enabled:      true,
		MasterVolume: 1.0,
		SampleRate:   constants.AudioSampleRate,
	}
}
