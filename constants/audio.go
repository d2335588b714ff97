package constants

import "time"

// Audio Engine
const (
	// AudioSampleRate is the speaker sample rate in Hz
	AudioSampleRate = 48000

	// AudioBufferDuration is the speaker buffer length
	AudioBufferDuration = 100 * time.Millisecond
)

// Pop Sound Timing
const (
	PopSoundDuration = 120 * time.Millisecond
	PopSoundAttack   = 2 * time.Millisecond
	PopSoundRelease  = 90 * time.Millisecond

	// PopNoiseDuration is the short burst layered under the tone
	PopNoiseDuration = 40 * time.Millisecond
)

// PopBaseFrequency is the tone for the lowest tier, each tier steps up a fifth
const PopBaseFrequency = 440.0
