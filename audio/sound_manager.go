// Package audio plays synthesized pop sounds through the system speaker
// Every operation is a no-op until Initialize succeeds, so the game runs silent without a device
package audio

import (
	"fmt"
	"sync"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	"github.com/lixenwraith/dart-pop/components"
	"github.com/lixenwraith/dart-pop/constants"
)

// SoundManager owns the speaker and a mixer that all effects play into
type SoundManager struct {
	mu          sync.Mutex
	cfg         Config
	mixer       *beep.Mixer
	initialized bool
}

// NewSoundManager creates an uninitialized sound manager
func NewSoundManager(cfg Config) *SoundManager {
	return &SoundManager{
		cfg:   cfg,
		mixer: &beep.Mixer{},
	}
}

// Initialize opens the speaker, second call is a no-op
// A disabled config stays silent without touching the device
func (sm *SoundManager) Initialize() error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.initialized || !sm.cfg.Enabled {
		return nil
	}

	rate := beep.SampleRate(sm.cfg.SampleRate)
	if err := speaker.Init(rate, rate.N(constants.AudioBufferDuration)); err != nil {
		return fmt.Errorf("speaker init: %w", err)
	}

	speaker.Play(sm.mixer)
	sm.initialized = true
	return nil
}

// Initialized reports whether sounds will be heard
func (sm *SoundManager) Initialized() bool {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	return sm.initialized
}

// PlayPop queues the pop sound for tier
func (sm *SoundManager) PlayPop(tier components.Tier) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return
	}

	s := CreatePopSound(sm.cfg, tier)
	speaker.Lock()
	sm.mixer.Add(s)
	speaker.Unlock()
}

// OnPop plays the category's pop, called from the tick goroutine
func (sm *SoundManager) OnPop(cat components.Category) {
	sm.PlayPop(cat.Tier)
}

// Cleanup silences queued sounds and releases the speaker
func (sm *SoundManager) Cleanup() {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return
	}

	speaker.Lock()
	sm.mixer.Clear()
	speaker.Unlock()
	speaker.Close()
	sm.initialized = false
}
