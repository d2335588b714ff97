package sensor

import (
	"sync"
	"time"

	"github.com/gdamore/tcell/v2"
)

// KeyboardSource emulates device tilt with arrow keys
// Terminals report no key-up, so every press holds its tilt for a fixed window
type KeyboardSource struct {
	cell      *Cell
	magnitude float64
	hold      time.Duration

	mu       sync.Mutex
	x, y     float64
	deadline time.Time
	release  *time.Timer
	now      func() time.Time
}

// NewKeyboardSource writes into cell
func NewKeyboardSource(cell *Cell, magnitude float64, hold time.Duration) *KeyboardSource {
	return &KeyboardSource{
		cell:      cell,
		magnitude: magnitude,
		hold:      hold,
		now:       time.Now,
	}
}

// HandleKey consumes arrow keys, returns false for keys it does not own
// Tilt sign follows device convention: tilting right reads negative x, so the mapper pushes right
func (k *KeyboardSource) HandleKey(ev *tcell.EventKey) bool {
	var dx, dy float64
	switch ev.Key() {
	case tcell.KeyLeft:
		dx = k.magnitude
	case tcell.KeyRight:
		dx = -k.magnitude
	case tcell.KeyUp:
		dy = -k.magnitude
	case tcell.KeyDown:
		dy = k.magnitude
	default:
		return false
	}

	k.mu.Lock()
	defer k.mu.Unlock()

	now := k.now()
	// Holding a different axis keeps the other one alive for diagonal steering
	if now.After(k.deadline) {
		k.x, k.y = 0, 0
	}
	if dx != 0 {
		k.x = dx
	}
	if dy != 0 {
		k.y = dy
	}
	k.deadline = now.Add(k.hold)
	k.cell.Store(Sample{X: k.x, Y: k.y, At: now})

	if k.release != nil {
		k.release.Stop()
	}
	k.release = time.AfterFunc(k.hold, k.expire)
	return true
}

// expire publishes a level reading once the hold window lapses
func (k *KeyboardSource) expire() {
	k.mu.Lock()
	defer k.mu.Unlock()
	if k.now().Before(k.deadline) {
		return
	}
	k.x, k.y = 0, 0
	k.cell.Store(Sample{At: k.now()})
}

// Stop cancels a pending release
func (k *KeyboardSource) Stop() {
	k.mu.Lock()
	defer k.mu.Unlock()
	if k.release != nil {
		k.release.Stop()
		k.release = nil
	}
}
