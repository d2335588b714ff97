package engine

import (
	"math/rand"
	"sync"
	"time"

	"github.com/lixenwraith/dart-pop/components"
	"github.com/lixenwraith/dart-pop/sensor"
	"github.com/lixenwraith/dart-pop/systems"
)

func testTargetGeometry() components.TargetGeometry {
	return components.NewTargetGeometry(
		components.RegionSize{W: 0.6, H: 0.72},
		components.RegionSize{W: 0.12, H: 0.48},
	)
}

func testWorld(tun systems.Tuning) *World {
	return NewWorld(tun, DefaultViewport(), testTargetGeometry(),
		components.ProjectileGeometry{Width: 0.3, Height: 0.6}, rand.New(rand.NewSource(1)))
}

// fixedReader always returns the same sample
type fixedReader struct {
	sample sensor.Sample
	paused bool
}

func (r *fixedReader) Load() sensor.Sample { return r.sample }
func (r *fixedReader) Paused() bool        { return r.paused }

// capturePresenter forwards snapshots without blocking the tick
type capturePresenter struct {
	ch chan Snapshot
}

func newCapturePresenter() *capturePresenter {
	return &capturePresenter{ch: make(chan Snapshot, 1024)}
}

func (p *capturePresenter) Present(s Snapshot) {
	select {
	case p.ch <- s:
	default:
	}
}

func (p *capturePresenter) next(timeout time.Duration) (Snapshot, bool) {
	select {
	case s := <-p.ch:
		return s, true
	case <-time.After(timeout):
		return Snapshot{}, false
	}
}

func (p *capturePresenter) drain() {
	for {
		select {
		case <-p.ch:
		default:
			return
		}
	}
}

// popRecorder collects pop notifications
type popRecorder struct {
	mu   sync.Mutex
	cats []components.Category
}

func (r *popRecorder) OnPop(c components.Category) {
	r.mu.Lock()
	r.cats = append(r.cats, c)
	r.mu.Unlock()
}

func (r *popRecorder) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.cats)
}
