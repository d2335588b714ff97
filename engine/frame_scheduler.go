package engine

import (
	"log"
	"sync"
	"sync/atomic"
	"time"

	"github.com/lixenwraith/dart-pop/constants"
	"github.com/lixenwraith/dart-pop/core"
	"github.com/lixenwraith/dart-pop/sensor"
	"github.com/lixenwraith/dart-pop/status"
	"github.com/lixenwraith/dart-pop/systems"
)

// FrameScheduler drives World.Tick on a fixed interval from a single goroutine
// Start and Stop are idempotent; Start after Stop begins a fresh session
type FrameScheduler struct {
	world     *World
	reader    sensor.Reader
	clock     Clock
	interval  time.Duration
	presenter Presenter
	listeners []PopListener

	drawable atomic.Pointer[Drawable]

	// Control
	mu        sync.Mutex // Serializes Start/Stop
	running   atomic.Bool
	stopChan  chan struct{}
	wg        sync.WaitGroup
	startTime time.Time

	// Cached metric pointers
	statTicks   *atomic.Int64
	statLive    *atomic.Int64
	statSpawned *atomic.Int64
	statSkipped *atomic.Int64
	statPopped  *atomic.Int64
	statRemoved *atomic.Int64
	statScore   *atomic.Int64
	statRunning *atomic.Bool
	statTiltX   *status.AtomicFloat
	statTiltY   *status.AtomicFloat
}

// NewFrameScheduler wires the world to its input, clock and outputs
// A zero or tiny interval is raised to constants.MinFrameInterval
func NewFrameScheduler(world *World, reader sensor.Reader, clock Clock, interval time.Duration, presenter Presenter, reg *status.Registry) *FrameScheduler {
	if interval < constants.MinFrameInterval {
		interval = constants.MinFrameInterval
	}
	fs := &FrameScheduler{
		world:       world,
		reader:      reader,
		clock:       clock,
		interval:    interval,
		presenter:   presenter,
		statTicks:   reg.Ints.Get("engine.ticks"),
		statLive:    reg.Ints.Get("targets.live"),
		statSpawned: reg.Ints.Get("targets.spawned"),
		statSkipped: reg.Ints.Get("targets.skipped"),
		statPopped:  reg.Ints.Get("targets.popped"),
		statRemoved: reg.Ints.Get("targets.removed"),
		statScore:   reg.Ints.Get("game.score"),
		statRunning: reg.Bools.Get("engine.running"),
		statTiltX:   reg.Floats.Get("sensor.tilt_x"),
		statTiltY:   reg.Floats.Get("sensor.tilt_y"),
	}
	fs.drawable.Store(&Drawable{})
	return fs
}

// AddPopListener registers l, must be called before Start()
func (fs *FrameScheduler) AddPopListener(l PopListener) {
	fs.listeners = append(fs.listeners, l)
}

// SetDrawable publishes a new surface size, read at the next tick
func (fs *FrameScheduler) SetDrawable(d Drawable) {
	fs.drawable.Store(&d)
}

// Drawable returns the last published surface size
func (fs *FrameScheduler) Drawable() Drawable {
	return *fs.drawable.Load()
}

// Running reports whether the tick loop is active
func (fs *FrameScheduler) Running() bool {
	return fs.running.Load()
}

// Start resets the world and begins ticking, no-op while running
func (fs *FrameScheduler) Start() {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	if fs.running.Load() {
		return
	}

	// Loop is not running, world is safe to touch here
	fs.world.Reset()
	fs.world.Spawner.Start(0)
	fs.startTime = fs.clock.Now()

	stop := make(chan struct{})
	fs.stopChan = stop
	fs.running.Store(true)
	fs.statRunning.Store(true)

	fs.wg.Add(1)
	core.Go(func() { fs.loop(stop) })
	log.Printf("scheduler: started, interval %v", fs.interval)
}

// Stop cancels the pending tick and the spawner, blocks until the loop exits
func (fs *FrameScheduler) Stop() {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	if !fs.running.Load() {
		return
	}

	close(fs.stopChan)
	fs.wg.Wait()

	fs.world.Spawner.Stop()
	fs.running.Store(false)
	fs.statRunning.Store(false)
	log.Printf("scheduler: stopped after %d ticks, score %d", fs.world.Ticks(), fs.world.Score())
}

func (fs *FrameScheduler) loop(stop <-chan struct{}) {
	defer fs.wg.Done()

	ticker := time.NewTicker(fs.interval)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
		}

		// Stop may race with the ticker, a closed stop channel wins
		select {
		case <-stop:
			return
		default:
		}

		fs.step(fs.clock.Now())
	}
}

// step runs one tick at wall time now and hands the result off
func (fs *FrameScheduler) step(now time.Time) TickResult {
	d := fs.Drawable()
	sample := fs.reader.Load()

	res := fs.world.Tick(now.Sub(fs.startTime), sample, d)
	fs.record(res, sample)

	for _, t := range res.Popped {
		for _, l := range fs.listeners {
			l.OnPop(t.Category)
		}
	}

	if fs.presenter != nil {
		snap := fs.world.Snapshot(d)
		snap.Running = true
		if p, ok := fs.reader.(interface{ Paused() bool }); ok {
			snap.Paused = p.Paused()
		}
		fs.presenter.Present(snap)
	}
	return res
}

func (fs *FrameScheduler) record(res TickResult, sample sensor.Sample) {
	fs.statTicks.Add(1)
	fs.statLive.Store(int64(fs.world.Population.Len()))
	switch res.Spawn {
	case systems.SpawnCreated:
		fs.statSpawned.Add(1)
	case systems.SpawnSkipped:
		fs.statSkipped.Add(1)
	}
	fs.statPopped.Add(int64(len(res.Popped)))
	fs.statRemoved.Add(int64(len(res.Removed)))
	fs.statScore.Store(int64(fs.world.Score()))
	if sample.Valid() {
		fs.statTiltX.Set(sample.X)
		fs.statTiltY.Set(sample.Y)
	}
}
