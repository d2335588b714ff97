package systems

import (
	"math"
	"time"

	"github.com/lixenwraith/dart-pop/components"
	"github.com/lixenwraith/dart-pop/vmath"
)

// SpawnOutcome reports what a spawner step did
type SpawnOutcome uint8

const (
	SpawnIdle    SpawnOutcome = iota // Not due, or stopped
	SpawnCreated                     // New target added
	SpawnSkipped                     // Due, but population at capacity
)

// Spawner is a timer state machine advanced by the tick
// nextFire is in elapsed session time; stopping is a flag checked before rescheduling
type Spawner struct {
	base      time.Duration
	variation time.Duration
	rng       Rand

	nextFire time.Duration
	active   bool
}

// NewSpawner creates a stopped spawner
func NewSpawner(base, variation time.Duration, rng Rand) *Spawner {
	return &Spawner{
		base:      base,
		variation: variation,
		rng:       rng,
	}
}

// Start arms the spawner, first attempt after one randomized delay from now
func (s *Spawner) Start(now time.Duration) {
	s.active = true
	s.nextFire = now + s.delay()
}

// Stop disarms the spawner, the next due step becomes a no-op
func (s *Spawner) Stop() {
	s.active = false
}

func (s *Spawner) Active() bool            { return s.active }
func (s *Spawner) NextFire() time.Duration { return s.nextFire }

// delay returns base + random × variation
func (s *Spawner) delay() time.Duration {
	return s.base + time.Duration(s.rng.Float64()*float64(s.variation))
}

// Advance fires at most once per call
// When due it spawns unless the population is full, then reschedules from now,
// so missed intervals are dropped rather than queued
func (s *Spawner) Advance(now time.Duration, pop *components.Population, bounds Bounds, geo components.TargetGeometry) (SpawnOutcome, *components.Target) {
	if !s.active || now < s.nextFire {
		return SpawnIdle, nil
	}

	outcome := SpawnSkipped
	var spawned *components.Target
	if !pop.Full() {
		spawned = s.newTarget(pop.NextID(), bounds, geo)
		pop.Add(spawned)
		outcome = SpawnCreated
	}

	if s.active {
		s.nextFire = now + s.delay()
	}
	return outcome, spawned
}

// newTarget draws tier, drift and entry point
func (s *Spawner) newTarget(id uint64, bounds Bounds, geo components.TargetGeometry) *components.Target {
	cat := components.CategoryFor(DrawTierIndex(s.rng, int(components.TierCount)))
	drift := s.rng.Float64() * cat.Speed

	span := max(0, bounds.HalfWidth-geo.Width/2)
	x := s.rng.Float64() * span
	if s.rng.Float64() < 0.5 {
		x = -x
	}
	// Head starts fully below the bottom edge
	y := -(bounds.HalfHeight + geo.Head.H/2)

	return components.NewTarget(id, cat, vmath.Vec2{X: x, Y: y}, drift, geo)
}

// DrawTierIndex draws from a triangular distribution peaked at tier 0
// |u1 - u2| has density 2(1-x) on [0,1), favoring common tiers without a weight table
// A plain u1 + u2 would peak at the middle tier instead, so the difference is deliberate
func DrawTierIndex(rng Rand, count int) int {
	u := math.Abs(rng.Float64() - rng.Float64())
	return int(math.Floor(u * float64(count)))
}
