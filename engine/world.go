package engine

import (
	"time"

	"github.com/lixenwraith/dart-pop/components"
	"github.com/lixenwraith/dart-pop/sensor"
	"github.com/lixenwraith/dart-pop/systems"
)

// World holds the whole simulation state for one session
// Only the tick goroutine mutates it while the scheduler runs
type World struct {
	Projectile *components.Projectile
	Population *components.Population
	Spawner    *systems.Spawner

	Tuning        systems.Tuning
	Viewport      Viewport
	TargetGeo     components.TargetGeometry
	ProjectileGeo components.ProjectileGeometry

	elapsed time.Duration
	ticks   uint64
	score   int
	pops    int
	tilt    sensor.Sample
	bounds  systems.Bounds
}

// TickResult reports what changed during one tick
type TickResult struct {
	Spawn   systems.SpawnOutcome
	Spawned *components.Target
	Popped  []*components.Target
	Removed []*components.Target
}

// NewWorld builds an idle world, the projectile rests at the origin
func NewWorld(tun systems.Tuning, vp Viewport, targetGeo components.TargetGeometry, projGeo components.ProjectileGeometry, rng systems.Rand) *World {
	return &World{
		Projectile:    components.NewProjectile(projGeo),
		Population:    components.NewPopulation(tun.MaxTargets),
		Spawner:       systems.NewSpawner(tun.SpawnBase, tun.SpawnVariation, rng),
		Tuning:        tun,
		Viewport:      vp,
		TargetGeo:     targetGeo,
		ProjectileGeo: projGeo,
		bounds:        vp.Bounds(Drawable{}),
	}
}

// Reset empties the population and returns the dart to the origin
// Session counters restart; the spawner is left disarmed
func (w *World) Reset() {
	w.Spawner.Stop()
	w.Population.Reset()
	w.Projectile.Reset()
	w.elapsed = 0
	w.ticks = 0
	w.score = 0
	w.pops = 0
	w.tilt = sensor.Sample{}
}

// Tick advances the simulation to elapsed session time
// Order: spawn, control, projectile, population motion and removal, collision
func (w *World) Tick(elapsed time.Duration, sample sensor.Sample, d Drawable) TickResult {
	w.elapsed = elapsed
	w.ticks++
	w.tilt = sample
	w.bounds = w.Viewport.Bounds(d)

	var res TickResult
	res.Spawn, res.Spawned = w.Spawner.Advance(elapsed, w.Population, w.bounds, w.TargetGeo)

	accel := systems.MapControl(sample, w.Tuning.Sensitivity)
	systems.UpdateProjectile(w.Projectile, accel, w.bounds, w.Tuning)

	res.Removed = systems.UpdatePopulation(w.Population, elapsed, w.bounds.HalfHeight, w.Tuning)

	res.Popped = systems.DetectCollisions(w.Projectile, w.Population)
	for _, t := range res.Popped {
		w.score += t.Category.Value
		w.pops++
	}
	return res
}

func (w *World) Elapsed() time.Duration { return w.elapsed }
func (w *World) Ticks() uint64           { return w.ticks }
func (w *World) Score() int              { return w.score }
func (w *World) Pops() int               { return w.pops }
func (w *World) Bounds() systems.Bounds  { return w.bounds }
