package engine

import (
	"github.com/lixenwraith/dart-pop/components"
	"github.com/lixenwraith/dart-pop/core"
	"github.com/lixenwraith/dart-pop/sensor"
	"github.com/lixenwraith/dart-pop/systems"
	"github.com/lixenwraith/dart-pop/vmath"
)

// ProjectileView is the render handoff for the dart
type ProjectileView struct {
	Pos      vmath.Vec2
	Rotation float64
}

// TargetView is the render handoff for one balloon
type TargetView struct {
	ID    uint64
	Pos   vmath.Vec2
	Scale vmath.Vec2
	Color core.RGB
	State components.TargetState
	Tier  components.Tier
}

// Snapshot is a detached copy of the world taken after a tick
// Safe to hand to another goroutine
type Snapshot struct {
	Projectile ProjectileView
	Targets    []TargetView

	Bounds   systems.Bounds
	Drawable Drawable

	Score   int
	Pops    int
	Tick    uint64
	Tilt    sensor.Sample
	Paused  bool // Sensor intake paused
	Running bool
}

// Snapshot copies the renderable state
func (w *World) Snapshot(d Drawable) Snapshot {
	targets := w.Population.Targets()
	s := Snapshot{
		Projectile: ProjectileView{Pos: w.Projectile.Pos, Rotation: w.Projectile.Rotation},
		Targets:    make([]TargetView, 0, len(targets)),
		Bounds:     w.bounds,
		Drawable:   d.Normalized(),
		Score:      w.score,
		Pops:       w.pops,
		Tick:       w.ticks,
		Tilt:       w.tilt,
	}
	for _, t := range targets {
		s.Targets = append(s.Targets, TargetView{
			ID:    t.ID,
			Pos:   t.Pos,
			Scale: t.Scale,
			Color: t.Category.Color,
			State: t.State,
			Tier:  t.Category.Tier,
		})
	}
	return s
}

// Presenter consumes snapshots, called on the tick goroutine
type Presenter interface {
	Present(Snapshot)
}

// PopListener is notified for every target popped during a tick
type PopListener interface {
	OnPop(components.Category)
}
