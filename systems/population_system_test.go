package systems

import (
	"math"
	"testing"
	"time"

	"github.com/lixenwraith/dart-pop/components"
	"github.com/lixenwraith/dart-pop/vmath"
	"pgregory.net/rapid"
)

const testViewHeight = 4.0

func TestUpdatePopulationRisingMotion(t *testing.T) {
	tun := DefaultTuning()
	pop := components.NewPopulation(4)
	tgt := addTarget(pop, vmath.Vec2{}, int(components.TierBlue))
	tgt.Drift = 1

	// cos(0) = 1: full rightward sway
	UpdatePopulation(pop, 0, testViewHeight, tun)

	wantY := tun.BaseVelocity * tgt.Category.Speed
	if !vmath.ApproxEqual(tgt.Pos.Y, wantY, 1e-12) {
		t.Errorf("Pos.Y = %f, want %f", tgt.Pos.Y, wantY)
	}
	if !vmath.ApproxEqual(tgt.Pos.X, tun.SwayConstant, 1e-12) {
		t.Errorf("Pos.X = %f, want %f", tgt.Pos.X, tun.SwayConstant)
	}
	if c := tgt.Head.Center(); !vmath.ApproxEqual(c.Y, tgt.Pos.Y, 1e-12) {
		t.Errorf("head box not refreshed: center %+v", c)
	}
}

func TestUpdatePopulationSwayNeverLeftward(t *testing.T) {
	tun := DefaultTuning()
	pop := components.NewPopulation(1)
	tgt := addTarget(pop, vmath.Vec2{}, 0)
	tgt.Drift = 0.9

	prev := tgt.Pos.X
	for i := 0; i < 300; i++ {
		UpdatePopulation(pop, time.Duration(i)*16*time.Millisecond, 1e9, tun)
		if tgt.Pos.X < prev {
			t.Fatalf("tick %d: sway moved left %f -> %f", i, prev, tgt.Pos.X)
		}
		prev = tgt.Pos.X
	}
}

func TestUpdatePopulationPoppedShrinksAndIsRemoved(t *testing.T) {
	tun := DefaultTuning()
	tun.ShrinkStep = 0.25
	pop := components.NewPopulation(2)
	tgt := addTarget(pop, vmath.Vec2{X: 1, Y: 1}, 0)
	tgt.Pop()

	for i := 1; i <= 3; i++ {
		removed := UpdatePopulation(pop, 0, testViewHeight, tun)
		if len(removed) != 0 {
			t.Fatalf("tick %d: removed too early, scale %+v", i, tgt.Scale)
		}
		if tgt.Pos != (vmath.Vec2{X: 1, Y: 1}) {
			t.Fatalf("popped target moved to %+v", tgt.Pos)
		}
		want := 1 - 0.25*float64(i)
		if !vmath.ApproxEqual(tgt.Scale.X, want, 1e-12) || !vmath.ApproxEqual(tgt.Scale.Y, want, 1e-12) {
			t.Fatalf("tick %d: scale %+v, want both %f", i, tgt.Scale, want)
		}
	}

	removed := UpdatePopulation(pop, 0, testViewHeight, tun)
	if len(removed) != 1 || removed[0] != tgt || pop.Len() != 0 {
		t.Errorf("expected target removed on reaching zero scale, len=%d", pop.Len())
	}
}

func TestUpdatePopulationRemovesRisenTarget(t *testing.T) {
	tun := DefaultTuning()
	pop := components.NewPopulation(2)
	geo := testTargetGeometry()
	gone := addTarget(pop, vmath.Vec2{Y: testViewHeight + geo.Height + 0.01}, 0)
	stays := addTarget(pop, vmath.Vec2{Y: 0}, 0)

	removed := UpdatePopulation(pop, 0, testViewHeight, tun)
	if len(removed) != 1 || removed[0] != gone {
		t.Fatalf("removed = %v, want the risen target", removed)
	}
	if pop.Len() != 1 || pop.Targets()[0] != stays {
		t.Error("unexpected survivors")
	}
}

// Removal happens exactly when the predicate holds on the post-update state
func TestUpdatePopulationRemovalPredicate(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		tun := DefaultTuning()
		tun.ShrinkStep = rapid.Float64Range(0.001, 0.5).Draw(t, "shrink")
		geo := testTargetGeometry()
		pop := components.NewPopulation(1)

		tgt := components.NewTarget(pop.NextID(), components.CategoryFor(rapid.IntRange(0, 4).Draw(t, "tier")),
			vmath.Vec2{
				X: rapid.Float64Range(-5, 5).Draw(t, "x"),
				Y: rapid.Float64Range(-10, 10).Draw(t, "y"),
			},
			rapid.Float64Range(0, 1).Draw(t, "drift"), geo)
		tgt.Scale = vmath.Vec2{
			X: rapid.Float64Range(0.001, 1).Draw(t, "sx"),
			Y: rapid.Float64Range(0.001, 1).Draw(t, "sy"),
		}
		if rapid.Bool().Draw(t, "popped") {
			tgt.Pop()
		}
		pop.Add(tgt)

		elapsed := time.Duration(rapid.Int64Range(0, int64(time.Hour)).Draw(t, "elapsed"))
		ticks := rapid.IntRange(1, 100).Draw(t, "ticks")
		for i := 0; i < ticks && pop.Len() == 1; i++ {
			removed := UpdatePopulation(pop, elapsed, testViewHeight, tun)
			predicate := tgt.Scale.X <= 0 || tgt.Scale.Y <= 0 || tgt.Pos.Y > geo.Height+testViewHeight
			if (len(removed) == 1) != predicate {
				t.Fatalf("tick %d: removed=%v predicate=%v (pos %+v scale %+v state %v)",
					i, len(removed) == 1, predicate, tgt.Pos, tgt.Scale, tgt.State)
			}
		}
	})
}

func TestUpdatePopulationRisingNeverShrinks(t *testing.T) {
	tun := DefaultTuning()
	pop := components.NewPopulation(1)
	tgt := addTarget(pop, vmath.Vec2{Y: -3}, 0)
	for i := 0; i < 50; i++ {
		UpdatePopulation(pop, 0, testViewHeight, tun)
	}
	if tgt.Scale != (vmath.Vec2{X: 1, Y: 1}) {
		t.Errorf("rising target scale changed: %+v", tgt.Scale)
	}
	if math.IsNaN(tgt.Pos.X) {
		t.Error("position became NaN")
	}
}
