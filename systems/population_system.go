package systems

import (
	"math"
	"time"

	"github.com/lixenwraith/dart-pop/components"
)

// UpdatePopulation advances every target one tick and drops expired ones in the same pass
// Rising targets climb and sway, popped targets shrink
// elapsed drives the sway phase; |cos| keeps the sway one-directional (rightward)
func UpdatePopulation(pop *components.Population, elapsed time.Duration, viewHeight float64, tun Tuning) []*components.Target {
	sway := math.Abs(math.Cos(elapsed.Seconds())) * tun.SwayConstant

	return pop.Update(func(t *components.Target) bool {
		switch t.State {
		case components.StateRising:
			t.Pos.Y += tun.BaseVelocity * t.Category.Speed
			t.Pos.X += sway * t.Drift
		case components.StatePopped:
			t.Shrink(tun.ShrinkStep)
		}
		t.UpdateBounds()
		return !t.Expired(viewHeight)
	})
}
