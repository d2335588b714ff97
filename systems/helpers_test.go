package systems

import (
	"github.com/lixenwraith/dart-pop/components"
	"github.com/lixenwraith/dart-pop/vmath"
)

// scriptedRand replays vals in a loop
type scriptedRand struct {
	vals []float64
	i    int
}

func (r *scriptedRand) Float64() float64 {
	v := r.vals[r.i%len(r.vals)]
	r.i++
	return v
}

func testTargetGeometry() components.TargetGeometry {
	return components.NewTargetGeometry(
		components.RegionSize{W: 0.6, H: 0.72},
		components.RegionSize{W: 0.12, H: 0.48},
	)
}

func testProjectile() *components.Projectile {
	return components.NewProjectile(components.ProjectileGeometry{Width: 0.3, Height: 0.6})
}

func wideBounds() Bounds {
	return Bounds{HalfWidth: 100, HalfHeight: 100}
}

func addTarget(pop *components.Population, pos vmath.Vec2, tier int) *components.Target {
	t := components.NewTarget(pop.NextID(), components.CategoryFor(tier), pos, 0, testTargetGeometry())
	pop.Add(t)
	return t
}
