package systems

import (
	"github.com/lixenwraith/dart-pop/components"
)

// DetectCollisions pops every Rising target whose head box overlaps the dart
// The string box is never tested; popped targets are skipped
// All overlapping targets register in the same tick
func DetectCollisions(p *components.Projectile, pop *components.Population) []*components.Target {
	dart := p.Bounds()

	var hits []*components.Target
	for _, t := range pop.Targets() {
		if !t.Rising() {
			continue
		}
		if dart.Intersects(t.Head) && t.Pop() {
			hits = append(hits, t)
		}
	}
	return hits
}
