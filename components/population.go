package components

// Population owns all live targets
// Not safe for concurrent use; the tick goroutine is the only writer
type Population struct {
	targets  []*Target
	capacity int
	nextID   uint64
}

// NewPopulation creates an empty population holding at most capacity targets
func NewPopulation(capacity int) *Population {
	if capacity < 0 {
		capacity = 0
	}
	return &Population{
		targets:  make([]*Target, 0, capacity),
		capacity: capacity,
	}
}

func (p *Population) Len() int { return len(p.targets) }

// Full reports whether a new target would exceed capacity
func (p *Population) Full() bool {
	return len(p.targets) >= p.capacity
}

// NextID returns a fresh target id
func (p *Population) NextID() uint64 {
	p.nextID++
	return p.nextID
}

// Add appends t, returns false without adding when at capacity
func (p *Population) Add(t *Target) bool {
	if p.Full() {
		return false
	}
	p.targets = append(p.targets, t)
	return true
}

// Targets returns the live slice; callers must not retain it across ticks
func (p *Population) Targets() []*Target {
	return p.targets
}

// Update runs fn on every target and drops those for which it returns false
// Survivors are compacted in place preserving order, so removal during the pass is safe
// Returns the removed targets
func (p *Population) Update(fn func(t *Target) (keep bool)) []*Target {
	var removed []*Target
	kept := p.targets[:0]
	for _, t := range p.targets {
		if fn(t) {
			kept = append(kept, t)
		} else {
			removed = append(removed, t)
		}
	}
	// Release references held in the tail
	for i := len(kept); i < len(p.targets); i++ {
		p.targets[i] = nil
	}
	p.targets = kept
	return removed
}

// Reset drops every target and restarts ids
func (p *Population) Reset() {
	clear(p.targets)
	p.targets = p.targets[:0]
	p.nextID = 0
}
