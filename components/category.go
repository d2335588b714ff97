package components

import (
	"fmt"

	"github.com/lixenwraith/dart-pop/core"
)

// Tier identifies a target category, higher tiers are rarer, faster and worth more
type Tier int

const (
	TierRed Tier = iota
	TierBlue
	TierGreen
	TierPurple
	TierGold
	TierCount
)

// Category is the fixed archetype of a target
type Category struct {
	Tier  Tier
	Name  string
	Color core.RGB
	Speed float64 // Rise speed multiplier, also the upper bound for drift
	Value int     // Points awarded on pop
}

// categories is indexed by Tier; one record per tier keeps color/speed/value aligned
var categories = [TierCount]Category{
	TierRed:    {Tier: TierRed, Name: "red", Color: core.RGB{R: 230, G: 60, B: 60}, Speed: 1.0, Value: 10},
	TierBlue:   {Tier: TierBlue, Name: "blue", Color: core.RGB{R: 80, G: 140, B: 255}, Speed: 1.25, Value: 20},
	TierGreen:  {Tier: TierGreen, Name: "green", Color: core.RGB{R: 70, G: 210, B: 90}, Speed: 1.5, Value: 35},
	TierPurple: {Tier: TierPurple, Name: "purple", Color: core.RGB{R: 180, G: 90, B: 230}, Speed: 1.75, Value: 60},
	TierGold:   {Tier: TierGold, Name: "gold", Color: core.RGB{R: 255, G: 210, B: 0}, Speed: 2.0, Value: 100},
}

// Categories returns the category table in tier order
func Categories() []Category {
	out := make([]Category, len(categories))
	copy(out, categories[:])
	return out
}

// CategoryFor returns the record for index i
// Out-of-range indices are an invariant violation: panic in debug builds, clamp otherwise
func CategoryFor(i int) Category {
	if i < 0 || i >= int(TierCount) {
		if strictInvariants {
			panic(fmt.Sprintf("components: category index %d out of range [0,%d)", i, TierCount))
		}
		i = int(ClampTier(i))
	}
	return categories[i]
}

// ClampTier maps any index onto the nearest valid tier
func ClampTier(i int) Tier {
	if i < 0 {
		return TierRed
	}
	if i >= int(TierCount) {
		return TierCount - 1
	}
	return Tier(i)
}

func (t Tier) String() string {
	if t < 0 || t >= TierCount {
		return fmt.Sprintf("tier(%d)", int(t))
	}
	return categories[t].Name
}
