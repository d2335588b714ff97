package sensor

import (
	"fmt"
	"strings"
	"time"

	"github.com/lixenwraith/dart-pop/constants"
)

// Rate is a requested sensor update cadence
type Rate int

const (
	RateNormal Rate = iota
	RateSlow
	RateFast
)

// ParseRate accepts "slow", "normal" or "fast"
func ParseRate(s string) (Rate, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "normal":
		return RateNormal, nil
	case "slow":
		return RateSlow, nil
	case "fast":
		return RateFast, nil
	default:
		return RateNormal, fmt.Errorf("unknown sensor rate %q", s)
	}
}

// Interval returns the update interval a device should use
func (r Rate) Interval() time.Duration {
	switch r {
	case RateSlow:
		return constants.SensorIntervalSlow
	case RateFast:
		return constants.SensorIntervalFast
	default:
		return constants.SensorIntervalNormal
	}
}

func (r Rate) String() string {
	switch r {
	case RateSlow:
		return "slow"
	case RateFast:
		return "fast"
	default:
		return "normal"
	}
}
