package network

import (
	"time"

	"github.com/lixenwraith/dart-pop/constants"
	"github.com/lixenwraith/dart-pop/sensor"
)

// Config holds ingest server configuration
type Config struct {
	// Enabled starts the listener; the keyboard source works either way
	Enabled bool

	// Address to bind
	Address string

	// Connection limits
	MaxPeers int

	// Timing
	HelloTimeout time.Duration
	WriteTimeout time.Duration

	// ReadLimit caps one websocket message in bytes
	ReadLimit int64

	// Rate is the update cadence requested from devices in the welcome message
	Rate sensor.Rate
}

// DefaultConfig returns local-play defaults
func DefaultConfig() *Config {
	return &Config{
		Enabled:      false,
		Address:      "127.0.0.1:7777",
		MaxPeers:     4,
		HelloTimeout: constants.IngestHelloTimeout,
		WriteTimeout: constants.IngestWriteTimeout,
		ReadLimit:    constants.IngestReadLimit,
		Rate:         sensor.RateNormal,
	}
}
