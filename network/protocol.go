// Package network accepts remote tilt streams over websocket and feeds them into a sensor cell
package network

import "encoding/json"

// ProtocolVersion must match the client's hello
const ProtocolVersion = 1

// Message types
const (
	MsgHello   = "hello"   // client → server, first message
	MsgTilt    = "tilt"    // client → server, one reading
	MsgWelcome = "welcome" // server → client, after a valid hello
	MsgError   = "error"   // server → client, before close
)

// Envelope wraps every message; P is decoded once T is known
type Envelope struct {
	T string          `json:"t"`
	P json.RawMessage `json:"p"`
}

// Hello opens a session
type Hello struct {
	V    int    `json:"v"`
	Name string `json:"name,omitempty"`
}

// Tilt is one accelerometer reading in device units
type Tilt struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z,omitempty"`
}

// Welcome confirms the session and requests an update cadence
type Welcome struct {
	Session    string `json:"session"`
	IntervalMs int64  `json:"interval_ms"`
	Rate       string `json:"rate"`
}

// Error carries a rejection reason
type Error struct {
	Reason string `json:"reason"`
}
