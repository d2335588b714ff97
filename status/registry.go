// Package status is a registry of lock-free runtime counters
// Read by the ingest server's /status endpoint and the exit summary
package status

import (
	"fmt"
	"strings"
	"sync/atomic"
)

// Registry is the central metrics facade
// Components cache pointers during construction; tick code writes directly to atomics
type Registry struct {
	Bools   *MetricMap[atomic.Bool]
	Ints    *MetricMap[atomic.Int64]
	Floats  *MetricMap[AtomicFloat]
	Strings *MetricMap[AtomicString]
}

// NewRegistry creates an initialized Registry
func NewRegistry() *Registry {
	return &Registry{
		Bools:   NewMetricMap[atomic.Bool](),
		Ints:    NewMetricMap[atomic.Int64](),
		Floats:  NewMetricMap[AtomicFloat](),
		Strings: NewMetricMap[AtomicString](),
	}
}

// Report is a point-in-time copy of every metric, keyed by name
type Report struct {
	Bools   map[string]bool    `json:"bools"`
	Ints    map[string]int64   `json:"ints"`
	Floats  map[string]float64 `json:"floats"`
	Strings map[string]string  `json:"strings"`
}

// Snapshot reads every metric once
// Values are individually atomic, the report as a whole is not
func (r *Registry) Snapshot() Report {
	rep := Report{
		Bools:   make(map[string]bool),
		Ints:    make(map[string]int64),
		Floats:  make(map[string]float64),
		Strings: make(map[string]string),
	}
	r.Bools.Range(func(k string, v *atomic.Bool) { rep.Bools[k] = v.Load() })
	r.Ints.Range(func(k string, v *atomic.Int64) { rep.Ints[k] = v.Load() })
	r.Floats.Range(func(k string, v *AtomicFloat) { rep.Floats[k] = v.Get() })
	r.Strings.Range(func(k string, v *AtomicString) { rep.Strings[k] = v.Load() })
	return rep
}

// TotalCount returns total metrics across all types
func (r *Registry) TotalCount() int {
	return r.Bools.Count() + r.Ints.Count() + r.Floats.Count() + r.Strings.Count()
}

// Summary formats integer and boolean metrics as one sorted key=value line for logs
func (r *Registry) Summary() string {
	var parts []string
	r.Ints.Range(func(k string, v *atomic.Int64) {
		parts = append(parts, fmt.Sprintf("%s=%d", k, v.Load()))
	})
	r.Bools.Range(func(k string, v *atomic.Bool) {
		parts = append(parts, fmt.Sprintf("%s=%t", k, v.Load()))
	})
	return strings.Join(parts, " ")
}
