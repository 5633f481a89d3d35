package status

import (
	"math"
	"sync/atomic"
)

// Registry is the central metrics facade
// Subsystems cache pointers during construction; tick loops write directly
// to the atomics, so there is no per-frame map lookup or locking
type Registry struct {
	Ints   *MetricMap[atomic.Int64]
	Floats *MetricMap[AtomicFloat]
}

// NewRegistry creates an initialized Registry
func NewRegistry() *Registry {
	return &Registry{
		Ints:   NewMetricMap[atomic.Int64](),
		Floats: NewMetricMap[AtomicFloat](),
	}
}

// TotalCount returns total metrics across all types
func (r *Registry) TotalCount() int {
	return r.Ints.Count() + r.Floats.Count()
}

// AtomicFloat is a float64 stored in an atomic.Uint64 bit pattern
type AtomicFloat struct {
	bits atomic.Uint64
}

// Load returns the current value
func (f *AtomicFloat) Load() float64 {
	return math.Float64frombits(f.bits.Load())
}

// Store sets the value
func (f *AtomicFloat) Store(v float64) {
	f.bits.Store(math.Float64bits(v))
}
