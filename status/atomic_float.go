package status

import (
	"math"
	"sync/atomic"
)

// AtomicFloat stores a float64 as bits, zero value reads 0.0
type AtomicFloat struct {
	bits atomic.Uint64
}

// Set stores val
func (f *AtomicFloat) Set(val float64) {
	f.bits.Store(math.Float64bits(val))
}

// Get loads the value
func (f *AtomicFloat) Get() float64 {
	return math.Float64frombits(f.bits.Load())
}

// Smooth moves the stored value toward val by factor (exponential moving average)
// The first sample is stored as is
func (f *AtomicFloat) Smooth(val, factor float64) float64 {
	for {
		old := f.bits.Load()
		next := val
		if old != 0 {
			cur := math.Float64frombits(old)
			next = cur + (val-cur)*factor
		}
		if f.bits.CompareAndSwap(old, math.Float64bits(next)) {
			return next
		}
	}
}
