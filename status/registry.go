package status

import (
	"fmt"
	"io"
	"sync/atomic"
)

// Metric keys written by the LOD pipeline
const (
	LODBakes        = "lod.bakes"
	LODBakeFailures = "lod.bake_failures"
	LODPending      = "lod.pending"
	LODRecomputes   = "lod.recomputes"
	LODDeferred     = "lod.deferred"

	RenderVisible  = "render.visible"
	RenderCulled   = "render.culled"
	RenderFallback = "render.fallback"
	RenderDebug    = "render.debug"

	FrameCount    = "frame.count"
	FrameUpdateMs = "frame.update_ms"
	FrameDrawMs   = "frame.draw_ms"
)

// Registry is the central metrics facade
// Systems cache pointers at construction; frame code writes atomics directly
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

// Int reads an integer metric, zero when absent
func (r *Registry) Int(key string) int64 {
	if !r.Ints.Has(key) {
		return 0
	}
	return r.Ints.Get(key).Load()
}

// Float reads a float metric, zero when absent
func (r *Registry) Float(key string) float64 {
	if !r.Floats.Has(key) {
		return 0
	}
	return r.Floats.Get(key).Get()
}

// TotalCount returns total metrics across all types
func (r *Registry) TotalCount() int {
	return r.Ints.Count() + r.Floats.Count()
}

// Dump writes every metric as "key=value" lines in key order
func (r *Registry) Dump(w io.Writer) error {
	var err error
	r.Ints.Range(func(key string, v *atomic.Int64) {
		if err == nil {
			_, err = fmt.Fprintf(w, "%s=%d\n", key, v.Load())
		}
	})
	r.Floats.Range(func(key string, v *AtomicFloat) {
		if err == nil {
			_, err = fmt.Fprintf(w, "%s=%.3f\n", key, v.Get())
		}
	})
	return err
}
