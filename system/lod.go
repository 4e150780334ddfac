package system

import (
	"log"
	"sync/atomic"

	"github.com/lixenwraith/tile-lod/chunk"
	"github.com/lixenwraith/tile-lod/engine"
	"github.com/lixenwraith/tile-lod/parameter"
	"github.com/lixenwraith/tile-lod/status"
	"github.com/lixenwraith/tile-lod/world"
)

// LODSystem tracks the viewer's chunk and reassigns desired LODs when it changes
// A change seen while the viewer is at or above the speed gate stays pending
// until a frame where speed drops below it
type LODSystem struct {
	grid   *world.Grid
	policy world.Policy
	gate   float64

	applied    chunk.Coords
	hasApplied bool
	pending    bool

	statRecomputes *atomic.Int64
	statDeferred   *atomic.Int64
}

// NewLODSystem creates the system, nothing is applied until Force or the first Update
func NewLODSystem(grid *world.Grid, policy world.Policy, gate float64, reg *status.Registry) *LODSystem {
	return &LODSystem{
		grid:   grid,
		policy: policy,
		gate:   gate,

		statRecomputes: reg.Ints.Get(status.LODRecomputes),
		statDeferred:   reg.Ints.Get(status.LODDeferred),
	}
}

// Name returns the system name
func (s *LODSystem) Name() string { return "lod" }

// Priority returns the system's priority
func (s *LODSystem) Priority() int { return parameter.PriorityLOD }

// Phase returns the frame phase
func (s *LODSystem) Phase() engine.Phase { return engine.PhaseUpdate }

// Applied returns the chunk coordinate of the last applied recompute
func (s *LODSystem) Applied() (chunk.Coords, bool) { return s.applied, s.hasApplied }

// Pending reports a viewer chunk change held back by the speed gate
func (s *LODSystem) Pending() bool { return s.pending }

// Force applies the policy for a world position regardless of speed, used at setup
func (s *LODSystem) Force(wx, wy float64) {
	s.apply(s.grid.WorldToChunk(wx, wy))
}

// Update recomputes desired LODs when the viewer entered another chunk
func (s *LODSystem) Update(f *engine.Frame) {
	cc := s.grid.WorldToChunk(f.ViewerX, f.ViewerY)
	if s.hasApplied && cc == s.applied {
		s.pending = false
		return
	}

	if f.Speed >= s.gate {
		if !s.pending {
			s.statDeferred.Add(1)
			log.Printf("[lod] recompute for (%d,%d) deferred, speed %.1f >= %.1f", cc.X, cc.Y, f.Speed, s.gate)
		}
		s.pending = true
		return
	}

	s.apply(cc)
}

func (s *LODSystem) apply(cc chunk.Coords) {
	s.grid.ApplyPolicy(cc, s.policy)
	s.applied, s.hasApplied = cc, true
	s.pending = false
	s.statRecomputes.Add(1)
}
