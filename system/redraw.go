package system

import (
	"errors"
	"log"
	"sync/atomic"

	"github.com/lixenwraith/tile-lod/chunk"
	"github.com/lixenwraith/tile-lod/engine"
	"github.com/lixenwraith/tile-lod/gfx"
	"github.com/lixenwraith/tile-lod/parameter"
	"github.com/lixenwraith/tile-lod/status"
	"github.com/lixenwraith/tile-lod/world"
)

// RedrawSystem rebakes stale chunks under a per-frame budget
// Chunks are scanned row-major starting at a round-robin cursor, so every stale
// chunk in scope is serviced within (stale count / budget) ticks
type RedrawSystem struct {
	grid     *world.Grid
	baker    *chunk.Baker
	budget   int
	scanGrid bool

	cursor int

	statBakes    *atomic.Int64
	statFailures *atomic.Int64
	statPending  *atomic.Int64
}

// NewRedrawSystem creates the scheduler
// scanGrid widens the scope from the visible rect to the whole grid
func NewRedrawSystem(grid *world.Grid, b *chunk.Baker, budget int, scanGrid bool, reg *status.Registry) *RedrawSystem {
	return &RedrawSystem{
		grid:     grid,
		baker:    b,
		budget:   max(budget, 1),
		scanGrid: scanGrid,

		statBakes:    reg.Ints.Get(status.LODBakes),
		statFailures: reg.Ints.Get(status.LODBakeFailures),
		statPending:  reg.Ints.Get(status.LODPending),
	}
}

// Name returns the system name
func (s *RedrawSystem) Name() string { return "redraw" }

// Priority returns the system's priority
func (s *RedrawSystem) Priority() int { return parameter.PriorityRedraw }

// Phase returns the frame phase
func (s *RedrawSystem) Phase() engine.Phase { return engine.PhaseDraw }

// Cursor returns the row-major index the next scan starts from
func (s *RedrawSystem) Cursor() int { return s.cursor }

// Update ticks over the visible rect, or the whole grid in grid scan mode
func (s *RedrawSystem) Update(f *engine.Frame) {
	scope := f.Visible
	if s.scanGrid {
		scope = s.grid.Bounds()
	}
	s.Tick(scope)
}

// Tick rebakes at most budget stale chunks inside scope and returns how many were rebaked
// Scope cells are visited in grid row-major order from the cursor, wrapping once
// A failed rebake ends the tick and leaves the cursor on that chunk for the next tick
func (s *RedrawSystem) Tick(scope world.Rect) int {
	scope = s.grid.Clamp(scope)
	count := scope.Count()
	if count == 0 {
		s.statPending.Store(0)
		return 0
	}

	n, w := s.grid.Len(), s.grid.Width()
	sw := scope.MaxX - scope.MinX + 1
	first := scopeStart(scope, w, s.cursor)

	done := 0
	for i := 0; i < count && done < s.budget; i++ {
		pos := (first + i) % count
		x, y := scope.MinX+pos%sw, scope.MinY+pos/sw
		c, _ := s.grid.At(x, y)
		if !c.NeedsRedraw() {
			continue
		}
		idx := y*w + x

		from, to := c.ActiveLOD(), c.DesiredLOD()
		if err := c.Redraw(s.baker); err != nil {
			s.statFailures.Add(1)
			if errors.Is(err, gfx.ErrAllocation) {
				log.Printf("[lod] rebake (%d,%d) lod %d->%d: allocation failed, retry next frame", x, y, from, to)
			} else {
				log.Printf("[lod] rebake (%d,%d) lod %d->%d: %v", x, y, from, to, err)
			}
			s.cursor = idx
			break
		}

		s.statBakes.Add(1)
		done++
		s.cursor = (idx + 1) % n
	}

	s.statPending.Store(int64(s.grid.Stale(scope)))
	return done
}

// scopeStart returns the position, in scope's row-major order, of the first cell
// whose grid index is at or after cursor, wrapping to 0 past the last cell
func scopeStart(scope world.Rect, width, cursor int) int {
	sw := scope.MaxX - scope.MinX + 1
	cx, cy := cursor%width, cursor/width
	switch {
	case cy < scope.MinY || cy > scope.MaxY:
		return 0
	case cx < scope.MinX:
		return (cy - scope.MinY) * sw
	case cx > scope.MaxX:
		return (cy - scope.MinY + 1) * sw % scope.Count()
	}
	return (cy-scope.MinY)*sw + cx - scope.MinX
}
