package render

import (
	"sync/atomic"

	"github.com/lixenwraith/tile-lod/chunk"
	"github.com/lixenwraith/tile-lod/status"
	"github.com/lixenwraith/tile-lod/world"
)

// ChunkLayer draws every non-rejected chunk in the visible rect
type ChunkLayer struct {
	grid   *world.Grid
	layout chunk.Layout

	statVisible  *atomic.Int64
	statCulled   *atomic.Int64
	statFallback *atomic.Int64
	statDebug    *atomic.Int64
}

// NewChunkLayer creates the chunk layer
func NewChunkLayer(grid *world.Grid, layout chunk.Layout, reg *status.Registry) *ChunkLayer {
	return &ChunkLayer{
		grid:   grid,
		layout: layout,

		statVisible:  reg.Ints.Get(status.RenderVisible),
		statCulled:   reg.Ints.Get(status.RenderCulled),
		statFallback: reg.Ints.Get(status.RenderFallback),
		statDebug:    reg.Ints.Get(status.RenderDebug),
	}
}

// Render draws chunks and stores per-frame counts
func (l *ChunkLayer) Render(ctx Context, s *Surface) {
	var visible, culled, fallback, debug int64

	r := ctx.Visible
	for y := r.MinY; y <= r.MaxY; y++ {
		for x := r.MinX; x <= r.MaxX; x++ {
			c, ok := l.grid.At(x, y)
			if !ok {
				continue
			}
			if Reject(ctx.Camera, c.Bounds(l.layout.WorldSize)) {
				culled++
				continue
			}
			switch c.Render(s, l.layout, ctx.Debug) {
			case chunk.PathFallback:
				fallback++
			case chunk.PathDebug:
				debug++
			}
			visible++
		}
	}

	l.statVisible.Store(visible)
	l.statCulled.Store(culled)
	l.statFallback.Store(fallback)
	l.statDebug.Store(debug)
}
