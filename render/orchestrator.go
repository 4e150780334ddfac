package render

import (
	"github.com/lixenwraith/tile-lod/camera"
	"github.com/lixenwraith/tile-lod/engine"
	"github.com/lixenwraith/tile-lod/gfx"
	"github.com/lixenwraith/tile-lod/world"
)

type layerEntry struct {
	layer    Layer
	priority Priority
	index    int // registration order for stable sort
}

// Orchestrator coordinates the render pipeline
type Orchestrator struct {
	g       gfx.Graphics
	cam     *camera.Camera
	grid    *world.Grid
	surface *Surface
	clear   gfx.RGB

	layers   []layerEntry
	regCount int
}

// NewOrchestrator creates an orchestrator drawing grid through cam onto g's screen target
func NewOrchestrator(g gfx.Graphics, cam *camera.Camera, grid *world.Grid, clear gfx.RGB) *Orchestrator {
	return &Orchestrator{
		g:       g,
		cam:     cam,
		grid:    grid,
		surface: NewSurface(g, cam),
		clear:   clear,
		layers:  make([]layerEntry, 0, 4),
	}
}

// Register adds a layer at the specified priority. Maintains sorted order via insertion sort
func (o *Orchestrator) Register(l Layer, priority Priority) {
	entry := layerEntry{
		layer:    l,
		priority: priority,
		index:    o.regCount,
	}
	o.regCount++

	pos := len(o.layers)
	for i, e := range o.layers {
		if priority < e.priority || (priority == e.priority && entry.index < e.index) {
			pos = i
			break
		}
	}

	o.layers = append(o.layers, layerEntry{})
	copy(o.layers[pos+1:], o.layers[pos:])
	o.layers[pos] = entry
}

// Resize updates the screen viewport and camera
func (o *Orchestrator) Resize(w, h int) {
	o.g.SetViewport(w, h)
	o.cam.SetViewport(w, h)
}

// Visible returns the chunk range under the camera
func (o *Orchestrator) Visible() world.Rect {
	return VisibleRect(o.cam, o.grid)
}

// RenderFrame executes the render pipeline: clear, then all layers in priority order
func (o *Orchestrator) RenderFrame(f *engine.Frame) {
	ctx := NewContext(f, o.cam)

	o.g.Clear(o.clear)
	for _, e := range o.layers {
		if vt, ok := e.layer.(VisibilityToggle); ok && !vt.IsVisible() {
			continue
		}
		e.layer.Render(ctx, o.surface)
	}
}
