package render

import "github.com/lixenwraith/tile-lod/gfx"

// GridLayer outlines chunk borders in the debug view
// Lines are one screen pixel wide at any zoom
type GridLayer struct {
	worldSize float64
	color     gfx.RGB
	enabled   bool
}

// NewGridLayer creates the overlay, line is blended over background at alpha
func NewGridLayer(worldSize float64, background, line gfx.RGB, alpha float64, enabled bool) *GridLayer {
	return &GridLayer{
		worldSize: worldSize,
		color:     background.Blend(line, alpha),
		enabled:   enabled,
	}
}

// IsVisible reports whether the overlay is enabled
func (l *GridLayer) IsVisible() bool { return l.enabled }

// Render draws the borders of the visible chunk range
func (l *GridLayer) Render(ctx Context, s *Surface) {
	v := ctx.Visible
	if !ctx.Debug || v.Empty() {
		return
	}

	width := 1 / ctx.Camera.PixelsPerUnit()
	x0, x1 := float64(v.MinX)*l.worldSize, float64(v.MaxX+1)*l.worldSize
	y0, y1 := float64(v.MinY)*l.worldSize, float64(v.MaxY+1)*l.worldSize

	for x := v.MinX; x <= v.MaxX+1; x++ {
		s.FillRect(gfx.Rect{X: float64(x) * l.worldSize, Y: y0, W: width, H: y1 - y0}, l.color)
	}
	for y := v.MinY; y <= v.MaxY+1; y++ {
		s.FillRect(gfx.Rect{X: x0, Y: float64(y) * l.worldSize, W: x1 - x0, H: width}, l.color)
	}
}
