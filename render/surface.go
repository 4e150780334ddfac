package render

import (
	"github.com/lixenwraith/tile-lod/camera"
	"github.com/lixenwraith/tile-lod/gfx"
)

// Surface draws world-space rectangles through the camera transform onto the current target
type Surface struct {
	g   gfx.Graphics
	cam *camera.Camera
}

// NewSurface creates a surface for g viewed through cam
func NewSurface(g gfx.Graphics, cam *camera.Camera) *Surface {
	return &Surface{g: g, cam: cam}
}

// ToScreen projects a world rectangle to screen pixels
func (s *Surface) ToScreen(r gfx.Rect) gfx.Rect {
	x0, y0 := s.cam.WorldToScreen(r.X, r.Y)
	x1, y1 := s.cam.WorldToScreen(r.MaxX(), r.MaxY())
	return gfx.Rect{X: x0, Y: y0, W: x1 - x0, H: y1 - y0}
}

// DrawImage stretches src over a world rectangle
func (s *Surface) DrawImage(src gfx.Image, dst gfx.Rect) {
	s.g.DrawImage(src, gfx.DrawOp{Dst: s.ToScreen(dst)})
}

// FillRect fills a world rectangle
func (s *Surface) FillRect(dst gfx.Rect, c gfx.RGB) {
	s.g.FillRect(s.ToScreen(dst), c)
}
