package render

import (
	"math"

	"github.com/lixenwraith/tile-lod/camera"
	"github.com/lixenwraith/tile-lod/gfx"
	"github.com/lixenwraith/tile-lod/world"
)

// VisibleRect returns the chunk range under the viewport, clamped to the grid
// Empty when the view lies entirely outside the grid
func VisibleRect(cam *camera.Camera, g *world.Grid) world.Rect {
	w, h := cam.Viewport()
	corners := [4][2]float64{{0, 0}, {float64(w), 0}, {0, float64(h)}, {float64(w), float64(h)}}

	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, p := range corners {
		wx, wy := cam.ScreenToWorld(p[0], p[1])
		minX, maxX = math.Min(minX, wx), math.Max(maxX, wx)
		minY, maxY = math.Min(minY, wy), math.Max(maxY, wy)
	}

	lo := g.WorldToChunk(minX, minY)
	hi := g.WorldToChunk(maxX, maxY)
	return g.Clamp(world.Rect{MinX: lo.X, MinY: lo.Y, MaxX: hi.X, MaxY: hi.Y})
}

// Reject reports whether world bounds project entirely off-screen
// Screen coverage is half-open: a far corner at or left/above 0, or a near corner at or
// beyond the viewport extent, leaves no pixel on screen
func Reject(cam *camera.Camera, bounds gfx.Rect) bool {
	w, h := cam.Viewport()
	nx, ny := cam.WorldToScreen(bounds.X, bounds.Y)
	fx, fy := cam.WorldToScreen(bounds.MaxX(), bounds.MaxY())
	return fx <= 0 || fy <= 0 || nx >= float64(w) || ny >= float64(h)
}
