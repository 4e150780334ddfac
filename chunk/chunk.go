package chunk

import (
	"github.com/lixenwraith/tile-lod/gfx"
	"github.com/lixenwraith/tile-lod/tile"
)

// Coords is a chunk's grid position and unique key
type Coords struct {
	X, Y int
}

// Surface receives world-space draw calls
type Surface interface {
	DrawImage(src gfx.Image, dst gfx.Rect)
	FillRect(dst gfx.Rect, c gfx.RGB)
}

// Layout carries the render parameters shared by all chunks
type Layout struct {
	WorldSize  float64 // chunk footprint in world units
	FarLOD     int     // active LOD above this draws the fallback
	DebugColor gfx.RGB // LOD 0 color in debug view
}

// RenderPath reports which image a chunk drew
type RenderPath uint8

const (
	PathNone RenderPath = iota
	PathDetail
	PathFallback
	PathDebug
)

// Chunk owns a tile layout and its cached composites
// detail always has resolution BaseSize >> activeLOD, both are swapped together
type Chunk struct {
	coords Coords
	tiles  tile.Grid
	maxLOD int

	activeLOD  int
	desiredLOD int

	detail   gfx.Image
	fallback gfx.Image
}

// New creates an unbaked chunk, Init bakes its images
func New(coords Coords, tiles tile.Grid, maxLOD int) *Chunk {
	return &Chunk{
		coords:     coords,
		tiles:      tiles,
		maxLOD:     maxLOD,
		activeLOD:  maxLOD,
		desiredLOD: maxLOD,
	}
}

// Init bakes the fallback and an initial detail image at initialLOD
func (c *Chunk) Init(b *Baker, initialLOD int) error {
	if err := c.BakeFallback(b); err != nil {
		return err
	}
	lod := c.clamp(initialLOD)
	img, err := b.Bake(c.tiles, lod)
	if err != nil {
		return err
	}
	c.detail = img
	c.activeLOD, c.desiredLOD = lod, lod
	return nil
}

func (c *Chunk) clamp(level int) int {
	return min(max(level, 0), c.maxLOD)
}

// Coords returns the grid position
func (c *Chunk) Coords() Coords { return c.coords }

// Tiles returns the immutable tile layout
func (c *Chunk) Tiles() tile.Grid { return c.tiles }

// ActiveLOD returns the level of the cached detail image
func (c *Chunk) ActiveLOD() int { return c.activeLOD }

// DesiredLOD returns the level the chunk should be baked at
func (c *Chunk) DesiredLOD() int { return c.desiredLOD }

// Detail returns the current detail image
func (c *Chunk) Detail() gfx.Image { return c.detail }

// Fallback returns the permanent coarse image
func (c *Chunk) Fallback() gfx.Image { return c.fallback }

// SetDesiredLOD clamps and stores level without baking
func (c *Chunk) SetDesiredLOD(level int) {
	c.desiredLOD = c.clamp(level)
}

// NeedsRedraw reports a pending LOD change
func (c *Chunk) NeedsRedraw() bool {
	return c.activeLOD != c.desiredLOD
}

// Redraw bakes the detail image at the desired LOD and swaps it in
// No-op when up to date; on error the chunk keeps its previous image and LOD
func (c *Chunk) Redraw(b *Baker) error {
	if !c.NeedsRedraw() && c.detail != nil {
		return nil
	}
	lod := c.desiredLOD
	img, err := b.Bake(c.tiles, lod)
	if err != nil {
		return err
	}
	old := c.detail
	c.detail, c.activeLOD = img, lod
	b.Release(old)
	return nil
}

// BakeFallback bakes the coarsest composite once, later calls are no-ops
func (c *Chunk) BakeFallback(b *Baker) error {
	if c.fallback != nil {
		return nil
	}
	img, err := b.Bake(c.tiles, b.MaxLOD())
	if err != nil {
		return err
	}
	c.fallback = img
	return nil
}

// Bounds returns the world-space footprint
func (c *Chunk) Bounds(worldSize float64) gfx.Rect {
	return gfx.Rect{
		X: float64(c.coords.X) * worldSize,
		Y: float64(c.coords.Y) * worldSize,
		W: worldSize,
		H: worldSize,
	}
}

// Render draws exactly one quad covering the chunk footprint
func (c *Chunk) Render(s Surface, l Layout, debug bool) RenderPath {
	bounds := c.Bounds(l.WorldSize)
	switch {
	case debug:
		// Higher LOD is dimmer
		s.FillRect(bounds, l.DebugColor.Scale(1/float64(1+c.activeLOD)))
		return PathDebug
	case c.activeLOD > l.FarLOD && c.fallback != nil:
		s.DrawImage(c.fallback, bounds)
		return PathFallback
	case c.detail != nil:
		s.DrawImage(c.detail, bounds)
		return PathDetail
	case c.fallback != nil:
		s.DrawImage(c.fallback, bounds)
		return PathFallback
	}
	return PathNone
}

// Release frees both images
func (c *Chunk) Release(b *Baker) {
	b.Release(c.detail)
	b.Release(c.fallback)
	c.detail, c.fallback = nil, nil
}
