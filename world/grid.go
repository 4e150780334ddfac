// Package world owns the dense chunk grid, world/chunk coordinate math and
// desired-LOD assignment
package world

import (
	"fmt"
	"log"
	"math"
	"math/rand/v2"

	"github.com/lixenwraith/tile-lod/chunk"
	"github.com/lixenwraith/tile-lod/tile"
)

// Config describes a fixed world
type Config struct {
	Width, Height int     // grid size in chunks
	RowLen        int     // tiles per chunk row
	TileVariants  int     // palette size used by generation
	WorldSize     float64 // chunk footprint in world units
	InitialLOD    int
	Seed          uint64
}

// Grid exclusively owns all chunks in a dense row-major slice
// Chunks hold no reference back to the grid
type Grid struct {
	width, height int
	worldSize     float64
	chunks        []*chunk.Chunk
	baker         *chunk.Baker
}

// New generates tiles for every chunk and bakes fallback and initial detail images
// Any bake failure aborts setup and releases what was baked
func New(cfg Config, b *chunk.Baker) (*Grid, error) {
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return nil, fmt.Errorf("world: invalid grid %dx%d", cfg.Width, cfg.Height)
	}
	if cfg.WorldSize <= 0 {
		return nil, fmt.Errorf("world: invalid chunk world size %v", cfg.WorldSize)
	}

	g := &Grid{
		width:     cfg.Width,
		height:    cfg.Height,
		worldSize: cfg.WorldSize,
		chunks:    make([]*chunk.Chunk, 0, cfg.Width*cfg.Height),
		baker:     b,
	}

	rng := rand.New(rand.NewPCG(cfg.Seed, cfg.Seed^0x5bd1e995))
	for y := 0; y < cfg.Height; y++ {
		for x := 0; x < cfg.Width; x++ {
			tiles := tile.Generate(rng, cfg.RowLen, cfg.TileVariants)
			c := chunk.New(chunk.Coords{X: x, Y: y}, tiles, b.MaxLOD())
			if err := c.Init(b, cfg.InitialLOD); err != nil {
				c.Release(b)
				g.Release()
				return nil, fmt.Errorf("world: bake chunk (%d,%d): %w", x, y, err)
			}
			g.chunks = append(g.chunks, c)
		}
	}

	log.Printf("[world] baked %d chunks (%dx%d), fallback %dpx", len(g.chunks), g.width, g.height, b.Resolution(b.MaxLOD()))
	return g, nil
}

// Width returns the grid width in chunks
func (g *Grid) Width() int { return g.width }

// Height returns the grid height in chunks
func (g *Grid) Height() int { return g.height }

// Len returns the chunk count
func (g *Grid) Len() int { return len(g.chunks) }

// WorldSize returns the chunk footprint in world units
func (g *Grid) WorldSize() float64 { return g.worldSize }

// Bounds returns the full coordinate range
func (g *Grid) Bounds() Rect {
	return Rect{MinX: 0, MinY: 0, MaxX: g.width - 1, MaxY: g.height - 1}
}

// At returns the chunk at (x, y), false outside the grid
func (g *Grid) At(x, y int) (*chunk.Chunk, bool) {
	if x < 0 || x >= g.width || y < 0 || y >= g.height {
		return nil, false
	}
	return g.chunks[y*g.width+x], true
}

// Index returns the chunk at row-major index i
func (g *Grid) Index(i int) *chunk.Chunk {
	return g.chunks[i]
}

// Each calls fn for every chunk in row-major order
func (g *Grid) Each(fn func(c *chunk.Chunk)) {
	for _, c := range g.chunks {
		fn(c)
	}
}

// WorldToChunk maps a world position to chunk coordinates, unclamped
func (g *Grid) WorldToChunk(wx, wy float64) chunk.Coords {
	return chunk.Coords{
		X: int(math.Floor(wx / g.worldSize)),
		Y: int(math.Floor(wy / g.worldSize)),
	}
}

// ChunkToWorld returns the world position of a chunk's top-left corner
func (g *Grid) ChunkToWorld(c chunk.Coords) (float64, float64) {
	return float64(c.X) * g.worldSize, float64(c.Y) * g.worldSize
}

// Clamp clips r to grid bounds
func (g *Grid) Clamp(r Rect) Rect {
	r.MinX = max(r.MinX, 0)
	r.MinY = max(r.MinY, 0)
	r.MaxX = min(r.MaxX, g.width-1)
	r.MaxY = min(r.MaxY, g.height-1)
	if r.Empty() {
		return EmptyRect
	}
	return r
}

// ApplyPolicy sets every chunk's desired LOD from its offset to viewer
func (g *Grid) ApplyPolicy(viewer chunk.Coords, p Policy) {
	for _, c := range g.chunks {
		cc := c.Coords()
		c.SetDesiredLOD(p(cc.X-viewer.X, cc.Y-viewer.Y))
	}
}

// Stale counts chunks in r with a pending LOD change, visiting only cells of r
func (g *Grid) Stale(r Rect) int {
	if len(g.chunks) == 0 {
		return 0
	}
	r = g.Clamp(r)
	n := 0
	for y := r.MinY; y <= r.MaxY; y++ {
		for x := r.MinX; x <= r.MaxX; x++ {
			if g.chunks[y*g.width+x].NeedsRedraw() {
				n++
			}
		}
	}
	return n
}

// Release frees every chunk image, the grid is unusable afterwards
func (g *Grid) Release() {
	for _, c := range g.chunks {
		c.Release(g.baker)
	}
	g.chunks = nil
}
