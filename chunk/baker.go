// Package chunk implements the per-chunk composite cache: tiles, LOD state,
// the detail and fallback images, and the baker producing them
package chunk

import (
	"fmt"

	"github.com/lixenwraith/tile-lod/gfx"
	"github.com/lixenwraith/tile-lod/tile"
)

// Baker composites a chunk's tiles into one image at a given LOD
// Pure function of (tiles, lod), the returned image is owned by the caller
type Baker struct {
	g        gfx.Graphics
	palette  *tile.Palette
	rowLen   int
	tileSize int
	maxLOD   int
}

// NewBaker creates a baker for chunks of rowLen x rowLen tiles of tileSize pixels
func NewBaker(g gfx.Graphics, palette *tile.Palette, rowLen, tileSize, maxLOD int) *Baker {
	return &Baker{
		g:        g,
		palette:  palette,
		rowLen:   rowLen,
		tileSize: tileSize,
		maxLOD:   maxLOD,
	}
}

// MaxLOD returns the coarsest supported level
func (b *Baker) MaxLOD() int {
	return b.maxLOD
}

// BaseSize returns the LOD 0 composite size in pixels
func (b *Baker) BaseSize() int {
	return b.rowLen * b.tileSize
}

// Resolution returns the composite edge length at lod
func (b *Baker) Resolution(lod int) int {
	return b.BaseSize() >> lod
}

// Bake renders tiles at lod into a newly allocated target
// Allocation failure is returned, an invalid lod or tile index panics
func (b *Baker) Bake(tiles tile.Grid, lod int) (gfx.Image, error) {
	if lod < 0 || lod > b.maxLOD {
		panic(fmt.Sprintf("chunk: bake lod %d outside [0, %d]", lod, b.maxLOD))
	}
	if tiles.RowLen() != b.rowLen {
		panic(fmt.Sprintf("chunk: tile row %d, baker expects %d", tiles.RowLen(), b.rowLen))
	}

	size := b.Resolution(lod)
	img, err := b.g.NewTarget(size, size)
	if err != nil {
		return nil, fmt.Errorf("bake lod %d (%dpx): %w", lod, size, err)
	}

	restore := gfx.Bind(b.g, img)
	defer restore()

	// Integer division matches the shrink-to-fit mosaic: positions snap to whole pixels
	scale := 1 << lod
	step := float64(b.tileSize) / float64(scale)
	for i := 0; i < tiles.Len(); i++ {
		src := b.palette.Image(tiles.At(i))
		x := ((i % b.rowLen) * b.tileSize) / scale
		y := ((i / b.rowLen) * b.tileSize) / scale
		b.g.DrawImage(src, gfx.DrawOp{
			Dst: gfx.Rect{X: float64(x), Y: float64(y), W: step, H: step},
		})
	}
	return img, nil
}

// Release frees an image produced by Bake, nil is ignored
func (b *Baker) Release(img gfx.Image) {
	if img != nil {
		b.g.Release(img)
	}
}
