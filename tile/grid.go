// Package tile holds per-chunk tile layouts and the shared tile palette
package tile

import (
	"fmt"
	"math/rand/v2"
)

// Tile is an index into the shared palette
type Tile uint16

// Grid is a square, row-major tile layout, immutable after construction
type Grid struct {
	rowLen int
	tiles  []Tile
}

// NewGrid copies tiles into a grid of rowLen x rowLen
func NewGrid(rowLen int, tiles []Tile) (Grid, error) {
	if rowLen <= 0 || len(tiles) != rowLen*rowLen {
		return Grid{}, fmt.Errorf("tile grid: %d tiles do not fill %dx%d", len(tiles), rowLen, rowLen)
	}
	return Grid{rowLen: rowLen, tiles: append([]Tile(nil), tiles...)}, nil
}

// Generate fills a grid with uniformly random variants in [0, variants)
func Generate(rng *rand.Rand, rowLen, variants int) Grid {
	tiles := make([]Tile, rowLen*rowLen)
	for i := range tiles {
		tiles[i] = Tile(rng.IntN(variants))
	}
	return Grid{rowLen: rowLen, tiles: tiles}
}

// RowLen returns tiles per row
func (g Grid) RowLen() int {
	return g.rowLen
}

// Len returns the tile count
func (g Grid) Len() int {
	return len(g.tiles)
}

// At returns the tile at row-major index i
func (g Grid) At(i int) Tile {
	return g.tiles[i]
}

// XY returns the column and row of index i
func (g Grid) XY(i int) (int, int) {
	return i % g.rowLen, i / g.rowLen
}
