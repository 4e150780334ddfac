package tile

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	_ "image/png"
	"io"
	"os"

	"github.com/lixenwraith/tile-lod/gfx"
)

// Palette is the fixed set of tile images addressed by Tile
type Palette struct {
	images []gfx.Image
	size   int
}

// NewPalette wraps uploaded tile images of edge length size
func NewPalette(images []gfx.Image, size int) *Palette {
	return &Palette{images: images, size: size}
}

// Len returns the number of variants
func (p *Palette) Len() int {
	return len(p.images)
}

// Size returns the tile edge length in pixels
func (p *Palette) Size() int {
	return p.size
}

// Image returns the image for t
// Tiles are generated internally, an unknown index is a programming error
func (p *Palette) Image(t Tile) gfx.Image {
	if int(t) >= len(p.images) {
		panic(fmt.Sprintf("tile: index %d outside palette of %d", t, len(p.images)))
	}
	return p.images[t]
}

// Release frees all tile images
func (p *Palette) Release(g gfx.Graphics) {
	for _, img := range p.images {
		g.Release(img)
	}
	p.images = nil
}

// Base colors for procedural variants: grass, dirt, sand, stone, gravel, water, snow, log
var baseColors = []color.RGBA{
	{86, 148, 62, 255},
	{121, 85, 58, 255},
	{219, 201, 140, 255},
	{128, 128, 128, 255},
	{150, 139, 128, 255},
	{52, 96, 168, 255},
	{236, 240, 244, 255},
	{102, 77, 44, 255},
}

// ProceduralPalette builds variants tiles with a deterministic texture
func ProceduralPalette(g gfx.Graphics, variants, size int, seed uint64) (*Palette, error) {
	images := make([]gfx.Image, 0, variants)
	for v := 0; v < variants; v++ {
		img, err := g.Upload(proceduralTile(v, size, seed))
		if err != nil {
			for _, done := range images {
				g.Release(done)
			}
			return nil, fmt.Errorf("upload tile %d: %w", v, err)
		}
		images = append(images, img)
	}
	return NewPalette(images, size), nil
}

func proceduralTile(v, size int, seed uint64) *image.RGBA {
	base := baseColors[v%len(baseColors)]
	// Variants past the base table get a hue shift so they stay distinguishable
	shift := v / len(baseColors) * 37
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			n := int(hash(seed, v, x, y)%25) - 12
			r, g, b := int(base.R)+shift+n, int(base.G)+n, int(base.B)-shift+n
			if x == 0 || y == 0 {
				r, g, b = r*7/8, g*7/8, b*7/8
			}
			img.SetRGBA(x, y, color.RGBA{R: clampByte(r), G: clampByte(g), B: clampByte(b), A: 255})
		}
	}
	return img
}

// hash is a small integer mixer for per-pixel noise
func hash(seed uint64, v, x, y int) uint64 {
	h := seed ^ 0x9e3779b97f4a7c15
	for _, k := range [3]int{v, x, y} {
		h ^= uint64(k) + 0x9e3779b97f4a7c15 + (h << 6) + (h >> 2)
		h *= 0xbf58476d1ce4e5b9
	}
	return h ^ (h >> 31)
}

func clampByte(v int) uint8 {
	return uint8(min(max(v, 0), 255))
}

// LoadAtlas reads a PNG atlas from path, see DecodeAtlas
func LoadAtlas(g gfx.Graphics, path string, size int) (*Palette, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open atlas: %w", err)
	}
	defer f.Close()
	return DecodeAtlas(g, f, size)
}

// DecodeAtlas slices an atlas of size x size tiles laid out left to right
func DecodeAtlas(g gfx.Graphics, r io.Reader, size int) (*Palette, error) {
	src, _, err := image.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("decode atlas: %w", err)
	}
	b := src.Bounds()
	if size <= 0 || b.Dy() < size || b.Dx() < size {
		return nil, fmt.Errorf("atlas %dx%d holds no %dpx tiles", b.Dx(), b.Dy(), size)
	}

	count := b.Dx() / size
	images := make([]gfx.Image, 0, count)
	for i := 0; i < count; i++ {
		cell := image.NewRGBA(image.Rect(0, 0, size, size))
		draw.Draw(cell, cell.Bounds(), src, image.Pt(b.Min.X+i*size, b.Min.Y), draw.Src)
		img, err := g.Upload(cell)
		if err != nil {
			for _, done := range images {
				g.Release(done)
			}
			return nil, fmt.Errorf("upload atlas tile %d: %w", i, err)
		}
		images = append(images, img)
	}
	return NewPalette(images, size), nil
}
