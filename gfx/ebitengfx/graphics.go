// Package ebitengfx implements gfx.Graphics on ebiten GPU images
package ebitengfx

import (
	"fmt"
	"image"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/lixenwraith/tile-lod/gfx"
)

// Image wraps an ebiten image handle
type Image struct {
	img *ebiten.Image
}

// Size returns pixel dimensions
func (i *Image) Size() (int, int) {
	b := i.img.Bounds()
	return b.Dx(), b.Dy()
}

// Ebiten returns the underlying handle
func (i *Image) Ebiten() *ebiten.Image {
	return i.img
}

// Graphics draws into ebiten images
// The screen target is supplied each frame by BeginFrame since ebiten owns it
type Graphics struct {
	screen *Image
	target *Image
	vw, vh int

	// Limit caps live offscreen images (0 = unlimited)
	// ebiten panics instead of failing on exhaustion, so the cap is enforced here
	Limit int
	live  int
}

// New creates an ebiten-backed Graphics
func New() *Graphics {
	return &Graphics{}
}

// BeginFrame installs the frame's screen image as default target
func (g *Graphics) BeginFrame(screen *ebiten.Image) {
	s := &Image{img: screen}
	g.screen = s
	g.target = s
	b := screen.Bounds()
	g.vw, g.vh = b.Dx(), b.Dy()
}

// Live returns the number of unreleased images
func (g *Graphics) Live() int {
	return g.live
}

func (g *Graphics) reserve(w, h int) error {
	if w <= 0 || h <= 0 {
		return fmt.Errorf("%w: invalid size %dx%d", gfx.ErrAllocation, w, h)
	}
	if g.Limit > 0 && g.live >= g.Limit {
		return fmt.Errorf("%w: %d live images at limit", gfx.ErrAllocation, g.live)
	}
	g.live++
	return nil
}

// NewTarget allocates an offscreen image
func (g *Graphics) NewTarget(w, h int) (gfx.Image, error) {
	if err := g.reserve(w, h); err != nil {
		return nil, err
	}
	return &Image{img: ebiten.NewImage(w, h)}, nil
}

// Upload creates a GPU image from CPU pixels
func (g *Graphics) Upload(src image.Image) (gfx.Image, error) {
	b := src.Bounds()
	if err := g.reserve(b.Dx(), b.Dy()); err != nil {
		return nil, err
	}
	return &Image{img: ebiten.NewImageFromImage(src)}, nil
}

// Release deallocates the GPU resource
func (g *Graphics) Release(img gfx.Image) {
	ei, ok := img.(*Image)
	if !ok || ei == nil || ei.img == nil || ei == g.screen {
		return
	}
	ei.img.Deallocate()
	ei.img = nil
	g.live--
}

// Target returns the current render target
func (g *Graphics) Target() gfx.Image {
	return g.target
}

// SetTarget redirects rendering, nil selects the screen
func (g *Graphics) SetTarget(img gfx.Image) {
	ei, ok := img.(*Image)
	if !ok || ei == nil {
		g.target = g.screen
		return
	}
	g.target = ei
}

// Viewport returns the active render size
func (g *Graphics) Viewport() (int, int) {
	return g.vw, g.vh
}

// SetViewport records the active render size
// ebiten sizes passes by target bounds, drawing is clipped to the viewport via a sub-image
func (g *Graphics) SetViewport(w, h int) {
	g.vw, g.vh = w, h
}

func (g *Graphics) dst() *ebiten.Image {
	return g.target.img.SubImage(image.Rect(0, 0, g.vw, g.vh)).(*ebiten.Image)
}

// Clear fills the target
func (g *Graphics) Clear(c gfx.RGB) {
	g.target.img.Fill(c.RGBA())
}

// FillRect fills r with an opaque color
func (g *Graphics) FillRect(r gfx.Rect, c gfx.RGB) {
	vector.DrawFilledRect(g.dst(), float32(r.X), float32(r.Y), float32(r.W), float32(r.H), c.RGBA(), false)
}

// DrawImage scales the source crop into op.Dst
func (g *Graphics) DrawImage(src gfx.Image, op gfx.DrawOp) {
	ei, ok := src.(*Image)
	if !ok || ei == nil || ei.img == nil {
		return
	}
	img := ei.img
	if !op.Src.Empty() {
		img = img.SubImage(op.Src).(*ebiten.Image)
	}
	b := img.Bounds()
	if b.Dx() == 0 || b.Dy() == 0 {
		return
	}

	opts := &ebiten.DrawImageOptions{}
	opts.GeoM.Scale(op.Dst.W/float64(b.Dx()), op.Dst.H/float64(b.Dy()))
	opts.GeoM.Translate(op.Dst.X, op.Dst.Y)
	g.dst().DrawImage(img, opts)
}
