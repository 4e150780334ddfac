package gfx

import (
	"fmt"
	"image"
	"image/draw"
	"math"
)

// SoftImage is a CPU image owned by the Software backend
type SoftImage struct {
	px       *image.RGBA
	released bool
}

// Size returns pixel dimensions
func (i *SoftImage) Size() (int, int) {
	b := i.px.Bounds()
	return b.Dx(), b.Dy()
}

// RGBA exposes the pixel buffer for presentation and inspection
func (i *SoftImage) RGBA() *image.RGBA {
	return i.px
}

// At returns the pixel color at (x, y)
func (i *SoftImage) At(x, y int) RGB {
	c := i.px.RGBAAt(x, y)
	return RGB{c.R, c.G, c.B}
}

// Released reports whether the image was returned to the backend
func (i *SoftImage) Released() bool {
	return i.released
}

// Software is a CPU rasterizer with nearest-neighbor scaling
// Limit caps live images to emulate exhausted GPU memory (0 = unlimited)
type Software struct {
	screen *SoftImage
	target *SoftImage
	vw, vh int

	Limit       int
	live        int
	allocations int
}

// NewSoftware creates a backend with a screen of the given size
func NewSoftware(w, h int) *Software {
	s := &Software{}
	s.Resize(w, h)
	return s
}

// Resize reallocates the screen and resets the viewport to it
// The screen is not counted against Limit
func (s *Software) Resize(w, h int) {
	w, h = max(w, 1), max(h, 1)
	screen := &SoftImage{px: image.NewRGBA(image.Rect(0, 0, w, h))}
	if s.target == nil || s.target == s.screen {
		s.target = screen
	}
	s.screen = screen
	s.vw, s.vh = w, h
}

// Screen returns the default target
func (s *Software) Screen() *SoftImage {
	return s.screen
}

// Live returns the number of allocated, unreleased images
func (s *Software) Live() int {
	return s.live
}

// Allocations returns the total number of successful allocations
func (s *Software) Allocations() int {
	return s.allocations
}

func (s *Software) alloc(w, h int) (*SoftImage, error) {
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("%w: invalid size %dx%d", ErrAllocation, w, h)
	}
	if s.Limit > 0 && s.live >= s.Limit {
		return nil, fmt.Errorf("%w: %d live images at limit", ErrAllocation, s.live)
	}
	s.live++
	s.allocations++
	return &SoftImage{px: image.NewRGBA(image.Rect(0, 0, w, h))}, nil
}

// NewTarget allocates a cleared offscreen image
func (s *Software) NewTarget(w, h int) (Image, error) {
	img, err := s.alloc(w, h)
	if err != nil {
		return nil, err
	}
	return img, nil
}

// Upload copies src into a new image
func (s *Software) Upload(src image.Image) (Image, error) {
	b := src.Bounds()
	img, err := s.alloc(b.Dx(), b.Dy())
	if err != nil {
		return nil, err
	}
	draw.Draw(img.px, img.px.Bounds(), src, b.Min, draw.Src)
	return img, nil
}

// Release returns img to the backend; double release is ignored
func (s *Software) Release(img Image) {
	si, ok := img.(*SoftImage)
	if !ok || si == nil || si.released || si == s.screen {
		return
	}
	si.released = true
	s.live--
}

// Target returns the current render target
func (s *Software) Target() Image {
	return s.target
}

// SetTarget redirects rendering, nil selects the screen
func (s *Software) SetTarget(img Image) {
	si, ok := img.(*SoftImage)
	if !ok || si == nil {
		s.target = s.screen
		return
	}
	s.target = si
}

// Viewport returns the active render size
func (s *Software) Viewport() (int, int) {
	return s.vw, s.vh
}

// SetViewport sets the active render size, drawing is clipped to it
func (s *Software) SetViewport(w, h int) {
	s.vw, s.vh = w, h
}

// clip returns the integer pixel span covered by r within target and viewport
func (s *Software) clip(r Rect) (x0, y0, x1, y1 int) {
	tw, th := s.target.Size()
	tw, th = min(tw, s.vw), min(th, s.vh)
	x0 = max(int(math.Round(r.X)), 0)
	y0 = max(int(math.Round(r.Y)), 0)
	x1 = min(int(math.Round(r.MaxX())), tw)
	y1 = min(int(math.Round(r.MaxY())), th)
	return
}

// Clear fills the whole target
func (s *Software) Clear(c RGB) {
	draw.Draw(s.target.px, s.target.px.Bounds(), image.NewUniform(c.RGBA()), image.Point{}, draw.Src)
}

// FillRect fills r with an opaque color
func (s *Software) FillRect(r Rect, c RGB) {
	x0, y0, x1, y1 := s.clip(r)
	if x0 >= x1 || y0 >= y1 {
		return
	}
	draw.Draw(s.target.px, image.Rect(x0, y0, x1, y1), image.NewUniform(c.RGBA()), image.Point{}, draw.Src)
}

// DrawImage scales the source crop into op.Dst with nearest-neighbor sampling
func (s *Software) DrawImage(src Image, op DrawOp) {
	si, ok := src.(*SoftImage)
	if !ok || si == nil || op.Dst.W <= 0 || op.Dst.H <= 0 {
		return
	}
	crop := op.Src
	if crop.Empty() {
		crop = si.px.Bounds()
	}
	crop = crop.Intersect(si.px.Bounds())
	if crop.Empty() {
		return
	}

	x0, y0, x1, y1 := s.clip(op.Dst)
	sw, sh := float64(crop.Dx()), float64(crop.Dy())
	dst := s.target.px
	for y := y0; y < y1; y++ {
		v := (float64(y) + 0.5 - op.Dst.Y) / op.Dst.H
		sy := crop.Min.Y + min(int(v*sh), crop.Dy()-1)
		for x := x0; x < x1; x++ {
			u := (float64(x) + 0.5 - op.Dst.X) / op.Dst.W
			sx := crop.Min.X + min(int(u*sw), crop.Dx()-1)
			dst.SetRGBA(x, y, si.px.RGBAAt(sx, sy))
		}
	}
}
