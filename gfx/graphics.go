// Package gfx defines the graphics collaborator used by the chunk cache:
// offscreen targets, textured quads with crop, target redirection and viewport size
package gfx

import (
	"errors"
	"image"
)

// ErrAllocation reports that the backend could not allocate an image
var ErrAllocation = errors.New("gfx: image allocation failed")

// Image is an opaque handle to a backend-owned image
type Image interface {
	Size() (w, h int)
}

// Rect is a float rectangle in target pixel space
type Rect struct {
	X, Y, W, H float64
}

// MaxX returns the right edge
func (r Rect) MaxX() float64 { return r.X + r.W }

// MaxY returns the bottom edge
func (r Rect) MaxY() float64 { return r.Y + r.H }

// DrawOp places a source image (or a crop of it) into a destination rectangle
type DrawOp struct {
	Dst Rect
	// Src is the crop in source pixels, zero rectangle draws the full image
	Src image.Rectangle
}

// Graphics is implemented by rendering backends
// All calls happen on the thread owning the graphics context
type Graphics interface {
	// NewTarget allocates an offscreen render target
	NewTarget(w, h int) (Image, error)
	// Upload creates an image from CPU pixels
	Upload(src image.Image) (Image, error)
	// Release frees the image, nil is ignored
	Release(img Image)

	// Target returns the image receiving draw calls
	Target() Image
	// SetTarget redirects draw calls, nil selects the default (screen) target
	SetTarget(img Image)
	// Viewport returns the active render size in pixels
	Viewport() (w, h int)
	// SetViewport sets the active render size in pixels
	SetViewport(w, h int)

	Clear(c RGB)
	DrawImage(src Image, op DrawOp)
	FillRect(r Rect, c RGB)
}

// Bind redirects rendering to target at its pixel size
// The returned func restores the previous target and viewport and must run on every exit path
func Bind(g Graphics, target Image) (restore func()) {
	prev := g.Target()
	pw, ph := g.Viewport()
	w, h := target.Size()
	g.SetTarget(target)
	g.SetViewport(w, h)
	return func() {
		g.SetTarget(prev)
		g.SetViewport(pw, ph)
	}
}
