// Package camera maps between world space and screen pixels through a
// translation view matrix and an orthographic projection
package camera

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Camera is centered on a world position
// The viewport spans 2^zoomPow world units horizontally, vertical span follows the aspect ratio
type Camera struct {
	x, y float64

	zoomPow        int
	minPow, maxPow int

	width, height int
}

// New creates a camera at (x, y) with zoom clamped to [minPow, maxPow]
func New(x, y float64, zoomPow, minPow, maxPow int) *Camera {
	c := &Camera{
		x:      x,
		y:      y,
		minPow: minPow,
		maxPow: maxPow,
		width:  1,
		height: 1,
	}
	c.SetZoomPow(zoomPow)
	return c
}

// SetViewport sets the screen size in pixels, zero sizes are raised to 1
func (c *Camera) SetViewport(w, h int) {
	c.width, c.height = max(w, 1), max(h, 1)
}

// Viewport returns the screen size in pixels
func (c *Camera) Viewport() (int, int) {
	return c.width, c.height
}

// SetPosition centers the camera on a world position
func (c *Camera) SetPosition(x, y float64) {
	c.x, c.y = x, y
}

// Position returns the world position at the viewport center
func (c *Camera) Position() (float64, float64) {
	return c.x, c.y
}

// ZoomPow returns the current zoom power
func (c *Camera) ZoomPow() int {
	return c.zoomPow
}

// SetZoomPow sets zoom power, clamped to the configured range
func (c *Camera) SetZoomPow(pow int) {
	c.zoomPow = min(max(pow, c.minPow), c.maxPow)
}

// ZoomIn halves the visible world span
func (c *Camera) ZoomIn() {
	c.SetZoomPow(c.zoomPow - 1)
}

// ZoomOut doubles the visible world span
func (c *Camera) ZoomOut() {
	c.SetZoomPow(c.zoomPow + 1)
}

// WorldSpan returns the visible world width and height
func (c *Camera) WorldSpan() (float64, float64) {
	w := math.Ldexp(1, c.zoomPow)
	return w, w * float64(c.height) / float64(c.width)
}

// Projection returns the orthographic projection with y growing downward
func (c *Camera) Projection() mgl32.Mat4 {
	w, h := c.WorldSpan()
	hw, hh := float32(w/2), float32(h/2)
	// bottom > top flips y so larger world y maps lower on screen
	return mgl32.Ortho(-hw, hw, hh, -hh, -1, 1)
}

// View returns the world-to-camera translation
func (c *Camera) View() mgl32.Mat4 {
	return mgl32.Translate3D(float32(-c.x), float32(-c.y), 0)
}

// Matrix returns projection * view
func (c *Camera) Matrix() mgl32.Mat4 {
	return c.Projection().Mul4(c.View())
}

// WorldToScreen converts a world position to screen pixels
func (c *Camera) WorldToScreen(wx, wy float64) (float64, float64) {
	clip := c.Matrix().Mul4x1(mgl32.Vec4{float32(wx), float32(wy), 0, 1})
	sx := (float64(clip.X()) + 1) / 2 * float64(c.width)
	sy := (1 - float64(clip.Y())) / 2 * float64(c.height)
	return sx, sy
}

// ScreenToWorld converts screen pixels to a world position
func (c *Camera) ScreenToWorld(sx, sy float64) (float64, float64) {
	ndcX := float32(sx/float64(c.width)*2 - 1)
	ndcY := float32(1 - sy/float64(c.height)*2)
	w := c.Matrix().Inv().Mul4x1(mgl32.Vec4{ndcX, ndcY, 0, 1})
	return float64(w.X()), float64(w.Y())
}

// PixelsPerUnit returns the screen scale factor
func (c *Camera) PixelsPerUnit() float64 {
	w, _ := c.WorldSpan()
	return float64(c.width) / w
}
