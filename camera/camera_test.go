package camera

import (
	"math"
	"testing"
)

const eps = 0.05

func near(a, b float64) bool {
	return math.Abs(a-b) < eps
}

func TestCamera_CenterMapsToViewportCenter(t *testing.T) {
	c := New(2048, 2048, 10, 7, 15)
	c.SetViewport(200, 100)

	sx, sy := c.WorldToScreen(2048, 2048)
	if !near(sx, 100) || !near(sy, 50) {
		t.Errorf("center maps to (%.2f, %.2f), want (100, 50)", sx, sy)
	}
}

func TestCamera_SpanAndOrientation(t *testing.T) {
	c := New(0, 0, 10, 7, 15)
	c.SetViewport(200, 100)

	w, h := c.WorldSpan()
	if w != 1024 || h != 512 {
		t.Fatalf("span = %vx%v, want 1024x512", w, h)
	}

	if got := c.PixelsPerUnit(); !near(got, 200.0/1024) {
		t.Errorf("pixels per unit = %v, want %v", got, 200.0/1024)
	}

	// Top-left of the view is (-512, -256) in world space
	sx, sy := c.WorldToScreen(-512, -256)
	if !near(sx, 0) || !near(sy, 0) {
		t.Errorf("top-left maps to (%.2f, %.2f), want (0, 0)", sx, sy)
	}

	// Larger world y is lower on screen
	_, yUp := c.WorldToScreen(0, -10)
	_, yDown := c.WorldToScreen(0, 10)
	if yDown <= yUp {
		t.Errorf("expected y to grow downward, got up=%.2f down=%.2f", yUp, yDown)
	}
}

func TestCamera_ScreenToWorldRoundTrip(t *testing.T) {
	c := New(1000, 3000, 9, 7, 15)
	c.SetViewport(320, 240)

	points := [][2]float64{{0, 0}, {320, 240}, {17, 200}, {160, 120}}
	for _, p := range points {
		wx, wy := c.ScreenToWorld(p[0], p[1])
		sx, sy := c.WorldToScreen(wx, wy)
		if !near(sx, p[0]) || !near(sy, p[1]) {
			t.Errorf("round trip (%v, %v) -> (%.2f, %.2f)", p[0], p[1], sx, sy)
		}
	}
}

func TestCamera_ZoomClamped(t *testing.T) {
	c := New(0, 0, 20, 7, 15)
	if c.ZoomPow() != 15 {
		t.Errorf("initial zoom = %d, want clamp to 15", c.ZoomPow())
	}
	c.ZoomOut()
	if c.ZoomPow() != 15 {
		t.Errorf("zoom out past max = %d", c.ZoomPow())
	}
	for i := 0; i < 20; i++ {
		c.ZoomIn()
	}
	if c.ZoomPow() != 7 {
		t.Errorf("zoom in past min = %d, want 7", c.ZoomPow())
	}
}

func TestCamera_ZeroViewport(t *testing.T) {
	c := New(0, 0, 10, 7, 15)
	c.SetViewport(0, 0)
	if w, h := c.Viewport(); w != 1 || h != 1 {
		t.Errorf("viewport = %dx%d, want 1x1", w, h)
	}
}
