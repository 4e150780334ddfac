package gfx

import (
	"errors"
	"image"
	"testing"
)

func solid(t *testing.T, s *Software, w, h int, c RGB) Image {
	t.Helper()
	src := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			src.SetRGBA(x, y, c.RGBA())
		}
	}
	img, err := s.Upload(src)
	if err != nil {
		t.Fatalf("upload: %v", err)
	}
	return img
}

func TestSoftware_LimitAndRelease(t *testing.T) {
	s := NewSoftware(8, 8)
	s.Limit = 2

	a, err := s.NewTarget(4, 4)
	if err != nil {
		t.Fatalf("first alloc: %v", err)
	}
	if _, err := s.NewTarget(4, 4); err != nil {
		t.Fatalf("second alloc: %v", err)
	}
	if _, err := s.NewTarget(4, 4); !errors.Is(err, ErrAllocation) {
		t.Fatalf("expected ErrAllocation at limit, got %v", err)
	}

	s.Release(a)
	s.Release(a) // double release ignored
	if s.Live() != 1 {
		t.Errorf("expected 1 live image, got %d", s.Live())
	}
	if _, err := s.NewTarget(4, 4); err != nil {
		t.Errorf("alloc after release: %v", err)
	}
	if s.Allocations() != 3 {
		t.Errorf("expected 3 allocations, got %d", s.Allocations())
	}
}

func TestSoftware_InvalidSize(t *testing.T) {
	s := NewSoftware(8, 8)
	if _, err := s.NewTarget(0, 4); !errors.Is(err, ErrAllocation) {
		t.Errorf("expected ErrAllocation for zero width, got %v", err)
	}
}

func TestSoftware_DrawImageScales(t *testing.T) {
	s := NewSoftware(8, 8)
	red := RGB{255, 0, 0}
	src := solid(t, s, 4, 4, red)

	s.Clear(RGBBlack)
	s.DrawImage(src, DrawOp{Dst: Rect{X: 2, Y: 2, W: 2, H: 2}})

	scr := s.Screen()
	tests := []struct {
		x, y int
		want RGB
	}{
		{2, 2, red},
		{3, 3, red},
		{1, 2, RGBBlack},
		{4, 3, RGBBlack},
		{2, 4, RGBBlack},
	}
	for _, tt := range tests {
		if got := scr.At(tt.x, tt.y); got != tt.want {
			t.Errorf("pixel (%d,%d) = %v, want %v", tt.x, tt.y, got, tt.want)
		}
	}
}

func TestSoftware_DrawImageCrop(t *testing.T) {
	s := NewSoftware(4, 4)
	src := image.NewRGBA(image.Rect(0, 0, 2, 1))
	src.SetRGBA(0, 0, RGB{10, 0, 0}.RGBA())
	src.SetRGBA(1, 0, RGB{0, 20, 0}.RGBA())
	img, err := s.Upload(src)
	if err != nil {
		t.Fatalf("upload: %v", err)
	}

	s.DrawImage(img, DrawOp{Dst: Rect{W: 4, H: 4}, Src: image.Rect(1, 0, 2, 1)})
	if got := s.Screen().At(0, 0); got != (RGB{0, 20, 0}) {
		t.Errorf("expected cropped texel, got %v", got)
	}
}

func TestSoftware_ViewportClips(t *testing.T) {
	s := NewSoftware(8, 8)
	s.SetViewport(4, 4)
	s.FillRect(Rect{W: 8, H: 8}, RGBWhite)

	if got := s.Screen().At(3, 3); got != RGBWhite {
		t.Errorf("inside viewport = %v, want white", got)
	}
	if got := s.Screen().At(5, 5); got != RGBBlack {
		t.Errorf("outside viewport = %v, want untouched", got)
	}
}

func TestBind_RestoresTargetAndViewport(t *testing.T) {
	s := NewSoftware(64, 48)
	off, err := s.NewTarget(16, 16)
	if err != nil {
		t.Fatalf("alloc: %v", err)
	}

	func() {
		restore := Bind(s, off)
		defer restore()
		if s.Target() != off {
			t.Error("expected offscreen target while bound")
		}
		if w, h := s.Viewport(); w != 16 || h != 16 {
			t.Errorf("viewport while bound = %dx%d, want 16x16", w, h)
		}
		s.FillRect(Rect{W: 16, H: 16}, RGBWhite)
	}()

	if s.Target() != Image(s.Screen()) {
		t.Error("expected screen target after restore")
	}
	if w, h := s.Viewport(); w != 64 || h != 48 {
		t.Errorf("viewport after restore = %dx%d, want 64x48", w, h)
	}
	if got := off.(*SoftImage).At(15, 15); got != RGBWhite {
		t.Errorf("offscreen pixel = %v, want white", got)
	}
	if got := s.Screen().At(0, 0); got != RGBBlack {
		t.Errorf("screen pixel = %v, want untouched", got)
	}
}

func TestBind_RestoresOnPanic(t *testing.T) {
	s := NewSoftware(32, 32)
	off, _ := s.NewTarget(8, 8)

	func() {
		defer func() { _ = recover() }()
		restore := Bind(s, off)
		defer restore()
		panic("bake failed")
	}()

	if w, h := s.Viewport(); w != 32 || h != 32 {
		t.Errorf("viewport after panic = %dx%d, want 32x32", w, h)
	}
	if s.Target() != Image(s.Screen()) {
		t.Error("expected screen target after panic")
	}
}

func TestRGB_Blend(t *testing.T) {
	dst, src := RGB{0, 100, 200}, RGB{200, 100, 0}

	tests := []struct {
		alpha float64
		want  RGB
	}{
		{-1, dst},
		{0, dst},
		{0.25, RGB{50, 100, 150}},
		{0.5, RGB{100, 100, 100}},
		{1, src},
		{2, src},
	}

	for _, tt := range tests {
		if got := dst.Blend(src, tt.alpha); got != tt.want {
			t.Errorf("Blend(%v) = %v, want %v", tt.alpha, got, tt.want)
		}
	}
}

func TestRGB_Scale(t *testing.T) {
	c := RGB{200, 100, 50}
	if got := c.Scale(0.5); got != (RGB{100, 50, 25}) {
		t.Errorf("Scale(0.5) = %v", got)
	}
	if got := c.Scale(2); got != c {
		t.Errorf("Scale(2) should clamp, got %v", got)
	}
	if got := c.Scale(-1); got != RGBBlack {
		t.Errorf("Scale(-1) should clamp, got %v", got)
	}
}
