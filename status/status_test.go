package status

import (
	"bytes"
	"testing"
)

func TestRegistry_CachedPointers(t *testing.T) {
	r := NewRegistry()
	bakes := r.Ints.Get(LODBakes)
	bakes.Add(2)
	r.Ints.Get(LODBakes).Add(1)

	if got := r.Int(LODBakes); got != 3 {
		t.Errorf("bakes = %d, want 3", got)
	}
	if r.Int("missing") != 0 || r.Ints.Has("missing") {
		t.Error("reading a missing key must not register it")
	}
}

func TestRegistry_Dump(t *testing.T) {
	r := NewRegistry()
	r.Ints.Get(RenderVisible).Store(12)
	r.Ints.Get(LODBakes).Store(4)
	r.Floats.Get(FrameDrawMs).Set(1.5)

	var buf bytes.Buffer
	if err := r.Dump(&buf); err != nil {
		t.Fatalf("dump: %v", err)
	}
	want := "lod.bakes=4\nrender.visible=12\nframe.draw_ms=1.500\n"
	if buf.String() != want {
		t.Errorf("dump = %q, want %q", buf.String(), want)
	}
	if r.TotalCount() != 3 {
		t.Errorf("TotalCount = %d", r.TotalCount())
	}
}

func TestAtomicFloat_Smooth(t *testing.T) {
	var f AtomicFloat
	if got := f.Smooth(10, 0.5); got != 10 {
		t.Errorf("first sample = %v, want 10", got)
	}
	if got := f.Smooth(20, 0.5); got != 15 {
		t.Errorf("smoothed = %v, want 15", got)
	}
}
