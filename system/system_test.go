package system

import (
	"testing"

	"github.com/lixenwraith/tile-lod/chunk"
	"github.com/lixenwraith/tile-lod/engine"
	"github.com/lixenwraith/tile-lod/gfx"
	"github.com/lixenwraith/tile-lod/status"
	"github.com/lixenwraith/tile-lod/tile"
	"github.com/lixenwraith/tile-lod/world"
)

type fixture struct {
	gfx   *gfx.Software
	baker *chunk.Baker
	grid  *world.Grid
	reg   *status.Registry
}

func newFixture(t *testing.T, w, h int) *fixture {
	t.Helper()
	s := gfx.NewSoftware(8, 8)
	p, err := tile.ProceduralPalette(s, 6, 32, 7)
	if err != nil {
		t.Fatalf("palette: %v", err)
	}
	b := chunk.NewBaker(s, p, 16, 32, 4)
	g, err := world.New(world.Config{
		Width: w, Height: h,
		RowLen: 16, TileVariants: 6,
		WorldSize: 256, InitialLOD: 4, Seed: 3,
	}, b)
	if err != nil {
		t.Fatalf("grid: %v", err)
	}
	return &fixture{gfx: s, baker: b, grid: g, reg: status.NewRegistry()}
}

// center returns the world position of the middle of chunk (x, y)
func center(x, y int) (float64, float64) {
	return float64(x)*256 + 128, float64(y)*256 + 128
}

func activeLODs(g *world.Grid) []int {
	out := make([]int, 0, g.Len())
	g.Each(func(c *chunk.Chunk) { out = append(out, c.ActiveLOD()) })
	return out
}

func TestLODSystem_RecomputeOnChunkChange(t *testing.T) {
	f := newFixture(t, 16, 16)
	lod := NewLODSystem(f.grid, world.ReferencePolicy, 120, f.reg)

	x, y := center(8, 8)
	frame := &engine.Frame{ViewerX: x, ViewerY: y}
	lod.Update(frame)
	if cc, ok := lod.Applied(); !ok || cc != (chunk.Coords{X: 8, Y: 8}) {
		t.Fatalf("applied = %v, %v", cc, ok)
	}

	// Moving inside the same chunk does not recompute
	frame.ViewerX += 50
	lod.Update(frame)
	if got := f.reg.Int(status.LODRecomputes); got != 1 {
		t.Errorf("recomputes = %d, want 1", got)
	}
}

func TestLODSystem_ScenarioStepEast(t *testing.T) {
	f := newFixture(t, 16, 16)
	lod := NewLODSystem(f.grid, world.ReferencePolicy, 120, f.reg)
	lod.Force(2048, 2048)

	c, _ := f.grid.At(6, 8)
	if c.DesiredLOD() != 0 {
		t.Fatalf("(6,8) desired = %d before move, want 0", c.DesiredLOD())
	}

	x, y := center(9, 8)
	lod.Update(&engine.Frame{ViewerX: x, ViewerY: y, Speed: 50})
	if c.DesiredLOD() != 1 {
		t.Errorf("(6,8) desired = %d after move, want 1", c.DesiredLOD())
	}
	if cc, _ := lod.Applied(); cc != (chunk.Coords{X: 9, Y: 8}) {
		t.Errorf("applied = %v, want (9,8)", cc)
	}
}

func TestLODSystem_SpeedGateDefers(t *testing.T) {
	f := newFixture(t, 16, 16)
	lod := NewLODSystem(f.grid, world.ReferencePolicy, 120, f.reg)
	lod.Force(2048, 2048)
	c, _ := f.grid.At(6, 8)

	x, y := center(9, 8)
	frame := &engine.Frame{ViewerX: x, ViewerY: y, Speed: 300}
	lod.Update(frame)
	lod.Update(frame)

	if c.DesiredLOD() != 0 {
		t.Errorf("desired changed while above speed gate: %d", c.DesiredLOD())
	}
	if !lod.Pending() {
		t.Error("expected pending recompute")
	}
	if got := f.reg.Int(status.LODDeferred); got != 1 {
		t.Errorf("deferred = %d, want 1 per pending change", got)
	}

	// Speed at the gate still blocks
	frame.Speed = 120
	lod.Update(frame)
	if c.DesiredLOD() != 0 {
		t.Error("speed equal to gate must not recompute")
	}

	frame.Speed = 10
	lod.Update(frame)
	if c.DesiredLOD() != 1 || lod.Pending() {
		t.Errorf("after slowing: desired %d pending %v, want 1 false", c.DesiredLOD(), lod.Pending())
	}
}

func TestRedraw_OneRebakePerTick(t *testing.T) {
	f := newFixture(t, 16, 16)
	lod := NewLODSystem(f.grid, world.ReferencePolicy, 120, f.reg)
	lod.Force(2048, 2048)
	r := NewRedrawSystem(f.grid, f.baker, 1, false, f.reg)

	before := activeLODs(f.grid)
	staleBefore := f.grid.Stale(f.grid.Bounds())
	if staleBefore == 0 {
		t.Fatal("expected stale chunks after policy application")
	}

	if n := r.Tick(f.grid.Bounds()); n != 1 {
		t.Fatalf("tick rebaked %d, want 1", n)
	}

	after := activeLODs(f.grid)
	changed := 0
	for i := range before {
		if before[i] != after[i] {
			changed++
			if c := f.grid.Index(i); c.NeedsRedraw() {
				t.Errorf("rebaked chunk %v still stale", c.Coords())
			}
		}
	}
	if changed != 1 {
		t.Errorf("%d chunks changed, want exactly 1", changed)
	}
	if got := f.grid.Stale(f.grid.Bounds()); got != staleBefore-1 {
		t.Errorf("stale = %d, want %d", got, staleBefore-1)
	}
	if f.reg.Int(status.LODBakes) != 1 || f.reg.Int(status.LODPending) != int64(staleBefore-1) {
		t.Errorf("metrics bakes=%d pending=%d", f.reg.Int(status.LODBakes), f.reg.Int(status.LODPending))
	}
}

func TestRedraw_BoundedCompletion(t *testing.T) {
	tests := []struct {
		name   string
		budget int
	}{
		{"budget 1", 1},
		{"budget 3", 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, 7, 7)
			lod := NewLODSystem(f.grid, world.ChebyshevPolicy, 120, f.reg)
			lod.Force(center(3, 3))
			r := NewRedrawSystem(f.grid, f.baker, tt.budget, false, f.reg)

			scope := f.grid.Bounds()
			stale := f.grid.Stale(scope)
			want := (stale + tt.budget - 1) / tt.budget

			ticks := 0
			for f.grid.Stale(scope) > 0 {
				if ticks > want {
					t.Fatalf("not converged after %d ticks", ticks)
				}
				r.Tick(scope)
				ticks++
			}
			if ticks != want {
				t.Errorf("converged in %d ticks, want %d for %d stale", ticks, want, stale)
			}
			if n := r.Tick(scope); n != 0 {
				t.Errorf("tick after convergence rebaked %d", n)
			}
		})
	}
}

func TestRedraw_ScopeLimitsWork(t *testing.T) {
	f := newFixture(t, 8, 8)
	lod := NewLODSystem(f.grid, world.ChebyshevPolicy, 120, f.reg)
	lod.Force(center(0, 0))
	r := NewRedrawSystem(f.grid, f.baker, 100, false, f.reg)

	scope := world.Rect{MinX: 0, MinY: 0, MaxX: 1, MaxY: 1}
	if n := r.Tick(scope); n != 4 {
		t.Errorf("rebaked %d, want 4 chunks in scope", n)
	}
	if got := f.grid.Stale(f.grid.Bounds()); got == 0 {
		t.Error("chunks outside scope should remain stale")
	}
	if n := r.Tick(world.EmptyRect); n != 0 {
		t.Errorf("empty scope rebaked %d", n)
	}
}

func TestRedraw_GridScanIgnoresVisible(t *testing.T) {
	f := newFixture(t, 4, 4)
	lod := NewLODSystem(f.grid, world.ChebyshevPolicy, 120, f.reg)
	lod.Force(center(0, 0))
	r := NewRedrawSystem(f.grid, f.baker, 100, true, f.reg)

	r.Update(&engine.Frame{Visible: world.EmptyRect})
	if got := f.grid.Stale(f.grid.Bounds()); got != 0 {
		t.Errorf("grid scan left %d stale", got)
	}
}

func TestRedraw_FailureRetriesSameChunk(t *testing.T) {
	f := newFixture(t, 4, 4)
	lod := NewLODSystem(f.grid, world.ChebyshevPolicy, 120, f.reg)
	lod.Force(center(0, 0))
	r := NewRedrawSystem(f.grid, f.baker, 1, false, f.reg)
	scope := f.grid.Bounds()

	f.gfx.Limit = f.gfx.Live()
	if n := r.Tick(scope); n != 0 {
		t.Fatalf("tick under allocation limit rebaked %d", n)
	}
	if f.reg.Int(status.LODBakeFailures) != 1 {
		t.Errorf("failures = %d, want 1", f.reg.Int(status.LODBakeFailures))
	}
	failed := f.grid.Index(r.Cursor())
	if !failed.NeedsRedraw() || failed.Detail() == nil {
		t.Error("failed chunk should stay stale with its previous image")
	}

	f.gfx.Limit = 0
	if n := r.Tick(scope); n != 1 {
		t.Fatalf("retry rebaked %d, want 1", n)
	}
	if failed.NeedsRedraw() {
		t.Error("retry should service the chunk that failed")
	}
}

func TestRedraw_RoundRobinAdvances(t *testing.T) {
	f := newFixture(t, 4, 1)
	lod := NewLODSystem(f.grid, world.ChebyshevPolicy, 120, f.reg)
	lod.Force(center(0, 0))
	r := NewRedrawSystem(f.grid, f.baker, 1, false, f.reg)

	// Chebyshev from (0,0): desired 0,0,1,2 vs active 4: all stale
	var order []int
	for range 4 {
		r.Tick(f.grid.Bounds())
		order = append(order, r.Cursor())
	}
	want := []int{1, 2, 3, 0}
	for i := range want {
		if order[i] != want[i] {
			t.Fatalf("cursor sequence %v, want %v", order, want)
		}
	}
}

// staleIndices returns the row-major indices of chunks awaiting a rebake
func staleIndices(g *world.Grid) []int {
	var out []int
	for i := range g.Len() {
		if g.Index(i).NeedsRedraw() {
			out = append(out, i)
		}
	}
	return out
}

// serviced returns indices stale in before but not in after
func serviced(before, after []int) []int {
	left := make(map[int]bool, len(after))
	for _, i := range after {
		left[i] = true
	}
	var out []int
	for _, i := range before {
		if !left[i] {
			out = append(out, i)
		}
	}
	return out
}

func equalInts(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestRedraw_BudgetServicesConsecutiveChunks(t *testing.T) {
	f := newFixture(t, 4, 2)
	lod := NewLODSystem(f.grid, world.ChebyshevPolicy, 120, f.reg)
	lod.Force(center(0, 0))
	r := NewRedrawSystem(f.grid, f.baker, 3, false, f.reg)
	scope := f.grid.Bounds()

	// Chebyshev from (0,0) on 4x2: desired 0,0,1,2 per row vs active 4: all stale
	if got := f.grid.Stale(scope); got != 8 {
		t.Fatalf("stale = %d, want 8", got)
	}

	ticks := []struct {
		want   []int
		cursor int
	}{
		{[]int{0, 1, 2}, 3},
		{[]int{3, 4, 5}, 6},
		{[]int{6, 7}, 0},
	}
	for i, tt := range ticks {
		before := staleIndices(f.grid)
		n := r.Tick(scope)
		got := serviced(before, staleIndices(f.grid))
		if n != len(tt.want) || !equalInts(got, tt.want) {
			t.Fatalf("tick %d rebaked %d %v, want %v", i, n, got, tt.want)
		}
		if r.Cursor() != tt.cursor {
			t.Errorf("tick %d cursor = %d, want %d", i, r.Cursor(), tt.cursor)
		}
	}
	if f.reg.Int(status.LODPending) != 0 {
		t.Errorf("pending = %d after all ticks", f.reg.Int(status.LODPending))
	}
}

func TestRedraw_FullBudgetClearsScopeInOneTick(t *testing.T) {
	f := newFixture(t, 4, 1)
	lod := NewLODSystem(f.grid, world.ChebyshevPolicy, 120, f.reg)
	lod.Force(center(0, 0))
	r := NewRedrawSystem(f.grid, f.baker, 4, false, f.reg)

	if n := r.Tick(f.grid.Bounds()); n != 4 {
		t.Errorf("rebaked %d, want 4", n)
	}
	if left := staleIndices(f.grid); len(left) != 0 {
		t.Errorf("stale after tick: %v", left)
	}
}

func TestRedraw_OrderFromNonZeroCursor(t *testing.T) {
	f := newFixture(t, 4, 1)
	lod := NewLODSystem(f.grid, world.ChebyshevPolicy, 120, f.reg)
	lod.Force(center(0, 0))
	r := NewRedrawSystem(f.grid, f.baker, 1, false, f.reg)

	// A narrow scope moves the cursor into the middle of the row
	var order []int
	before := staleIndices(f.grid)
	r.Tick(world.Rect{MinX: 2, MinY: 0, MaxX: 3, MaxY: 0})
	order = append(order, serviced(before, staleIndices(f.grid))...)
	if r.Cursor() != 3 {
		t.Fatalf("cursor = %d after scoped tick, want 3", r.Cursor())
	}

	for range 3 {
		before = staleIndices(f.grid)
		r.Tick(f.grid.Bounds())
		order = append(order, serviced(before, staleIndices(f.grid))...)
	}
	if want := []int{2, 3, 0, 1}; !equalInts(order, want) {
		t.Errorf("service order %v, want %v", order, want)
	}
}

func TestScopeStart(t *testing.T) {
	// 2x2 scope at (1,1) in a grid 4 wide: cells 5,6,9,10
	scope := world.Rect{MinX: 1, MinY: 1, MaxX: 2, MaxY: 2}

	tests := []struct {
		cursor int
		want   int
	}{
		{0, 0},  // before the scope
		{4, 0},  // left of first row
		{5, 0},  // first cell
		{6, 1},  // second cell
		{7, 2},  // right of first row
		{8, 2},  // left of second row
		{10, 3}, // last cell
		{11, 0}, // right of last row wraps
		{13, 0}, // below the scope wraps
	}

	for _, tt := range tests {
		if got := scopeStart(scope, 4, tt.cursor); got != tt.want {
			t.Errorf("scopeStart(cursor %d) = %d, want %d", tt.cursor, got, tt.want)
		}
	}
}
