package field

import (
	"math"
	"testing"
)

func testTransform(t *testing.T, canvasW, canvasH int) *Transform {
	t.Helper()
	tr, err := NewCamera().Transform(canvasW, canvasH)
	if err != nil {
		t.Fatalf("transform: %v", err)
	}
	return tr
}

func TestNextPowerOfTwo(t *testing.T) {
	tests := []struct {
		n, want int
	}{
		{1, 1},
		{2, 2},
		{3, 4},
		{17, 32},
		{64, 64},
		{65, 128},
		{600, 1024},
		{1280, 2048},
	}
	for _, tt := range tests {
		if got := NextPowerOfTwo(tt.n); got != tt.want {
			t.Errorf("NextPowerOfTwo(%d): expected %d, got %d", tt.n, tt.want, got)
		}
	}
}

func TestNewGrid_PowerOfTwoAllocation(t *testing.T) {
	g, err := NewGrid(100, 60)
	if err != nil {
		t.Fatalf("new grid: %v", err)
	}
	tw, th := g.TextureSize()
	if tw != 128 || th != 64 {
		t.Errorf("expected 128x64 texture, got %dx%d", tw, th)
	}
	cw, ch := g.CanvasSize()
	if cw != 100 || ch != 60 {
		t.Errorf("expected 100x60 canvas, got %dx%d", cw, ch)
	}
}

func TestNewGrid_BadCanvas(t *testing.T) {
	if _, err := NewGrid(0, 10); err != ErrCanvasBounds {
		t.Errorf("expected ErrCanvasBounds, got %v", err)
	}
	if _, err := NewGrid(10, -1); err != ErrCanvasBounds {
		t.Errorf("expected ErrCanvasBounds, got %v", err)
	}
}

func TestGrid_AddThenRemoveCancels(t *testing.T) {
	g, err := NewGrid(32, 32)
	if err != nil {
		t.Fatalf("new grid: %v", err)
	}
	tr := testTransform(t, 32, 32)

	pos := Vec2{0.1, -0.2}
	g.Apply(AddDiff(1, pos), tr)
	g.Apply(RemoveDiff(1, pos), tr)

	for ty := 0; ty < 32; ty++ {
		for tx := 0; tx < 32; tx++ {
			if v := g.At(tx, ty); math.Abs(float64(v)) > 1e-5 {
				t.Fatalf("texel (%d,%d) not cancelled: %g", tx, ty, v)
			}
		}
	}
}

func TestGrid_MoveEqualsRemovePlusAdd(t *testing.T) {
	tr := testTransform(t, 24, 24)
	from := Vec2{-0.5, 0.3}
	to := Vec2{0.4, -0.1}

	fused, err := NewGrid(24, 24)
	if err != nil {
		t.Fatalf("new grid: %v", err)
	}
	fused.Apply(AddDiff(1, from), tr)
	fused.Apply(MoveDiff(1, from, to), tr)

	split, err := NewGrid(24, 24)
	if err != nil {
		t.Fatalf("new grid: %v", err)
	}
	split.Apply(AddDiff(1, from), tr)
	split.Apply(RemoveDiff(1, from), tr)
	split.Apply(AddDiff(1, to), tr)

	for ty := 0; ty < 24; ty++ {
		for tx := 0; tx < 24; tx++ {
			a, b := fused.At(tx, ty), split.At(tx, ty)
			if math.Abs(float64(a-b)) > 1e-4 {
				t.Fatalf("texel (%d,%d): fused %g, split %g", tx, ty, a, b)
			}
		}
	}
}

func TestGrid_RebuildMatchesIncremental(t *testing.T) {
	tr := testTransform(t, 16, 16)
	tracker := NewTracker()

	incremental, err := NewGrid(16, 16)
	if err != nil {
		t.Fatalf("new grid: %v", err)
	}

	a := tracker.Add(1, Vec2{0.2, 0.2})
	b := tracker.Add(-1, Vec2{-0.3, 0.1})
	tracker.Add(0.5, Vec2{0, -0.4})
	incremental.ApplyAll(tracker.Drain(), tr)

	if err := tracker.Move(a, Vec2{0.5, 0.5}); err != nil {
		t.Fatalf("move: %v", err)
	}
	if err := tracker.Remove(b); err != nil {
		t.Fatalf("remove: %v", err)
	}
	incremental.ApplyAll(tracker.Drain(), tr)

	rebuilt, err := NewGrid(16, 16)
	if err != nil {
		t.Fatalf("new grid: %v", err)
	}
	rebuilt.ApplyAll(tracker.RebuildDiffs(), tr)

	for ty := 0; ty < 16; ty++ {
		for tx := 0; tx < 16; tx++ {
			inc, reb := incremental.At(tx, ty), rebuilt.At(tx, ty)
			if math.Abs(float64(inc-reb)) > 1e-4 {
				t.Fatalf("texel (%d,%d): incremental %g, rebuilt %g", tx, ty, inc, reb)
			}
		}
	}
}

func TestGrid_ResizeZeroes(t *testing.T) {
	g, err := NewGrid(20, 20)
	if err != nil {
		t.Fatalf("new grid: %v", err)
	}
	tr := testTransform(t, 20, 20)
	g.Apply(AddDiff(1, Vec2{0, 0}), tr)

	if err := g.Resize(40, 30); err != nil {
		t.Fatalf("resize: %v", err)
	}
	tw, th := g.TextureSize()
	if tw != 64 || th != 32 {
		t.Errorf("expected 64x32 after resize, got %dx%d", tw, th)
	}
	for ty := 0; ty < 30; ty++ {
		for tx := 0; tx < 40; tx++ {
			if g.At(tx, ty) != 0 {
				t.Fatalf("texel (%d,%d) not zeroed after resize", tx, ty)
			}
		}
	}
}

func TestGrid_IndependentAddsOrderInsensitive(t *testing.T) {
	tr := testTransform(t, 24, 24)
	first := AddDiff(1, Vec2{-0.6, 0.2})
	second := AddDiff(-0.5, Vec2{0.3, -0.4})

	ab, err := NewGrid(24, 24)
	if err != nil {
		t.Fatalf("new grid: %v", err)
	}
	ab.Apply(first, tr)
	ab.Apply(second, tr)

	ba, err := NewGrid(24, 24)
	if err != nil {
		t.Fatalf("new grid: %v", err)
	}
	ba.Apply(second, tr)
	ba.Apply(first, tr)

	for ty := 0; ty < 24; ty++ {
		for tx := 0; tx < 24; tx++ {
			a, b := ab.At(tx, ty), ba.At(tx, ty)
			if math.Abs(float64(a-b)) > 1e-4 {
				t.Fatalf("texel (%d,%d): order a,b %g, order b,a %g", tx, ty, a, b)
			}
		}
	}
}

// A wide view (one model unit per texel) so the far corners sit dozens of
// units from the charge.
func TestGrid_FarFieldNearZero(t *testing.T) {
	cam := Camera{Zoom: 1}
	tr, err := cam.Transform(64, 64)
	if err != nil {
		t.Fatalf("transform: %v", err)
	}
	g, err := NewGrid(64, 64)
	if err != nil {
		t.Fatalf("new grid: %v", err)
	}

	pos := Vec2{0.1, -0.2}
	g.Apply(AddDiff(1, pos), tr)

	near := g.At(32, 32)
	far := g.At(0, 0)
	if far <= 0 {
		t.Fatalf("far texel must stay positive, got %g", far)
	}
	if far > 0.5 {
		t.Errorf("far texel should be near zero, got %g", far)
	}
	if near < 40*far {
		t.Errorf("potential should decay with distance: near %g, far %g", near, far)
	}

	g.Apply(RemoveDiff(1, pos), tr)
	for ty := 0; ty < 64; ty++ {
		for tx := 0; tx < 64; tx++ {
			if v := g.At(tx, ty); math.Abs(float64(v)) > 1e-5 {
				t.Fatalf("texel (%d,%d) not cancelled: %g", tx, ty, v)
			}
		}
	}
}

// Seeding a fresh field from a tracker whose queue still holds the setup
// adds must apply each charge once: the queue is discarded before the
// rebuild replay, never drained on top of it.
func TestGrid_SeedDiscardsPendingAdds(t *testing.T) {
	tr := testTransform(t, 16, 16)

	tracker := NewTracker()
	tracker.Add(1, Vec2{0.3, 0.2})
	tracker.Add(-1, Vec2{-0.4, 0.1})

	seeded, err := NewGrid(16, 16)
	if err != nil {
		t.Fatalf("new grid: %v", err)
	}
	tracker.Clear()
	seeded.ApplyAll(tracker.RebuildDiffs(), tr)
	seeded.ApplyAll(tracker.Drain(), tr)

	reference, err := NewGrid(16, 16)
	if err != nil {
		t.Fatalf("new grid: %v", err)
	}
	reference.Apply(AddDiff(1, Vec2{0.3, 0.2}), tr)
	reference.Apply(AddDiff(-1, Vec2{-0.4, 0.1}), tr)

	for ty := 0; ty < 16; ty++ {
		for tx := 0; tx < 16; tx++ {
			s, r := seeded.At(tx, ty), reference.At(tx, ty)
			if math.Abs(float64(s-r)) > 1e-4 {
				t.Fatalf("texel (%d,%d): seeded %g, expected %g", tx, ty, s, r)
			}
		}
	}
}

func TestGrid_PositiveChargeSignConvention(t *testing.T) {
	g, err := NewGrid(16, 16)
	if err != nil {
		t.Fatalf("new grid: %v", err)
	}
	tr := testTransform(t, 16, 16)
	g.Apply(AddDiff(1, Vec2{0, 0}), tr)

	for ty := 0; ty < 16; ty++ {
		for tx := 0; tx < 16; tx++ {
			if g.At(tx, ty) <= 0 {
				t.Fatalf("positive charge must raise potential everywhere; texel (%d,%d) = %g", tx, ty, g.At(tx, ty))
			}
		}
	}
}
