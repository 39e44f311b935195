package field

import (
	"math"
	"testing"
)

func TestDiffKindString(t *testing.T) {
	tests := []struct {
		kind DiffKind
		want string
	}{
		{DiffAdd, "add"},
		{DiffRemove, "remove"},
		{DiffMove, "move"},
	}
	for _, tt := range tests {
		if got := tt.kind.String(); got != tt.want {
			t.Errorf("kind %d: expected %s, got %s", tt.kind, tt.want, got)
		}
	}
}

func TestDiffEndpoints(t *testing.T) {
	add := AddDiff(1, Vec2{1, 2})
	if !add.HasNew() || add.HasOld() {
		t.Error("add should deposit at To only")
	}

	rem := RemoveDiff(1, Vec2{1, 2})
	if rem.HasNew() || !rem.HasOld() {
		t.Error("remove should retract at From only")
	}

	mov := MoveDiff(1, Vec2{0, 0}, Vec2{1, 1})
	if !mov.HasNew() || !mov.HasOld() {
		t.Error("move should touch both endpoints")
	}
}

func TestContribution_Add(t *testing.T) {
	d := AddDiff(2, Vec2{0, 0})
	got := d.Contribution(Vec2{3, 4})
	want := 2 * Coulomb / 5.0
	if math.Abs(got-want) > 1e-12 {
		t.Errorf("expected %f, got %f", want, got)
	}
}

func TestContribution_RemoveNegatesAdd(t *testing.T) {
	at := Vec2{1.5, -2.0}
	pos := Vec2{-0.5, 0.25}
	add := AddDiff(1.0, pos)
	rem := RemoveDiff(1.0, pos)
	if got := add.Contribution(at) + rem.Contribution(at); math.Abs(got) > 1e-12 {
		t.Errorf("add+remove should cancel, got %g", got)
	}
}

func TestContribution_MoveEqualsRemovePlusAdd(t *testing.T) {
	at := Vec2{0.5, 0.5}
	from := Vec2{-1, -1}
	to := Vec2{2, 1}
	mov := MoveDiff(1.5, from, to)
	split := RemoveDiff(1.5, from).Contribution(at) + AddDiff(1.5, to).Contribution(at)
	if got := mov.Contribution(at); math.Abs(got-split) > 1e-12 {
		t.Errorf("move %g != remove+add %g", got, split)
	}
}

func TestContribution_ZeroDistance(t *testing.T) {
	// Distance zero is deliberately unguarded: the contribution diverges and
	// the color ramp saturates it at display time.
	d := AddDiff(1, Vec2{1, 1})
	got := d.Contribution(Vec2{1, 1})
	if !math.IsInf(got, 1) {
		t.Errorf("expected +Inf at the charge position, got %g", got)
	}

	neg := AddDiff(-1, Vec2{1, 1})
	if got := neg.Contribution(Vec2{1, 1}); !math.IsInf(got, -1) {
		t.Errorf("expected -Inf for negative charge, got %g", got)
	}
}
