package field

import (
	"fmt"
	"math"
)

// Coulomb is the scaled Coulomb constant used for potential contributions.
// The physical 9e9 is folded down so that unit charges at unit distances
// land in a range the color ramp can display directly.
const Coulomb = 9.0

// Vec2 is a point in model space.
type Vec2 struct {
	X, Y float64
}

func (v Vec2) Sub(o Vec2) Vec2 {
	return Vec2{v.X - o.X, v.Y - o.Y}
}

func (v Vec2) Dist(o Vec2) float64 {
	return math.Hypot(v.X-o.X, v.Y-o.Y)
}

// DiffKind discriminates the three charge mutations. The kind is fixed when
// the diff is created; consumers never infer it from which positions happen
// to be set.
type DiffKind uint8

const (
	DiffAdd DiffKind = iota
	DiffRemove
	DiffMove
)

func (k DiffKind) String() string {
	switch k {
	case DiffAdd:
		return "add"
	case DiffRemove:
		return "remove"
	case DiffMove:
		return "move"
	default:
		return fmt.Sprintf("DiffKind(%d)", uint8(k))
	}
}

// Diff records one charge mutation. From is meaningful for remove and move,
// To for add and move. A move contributes at To and retracts at From within
// a single accumulation pass.
type Diff struct {
	Kind   DiffKind
	Charge float64
	From   Vec2
	To     Vec2
}

func AddDiff(charge float64, to Vec2) Diff {
	return Diff{Kind: DiffAdd, Charge: charge, To: to}
}

func RemoveDiff(charge float64, from Vec2) Diff {
	return Diff{Kind: DiffRemove, Charge: charge, From: from}
}

func MoveDiff(charge float64, from, to Vec2) Diff {
	return Diff{Kind: DiffMove, Charge: charge, From: from, To: to}
}

// HasNew reports whether the diff deposits a contribution at To.
func (d Diff) HasNew() bool { return d.Kind != DiffRemove }

// HasOld reports whether the diff retracts a contribution at From.
func (d Diff) HasOld() bool { return d.Kind != DiffAdd }

// Contribution evaluates the potential change this diff causes at a model
// point. Distances of zero are not guarded: the division produces Inf and
// the color ramp saturates it downstream.
func (d Diff) Contribution(at Vec2) float64 {
	change := 0.0
	if d.HasNew() {
		change += d.Charge * Coulomb / at.Dist(d.To)
	}
	if d.HasOld() {
		change -= d.Charge * Coulomb / at.Dist(d.From)
	}
	return change
}
