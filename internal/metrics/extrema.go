package metrics

import "math"

// Extrema tracks the most positive and most negative potential values seen.
// Inf samples are recorded as hits but excluded from the extrema, so a
// texel sitting exactly on a charge does not wipe out the useful range.
type Extrema struct {
	name    string
	min     float64
	max     float64
	infs    int
	samples int
}

func NewExtrema() *Extrema {
	return &Extrema{
		name: "extrema",
		min:  math.Inf(1),
		max:  math.Inf(-1),
	}
}

func (e *Extrema) Name() string { return e.name }

func (e *Extrema) Observe(v float64) {
	e.samples++
	if math.IsNaN(v) {
		return
	}
	if math.IsInf(v, 0) {
		e.infs++
		return
	}
	if v < e.min {
		e.min = v
	}
	if v > e.max {
		e.max = v
	}
}

// Value returns the largest finite magnitude observed.
func (e *Extrema) Value() float64 {
	if e.samples == 0 || e.samples == e.infs {
		return 0
	}
	return math.Max(math.Abs(e.min), math.Abs(e.max))
}

func (e *Extrema) Min() float64 {
	if math.IsInf(e.min, 1) {
		return 0
	}
	return e.min
}

func (e *Extrema) Max() float64 {
	if math.IsInf(e.max, -1) {
		return 0
	}
	return e.max
}

// Saturated reports how many observed samples were infinite.
func (e *Extrema) Saturated() int { return e.infs }

func (e *Extrema) Reset() {
	e.min = math.Inf(1)
	e.max = math.Inf(-1)
	e.infs = 0
	e.samples = 0
}
