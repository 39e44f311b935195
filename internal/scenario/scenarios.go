package scenario

import (
	"math"
	"math/rand"

	"github.com/san-kum/fieldlab/internal/field"
)

// Dipole is the classic two-charge arrangement, slowly pulling apart and
// back together along the x axis.
type Dipole struct {
	pos, neg   int
	separation float64
}

func (s *Dipole) Name() string        { return "dipole" }
func (s *Dipole) Description() string { return "breathing +/- pair" }

func (s *Dipole) Setup(t *field.Tracker, rng *rand.Rand) {
	s.separation = 1.5
	s.pos = t.Add(1, field.Vec2{X: -s.separation})
	s.neg = t.Add(-1, field.Vec2{X: s.separation})
}

func (s *Dipole) Step(t *field.Tracker, rng *rand.Rand, tick int) {
	// Every few ticks, breathe the separation between 0.5 and 2.5.
	if tick%4 != 0 {
		return
	}
	d := 1.5 + math.Sin(float64(tick)/40)
	t.Move(s.pos, field.Vec2{X: -d})
	t.Move(s.neg, field.Vec2{X: d})
}

// Lattice is a static alternating grid of charges, useful for eyeballing
// the transform: the pattern must stay square under pan and zoom.
type Lattice struct {
	Rows, Cols int
	Spacing    float64
}

func (s *Lattice) Name() string        { return "lattice" }
func (s *Lattice) Description() string { return "static alternating grid" }

func (s *Lattice) Setup(t *field.Tracker, rng *rand.Rand) {
	x0 := -s.Spacing * float64(s.Cols-1) / 2
	y0 := -s.Spacing * float64(s.Rows-1) / 2
	for r := 0; r < s.Rows; r++ {
		for c := 0; c < s.Cols; c++ {
			value := 1.0
			if (r+c)%2 == 1 {
				value = -1.0
			}
			t.Add(value, field.Vec2{
				X: x0 + float64(c)*s.Spacing,
				Y: y0 + float64(r)*s.Spacing,
			})
		}
	}
}

func (s *Lattice) Step(t *field.Tracker, rng *rand.Rand, tick int) {}

// Orbit keeps a positive charge circling a heavier negative core. Every
// tick is a move diff, which makes it the steadiest source of fused
// remove-and-add traffic.
type Orbit struct {
	Radius float64
	moon   int
}

func (s *Orbit) Name() string        { return "orbit" }
func (s *Orbit) Description() string { return "charge circling a fixed core" }

func (s *Orbit) Setup(t *field.Tracker, rng *rand.Rand) {
	t.Add(-2, field.Vec2{})
	s.moon = t.Add(1, field.Vec2{X: s.Radius})
}

func (s *Orbit) Step(t *field.Tracker, rng *rand.Rand, tick int) {
	angle := float64(tick) / 30
	t.Move(s.moon, field.Vec2{
		X: s.Radius * math.Cos(angle),
		Y: s.Radius * math.Sin(angle),
	})
}

// Churn adds, nudges, and removes random charges, bounded by MaxCharges.
// It exercises all three diff kinds and id retirement.
type Churn struct {
	MaxCharges int
	ids        []int
}

func (s *Churn) Name() string        { return "churn" }
func (s *Churn) Description() string { return "random add/move/remove traffic" }

func (s *Churn) Setup(t *field.Tracker, rng *rand.Rand) {
	for i := 0; i < s.MaxCharges/2; i++ {
		s.add(t, rng)
	}
}

func (s *Churn) Step(t *field.Tracker, rng *rand.Rand, tick int) {
	switch roll := rng.Float64(); {
	case roll < 0.2 && len(s.ids) < s.MaxCharges:
		s.add(t, rng)
	case roll < 0.3 && len(s.ids) > 1:
		i := rng.Intn(len(s.ids))
		t.Remove(s.ids[i])
		s.ids = append(s.ids[:i], s.ids[i+1:]...)
	case len(s.ids) > 0:
		id := s.ids[rng.Intn(len(s.ids))]
		if c, ok := t.Get(id); ok {
			t.Move(id, field.Vec2{
				X: c.Pos.X + rng.NormFloat64()*0.1,
				Y: c.Pos.Y + rng.NormFloat64()*0.1,
			})
		}
	}
}

func (s *Churn) add(t *field.Tracker, rng *rand.Rand) {
	value := 1.0
	if rng.Float64() < 0.5 {
		value = -1.0
	}
	id := t.Add(value, field.Vec2{
		X: (rng.Float64() - 0.5) * 8,
		Y: (rng.Float64() - 0.5) * 6,
	})
	s.ids = append(s.ids, id)
}
