package ramp

import (
	"math"
	"testing"
)

func TestFrac_Clamps(t *testing.T) {
	r := Ramp{PositiveScale: 10, NegativeScale: 20}

	tests := []struct {
		value float64
		want  float64
	}{
		{0, 0},
		{5, 0.5},
		{10, 1},
		{50, 1},
		{-10, -0.5},
		{-20, -1},
		{-1000, -1},
		{math.Inf(1), 1},
		{math.Inf(-1), -1},
	}
	for _, tt := range tests {
		if got := r.Frac(tt.value); got != tt.want {
			t.Errorf("Frac(%g): expected %g, got %g", tt.value, tt.want, got)
		}
	}
}

func TestFrac_NaNMapsToZero(t *testing.T) {
	r := RampElectric
	if got := r.Frac(math.NaN()); got != 0 {
		t.Errorf("expected NaN to map to 0, got %g", got)
	}
	if c := r.Color(math.NaN()); c != r.Zero {
		t.Errorf("expected NaN to render as zero color, got %v", c)
	}
}

func TestColor_Endpoints(t *testing.T) {
	r := RampElectric

	if c := r.Color(0); c != r.Zero {
		t.Errorf("zero potential should be zero color, got %v", c)
	}
	if c := r.Color(r.PositiveScale * 2); c != r.Positive {
		t.Errorf("saturated positive should be positive color, got %v", c)
	}
	if c := r.Color(-r.NegativeScale * 2); c != r.Negative {
		t.Errorf("saturated negative should be negative color, got %v", c)
	}
}

func TestColor_InterpolatesMidpoint(t *testing.T) {
	r := Ramp{
		Zero:          RGB{0, 0, 0},
		Positive:      RGB{1, 0, 0},
		Negative:      RGB{0, 0, 1},
		PositiveScale: 10,
		NegativeScale: 10,
	}
	c := r.Color(5)
	if math.Abs(c.R-0.5) > 1e-12 || c.G != 0 || c.B != 0 {
		t.Errorf("expected half red, got %v", c)
	}
}

func TestHex(t *testing.T) {
	tests := []struct {
		c    RGB
		want string
	}{
		{RGB{0, 0, 0}, "#000000"},
		{RGB{1, 1, 1}, "#ffffff"},
		{RGB{1, 0, 0}, "#ff0000"},
		{RGB{2, -1, 0.5}, "#ff0080"},
	}
	for _, tt := range tests {
		if got := tt.c.Hex(); got != tt.want {
			t.Errorf("Hex(%v): expected %s, got %s", tt.c, tt.want, got)
		}
	}
}

func TestGet(t *testing.T) {
	if r := Get("thermal"); r.Name != "thermal" {
		t.Errorf("expected thermal, got %s", r.Name)
	}
	if r := Get("nonexistent"); r.Name != RampElectric.Name {
		t.Errorf("expected fallback to electric, got %s", r.Name)
	}
}

func TestNames(t *testing.T) {
	names := Names()
	if len(names) != len(Ramps) {
		t.Fatalf("expected %d names, got %d", len(Ramps), len(names))
	}
	for i, r := range Ramps {
		if names[i] != r.Name {
			t.Errorf("name %d: expected %s, got %s", i, r.Name, names[i])
		}
	}
}
