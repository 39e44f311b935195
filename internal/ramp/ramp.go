// Package ramp maps accumulated potential values to display colors. A ramp
// blends from a zero color toward a positive or negative extreme, saturating
// at a configurable magnitude. The same ramp definition drives the GPU
// display shader and the terminal preview.
package ramp

import (
	"fmt"
	"math"
)

// RGB is a color with channels in [0, 1].
type RGB struct {
	R, G, B float64
}

// Uniform returns the channels as float32 for a vec3 uniform upload.
func (c RGB) Uniform() (float32, float32, float32) {
	return float32(c.R), float32(c.G), float32(c.B)
}

// Hex renders the color as a #rrggbb string for terminal styling.
func (c RGB) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", channel(c.R), channel(c.G), channel(c.B))
}

func channel(v float64) int {
	if v <= 0 {
		return 0
	}
	if v >= 1 {
		return 255
	}
	return int(v*255 + 0.5)
}

// Ramp defines a false-color mapping for potential values.
type Ramp struct {
	Name     string
	Zero     RGB
	Positive RGB
	Negative RGB

	// PositiveScale and NegativeScale are the magnitudes at which the ramp
	// reaches full saturation. Values beyond them clamp, which is also what
	// absorbs the Inf spikes at charge centers.
	PositiveScale float64
	NegativeScale float64
}

// Frac returns the signed saturation fraction in [-1, 1]. NaN values map to
// zero so that undefined texels render as the background.
func (r Ramp) Frac(v float64) float64 {
	if math.IsNaN(v) {
		return 0
	}
	if v > 0 {
		return math.Min(v/r.PositiveScale, 1)
	}
	return -math.Min(-v/r.NegativeScale, 1)
}

// Color maps a potential value to its display color.
func (r Ramp) Color(v float64) RGB {
	f := r.Frac(v)
	if f >= 0 {
		return mix(r.Zero, r.Positive, f)
	}
	return mix(r.Zero, r.Negative, -f)
}

func mix(a, b RGB, t float64) RGB {
	return RGB{
		R: a.R + (b.R-a.R)*t,
		G: a.G + (b.G-a.G)*t,
		B: a.B + (b.B-a.B)*t,
	}
}
