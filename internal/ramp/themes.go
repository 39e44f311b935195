package ramp

// Built-in ramps
var (
	// RampElectric is the classic red/blue potential map: positive charge
	// wells glow red, negative wells blue, neutral space stays dark.
	RampElectric = Ramp{
		Name:          "electric",
		Zero:          RGB{0.05, 0.05, 0.08},
		Positive:      RGB{0.95, 0.15, 0.10},
		Negative:      RGB{0.10, 0.25, 0.95},
		PositiveScale: 20,
		NegativeScale: 20,
	}

	RampThermal = Ramp{
		Name:          "thermal",
		Zero:          RGB{0, 0, 0},
		Positive:      RGB{1.0, 0.85, 0.20},
		Negative:      RGB{0.45, 0.0, 0.60},
		PositiveScale: 20,
		NegativeScale: 20,
	}

	RampMono = Ramp{
		Name:          "mono",
		Zero:          RGB{0.5, 0.5, 0.5},
		Positive:      RGB{1, 1, 1},
		Negative:      RGB{0, 0, 0},
		PositiveScale: 15,
		NegativeScale: 15,
	}

	RampOcean = Ramp{
		Name:          "ocean",
		Zero:          RGB{0.0, 0.10, 0.20},
		Positive:      RGB{0.00, 0.95, 0.75},
		Negative:      RGB{0.55, 0.15, 0.85},
		PositiveScale: 25,
		NegativeScale: 25,
	}

	// Default ramp
	Current = RampElectric

	// All available ramps
	Ramps = []Ramp{
		RampElectric,
		RampThermal,
		RampMono,
		RampOcean,
	}
)

// Get returns a ramp by name, falling back to the electric ramp.
func Get(name string) Ramp {
	for _, r := range Ramps {
		if r.Name == name {
			return r
		}
	}
	return RampElectric
}

// Names returns the list of available ramp names.
func Names() []string {
	names := make([]string, len(Ramps))
	for i, r := range Ramps {
		names[i] = r.Name
	}
	return names
}
