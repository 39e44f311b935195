package config

var Presets = map[string]map[string]*Config{
	"dipole": {
		"default": {
			Scenario: "dipole", Ramp: "electric",
			Camera: CameraConfig{Zoom: 120},
		},
		"wide": {
			Scenario: "dipole", Ramp: "electric",
			Camera: CameraConfig{Zoom: 40},
		},
	},
	"lattice": {
		"default": {
			Scenario: "lattice", Ramp: "thermal",
			Camera: CameraConfig{Zoom: 70},
		},
		"close": {
			Scenario: "lattice", Ramp: "thermal",
			Camera: CameraConfig{X: 0.75, Y: 0.75, Zoom: 220},
		},
	},
	"orbit": {
		"default": {
			Scenario: "orbit", Ramp: "electric",
			Camera: CameraConfig{Zoom: 90},
		},
	},
	"churn": {
		"light": {
			Scenario: "churn", Ramp: "ocean", Seed: 1,
			Camera: CameraConfig{Zoom: 60},
			Bench:  BenchConfig{Frames: 300, Charges: 8},
		},
		"heavy": {
			Scenario: "churn", Ramp: "ocean", Seed: 1,
			Camera: CameraConfig{Zoom: 60},
			Bench:  BenchConfig{Frames: 600, Charges: 48},
		},
	},
}

func GetPreset(scenario, name string) *Config {
	presets, ok := Presets[scenario]
	if !ok {
		return nil
	}
	cfg, ok := presets[name]
	if !ok {
		return nil
	}
	return cfg
}

func ListPresets(scenario string) []string {
	presets, ok := Presets[scenario]
	if !ok {
		return nil
	}
	names := make([]string, 0, len(presets))
	for name := range presets {
		names = append(names, name)
	}
	return names
}
