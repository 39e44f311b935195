package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

const (
	DefaultWidth   = 1280
	DefaultHeight  = 720
	DefaultFPS     = 60
	DefaultZoom    = 80.0
	DefaultFrames  = 300
	DefaultCharges = 12
	DefaultDataDir = "runs"
)

type Config struct {
	Scenario string       `yaml:"scenario"`
	Ramp     string       `yaml:"ramp"`
	Seed     int64        `yaml:"seed"`
	Window   WindowConfig `yaml:"window"`
	Camera   CameraConfig `yaml:"camera"`
	Bench    BenchConfig  `yaml:"bench"`
	DataDir  string       `yaml:"data_dir"`
}

type WindowConfig struct {
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
	FPS    int    `yaml:"fps"`
	Title  string `yaml:"title"`
}

type CameraConfig struct {
	X    float64 `yaml:"x"`
	Y    float64 `yaml:"y"`
	Zoom float64 `yaml:"zoom"`
}

type BenchConfig struct {
	Frames  int  `yaml:"frames"`
	Charges int  `yaml:"charges"`
	GPU     bool `yaml:"gpu"`
}

func DefaultConfig() *Config {
	return &Config{
		Scenario: "dipole",
		Ramp:     "electric",
		Window: WindowConfig{
			Width:  DefaultWidth,
			Height: DefaultHeight,
			FPS:    DefaultFPS,
			Title:  "fieldlab",
		},
		Camera: CameraConfig{
			Zoom: DefaultZoom,
		},
		Bench: BenchConfig{
			Frames:  DefaultFrames,
			Charges: DefaultCharges,
		},
		DataDir: DefaultDataDir,
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
