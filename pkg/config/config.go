// Package config provides configuration loading and management for
// srsworms. It handles loading configuration from YAML files, applies
// defaults, and honors environment overrides from a .env file.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"srsworms/pkg/morphology"
)

// Config represents the application configuration loaded from YAML.
type Config struct {
	// Segmentation parameters for the morphology pipeline
	Segmentation struct {
		// Space is the contour offset for turning-angle and cut-normal
		// estimation
		Space int `yaml:"space"`

		// MidlinePoints is the resampled midline sample count
		MidlinePoints int `yaml:"midlinePoints"`

		// Quantile is the head-side arc-length fraction of the cut
		Quantile float64 `yaml:"quantile"`

		// CutMultiplier scales the bisection segment length
		CutMultiplier int `yaml:"cutMultiplier"`

		// CutThickness is the rasterized cut width in pixels
		CutThickness int `yaml:"cutThickness"`
	} `yaml:"segmentation"`

	// Stack parameters for mosaic preparation
	Stack struct {
		// FlatFieldSigma is the Gaussian sigma of the illumination estimate
		FlatFieldSigma float64 `yaml:"flatFieldSigma"`

		// NumChannels is the number of interleaved acquisition channels
		NumChannels int `yaml:"numChannels"`

		// RatioQuantile is the intensity quantile used when auto-computing
		// the protein/lipid separation ratio
		RatioQuantile float64 `yaml:"ratioQuantile"`

		// Ratio is an explicit separation ratio; 0 means auto-compute
		Ratio float64 `yaml:"ratio"`
	} `yaml:"stack"`

	// Output parameters
	Output struct {
		// Verbose controls the level of logging output
		Verbose bool `yaml:"verbose"`
	} `yaml:"output"`
}

// DefaultConfig returns a configuration with default values.
func DefaultConfig() *Config {
	cfg := &Config{}

	p := morphology.DefaultParams()
	cfg.Segmentation.Space = p.Space
	cfg.Segmentation.MidlinePoints = p.MidlinePoints
	cfg.Segmentation.Quantile = p.Quantile
	cfg.Segmentation.CutMultiplier = p.CutMultiplier
	cfg.Segmentation.CutThickness = p.CutThickness

	cfg.Stack.FlatFieldSigma = 50
	cfg.Stack.NumChannels = 2
	cfg.Stack.RatioQuantile = 0.999
	cfg.Stack.Ratio = 0

	cfg.Output.Verbose = true

	return cfg
}

// SegmentationParams converts the segmentation section into the
// morphology parameter struct.
func (c *Config) SegmentationParams() morphology.Params {
	return morphology.Params{
		Space:         c.Segmentation.Space,
		MidlinePoints: c.Segmentation.MidlinePoints,
		Quantile:      c.Segmentation.Quantile,
		CutMultiplier: c.Segmentation.CutMultiplier,
		CutThickness:  c.Segmentation.CutThickness,
	}
}

// Load resolves the configuration path from the SRSWORMS_CONFIG
// environment variable (a .env file in the working directory is honored,
// missing files are not an error) and loads it.
func Load() (*Config, error) {
	_ = godotenv.Load()

	path := os.Getenv("SRSWORMS_CONFIG")
	if path == "" {
		path = "config.yaml"
	}
	return LoadConfig(path)
}

// LoadConfig loads configuration from a YAML file. If the file doesn't
// exist, it returns the default configuration.
func LoadConfig(configPath string) (*Config, error) {
	cfg := DefaultConfig()

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return cfg, nil
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("error parsing config file: %w", err)
	}

	return cfg, nil
}

// SaveConfig saves the configuration to a YAML file.
func SaveConfig(cfg *Config, configPath string) error {
	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("error creating config directory: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("error marshaling config: %w", err)
	}

	if err := os.WriteFile(configPath, data, 0644); err != nil {
		return fmt.Errorf("error writing config file: %w", err)
	}

	return nil
}
