// Package config loads run settings and model documents from YAML. JSON
// documents are accepted too, since YAML is a superset of JSON.
package config

import (
	"errors"
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"
)

var (
	// ErrInvalidConfig wraps every Validate failure.
	ErrInvalidConfig = errors.New("config: invalid configuration")
	// ErrInvalidModel wraps every model document failure.
	ErrInvalidModel = errors.New("config: invalid model")
)

// Default values.
const (
	DefaultTolerance = 1e-6
	DefaultSigDigits = 4
	DefaultWorkers   = 1
)

// Config holds the tunables of one conversion run.
type Config struct {
	// Tolerance is the magnitude at or below which coefficients are dropped.
	Tolerance float64 `yaml:"tolerance" json:"tolerance"`
	// SigDigits is the number of significant digits kept in final models;
	// 0 disables rounding.
	SigDigits int `yaml:"sig_digits" json:"sig_digits"`
	// Target is the preferred denominator monomial for rescaling, written
	// like a feature ("x0x1").
	Target string `yaml:"target,omitempty" json:"target,omitempty"`
	// Gens lists the generator tokens the denominator is viewed over.
	Gens      []string `yaml:"gens,omitempty" json:"gens,omitempty"`
	LaTeXPath string   `yaml:"latex_path,omitempty" json:"latex_path,omitempty"`
	CSVPath   string   `yaml:"csv_path,omitempty" json:"csv_path,omitempty"`
	// Workers bounds how many rows are solved at once.
	Workers int  `yaml:"workers" json:"workers"`
	Color   bool `yaml:"color" json:"color"`
}

// Default returns the default configuration.
func Default() Config {
	return Config{
		Tolerance: DefaultTolerance,
		SigDigits: DefaultSigDigits,
		Workers:   DefaultWorkers,
	}
}

// Load decodes the YAML file at path over the defaults and validates the
// result.
func Load(path string) (Config, error) {
	cfg := Default()

	f, err := os.Open(path)
	if err != nil {
		return cfg, fmt.Errorf("config: open %s: %w", path, err)
	}
	defer f.Close()

	decoder := yaml.NewDecoder(f)
	if err := decoder.Decode(&cfg); err != nil {
		return cfg, fmt.Errorf("config: parse %s: %w", path, err)
	}
	return cfg, cfg.Validate()
}

// Validate reports the first invalid field.
func (c Config) Validate() error {
	switch {
	case math.IsNaN(c.Tolerance) || math.IsInf(c.Tolerance, 0) || c.Tolerance <= 0:
		return fmt.Errorf("%w: tolerance must be a positive number, got %v", ErrInvalidConfig, c.Tolerance)
	case c.SigDigits < 0:
		return fmt.Errorf("%w: sig_digits must be >= 0, got %d", ErrInvalidConfig, c.SigDigits)
	case c.Workers < 1:
		return fmt.Errorf("%w: workers must be >= 1, got %d", ErrInvalidConfig, c.Workers)
	}
	return nil
}
