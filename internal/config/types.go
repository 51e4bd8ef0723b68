// SPDX-License-Identifier: MPL-2.0

package config

import (
	"errors"
	"fmt"
)

const (
	// ColorSchemeAuto detects the terminal color scheme automatically.
	ColorSchemeAuto ColorScheme = "auto"
	// ColorSchemeDark forces dark color scheme.
	ColorSchemeDark ColorScheme = "dark"
	// ColorSchemeLight forces light color scheme.
	ColorSchemeLight ColorScheme = "light"

	// DefaultIterations is the default number of timed exercise runs.
	DefaultIterations = 10
)

var (
	// ErrInvalidColorScheme is returned when a ColorScheme value is not recognized.
	ErrInvalidColorScheme = errors.New("invalid color scheme")
	// ErrInvalidIterations is returned when iterations is not positive.
	ErrInvalidIterations = errors.New("invalid iterations")
)

type (
	// ColorScheme selects the terminal color scheme for styled output.
	ColorScheme string

	// UIConfig holds presentation settings.
	UIConfig struct {
		Verbose     bool        `mapstructure:"verbose"`
		ColorScheme ColorScheme `mapstructure:"color_scheme"`
	}

	// Config is the resolved perfrun configuration.
	Config struct {
		// Target is the directory or distribution path experiments run
		// against.
		Target string `mapstructure:"target"`
		// Baseline identifies the comparison tree; empty means none.
		Baseline string `mapstructure:"baseline"`
		// Iterations is the number of timed exercise runs per experiment.
		Iterations int `mapstructure:"iterations"`
		// SearchPaths are extra directory trees scanned for experiment
		// files.
		SearchPaths []string `mapstructure:"search_paths"`
		UI          UIConfig `mapstructure:"ui"`
	}
)

// DefaultConfig returns the built-in configuration.
func DefaultConfig() *Config {
	return &Config{
		Target:     ".",
		Baseline:   "",
		Iterations: DefaultIterations,
		UI: UIConfig{
			Verbose:     false,
			ColorScheme: ColorSchemeAuto,
		},
	}
}

// Validate returns nil if the ColorScheme is one of the defined schemes.
func (c ColorScheme) Validate() error {
	switch c {
	case ColorSchemeAuto, ColorSchemeDark, ColorSchemeLight:
		return nil
	default:
		return fmt.Errorf("%w: %q (valid: auto, dark, light)", ErrInvalidColorScheme, c)
	}
}

// Validate checks constraints the CUE schema cannot express on the merged
// result (defaults plus file plus environment).
func (c *Config) Validate() error {
	if c.Iterations < 1 {
		return fmt.Errorf("%w: %d (must be >= 1)", ErrInvalidIterations, c.Iterations)
	}
	return c.UI.ColorScheme.Validate()
}
