// Package demo runs the numerical demonstrations behind the numlab CLI and
// returns their outcomes as structured reports.
package demo

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/katalvlaran/numlab/interp"
)

// ErrInvalidConfig is returned by Config.Validate.
var ErrInvalidConfig = errors.New("demo: invalid config")

// Output formats understood by Encode.
const (
	FormatText = "text"
	FormatYAML = "yaml"
	FormatJSON = "json"
)

// Config drives every demonstration. Keys mirror the CLI flags; the same
// names are accepted in the YAML config file.
type Config struct {
	// Seed selects the random stream for generated systems (0 = default stream).
	Seed int64 `mapstructure:"seed" yaml:"seed" json:"seed"`

	// Sizes lists the system orders to run.
	Sizes []int `mapstructure:"sizes" yaml:"sizes" json:"sizes"`

	// Tol is the relaxation stopping threshold.
	Tol float64 `mapstructure:"tol" yaml:"tol" json:"tol"`

	// MaxIter bounds the relaxation sweeps.
	MaxIter int `mapstructure:"max-iter" yaml:"max-iter" json:"max_iter"`

	// Perturbation is the radius of the random offset applied to the exact
	// solution to get the relaxation starting guess.
	Perturbation float64 `mapstructure:"perturbation" yaml:"perturbation" json:"perturbation"`

	// RootTol and RootMaxIter tune every root finder; 0 keeps each
	// method's own default (bisection 1e-6/100, fixed point 1e-10/1000,
	// Newton 1e-10/100).
	RootTol     float64 `mapstructure:"root-tol" yaml:"root-tol" json:"root_tol"`
	RootMaxIter int     `mapstructure:"root-max-iter" yaml:"root-max-iter" json:"root_max_iter"`

	// Subdivisions is the grid size used to isolate polynomial roots.
	Subdivisions int `mapstructure:"subdivisions" yaml:"subdivisions" json:"subdivisions"`

	// Points, if set, adds an interpolation case through these nodes,
	// written "x,y" and separated by ';' or newlines.
	Points string `mapstructure:"points" yaml:"points" json:"points,omitempty"`

	// LogLevel is a logrus level name.
	LogLevel string `mapstructure:"log-level" yaml:"log-level" json:"log_level"`

	// Output is one of text, yaml, json.
	Output string `mapstructure:"output" yaml:"output" json:"output"`

	// Plot, if set, is the file the root-finding convergence chart is written to.
	// Its extension selects the image format.
	Plot string `mapstructure:"plot" yaml:"plot" json:"plot"`
}

// DefaultConfig reproduces the classic demonstration: sizes 3, 5 and 8,
// ten relaxation sweeps from a ±0.5 perturbation of the exact solution and
// the root finders on their own defaults.
func DefaultConfig() Config {
	return Config{
		Seed:         0,
		Sizes:        []int{3, 5, 8},
		Tol:          1e-10,
		MaxIter:      10,
		Perturbation: 0.5,
		Subdivisions: 200,
		LogLevel:     "warn",
		Output:       FormatText,
	}
}

// Validate reports the first unusable field.
func (c Config) Validate() error {
	if len(c.Sizes) == 0 {
		return fmt.Errorf("%w: sizes must not be empty", ErrInvalidConfig)
	}
	for _, n := range c.Sizes {
		if n < 1 {
			return fmt.Errorf("%w: size %d must be >= 1", ErrInvalidConfig, n)
		}
	}
	if !(c.Tol > 0) || math.IsInf(c.Tol, 0) {
		return fmt.Errorf("%w: tol must be finite and > 0 (%v)", ErrInvalidConfig, c.Tol)
	}
	if c.MaxIter < 1 {
		return fmt.Errorf("%w: max-iter must be >= 1 (%d)", ErrInvalidConfig, c.MaxIter)
	}
	if c.Perturbation < 0 || math.IsNaN(c.Perturbation) || math.IsInf(c.Perturbation, 0) {
		return fmt.Errorf("%w: perturbation must be finite and >= 0 (%v)", ErrInvalidConfig, c.Perturbation)
	}
	if c.RootTol < 0 || math.IsNaN(c.RootTol) || math.IsInf(c.RootTol, 0) {
		return fmt.Errorf("%w: root-tol must be finite and >= 0 (%v)", ErrInvalidConfig, c.RootTol)
	}
	if c.RootMaxIter < 0 {
		return fmt.Errorf("%w: root-max-iter must be >= 0 (%d)", ErrInvalidConfig, c.RootMaxIter)
	}
	if c.Points != "" {
		if _, err := interp.ParsePoints(c.Points); err != nil {
			return fmt.Errorf("%w: points: %w", ErrInvalidConfig, err)
		}
	}
	if c.Subdivisions < 1 {
		return fmt.Errorf("%w: subdivisions must be >= 1 (%d)", ErrInvalidConfig, c.Subdivisions)
	}
	switch strings.ToLower(c.Output) {
	case FormatText, FormatYAML, FormatJSON:
	default:
		return fmt.Errorf("%w: output %q (want text, yaml or json)", ErrInvalidConfig, c.Output)
	}

	return nil
}
