// SPDX-License-Identifier: MIT
// Package gauss provides tunable options, hooks and error definitions for
// Gaussian elimination with partial pivoting over a matrix.Dense.
package gauss

import (
	"errors"
	"fmt"
	"math"

	"github.com/sirupsen/logrus"

	"github.com/katalvlaran/numlab/internal/logging"
)

// Sentinel errors for elimination and substitution.
var (
	// ErrInvalidInput is returned for nil or mis-shaped matrices and vectors.
	// The matrix sentinel describing the violation is wrapped alongside it.
	ErrInvalidInput = errors.New("gauss: invalid input")

	// ErrNearZeroPivot is returned by BackSubstitute when a diagonal entry of the
	// upper-triangular matrix is below the pivot tolerance: the system is
	// singular or too close to it for a meaningful answer.
	ErrNearZeroPivot = errors.New("gauss: near-zero pivot")

	// ErrOptionViolation is returned when an invalid Option is supplied.
	ErrOptionViolation = errors.New("gauss: invalid option supplied")
)

// DefaultPivotTolerance is the |pivot| below which a column is skipped during
// elimination and back substitution refuses to divide.
const DefaultPivotTolerance = 1e-10

// Option configures elimination via functional arguments.
// An invalid Option is recorded and surfaced as ErrOptionViolation when the
// algorithm is invoked.
type Option func(*Options)

// Options holds parameters and callbacks to customize elimination.
type Options struct {
	// PivotTolerance: pivots with |p| < PivotTolerance are treated as zero.
	PivotTolerance float64

	// Logger receives the step-by-step trace. Swaps go to Info, skipped
	// columns to Warn, eliminations and intermediate matrices to Debug.
	Logger logrus.FieldLogger

	// OnSwap is called after rows row and with were exchanged while pivoting column col.
	OnSwap func(col, row, with int)

	// OnSkip is called when column col has no usable pivot.
	OnSkip func(col int, pivot float64)

	// OnEliminate is called after row was reduced by factor × pivot row col.
	OnEliminate func(row, col int, factor float64)

	// internal error recorded during option parsing
	err error
}

// DefaultOptions returns Options with:
//   - PivotTolerance = DefaultPivotTolerance
//   - a discarding logger
//   - no-op hooks.
func DefaultOptions() Options {
	return Options{
		PivotTolerance: DefaultPivotTolerance,
		Logger:         logging.Discard(),
		OnSwap:         func(int, int, int) {},
		OnSkip:         func(int, float64) {},
		OnEliminate:    func(int, int, float64) {},
	}
}

// WithPivotTolerance overrides the near-zero pivot threshold.
//
//	tol >= 0 and finite: accepted (0 only skips exact zeros)
//	otherwise:           ErrOptionViolation
func WithPivotTolerance(tol float64) Option {
	return func(o *Options) {
		if tol < 0 || math.IsNaN(tol) || math.IsInf(tol, 0) {
			o.err = fmt.Errorf("%w: pivot tolerance must be finite and >= 0 (%v)", ErrOptionViolation, tol)
			return
		}
		o.PivotTolerance = tol
	}
}

// WithLogger routes the elimination trace to l.
func WithLogger(l logrus.FieldLogger) Option {
	return func(o *Options) {
		if l != nil {
			o.Logger = l
		}
	}
}

// WithOnSwap registers a callback run after every row exchange.
func WithOnSwap(fn func(col, row, with int)) Option {
	return func(o *Options) {
		if fn != nil {
			o.OnSwap = fn
		}
	}
}

// WithOnSkip registers a callback run for every column skipped as degenerate.
func WithOnSkip(fn func(col int, pivot float64)) Option {
	return func(o *Options) {
		if fn != nil {
			o.OnSkip = fn
		}
	}
}

// WithOnEliminate registers a callback run after each row reduction.
func WithOnEliminate(fn func(row, col int, factor float64)) Option {
	return func(o *Options) {
		if fn != nil {
			o.OnEliminate = fn
		}
	}
}

// apply folds opts over the defaults and returns the first recorded error.
func apply(opts []Option) (Options, error) {
	o := DefaultOptions()
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		opt(&o)
		if o.err != nil {
			return o, o.err
		}
	}

	return o, nil
}

// Swap records one row exchange: while pivoting column Col, Row and With traded places.
type Swap struct {
	Col  int `json:"col" yaml:"col"`
	Row  int `json:"row" yaml:"row"`
	With int `json:"with" yaml:"with"`
}

// Solution is the outcome of Solve:
//   - X: the computed solution vector.
//   - Residual: ‖A·X − b‖₂ on the original inputs.
//   - Swaps: row exchanges in the order they happened.
//   - Skipped: columns left without a usable pivot.
type Solution struct {
	X        []float64 `json:"x" yaml:"x"`
	Residual float64   `json:"residual" yaml:"residual"`
	Swaps    []Swap    `json:"swaps,omitempty" yaml:"swaps,omitempty"`
	Skipped  []int     `json:"skipped,omitempty" yaml:"skipped,omitempty"`
}
