// Options, outcome types and error definitions for the stationary iterative
// solvers Jacobi and Gauss–Seidel.

package relax

import (
	"errors"
	"fmt"
	"math"

	"github.com/sirupsen/logrus"

	"github.com/katalvlaran/numlab/internal/logging"
	"github.com/katalvlaran/numlab/roots"
)

// Sentinel errors. Non-convergence is not an error: it is reported through
// Result.Status.
var (
	// ErrInvalidInput is returned for nil or non-square A and for b or x0 whose
	// length differs from the order of A. The matrix sentinel is wrapped alongside.
	ErrInvalidInput = errors.New("relax: invalid input")

	// ErrZeroDiagonal is returned when some A[i][i] == 0, which makes the
	// coordinate update undefined.
	ErrZeroDiagonal = errors.New("relax: zero on the diagonal")

	// ErrOptionViolation is returned when an invalid Option is supplied.
	ErrOptionViolation = errors.New("relax: invalid option supplied")
)

// Defaults.
const (
	DefaultTolerance = 1e-10
	DefaultMaxIter   = 100
)

// Status tells how a relaxation run ended; it shares its values with the root finders.
type Status = roots.Status

// Outcome values, see roots.Status.
const (
	Converged  = roots.Converged
	Overflowed = roots.Overflowed
	Exhausted  = roots.Exhausted
)

// Result is the outcome of a relaxation run:
//   - X: the final iterate (for Overflowed, the last finite one).
//   - Iterations: sweeps performed.
//   - Status: Converged, Overflowed or Exhausted.
//   - MaxDelta: max_i |x_new[i] − x[i]| of the last finite sweep.
//   - Deltas: MaxDelta per sweep, for convergence charts.
type Result struct {
	X          []float64 `json:"x" yaml:"x"`
	Iterations int       `json:"iterations" yaml:"iterations"`
	Status     Status    `json:"status" yaml:"status"`
	MaxDelta   float64   `json:"max_delta" yaml:"max_delta"`
	Deltas     []float64 `json:"deltas,omitempty" yaml:"deltas,omitempty"`
}

// Option configures a relaxation run via functional arguments.
// An invalid Option is recorded and surfaced as ErrOptionViolation.
type Option func(*Options)

// Options holds parameters and callbacks for Jacobi and Gauss–Seidel.
type Options struct {
	// Tolerance: stop once the largest coordinate change is below it.
	Tolerance float64

	// MaxIter bounds the number of sweeps.
	MaxIter int

	// Logger receives one Debug entry per sweep.
	Logger logrus.FieldLogger

	// OnSweep is called after each sweep with its 1-based index, the new
	// iterate (read-only, reused between calls) and the sweep's max delta.
	OnSweep func(iter int, x []float64, delta float64)

	// internal error recorded during option parsing
	err error
}

// DefaultOptions returns Options with DefaultTolerance, DefaultMaxIter,
// a discarding logger and a no-op OnSweep.
func DefaultOptions() Options {
	return Options{
		Tolerance: DefaultTolerance,
		MaxIter:   DefaultMaxIter,
		Logger:    logging.Discard(),
		OnSweep:   func(int, []float64, float64) {},
	}
}

// WithTolerance sets the stopping threshold. tol must be finite and > 0.
func WithTolerance(tol float64) Option {
	return func(o *Options) {
		if !(tol > 0) || math.IsInf(tol, 0) {
			o.err = fmt.Errorf("%w: tolerance must be finite and > 0 (%v)", ErrOptionViolation, tol)
			return
		}
		o.Tolerance = tol
	}
}

// WithMaxIter bounds the sweep count. n must be > 0.
func WithMaxIter(n int) Option {
	return func(o *Options) {
		if n <= 0 {
			o.err = fmt.Errorf("%w: MaxIter must be > 0 (%d)", ErrOptionViolation, n)
			return
		}
		o.MaxIter = n
	}
}

// WithLogger routes the per-sweep trace to l.
func WithLogger(l logrus.FieldLogger) Option {
	return func(o *Options) {
		if l != nil {
			o.Logger = l
		}
	}
}

// WithOnSweep registers a per-sweep callback.
func WithOnSweep(fn func(iter int, x []float64, delta float64)) Option {
	return func(o *Options) {
		if fn != nil {
			o.OnSweep = fn
		}
	}
}

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
