// Package roots provides tunable options, outcome types and error definitions
// for the scalar root finders: bisection, fixed-point iteration and Newton's method.
package roots

import (
	"errors"
	"fmt"
	"math"

	"github.com/sirupsen/logrus"

	"github.com/katalvlaran/numlab/internal/logging"
)

// Sentinel errors for root finding.
var (
	// ErrInvalidInput is returned for a nil function, non-finite endpoints,
	// an empty interval or a non-positive subdivision count.
	ErrInvalidInput = errors.New("roots: invalid input")

	// ErrNoRootInInterval is returned when f(a)·f(b) ≥ 0, so bisection has no
	// sign change to follow.
	ErrNoRootInInterval = errors.New("roots: no root in interval")

	// ErrDidNotConverge is returned when the iteration budget runs out.
	ErrDidNotConverge = errors.New("roots: did not converge")

	// ErrOverflowDuringIteration is returned when an iterate becomes ±Inf or NaN.
	// It wraps ErrDidNotConverge, so errors.Is matches both.
	ErrOverflowDuringIteration = fmt.Errorf("%w: overflow during iteration", ErrDidNotConverge)

	// ErrZeroDerivative is returned by Newton when |f'(x)| falls below ZeroDerivativeTolerance.
	ErrZeroDerivative = errors.New("roots: derivative vanished")

	// ErrOptionViolation is returned when an invalid Option is supplied.
	ErrOptionViolation = errors.New("roots: invalid option supplied")
)

// Per-method defaults.
const (
	DefaultBisectionTolerance = 1e-6
	DefaultBisectionMaxIter   = 100

	DefaultFixedPointTolerance = 1e-10
	DefaultFixedPointMaxIter   = 1000

	DefaultNewtonTolerance = 1e-10
	DefaultNewtonMaxIter   = 100

	// ZeroDerivativeTolerance: Newton refuses to divide by |f'(x)| below this.
	ZeroDerivativeTolerance = 1e-10
)

// Status tells how an iteration ended.
type Status int

const (
	// Converged: the stopping criterion was met.
	Converged Status = iota
	// Overflowed: an iterate left the finite range.
	Overflowed
	// Exhausted: the iteration budget ran out first.
	Exhausted
)

// String implements fmt.Stringer.
func (s Status) String() string {
	switch s {
	case Converged:
		return "converged"
	case Overflowed:
		return "overflowed"
	case Exhausted:
		return "exhausted"
	default:
		return fmt.Sprintf("Status(%d)", int(s))
	}
}

// MarshalText renders the status by name in YAML and JSON reports.
func (s Status) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Result is the outcome of a root finder:
//   - Root: the final estimate (for Overflowed, the last finite iterate).
//   - Iterations: iterations performed, including the one that stopped the loop.
//   - Status: how the loop ended.
//   - Errors: per-iteration error estimate, |f(x)| or |Δx| depending on the method.
type Result struct {
	Root       float64   `json:"root" yaml:"root"`
	Iterations int       `json:"iterations" yaml:"iterations"`
	Status     Status    `json:"status" yaml:"status"`
	Errors     []float64 `json:"errors,omitempty" yaml:"errors,omitempty"`
}

// Option configures a root finder via functional arguments.
// An invalid Option is recorded and surfaced as ErrOptionViolation.
type Option func(*Options)

// Options holds parameters and callbacks shared by all root finders.
// Zero Tolerance and MaxIter select the method's own defaults.
type Options struct {
	// Tolerance is the stopping threshold.
	Tolerance float64

	// MaxIter bounds the number of iterations.
	MaxIter int

	// Logger receives one Debug entry per iteration.
	Logger logrus.FieldLogger

	// OnIteration is called after every iteration with its 1-based index,
	// the current iterate and its error estimate.
	OnIteration func(iter int, x, err float64)

	// internal error recorded during option parsing
	err error
}

// DefaultOptions returns Options with method defaults left unset,
// a discarding logger and a no-op OnIteration.
func DefaultOptions() Options {
	return Options{
		Logger:      logging.Discard(),
		OnIteration: func(int, float64, float64) {},
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

// WithMaxIter bounds the iteration count. n must be > 0.
func WithMaxIter(n int) Option {
	return func(o *Options) {
		if n <= 0 {
			o.err = fmt.Errorf("%w: MaxIter must be > 0 (%d)", ErrOptionViolation, n)
			return
		}
		o.MaxIter = n
	}
}

// WithLogger routes the per-iteration trace to l.
func WithLogger(l logrus.FieldLogger) Option {
	return func(o *Options) {
		if l != nil {
			o.Logger = l
		}
	}
}

// WithOnIteration registers a per-iteration callback.
func WithOnIteration(fn func(iter int, x, err float64)) Option {
	return func(o *Options) {
		if fn != nil {
			o.OnIteration = fn
		}
	}
}

// apply folds opts over the defaults and fills in the method's tolerance and budget.
func apply(tol float64, maxIter int, opts []Option) (Options, error) {
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
	if o.Tolerance == 0 {
		o.Tolerance = tol
	}
	if o.MaxIter == 0 {
		o.MaxIter = maxIter
	}

	return o, nil
}

// step records one iteration in r, then logs and reports it.
func (o Options) step(r *Result, method string, x, e float64) {
	r.Iterations++
	r.Errors = append(r.Errors, e)
	o.Logger.WithFields(logrus.Fields{"method": method, "iter": r.Iterations, "x": x, "err": e}).Debug("iteration")
	o.OnIteration(r.Iterations, x, e)
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
