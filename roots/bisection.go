package roots

import (
	"fmt"
	"math"

	"github.com/sirupsen/logrus"
)

// Bisection halves [a, b] around a sign change of f.
//
// Each iteration evaluates the midpoint m and records |f(m)|. It stops with
// Converged when f(m) == 0, |f(m)| < Tolerance, or the half-width (b−a)/2 drops
// below Tolerance; otherwise it keeps the half on which f changes sign.
// Running out of MaxIter returns the last midpoint with Status Exhausted and
// ErrDidNotConverge.
//
// Defaults: Tolerance 1e-6, MaxIter 100.
// Errors: ErrInvalidInput, ErrNoRootInInterval, ErrDidNotConverge, ErrOptionViolation.
func Bisection(f func(float64) float64, a, b float64, opts ...Option) (Result, error) {
	o, err := apply(DefaultBisectionTolerance, DefaultBisectionMaxIter, opts)
	if err != nil {
		return Result{}, err
	}
	if f == nil {
		return Result{}, fmt.Errorf("%w: Bisection: nil function", ErrInvalidInput)
	}
	if !finite(a) || !finite(b) {
		return Result{}, fmt.Errorf("%w: Bisection: endpoints [%v, %v]", ErrInvalidInput, a, b)
	}

	fa, fb := f(a), f(b)
	if !(fa*fb < 0) {
		return Result{}, fmt.Errorf("Bisection: f(%g)=%g, f(%g)=%g: %w", a, fa, b, fb, ErrNoRootInInterval)
	}

	res := Result{Errors: make([]float64, 0, o.MaxIter)}
	var mid, fm float64
	for res.Iterations < o.MaxIter {
		mid = (a + b) / 2
		fm = f(mid)
		o.step(&res, "bisection", mid, math.Abs(fm))
		res.Root = mid

		if fm == 0 || math.Abs(fm) < o.Tolerance || (b-a)/2 < o.Tolerance {
			res.Status = Converged
			return res, nil
		}
		if fa*fm < 0 {
			b = mid
		} else {
			a, fa = mid, fm
		}
		o.Logger.WithFields(logrus.Fields{"a": a, "b": b}).Debug("bracket")
	}
	res.Status = Exhausted

	return res, fmt.Errorf("Bisection: %d iterations, last bracket [%g, %g]: %w", res.Iterations, a, b, ErrDidNotConverge)
}
