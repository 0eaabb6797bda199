package roots

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/diff/fd"
)

// Newton runs Newton–Raphson from x0: x ← x − f(x)/f'(x).
//
// df may be nil, in which case f' is estimated with a central finite
// difference. The loop stops with Converged when |f(x)| < Tolerance or the
// step |Δx| < Tolerance. Errors records |f(x)| at each iterate.
//
// Errors: ErrZeroDerivative when |f'(x)| < ZeroDerivativeTolerance,
// ErrOverflowDuringIteration, ErrDidNotConverge, ErrInvalidInput, ErrOptionViolation.
// Defaults: Tolerance 1e-10, MaxIter 100.
func Newton(f, df func(float64) float64, x0 float64, opts ...Option) (Result, error) {
	o, err := apply(DefaultNewtonTolerance, DefaultNewtonMaxIter, opts)
	if err != nil {
		return Result{}, err
	}
	if f == nil {
		return Result{}, fmt.Errorf("%w: Newton: nil function", ErrInvalidInput)
	}
	if !finite(x0) {
		return Result{}, fmt.Errorf("%w: Newton: x0=%v", ErrInvalidInput, x0)
	}
	if df == nil {
		df = NumericDerivative(f)
	}

	res := Result{Root: x0}
	x := x0
	var fx, d, next float64
	for res.Iterations < o.MaxIter {
		fx = f(x)
		o.step(&res, "newton", x, math.Abs(fx))
		res.Root = x
		if math.Abs(fx) < o.Tolerance {
			res.Status = Converged
			return res, nil
		}

		d = df(x)
		if math.Abs(d) < ZeroDerivativeTolerance {
			res.Status = Exhausted
			return res, fmt.Errorf("Newton: f'(%g)=%g: %w", x, d, ErrZeroDerivative)
		}
		next = x - fx/d
		if !finite(next) {
			res.Status = Overflowed
			return res, fmt.Errorf("Newton: iteration %d, x=%g: %w", res.Iterations, x, ErrOverflowDuringIteration)
		}
		if math.Abs(next-x) < o.Tolerance {
			res.Root = next
			res.Status = Converged
			return res, nil
		}
		x = next
	}
	res.Status = Exhausted

	return res, fmt.Errorf("Newton: %d iterations, x=%g: %w", res.Iterations, x, ErrDidNotConverge)
}

// NumericDerivative returns x ↦ f'(x) estimated by a central difference.
func NumericDerivative(f func(float64) float64) func(float64) float64 {
	settings := &fd.Settings{Formula: fd.Central}

	return func(x float64) float64 {
		return fd.Derivative(f, x, settings)
	}
}
