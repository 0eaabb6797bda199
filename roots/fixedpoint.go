package roots

import (
	"fmt"
	"math"
)

// FixedPoint iterates x ← g(x) from x0 until |g(x) − x| < Tolerance.
//
// Outcomes:
//   - Converged: Root is the last g(x), error nil.
//   - Overflowed: g(x) became ±Inf or NaN. Root is the last finite iterate,
//     Iterations the iteration that overflowed, error ErrOverflowDuringIteration.
//   - Exhausted: MaxIter iterations without convergence. Root is the last
//     iterate, error ErrDidNotConverge.
//
// The Result is filled in for every outcome. Errors records |g(x) − x| for
// every iteration, the overflowing one included (as +Inf or NaN), so
// len(Errors) == Iterations and OnIteration sees each step.
// Defaults: Tolerance 1e-10, MaxIter 1000.
func FixedPoint(g func(float64) float64, x0 float64, opts ...Option) (Result, error) {
	o, err := apply(DefaultFixedPointTolerance, DefaultFixedPointMaxIter, opts)
	if err != nil {
		return Result{}, err
	}
	if g == nil {
		return Result{}, fmt.Errorf("%w: FixedPoint: nil function", ErrInvalidInput)
	}
	if !finite(x0) {
		return Result{}, fmt.Errorf("%w: FixedPoint: x0=%v", ErrInvalidInput, x0)
	}

	res := Result{Root: x0}
	x := x0
	var next, delta float64
	for res.Iterations < o.MaxIter {
		next = g(x)
		if !finite(next) {
			// the failing step is still recorded; Root stays on the last finite x
			o.step(&res, "fixed-point", next, math.Abs(next-x))
			res.Status = Overflowed
			o.Logger.WithField("iter", res.Iterations).WithField("x", x).Warn("fixed-point iterate overflowed")
			return res, fmt.Errorf("FixedPoint: iteration %d, x=%g: %w", res.Iterations, x, ErrOverflowDuringIteration)
		}
		delta = math.Abs(next - x)
		o.step(&res, "fixed-point", next, delta)
		res.Root = next
		if delta < o.Tolerance {
			res.Status = Converged
			return res, nil
		}
		x = next
	}
	res.Status = Exhausted

	return res, fmt.Errorf("FixedPoint: %d iterations, x=%g: %w", res.Iterations, x, ErrDidNotConverge)
}
