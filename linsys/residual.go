package linsys

import (
	"fmt"

	"gonum.org/v1/gonum/floats"

	"github.com/katalvlaran/numlab/matrix"
)

// Residual returns ‖A·x − b‖₂ evaluated on the original A and b.
// A small residual means x satisfies the equations; it says nothing about how
// close x is to the exact solution when A is ill-conditioned (see ForwardError).
func Residual(a *matrix.Dense, x, b []float64) (float64, error) {
	if err := matrix.ValidateSquare(a); err != nil {
		return 0, fmt.Errorf("%w: Residual: %w", ErrInvalidInput, err)
	}
	if err := matrix.ValidateVecLen(b, a.Rows()); err != nil {
		return 0, fmt.Errorf("%w: Residual: b: %w", ErrInvalidInput, err)
	}
	ax, err := matrix.MatVec(a, x)
	if err != nil {
		return 0, fmt.Errorf("%w: Residual: x: %w", ErrInvalidInput, err)
	}
	if len(ax) == 0 {
		return 0, nil
	}
	floats.Sub(ax, b)

	return floats.Norm(ax, 2), nil
}

// ForwardError returns ‖x − xTrue‖₂.
func ForwardError(x, xTrue []float64) (float64, error) {
	if len(x) != len(xTrue) {
		return 0, fmt.Errorf("%w: ForwardError: len %d vs %d: %w",
			ErrInvalidInput, len(x), len(xTrue), matrix.ErrDimensionMismatch)
	}
	if len(x) == 0 {
		return 0, nil
	}

	return floats.Distance(x, xTrue, 2), nil
}

// Check scores a computed solution against s and returns the residual and
// the forward error.
func (s System) Check(x []float64) (residual, forward float64, err error) {
	if residual, err = Residual(s.A, x, s.B); err != nil {
		return 0, 0, err
	}
	if forward, err = ForwardError(x, s.X); err != nil {
		return 0, 0, err
	}

	return residual, forward, nil
}
