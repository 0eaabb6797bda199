// Package relax solves A·x = b iteratively.
//
// Jacobi builds every coordinate of a sweep from the previous iterate;
// Gauss–Seidel uses coordinates already updated in the current sweep and
// usually needs fewer sweeps. Both converge for strictly diagonally dominant A.
//
// Contract:
//   - A, b and x0 are never modified; Result.X is a fresh slice.
//   - Running out of sweeps is not an error: Status is Exhausted and X is the
//     last iterate. A non-finite iterate stops the run with Status Overflowed.
//
// Complexity: O(n²) per sweep, O(n) extra memory.
package relax

import (
	"fmt"
	"math"

	"github.com/sirupsen/logrus"
	"gonum.org/v1/gonum/floats"

	"github.com/katalvlaran/numlab/matrix"
)

// Jacobi: x_new[i] = (b[i] − Σ_{j≠i} A[i][j]·x[j]) / A[i][i].
func Jacobi(a *matrix.Dense, b, x0 []float64, opts ...Option) (Result, error) {
	return run("jacobi", a, b, x0, jacobiSweep, opts)
}

// GaussSeidel: x[i] = (b[i] − Σ_{j<i} A[i][j]·x_new[j] − Σ_{j>i} A[i][j]·x[j]) / A[i][i].
func GaussSeidel(a *matrix.Dense, b, x0 []float64, opts ...Option) (Result, error) {
	return run("gauss-seidel", a, b, x0, gaussSeidelSweep, opts)
}

// sweepFunc writes the next iterate into next given the current one in cur.
type sweepFunc func(rows [][]float64, b, cur, next []float64)

func jacobiSweep(rows [][]float64, b, cur, next []float64) {
	var i, j int
	var sum float64
	for i = range rows {
		sum = matrix.ZeroSum
		for j = range cur {
			if j != i {
				sum += rows[i][j] * cur[j]
			}
		}
		next[i] = (b[i] - sum) / rows[i][i]
	}
}

func gaussSeidelSweep(rows [][]float64, b, cur, next []float64) {
	copy(next, cur)
	var i, j int
	var sum float64
	for i = range rows {
		sum = matrix.ZeroSum
		for j = range next {
			if j != i {
				sum += rows[i][j] * next[j]
			}
		}
		next[i] = (b[i] - sum) / rows[i][i]
	}
}

func run(method string, a *matrix.Dense, b, x0 []float64, sweep sweepFunc, opts []Option) (Result, error) {
	o, err := apply(opts)
	if err != nil {
		return Result{}, err
	}
	rows, err := validate(method, a, b, x0)
	if err != nil {
		return Result{}, err
	}

	n := len(rows)
	cur := append(make([]float64, 0, n), x0...)
	next := make([]float64, n)
	res := Result{Deltas: make([]float64, 0, o.MaxIter)}
	log := o.Logger.WithField("method", method)

	if n == 0 {
		res.X = cur
		res.Status = Converged
		return res, nil
	}

	var delta float64
	for res.Iterations < o.MaxIter {
		sweep(rows, b, cur, next)
		res.Iterations++
		if !allFinite(next) {
			log.WithField("iter", res.Iterations).Warn("iterate overflowed")
			res.X = cur
			res.Status = Overflowed
			return res, nil
		}
		delta = floats.Distance(next, cur, inf)
		res.Deltas = append(res.Deltas, delta)
		res.MaxDelta = delta
		cur, next = next, cur

		// cur is recycled by the next sweep; the entry keeps its own copy
		log.WithFields(logrus.Fields{"iter": res.Iterations, "x": append([]float64(nil), cur...), "delta": delta}).Debug("sweep")
		o.OnSweep(res.Iterations, cur, delta)

		if delta < o.Tolerance {
			res.X = cur
			res.Status = Converged
			return res, nil
		}
	}
	res.X = cur
	res.Status = Exhausted
	log.WithFields(logrus.Fields{"iter": res.Iterations, "delta": delta}).Info("sweep budget exhausted")

	return res, nil
}

var inf = math.Inf(1)

func allFinite(x []float64) bool {
	for _, v := range x {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}

	return true
}

// validate checks shapes and the diagonal, returning A as row views.
func validate(method string, a *matrix.Dense, b, x0 []float64) ([][]float64, error) {
	if err := matrix.ValidateSquare(a); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrInvalidInput, method, err)
	}
	n := a.Rows()
	if err := matrix.ValidateVecLen(b, n); err != nil {
		return nil, fmt.Errorf("%w: %s: b: %w", ErrInvalidInput, method, err)
	}
	if err := matrix.ValidateVecLen(x0, n); err != nil {
		return nil, fmt.Errorf("%w: %s: x0: %w", ErrInvalidInput, method, err)
	}
	if err := matrix.ValidateFiniteVec(x0); err != nil {
		return nil, fmt.Errorf("%w: %s: x0: %w", ErrInvalidInput, method, err)
	}

	rows := make([][]float64, n)
	var err error
	for i := range rows {
		if rows[i], err = a.RowView(i); err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrInvalidInput, method, err)
		}
		if rows[i][i] == 0 {
			return nil, fmt.Errorf("%s: row %d: %w", method, i, ErrZeroDiagonal)
		}
	}

	return rows, nil
}
