// SPDX-License-Identifier: MIT
// Package gauss implements the direct solver: augmentation, forward
// elimination with partial pivoting, back substitution and the Solve pipeline.
//
// Contract:
//   - Pivot selection is strict: the first row holding the largest |value| wins,
//     so ties never cause a swap.
//   - A column whose best pivot is below PivotTolerance is skipped (Warn +
//     OnSkip), never an error; BackSubstitute then reports ErrNearZeroPivot.
//   - ForwardEliminate mutates its argument; Augment and Solve never touch
//     the caller's A and b.
//
// Complexity:
//   - Elimination O(n³), substitution O(n²), memory O(n²) for the augmented copy.
package gauss

import (
	"fmt"
	"math"

	"github.com/sirupsen/logrus"

	"github.com/katalvlaran/numlab/internal/logging"
	"github.com/katalvlaran/numlab/linsys"
	"github.com/katalvlaran/numlab/matrix"
)

// Operation tags used in wrapped errors.
const (
	opAugment   = "Augment"
	opEliminate = "ForwardEliminate"
	opBackSub   = "BackSubstitute"
	opSolve     = "Solve"
)

// inputErrorf tags err with the operation and ErrInvalidInput, keeping both matchable.
func inputErrorf(op string, err error) error {
	return fmt.Errorf("%w: %s: %w", ErrInvalidInput, op, err)
}

// Augment returns the n×(n+1) matrix [A | b]. A and b are copied.
func Augment(a *matrix.Dense, b []float64) (*matrix.Dense, error) {
	if err := matrix.ValidateSquare(a); err != nil {
		return nil, inputErrorf(opAugment, err)
	}
	n := a.Rows()
	if err := matrix.ValidateVecLen(b, n); err != nil {
		return nil, inputErrorf(opAugment, err)
	}
	if n == 0 {
		return matrix.NewDenseFromRows(nil)
	}

	aug, err := matrix.NewDense(n, n+1)
	if err != nil {
		return nil, inputErrorf(opAugment, err)
	}
	var i int
	var src, dst []float64
	for i = 0; i < n; i++ {
		if src, err = a.RowView(i); err != nil {
			return nil, inputErrorf(opAugment, err)
		}
		if dst, err = aug.RowView(i); err != nil {
			return nil, inputErrorf(opAugment, err)
		}
		copy(dst, src)
		dst[n] = b[i]
	}

	return aug, nil
}

// ForwardEliminate reduces the augmented matrix aug to upper-triangular form
// in place and returns it.
//
// For each column i: pick the pivot row by strict max |aug[r][i]| over r ≥ i,
// swap it into place, skip the column if |pivot| < PivotTolerance, otherwise
// subtract factor = aug[j][i]/pivot times row i from every row j > i.
//
// Errors: ErrInvalidInput (nil, not n×(n+1)), ErrOptionViolation.
func ForwardEliminate(aug *matrix.Dense, opts ...Option) (*matrix.Dense, error) {
	o, err := apply(opts)
	if err != nil {
		return nil, err
	}

	return forwardEliminate(aug, o)
}

func forwardEliminate(aug *matrix.Dense, o Options) (*matrix.Dense, error) {
	if err := matrix.ValidateAugmented(aug); err != nil {
		return nil, inputErrorf(opEliminate, err)
	}
	n := aug.Rows()
	log := o.Logger
	debug := logging.DebugEnabled(log)
	if debug {
		log.WithField("matrix", "\n"+matrix.FormatAugmented(aug)).Debug("initial matrix")
	}

	var (
		i, j, k, maxRow int
		best, pivot     float64
		factor          float64
		rowI, rowJ      []float64
		err             error
	)
	for i = 0; i < n; i++ {
		// partial pivot: strictly greater, so the first maximum stays
		maxRow = i
		best = math.Abs(mustAt(aug, i, i))
		for j = i + 1; j < n; j++ {
			if v := math.Abs(mustAt(aug, j, i)); v > best {
				best, maxRow = v, j
			}
		}
		if maxRow != i {
			if err = aug.SwapRows(i, maxRow); err != nil {
				return nil, inputErrorf(opEliminate, err)
			}
			log.WithFields(logrus.Fields{"col": i, "row": i, "with": maxRow}).Info("swap rows")
			o.OnSwap(i, i, maxRow)
		}

		if rowI, err = aug.RowView(i); err != nil {
			return nil, inputErrorf(opEliminate, err)
		}
		pivot = rowI[i]
		if math.Abs(pivot) < o.PivotTolerance {
			log.WithFields(logrus.Fields{"row": i, "col": i, "pivot": pivot}).
				Warn("near-zero pivot, column skipped")
			o.OnSkip(i, pivot)
			continue
		}

		for j = i + 1; j < n; j++ {
			if rowJ, err = aug.RowView(j); err != nil {
				return nil, inputErrorf(opEliminate, err)
			}
			factor = rowJ[i] / pivot
			for k = i; k <= n; k++ {
				rowJ[k] -= factor * rowI[k]
			}
			o.OnEliminate(j, i, factor)
			if debug {
				log.WithFields(logrus.Fields{
					"row":    j,
					"col":    i,
					"factor": factor,
					"matrix": "\n" + matrix.FormatAugmented(aug),
				}).Debug("eliminate")
			}
		}
	}
	if debug {
		log.WithField("matrix", "\n"+matrix.FormatAugmented(aug)).Debug("upper triangular")
	}

	return aug, nil
}

// BackSubstitute solves the upper-triangular augmented system
//
//	x[i] = (upper[i][n] − Σ_{j>i} upper[i][j]·x[j]) / upper[i][i],  i = n−1 … 0.
//
// A diagonal entry with |upper[i][i]| < PivotTolerance yields ErrNearZeroPivot;
// a non-finite x[i] yields matrix.ErrNaNInf. upper is not modified.
func BackSubstitute(upper *matrix.Dense, opts ...Option) ([]float64, error) {
	o, err := apply(opts)
	if err != nil {
		return nil, err
	}

	return backSubstitute(upper, o)
}

func backSubstitute(upper *matrix.Dense, o Options) ([]float64, error) {
	if err := matrix.ValidateAugmented(upper); err != nil {
		return nil, inputErrorf(opBackSub, err)
	}
	n := upper.Rows()
	x := make([]float64, n)

	var (
		i, j int
		sum  float64
		row  []float64
		err  error
	)
	for i = n - 1; i >= 0; i-- {
		if row, err = upper.RowView(i); err != nil {
			return nil, inputErrorf(opBackSub, err)
		}
		if math.Abs(row[i]) < o.PivotTolerance || row[i] == 0 {
			return nil, fmt.Errorf("%s: row %d, pivot %g: %w", opBackSub, i, row[i], ErrNearZeroPivot)
		}
		sum = matrix.ZeroSum
		for j = i + 1; j < n; j++ {
			sum += row[j] * x[j]
		}
		x[i] = (row[n] - sum) / row[i]
		if math.IsNaN(x[i]) || math.IsInf(x[i], 0) {
			return nil, fmt.Errorf("%s: row %d: %w", opBackSub, i, matrix.ErrNaNInf)
		}
	}
	o.Logger.WithField("x", x).Debug("back substitution done")

	return x, nil
}

// Solve runs the whole pipeline on copies of a and b: augment, eliminate,
// back-substitute, then measure the residual against the originals.
// User hooks passed in opts still fire; Solve records swaps and skips on top.
func Solve(a *matrix.Dense, b []float64, opts ...Option) (*Solution, error) {
	o, err := apply(opts)
	if err != nil {
		return nil, err
	}

	aug, err := Augment(a, b)
	if err != nil {
		return nil, err
	}

	sol := &Solution{}
	userSwap, userSkip := o.OnSwap, o.OnSkip
	o.OnSwap = func(col, row, with int) {
		sol.Swaps = append(sol.Swaps, Swap{Col: col, Row: row, With: with})
		userSwap(col, row, with)
	}
	o.OnSkip = func(col int, pivot float64) {
		sol.Skipped = append(sol.Skipped, col)
		userSkip(col, pivot)
	}

	if _, err = forwardEliminate(aug, o); err != nil {
		return nil, err
	}
	if sol.X, err = backSubstitute(aug, o); err != nil {
		if len(sol.Skipped) > 0 {
			return nil, fmt.Errorf("%s: skipped columns %v: %w", opSolve, sol.Skipped, err)
		}
		return nil, fmt.Errorf("%s: %w", opSolve, err)
	}
	if sol.Residual, err = linsys.Residual(a, sol.X, b); err != nil {
		return nil, fmt.Errorf("%s: %w", opSolve, err)
	}

	return sol, nil
}

// mustAt reads an element whose indices the caller has already bounded.
func mustAt(m *matrix.Dense, i, j int) float64 {
	v, err := m.At(i, j)
	if err != nil {
		panic(fmt.Sprintf("gauss: internal index (%d,%d): %v", i, j, err))
	}

	return v
}
