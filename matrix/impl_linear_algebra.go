// SPDX-License-Identifier: MIT
// Package matrix provides the small set of universal kernels the solvers need:
// matrix-vector product, closeness checks and triangular-shape checks.
// All functions perform fail-fast validation and return wrapped sentinels.
//
// Notes:
//   - Every kernel has a *Dense fast path over the flat buffer and an
//     interface fallback via At; both visit elements in the same i→j order,
//     so results are bitwise identical.

package matrix

import (
	"fmt"
	"math"
)

// ZeroSum is the initial sum value for dot products and substitutions.
const ZeroSum = 0.0

// Operation name constants for unified error wrapping.
const (
	opMatVec   = "MatVec"
	opAllClose = "AllClose"
	opLowerMax = "MaxAbsBelowDiagonal"
	opIdentity = "NewIdentity"
)

// matrixErrorf wraps err with an operation tag, preserving the original error via %w.
// Use only when err != nil.
func matrixErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}

// NewIdentity returns the n×n identity.
func NewIdentity(n int) (*Dense, error) {
	m, err := NewDense(n, n)
	if err != nil {
		return nil, matrixErrorf(opIdentity, err)
	}
	var i int
	for i = 0; i < n; i++ {
		m.data[i*n+i] = 1.0
	}

	return m, nil
}

// MatVec computes y = m * x for a column vector x.
//
// Contract: m non-nil; len(x) == m.Cols().
// Fast-path: *Dense performs one pass per row with flat indexing.
// Determinism: fixed i→j loop order.
// Complexity: Time O(r*c), Space O(r) for y.
func MatVec(m Matrix, x []float64) ([]float64, error) {
	if err := ValidateNotNil(m); err != nil {
		return nil, matrixErrorf(opMatVec, err)
	}
	if err := ValidateVecLen(x, m.Cols()); err != nil {
		return nil, matrixErrorf(opMatVec, err)
	}
	rows, cols := m.Rows(), m.Cols()
	y := make([]float64, rows)

	var i, j int
	var acc float64
	if d, ok := m.(*Dense); ok {
		var base int
		for i = 0; i < d.r; i++ {
			acc = ZeroSum
			base = i * d.c
			for j = 0; j < d.c; j++ {
				acc += d.data[base+j] * x[j]
			}
			y[i] = acc
		}

		return y, nil
	}

	// Fallback: interface-based dot-products via At.
	var mv float64
	var err error
	for i = 0; i < rows; i++ {
		acc = ZeroSum
		for j = 0; j < cols; j++ {
			mv, err = m.At(i, j)
			if err != nil {
				return nil, matrixErrorf(opMatVec, err)
			}
			acc += mv * x[j]
		}
		y[i] = acc
	}

	return y, nil
}

// AllClose reports whether |a_ij - b_ij| <= atol + rtol*|b_ij| for all entries.
// atol==0 selects DefaultEpsilon. Panics on negative/non-finite tolerances.
func AllClose(a, b Matrix, rtol, atol float64) (bool, error) {
	if err := ValidateSameShape(a, b); err != nil {
		return false, matrixErrorf(opAllClose, err)
	}
	atol = mustEpsilon(atol)
	if rtol < 0 || math.IsNaN(rtol) || math.IsInf(rtol, 0) {
		panic(panicEpsilonInvalid)
	}
	var i, j int
	var av, bv float64
	var err error
	for i = 0; i < a.Rows(); i++ {
		for j = 0; j < a.Cols(); j++ {
			if av, err = a.At(i, j); err != nil {
				return false, matrixErrorf(opAllClose, err)
			}
			if bv, err = b.At(i, j); err != nil {
				return false, matrixErrorf(opAllClose, err)
			}
			if math.Abs(av-bv) > atol+rtol*math.Abs(bv) {
				return false, nil
			}
		}
	}

	return true, nil
}

// MaxAbsBelowDiagonal returns max |m_ij| over i > j, restricted to the leading
// min(rows, cols) square. 0 means m is upper triangular.
// Works on augmented matrices: the extra right-hand column is never below the diagonal.
func MaxAbsBelowDiagonal(m Matrix) (float64, error) {
	if err := ValidateNotNil(m); err != nil {
		return 0, matrixErrorf(opLowerMax, err)
	}
	n := m.Rows()
	if m.Cols() < n {
		n = m.Cols()
	}
	var i, j int
	var v, best float64
	var err error
	for i = 1; i < m.Rows(); i++ {
		for j = 0; j < i && j < n; j++ {
			if v, err = m.At(i, j); err != nil {
				return 0, matrixErrorf(opLowerMax, err)
			}
			if math.Abs(v) > best {
				best = math.Abs(v)
			}
		}
	}

	return best, nil
}
