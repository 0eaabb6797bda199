// SPDX-License-Identifier: MIT
// Package matrix_test contains test helpers
//
// Purpose:
//   • Provide small, deterministic test fixtures and utilities for kernels.
//   • Keep all data finite and well-formed to avoid numeric-policy interference.

package matrix_test

import (
	"testing"

	"github.com/katalvlaran/numlab/matrix"
	"github.com/stretchr/testify/require"
)

// hide wraps any Matrix to hide its concrete type from type assertions,
// forcing kernels onto their At/Set fallback path.
type hide struct{ matrix.Matrix }

// MustDense allocates an r×c *Dense or fails the test.
func MustDense(t *testing.T, r, c int) *matrix.Dense {
	t.Helper()
	m, err := matrix.NewDense(r, c)
	require.NoError(t, err, "NewDense(%d,%d)", r, c)

	return m
}

// FromRows builds a Dense from literal rows or fails the test.
func FromRows(t *testing.T, rows [][]float64) *matrix.Dense {
	t.Helper()
	m, err := matrix.NewDenseFromRows(rows)
	require.NoError(t, err)

	return m
}

// MustAt reads (i,j) or fails the test.
func MustAt(t *testing.T, m matrix.Matrix, i, j int) float64 {
	t.Helper()
	v, err := m.At(i, j)
	require.NoError(t, err, "At(%d,%d)", i, j)

	return v
}

// MustSet writes (i,j) or fails the test.
func MustSet(t *testing.T, m matrix.Matrix, i, j int, v float64) {
	t.Helper()
	require.NoError(t, m.Set(i, j, v), "Set(%d,%d)", i, j)
}

// CompareExact asserts m equals want element-wise (bitwise float equality).
func CompareExact(t *testing.T, want [][]float64, m matrix.Matrix) {
	t.Helper()
	require.Equal(t, len(want), m.Rows(), "rows")
	for i := range want {
		require.Equal(t, len(want[i]), m.Cols(), "cols")
		for j := range want[i] {
			require.Equalf(t, want[i][j], MustAt(t, m, i, j), "mismatch at [%d,%d]", i, j)
		}
	}
}

// hilbertRows returns the n×n Hilbert matrix as literal rows.
func hilbertRows(n int) [][]float64 {
	out := make([][]float64, n)
	for i := 0; i < n; i++ {
		out[i] = make([]float64, n)
		for j := 0; j < n; j++ {
			out[i][j] = 1.0 / float64(i+j+1)
		}
	}

	return out
}
