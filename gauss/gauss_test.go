// SPDX-License-Identifier: MIT
// Package gauss_test validates augmentation, elimination, substitution and
// the Solve pipeline, including the pivoting invariants and the
// degenerate-pivot policy.
package gauss_test

import (
	"math"
	"testing"

	"github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/numlab/gauss"
	"github.com/katalvlaran/numlab/linsys"
	"github.com/katalvlaran/numlab/matrix"
)

const (
	seedDet = 7
	tolEq   = 1e-12
)

// textbook 3×3 system with x = [1,2,3]
var (
	rowsA3 = [][]float64{{4, 1, 2}, {2, 5, 1}, {1, 1, 6}}
	x3     = []float64{1, 2, 3}
	b3     = []float64{12, 15, 21}
)

func mustDense(t *testing.T, rows [][]float64) *matrix.Dense {
	t.Helper()
	m, err := matrix.NewDenseFromRows(rows)
	require.NoError(t, err)

	return m
}

func TestAugment(t *testing.T) {
	t.Parallel()

	a := mustDense(t, rowsA3)
	b := append([]float64(nil), b3...)
	aug, err := gauss.Augment(a, b)
	require.NoError(t, err)
	assert.Equal(t, [][]float64{{4, 1, 2, 12}, {2, 5, 1, 15}, {1, 1, 6, 21}}, aug.ToRows())

	// the result owns its storage
	require.NoError(t, aug.Set(0, 0, 99))
	require.NoError(t, aug.Set(2, 3, -1))
	assert.Equal(t, rowsA3, a.ToRows())
	assert.Equal(t, b3, b)
}

func TestAugment_Invalid(t *testing.T) {
	t.Parallel()

	_, err := gauss.Augment(nil, b3)
	require.ErrorIs(t, err, gauss.ErrInvalidInput)
	require.ErrorIs(t, err, matrix.ErrNilMatrix)

	_, err = gauss.Augment(mustDense(t, [][]float64{{1, 2, 3}, {4, 5, 6}}), []float64{1, 2})
	require.ErrorIs(t, err, gauss.ErrInvalidInput)
	require.ErrorIs(t, err, matrix.ErrDimensionMismatch)

	_, err = gauss.Augment(mustDense(t, rowsA3), []float64{1, 2})
	require.ErrorIs(t, err, gauss.ErrInvalidInput)
	require.ErrorIs(t, err, matrix.ErrDimensionMismatch)
}

// TestSolve_Textbook is the n=3 end-to-end scenario.
func TestSolve_Textbook(t *testing.T) {
	t.Parallel()

	sol, err := gauss.Solve(mustDense(t, rowsA3), b3)
	require.NoError(t, err)
	require.Len(t, sol.X, 3)
	assert.InDeltaSlice(t, x3, sol.X, 1e-12)
	assert.Less(t, sol.Residual, 1e-9)
	assert.Empty(t, sol.Swaps)
	assert.Empty(t, sol.Skipped)
}

func TestForwardEliminate_Textbook(t *testing.T) {
	t.Parallel()

	aug, err := gauss.Augment(mustDense(t, rowsA3), b3)
	require.NoError(t, err)
	upper, err := gauss.ForwardEliminate(aug)
	require.NoError(t, err)
	assert.Same(t, aug, upper)

	want := [][]float64{{4, 1, 2, 12}, {0, 4.5, 0, 9}, {0, 0, 5.5, 16.5}}
	got := upper.ToRows()
	for i := range want {
		assert.InDeltaSlice(t, want[i], got[i], tolEq, "row %d", i)
	}

	x, err := gauss.BackSubstitute(upper)
	require.NoError(t, err)
	assert.InDeltaSlice(t, x3, x, tolEq)
}

// TestSolve_RandomSystems reproduces x on random integer systems of growing size.
func TestSolve_RandomSystems(t *testing.T) {
	t.Parallel()

	rng := linsys.RNGFromSeed(seedDet)
	for _, n := range []int{1, 2, 3, 5, 8, 12} {
		s, err := linsys.GenerateRandom(n, rng)
		require.NoError(t, err)
		cond, err := matrix.Cond(s.A)
		require.NoError(t, err)
		if cond > 1e8 {
			// an integer draw can be (nearly) singular; that case has its own test
			continue
		}

		sol, err := gauss.Solve(s.A, s.B)
		require.NoError(t, err, "n=%d", n)
		assert.InDeltaSlice(t, s.X, sol.X, 1e-12*math.Max(1, cond), "n=%d", n)
		assert.Less(t, sol.Residual, 1e-9, "n=%d", n)
	}
}

// TestForwardEliminate_UpperTriangular checks the output shape and that a
// second pass leaves the sub-diagonal at ≈0.
func TestForwardEliminate_UpperTriangular(t *testing.T) {
	t.Parallel()

	rng := linsys.RNGFromSeed(seedDet)
	for _, n := range []int{3, 5, 8} {
		s, err := linsys.GenerateRandom(n, rng)
		require.NoError(t, err)
		aug, err := gauss.Augment(s.A, s.B)
		require.NoError(t, err)

		upper, err := gauss.ForwardEliminate(aug)
		require.NoError(t, err)
		below, err := matrix.MaxAbsBelowDiagonal(upper)
		require.NoError(t, err)
		assert.Less(t, below, 1e-12, "n=%d", n)

		first := upper.CloneDense()
		swaps := 0
		again, err := gauss.ForwardEliminate(upper, gauss.WithOnSwap(func(int, int, int) { swaps++ }))
		require.NoError(t, err)
		below, err = matrix.MaxAbsBelowDiagonal(again)
		require.NoError(t, err)
		assert.Less(t, below, 1e-12, "n=%d", n)
		assert.Zero(t, swaps, "n=%d", n)

		ok, err := matrix.AllClose(again, first, 1e-12, 1e-12)
		require.NoError(t, err)
		assert.True(t, ok, "n=%d", n)
	}
}

// TestForwardEliminate_PivotInvariant: with partial pivoting every
// elimination factor a[j][i]/pivot has magnitude at most 1.
func TestForwardEliminate_PivotInvariant(t *testing.T) {
	t.Parallel()

	rng := linsys.RNGFromSeed(seedDet)
	for trial := 0; trial < 20; trial++ {
		s, err := linsys.GenerateRandom(6, rng)
		require.NoError(t, err)
		aug, err := gauss.Augment(s.A, s.B)
		require.NoError(t, err)

		_, err = gauss.ForwardEliminate(aug, gauss.WithOnEliminate(func(row, col int, factor float64) {
			assert.Greater(t, row, col)
			assert.LessOrEqual(t, math.Abs(factor), 1.0, "trial %d row %d col %d", trial, row, col)
		}))
		require.NoError(t, err)
	}
}

func TestForwardEliminate_SwapPicksFirstMaximum(t *testing.T) {
	t.Parallel()

	// column 0 has |−3| twice below the pivot; the first one must win
	aug := mustDense(t, [][]float64{
		{1, 1, 1, 3},
		{-3, 1, 0, -2},
		{3, 0, 1, 4},
	})
	var swaps []gauss.Swap
	_, err := gauss.ForwardEliminate(aug, gauss.WithOnSwap(func(col, row, with int) {
		swaps = append(swaps, gauss.Swap{Col: col, Row: row, With: with})
	}))
	require.NoError(t, err)
	require.NotEmpty(t, swaps)
	assert.Equal(t, gauss.Swap{Col: 0, Row: 0, With: 1}, swaps[0])
}

// TestSolve_SingularSkipsColumn: two equal rows leave column 2 without a pivot;
// elimination carries on and back substitution refuses to divide.
func TestSolve_SingularSkipsColumn(t *testing.T) {
	t.Parallel()

	a := mustDense(t, [][]float64{{1, 2, 3}, {1, 2, 3}, {2, 1, 1}})
	b := []float64{6, 6, 4}

	aug, err := gauss.Augment(a, b)
	require.NoError(t, err)
	var skipped []int
	upper, err := gauss.ForwardEliminate(aug, gauss.WithOnSkip(func(col int, pivot float64) {
		skipped = append(skipped, col)
		assert.Less(t, math.Abs(pivot), gauss.DefaultPivotTolerance)
	}))
	require.NoError(t, err)
	assert.Equal(t, []int{2}, skipped)

	_, err = gauss.BackSubstitute(upper)
	require.ErrorIs(t, err, gauss.ErrNearZeroPivot)

	_, err = gauss.Solve(a, b)
	require.ErrorIs(t, err, gauss.ErrNearZeroPivot)
}

func TestForwardEliminate_ZeroColumn(t *testing.T) {
	t.Parallel()

	aug := mustDense(t, [][]float64{{0, 1, 1}, {0, 2, 2}})
	var skipped []int
	_, err := gauss.ForwardEliminate(aug, gauss.WithOnSkip(func(col int, _ float64) {
		skipped = append(skipped, col)
	}))
	require.NoError(t, err)
	assert.Equal(t, []int{0}, skipped)
	// rows below a skipped column are left untouched
	assert.Equal(t, [][]float64{{0, 1, 1}, {0, 2, 2}}, aug.ToRows())
}

// TestSolve_ConditionSensitivity compares Hilbert H5 with a well-conditioned
// 5×5 integer system sharing the same solution. Both residuals stay tiny
// (elimination with partial pivoting is backward stable); the Hilbert forward
// error is orders of magnitude larger, tracking cond(H5) ≈ 4.8e5.
func TestSolve_ConditionSensitivity(t *testing.T) {
	t.Parallel()

	xTrue := []float64{1, 2, 3, 4, 5}
	hilbert := make([][]float64, 5)
	for i := range hilbert {
		hilbert[i] = make([]float64, 5)
		for j := range hilbert[i] {
			hilbert[i][j] = 1.0 / float64(i+j+1)
		}
	}
	well := [][]float64{
		{10, 1, 2, 3, 1},
		{2, 12, 1, 4, 3},
		{1, 3, 11, 2, 2},
		{3, 1, 2, 13, 4},
		{2, 2, 1, 3, 9},
	}

	solve := func(rows [][]float64) (fwd, res, cond float64) {
		s, err := linsys.FromRows(rows, xTrue)
		require.NoError(t, err)
		sol, err := gauss.Solve(s.A, s.B)
		require.NoError(t, err)
		_, fwd, err = s.Check(sol.X)
		require.NoError(t, err)
		cond, err = matrix.Cond(s.A)
		require.NoError(t, err)

		return fwd, sol.Residual, cond
	}

	hFwd, hRes, hCond := solve(hilbert)
	wFwd, wRes, wCond := solve(well)

	assert.Greater(t, hCond, 1e5)
	assert.Less(t, wCond, 10.0)
	assert.Greater(t, hFwd, wFwd)
	assert.Greater(t, hFwd, 1e-14)
	assert.Less(t, hFwd, 1e-6)
	assert.Less(t, hRes, 1e-9)
	assert.Less(t, wRes, 1e-9)
}

func TestSolve_Empty(t *testing.T) {
	t.Parallel()

	s, err := linsys.GenerateRandom(0, nil)
	require.NoError(t, err)
	sol, err := gauss.Solve(s.A, s.B)
	require.NoError(t, err)
	assert.Empty(t, sol.X)
	assert.Zero(t, sol.Residual)
}

func TestSolve_DoesNotMutateInputs(t *testing.T) {
	t.Parallel()

	s, err := linsys.GenerateHilbert(4, linsys.RNGFromSeed(seedDet))
	require.NoError(t, err)
	rows := s.A.ToRows()
	b := append([]float64(nil), s.B...)

	_, err = gauss.Solve(s.A, s.B)
	require.NoError(t, err)
	assert.Equal(t, rows, s.A.ToRows())
	assert.Equal(t, b, s.B)
}

func TestSolve_RecordsSwapsAndCallsUserHooks(t *testing.T) {
	t.Parallel()

	a := mustDense(t, [][]float64{{1, 2}, {3, 4}})
	userSwaps := 0
	sol, err := gauss.Solve(a, []float64{5, 11}, gauss.WithOnSwap(func(int, int, int) { userSwaps++ }))
	require.NoError(t, err)
	assert.Equal(t, []gauss.Swap{{Col: 0, Row: 0, With: 1}}, sol.Swaps)
	assert.Equal(t, 1, userSwaps)
	assert.InDeltaSlice(t, []float64{1, 2}, sol.X, tolEq)
}

func TestBackSubstitute_Invalid(t *testing.T) {
	t.Parallel()

	_, err := gauss.BackSubstitute(nil)
	require.ErrorIs(t, err, gauss.ErrInvalidInput)
	_, err = gauss.BackSubstitute(mustDense(t, rowsA3))
	require.ErrorIs(t, err, matrix.ErrDimensionMismatch)

	// tiny but non-zero diagonal still counts as singular
	_, err = gauss.BackSubstitute(mustDense(t, [][]float64{{1e-12, 1}}))
	require.ErrorIs(t, err, gauss.ErrNearZeroPivot)

	// a looser tolerance rejects what the default accepts
	upper := mustDense(t, [][]float64{{1e-3, 1}})
	x, err := gauss.BackSubstitute(upper)
	require.NoError(t, err)
	assert.InDelta(t, 1000.0, x[0], 1e-9)
	_, err = gauss.BackSubstitute(upper, gauss.WithPivotTolerance(1e-2))
	require.ErrorIs(t, err, gauss.ErrNearZeroPivot)
}

func TestForwardEliminate_Logging(t *testing.T) {
	t.Parallel()

	logger, hook := logtest.NewNullLogger()
	logger.SetLevel(logrus.DebugLevel)

	aug := mustDense(t, [][]float64{{1, 2, 3, 1}, {1, 2, 3, 1}, {3, 1, 1, 1}})
	_, err := gauss.ForwardEliminate(aug, gauss.WithLogger(logger))
	require.NoError(t, err)

	var swaps, skips, elims int
	for _, e := range hook.AllEntries() {
		switch e.Message {
		case "swap rows":
			swaps++
			assert.Equal(t, logrus.InfoLevel, e.Level)
			assert.Contains(t, e.Data, "with")
		case "near-zero pivot, column skipped":
			skips++
			assert.Equal(t, logrus.WarnLevel, e.Level)
			assert.Contains(t, e.Data, "pivot")
		case "eliminate":
			elims++
			assert.Equal(t, logrus.DebugLevel, e.Level)
			assert.Contains(t, e.Data, "factor")
			assert.Contains(t, e.Data, "matrix")
		}
	}
	assert.Equal(t, 1, swaps)
	assert.Equal(t, 1, skips)
	assert.Equal(t, 3, elims)
}

func TestOptions(t *testing.T) {
	t.Parallel()

	d := gauss.DefaultOptions()
	assert.Equal(t, gauss.DefaultPivotTolerance, d.PivotTolerance)
	assert.NotNil(t, d.Logger)
	assert.NotPanics(t, func() {
		d.OnSwap(0, 0, 1)
		d.OnSkip(0, 0)
		d.OnEliminate(1, 0, 0.5)
	})

	aug := mustDense(t, [][]float64{{1, 2}})
	for _, tol := range []float64{-1, math.NaN(), math.Inf(1)} {
		_, err := gauss.ForwardEliminate(aug, gauss.WithPivotTolerance(tol))
		require.ErrorIs(t, err, gauss.ErrOptionViolation)
		_, err = gauss.BackSubstitute(aug, gauss.WithPivotTolerance(tol))
		require.ErrorIs(t, err, gauss.ErrOptionViolation)
		_, err = gauss.Solve(mustDense(t, [][]float64{{1}}), []float64{2}, gauss.WithPivotTolerance(tol))
		require.ErrorIs(t, err, gauss.ErrOptionViolation)
	}

	// nil options and nil callbacks are ignored
	_, err := gauss.ForwardEliminate(aug, nil, gauss.WithLogger(nil), gauss.WithOnSwap(nil),
		gauss.WithOnSkip(nil), gauss.WithOnEliminate(nil))
	require.NoError(t, err)
}
