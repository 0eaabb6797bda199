// Package roots_test validates the root finders against closed-form answers
// and the reference outputs of the demonstration problems.
package roots_test

import (
	"math"
	"testing"

	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/numlab/roots"
)

// poly is x⁴ + 3x³ + x² − 2x − 0.5.
func poly(x float64) float64 {
	return x*x*x*x + 3*x*x*x + x*x - 2*x - 0.5
}

func dpoly(x float64) float64 {
	return 4*x*x*x + 9*x*x + 2*x - 2
}

func TestBisection_Sin(t *testing.T) {
	t.Parallel()

	res, err := roots.Bisection(math.Sin, 3, 4)
	require.NoError(t, err)
	assert.Equal(t, roots.Converged, res.Status)
	assert.InDelta(t, math.Pi, res.Root, 1e-6)
	assert.Equal(t, 19, res.Iterations)
	require.Len(t, res.Errors, res.Iterations)
	assert.True(t, math.Abs(math.Sin(res.Root)) < roots.DefaultBisectionTolerance ||
		res.Errors[len(res.Errors)-1] < roots.DefaultBisectionTolerance)
}

func TestBisection_TighterTolerance(t *testing.T) {
	t.Parallel()

	res, err := roots.Bisection(func(x float64) float64 { return x*x - 2 }, 0, 2, roots.WithTolerance(1e-12))
	require.NoError(t, err)
	assert.InDelta(t, math.Sqrt2, res.Root, 1e-11)
}

func TestBisection_ExactMidpoint(t *testing.T) {
	t.Parallel()

	res, err := roots.Bisection(func(x float64) float64 { return x - 1 }, 0, 2)
	require.NoError(t, err)
	assert.Equal(t, 1.0, res.Root)
	assert.Equal(t, 1, res.Iterations)
}

func TestBisection_Errors(t *testing.T) {
	t.Parallel()

	_, err := roots.Bisection(math.Sin, 1, 2)
	require.ErrorIs(t, err, roots.ErrNoRootInInterval)

	// a root at an endpoint is not a strict sign change
	_, err = roots.Bisection(math.Sin, 0, 1)
	require.ErrorIs(t, err, roots.ErrNoRootInInterval)

	_, err = roots.Bisection(nil, 0, 1)
	require.ErrorIs(t, err, roots.ErrInvalidInput)
	_, err = roots.Bisection(math.Sin, math.NaN(), 1)
	require.ErrorIs(t, err, roots.ErrInvalidInput)

	res, err := roots.Bisection(math.Sin, 3, 4, roots.WithMaxIter(3))
	require.ErrorIs(t, err, roots.ErrDidNotConverge)
	assert.Equal(t, roots.Exhausted, res.Status)
	assert.Equal(t, 3, res.Iterations)
	assert.Equal(t, 3.125, res.Root)
}

func TestFixedPoint_Cos(t *testing.T) {
	t.Parallel()

	res, err := roots.FixedPoint(math.Cos, 1.0)
	require.NoError(t, err)
	assert.Equal(t, roots.Converged, res.Status)
	assert.InDelta(t, 0.7390851332451103, res.Root, 1e-10)
	assert.InDelta(t, 58, res.Iterations, 1)
	assert.InDelta(t, res.Root, math.Cos(res.Root), 1e-9)
}

// TestFixedPoint_Divergent: g(x) = 2x never settles. With the default budget it
// runs out first; with a larger one it overflows at 2^1024.
func TestFixedPoint_Divergent(t *testing.T) {
	t.Parallel()

	double := func(x float64) float64 { return 2 * x }

	res, err := roots.FixedPoint(double, 1)
	require.ErrorIs(t, err, roots.ErrDidNotConverge)
	require.NotErrorIs(t, err, roots.ErrOverflowDuringIteration)
	assert.Equal(t, roots.Exhausted, res.Status)
	assert.Equal(t, roots.DefaultFixedPointMaxIter, res.Iterations)

	var calls, lastIter int
	var lastErr float64
	res, err = roots.FixedPoint(double, 1, roots.WithMaxIter(2000),
		roots.WithOnIteration(func(iter int, _, e float64) {
			calls++
			lastIter, lastErr = iter, e
		}))
	require.ErrorIs(t, err, roots.ErrOverflowDuringIteration)
	require.ErrorIs(t, err, roots.ErrDidNotConverge)
	assert.Equal(t, roots.Overflowed, res.Status)
	assert.Equal(t, 1024, res.Iterations)
	assert.Equal(t, math.Ldexp(1, 1023), res.Root)
	assert.False(t, math.IsInf(res.Root, 0))

	// the overflowing step is part of the history
	require.Len(t, res.Errors, res.Iterations)
	assert.True(t, math.IsInf(res.Errors[len(res.Errors)-1], 1))
	assert.Equal(t, res.Iterations, calls)
	assert.Equal(t, 1024, lastIter)
	assert.True(t, math.IsInf(lastErr, 1))
}

func TestFixedPoint_Errors(t *testing.T) {
	t.Parallel()

	_, err := roots.FixedPoint(nil, 1)
	require.ErrorIs(t, err, roots.ErrInvalidInput)
	_, err = roots.FixedPoint(math.Cos, math.Inf(1))
	require.ErrorIs(t, err, roots.ErrInvalidInput)
	_, err = roots.FixedPoint(math.Cos, 1, roots.WithTolerance(0))
	require.ErrorIs(t, err, roots.ErrOptionViolation)
	_, err = roots.FixedPoint(math.Cos, 1, roots.WithMaxIter(-5))
	require.ErrorIs(t, err, roots.ErrOptionViolation)
}

func TestNewton_Sqrt2(t *testing.T) {
	t.Parallel()

	f := func(x float64) float64 { return x*x - 2 }
	df := func(x float64) float64 { return 2 * x }

	res, err := roots.Newton(f, df, 1)
	require.NoError(t, err)
	assert.Equal(t, roots.Converged, res.Status)
	assert.InDelta(t, math.Sqrt2, res.Root, 1e-10)
	assert.Equal(t, 5, res.Iterations)

	numeric, err := roots.Newton(f, nil, 1)
	require.NoError(t, err)
	assert.InDelta(t, math.Sqrt2, numeric.Root, 1e-9)
}

func TestNewton_Polynomial(t *testing.T) {
	t.Parallel()

	res, err := roots.Newton(poly, dpoly, 1)
	require.NoError(t, err)
	assert.InDelta(t, 0.7258503614258732, res.Root, 1e-9)
	// quadratic convergence: the error history shrinks monotonically here
	for i := 1; i < len(res.Errors); i++ {
		assert.Less(t, res.Errors[i], res.Errors[i-1])
	}
}

func TestNewton_Failures(t *testing.T) {
	t.Parallel()

	// f'(0) = 0 for x² + 1
	_, err := roots.Newton(func(x float64) float64 { return x*x + 1 }, func(x float64) float64 { return 2 * x }, 0)
	require.ErrorIs(t, err, roots.ErrZeroDerivative)

	// no real root: the iterates wander until the budget runs out
	res, err := roots.Newton(func(x float64) float64 { return x*x + 1 }, func(x float64) float64 { return 2 * x }, 0.5,
		roots.WithMaxIter(20))
	require.ErrorIs(t, err, roots.ErrDidNotConverge)
	assert.Equal(t, roots.Exhausted, res.Status)

	_, err = roots.Newton(nil, nil, 0)
	require.ErrorIs(t, err, roots.ErrInvalidInput)
}

func TestNumericDerivative(t *testing.T) {
	t.Parallel()

	d := roots.NumericDerivative(math.Sin)
	for _, x := range []float64{0, 0.5, 2} {
		assert.InDelta(t, math.Cos(x), d(x), 1e-6)
	}
}

func TestIsolateRoots_Polynomial(t *testing.T) {
	t.Parallel()

	got, err := roots.IsolateRoots(poly, -3, 2, 200)
	require.NoError(t, err)
	want := []float64{-2.155577850341797, -1.329998016357422, -0.24027481079101565, 0.7258506774902345}
	require.Len(t, got, len(want))
	assert.InDeltaSlice(t, want, got, 1e-6)
	for _, r := range got {
		assert.Less(t, math.Abs(poly(r)), 1e-4)
	}
}

func TestIsolateRoots_GridRootAndDedupe(t *testing.T) {
	t.Parallel()

	// roots at −1, 0 and 1 sit exactly on the grid of [−2, 2] with 4 cells
	f := func(x float64) float64 { return x * (x - 1) * (x + 1) }
	got, err := roots.IsolateRoots(f, -2, 2, 4)
	require.NoError(t, err)
	assert.Equal(t, []float64{-1, 0, 1}, got)

	none, err := roots.IsolateRoots(func(x float64) float64 { return x*x + 1 }, -2, 2, 10)
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestIsolateRoots_Errors(t *testing.T) {
	t.Parallel()

	_, err := roots.IsolateRoots(poly, 2, -3, 10)
	require.ErrorIs(t, err, roots.ErrInvalidInput)
	_, err = roots.IsolateRoots(poly, -3, 2, 0)
	require.ErrorIs(t, err, roots.ErrInvalidInput)
	_, err = roots.IsolateRoots(nil, -3, 2, 10)
	require.ErrorIs(t, err, roots.ErrInvalidInput)
	_, err = roots.IsolateRoots(poly, -3, 2, 10, roots.WithTolerance(-1))
	require.ErrorIs(t, err, roots.ErrOptionViolation)
}

func TestOnIterationAndLogging(t *testing.T) {
	t.Parallel()

	logger, hook := logtest.NewNullLogger()
	logger.SetLevel(logrus.DebugLevel)

	var iters []int
	res, err := roots.FixedPoint(math.Cos, 1,
		roots.WithLogger(logger),
		roots.WithOnIteration(func(iter int, _, _ float64) { iters = append(iters, iter) }))
	require.NoError(t, err)
	require.Len(t, iters, res.Iterations)
	assert.Equal(t, 1, iters[0])
	assert.Equal(t, res.Iterations, iters[len(iters)-1])

	entries := 0
	for _, e := range hook.AllEntries() {
		if e.Message == "iteration" {
			entries++
			assert.Equal(t, "fixed-point", e.Data["method"])
		}
	}
	assert.Equal(t, res.Iterations, entries)
}

func TestStatusText(t *testing.T) {
	t.Parallel()

	for s, want := range map[roots.Status]string{
		roots.Converged:  "converged",
		roots.Overflowed: "overflowed",
		roots.Exhausted:  "exhausted",
		roots.Status(9):  "Status(9)",
	} {
		assert.Equal(t, want, s.String())
		b, err := s.MarshalText()
		require.NoError(t, err)
		assert.Equal(t, want, string(b))
	}
}
