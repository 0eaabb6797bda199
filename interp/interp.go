// Package interp builds interpolating polynomials.
//
// Fit solves the Vandermonde system V·c = y with gauss.Solve (partial
// pivoting), so it inherits the elimination trace, hooks and error taxonomy.
// Lagrange evaluates the same unique polynomial directly from the points and
// serves as an independent cross-check; the two drift apart as V becomes
// ill-conditioned. FitParametric interpolates x(t) and y(t) separately over
// uniformly spaced t.
package interp

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/katalvlaran/numlab/gauss"
	"github.com/katalvlaran/numlab/matrix"
)

// Vandermonde returns the n×n matrix V[i][j] = xs[i]^j.
func Vandermonde(xs []float64) (*matrix.Dense, error) {
	if len(xs) == 0 {
		return nil, fmt.Errorf("%w: Vandermonde: no nodes: %w", ErrInvalidInput, matrix.ErrInvalidDimensions)
	}
	v, err := matrix.NewDense(len(xs), len(xs))
	if err != nil {
		return nil, fmt.Errorf("%w: Vandermonde: %w", ErrInvalidInput, err)
	}
	// row-major visit: j == 0 starts each row afresh
	var pow float64
	err = v.Apply(func(i, j int, _ float64) float64 {
		if j == 0 {
			pow = 1
		} else {
			pow *= xs[i]
		}
		return pow
	})
	if err != nil {
		return nil, fmt.Errorf("%w: Vandermonde: %w", ErrInvalidInput, err)
	}

	return v, nil
}

// Fit returns the polynomial of degree len(points)-1 through points.
// opts are handed to gauss.Solve (logger, pivot tolerance, hooks).
//
// Errors: ErrInvalidInput (no points, non-finite values), ErrDuplicateNode,
// and gauss errors when the Vandermonde system is numerically singular.
func Fit(points []Point, opts ...gauss.Option) (Polynomial, error) {
	if err := checkNodes("Fit", points); err != nil {
		return nil, err
	}
	xs, ys := split(points)

	return fitValues(xs, ys, opts)
}

// Lagrange evaluates the interpolating polynomial through points at x:
// Σ y_i · Π_{j≠i} (x − x_j)/(x_i − x_j).
func Lagrange(points []Point, x float64) (float64, error) {
	if err := checkNodes("Lagrange", points); err != nil {
		return 0, err
	}
	var sum, term float64
	var i, j int
	for i = range points {
		term = points[i].Y
		for j = range points {
			if j != i {
				term *= (x - points[j].X) / (points[i].X - points[j].X)
			}
		}
		sum += term
	}

	return sum, nil
}

// FitParametric interpolates X(t) and Y(t) through points at t_i = i/(n-1)
// (t = 0 for a single point). Points may repeat or run backwards in x.
func FitParametric(points []Point, opts ...gauss.Option) (Parametric, error) {
	if len(points) == 0 {
		return Parametric{}, fmt.Errorf("%w: FitParametric: no points", ErrInvalidInput)
	}
	xs, ys := split(points)
	if !allFinite(xs) || !allFinite(ys) {
		return Parametric{}, fmt.Errorf("%w: FitParametric: %w", ErrInvalidInput, matrix.ErrNaNInf)
	}
	t := Linspace(0, 1, len(points))

	cx, err := fitValues(t, xs, opts)
	if err != nil {
		return Parametric{}, fmt.Errorf("FitParametric: x(t): %w", err)
	}
	cy, err := fitValues(t, ys, opts)
	if err != nil {
		return Parametric{}, fmt.Errorf("FitParametric: y(t): %w", err)
	}

	return Parametric{T: t, X: cx, Y: cy}, nil
}

// Sample returns n points of f at uniformly spaced x over [a, b]; n = 1
// gives the single point (a, f(a)).
func Sample(f func(float64) float64, a, b float64, n int) ([]Point, error) {
	switch {
	case f == nil:
		return nil, fmt.Errorf("%w: Sample: nil function", ErrInvalidInput)
	case n < 1:
		return nil, fmt.Errorf("%w: Sample: n=%d", ErrInvalidInput, n)
	case !finite(a) || !finite(b) || !(a < b):
		return nil, fmt.Errorf("%w: Sample: interval [%v, %v]", ErrInvalidInput, a, b)
	}
	xs := Linspace(a, b, n)
	out := make([]Point, n)
	for i, x := range xs {
		out[i] = Point{X: x, Y: f(x)}
	}

	return out, nil
}

// Linspace returns n evenly spaced values from a to b inclusive
// ([a] for n == 1, nil for n < 1).
func Linspace(a, b float64, n int) []float64 {
	switch {
	case n < 1:
		return nil
	case n == 1:
		return []float64{a}
	}

	return floats.Span(make([]float64, n), a, b)
}

func fitValues(xs, ys []float64, opts []gauss.Option) (Polynomial, error) {
	v, err := Vandermonde(xs)
	if err != nil {
		return nil, err
	}
	sol, err := gauss.Solve(v, ys, opts...)
	if err != nil {
		return nil, fmt.Errorf("interp: Vandermonde solve: %w", err)
	}

	return Polynomial(sol.X), nil
}

func checkNodes(op string, points []Point) error {
	if len(points) == 0 {
		return fmt.Errorf("%w: %s: no points", ErrInvalidInput, op)
	}
	xs, ys := split(points)
	if !allFinite(xs) || !allFinite(ys) {
		return fmt.Errorf("%w: %s: %w", ErrInvalidInput, op, matrix.ErrNaNInf)
	}
	seen := make(map[float64]int, len(xs))
	for i, x := range xs {
		if j, ok := seen[x]; ok {
			return fmt.Errorf("%s: points %d and %d at x=%g: %w", op, j, i, x, ErrDuplicateNode)
		}
		seen[x] = i
	}

	return nil
}

func split(points []Point) (xs, ys []float64) {
	xs = make([]float64, len(points))
	ys = make([]float64, len(points))
	for i, p := range points {
		xs[i], ys[i] = p.X, p.Y
	}

	return xs, ys
}

func allFinite(v []float64) bool {
	for _, x := range v {
		if !finite(x) {
			return false
		}
	}

	return true
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
