package roots

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/sirupsen/logrus"
)

// IsolateRoots finds the roots of f on [a, b] by scanning a uniform grid of
// `subdivisions` cells and bisecting every cell with a strict sign change.
//
// Grid points with |f| < Tolerance are taken as roots directly. Roots closer
// than Tolerance to an earlier one are dropped; the result is sorted
// ascending. A cell whose bisection runs out of budget still contributes its
// last midpoint (logged at Warn). opts configure every bisection.
//
// Errors: ErrInvalidInput (nil f, a ≥ b, non-finite bounds, subdivisions < 1),
// ErrOptionViolation.
func IsolateRoots(f func(float64) float64, a, b float64, subdivisions int, opts ...Option) ([]float64, error) {
	o, err := apply(DefaultBisectionTolerance, DefaultBisectionMaxIter, opts)
	if err != nil {
		return nil, err
	}
	switch {
	case f == nil:
		return nil, fmt.Errorf("%w: IsolateRoots: nil function", ErrInvalidInput)
	case !finite(a) || !finite(b) || !(a < b):
		return nil, fmt.Errorf("%w: IsolateRoots: interval [%v, %v]", ErrInvalidInput, a, b)
	case subdivisions < 1:
		return nil, fmt.Errorf("%w: IsolateRoots: subdivisions=%d", ErrInvalidInput, subdivisions)
	}

	// each cell gets a fresh budget but shares tolerance, logger and callback
	cellOpts := []Option{
		WithTolerance(o.Tolerance),
		WithMaxIter(o.MaxIter),
		WithLogger(o.Logger),
		WithOnIteration(o.OnIteration),
	}

	width := b - a
	n := float64(subdivisions)
	found := make([]float64, 0, 4)
	var (
		i      int
		x0, x1 float64
		f0, f1 float64
	)
	for i = 0; i < subdivisions; i++ {
		x0 = a + float64(i)*width/n
		x1 = a + float64(i+1)*width/n
		f0, f1 = f(x0), f(x1)

		if math.Abs(f0) < o.Tolerance {
			found = append(found, x0)
		}
		if f0*f1 < 0 {
			res, err := Bisection(f, x0, x1, cellOpts...)
			switch {
			case err == nil:
			case errors.Is(err, ErrDidNotConverge):
				o.Logger.WithFields(logrus.Fields{"a": x0, "b": x1}).Warn("cell bisection exhausted")
			default:
				return nil, fmt.Errorf("IsolateRoots: cell [%g, %g]: %w", x0, x1, err)
			}
			found = append(found, res.Root)
		}
	}

	unique := make([]float64, 0, len(found))
	for _, r := range found {
		dup := false
		for _, u := range unique {
			if math.Abs(r-u) < o.Tolerance {
				dup = true
				break
			}
		}
		if !dup {
			unique = append(unique, r)
		}
	}
	sort.Float64s(unique)

	return unique, nil
}
