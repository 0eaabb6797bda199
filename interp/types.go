// SPDX-License-Identifier: MIT
// Package interp: points, polynomials and error definitions.

package interp

import (
	"errors"
)

// Sentinel errors.
var (
	// ErrInvalidInput is returned for an empty or non-finite point set and for
	// malformed point text.
	ErrInvalidInput = errors.New("interp: invalid input")

	// ErrDuplicateNode is returned when two points share an x (or, for the
	// parametric form, a t): the interpolating polynomial is not unique.
	ErrDuplicateNode = errors.New("interp: duplicate node")
)

// Point is one interpolation node.
type Point struct {
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
}

// Polynomial holds coefficients in ascending powers: p(x) = Σ c[i]·x^i.
// The zero-length Polynomial is the zero function.
type Polynomial []float64

// Eval evaluates p at x by Horner's scheme.
func (p Polynomial) Eval(x float64) float64 {
	var y float64
	for i := len(p) - 1; i >= 0; i-- {
		y = y*x + p[i]
	}

	return y
}

// Degree is len(p)-1, or -1 for the zero-length polynomial.
func (p Polynomial) Degree() int {
	return len(p) - 1
}

// Parametric is a plane curve (X(t), Y(t)) through points taken at
// t_i = i/(n-1), so t runs over [0, 1].
type Parametric struct {
	T []float64  `json:"t" yaml:"t"`
	X Polynomial `json:"x" yaml:"x"`
	Y Polynomial `json:"y" yaml:"y"`
}

// Eval returns the curve point at parameter t.
func (c Parametric) Eval(t float64) Point {
	return Point{X: c.X.Eval(t), Y: c.Y.Eval(t)}
}
