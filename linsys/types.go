// Package linsys defines test linear systems A·x = b with a known solution,
// their generators, and the accuracy measures used to judge a solver.
package linsys

import (
	"errors"

	"github.com/katalvlaran/numlab/matrix"
)

// ErrInvalidInput is returned for negative sizes and for A, x, b whose
// dimensions disagree. The matrix sentinel describing the exact violation is
// wrapped alongside it.
var ErrInvalidInput = errors.New("linsys: invalid input")

// Entry ranges used by the generators (inclusive).
const (
	// IntEntryMin and IntEntryMax bound random coefficients and solution entries.
	IntEntryMin = 1
	IntEntryMax = 10

	// OffDiagMin and OffDiagMax bound off-diagonal entries of diagonally dominant systems;
	// the diagonal adds another draw from the same range on top of the row sum.
	OffDiagMin = 1
	OffDiagMax = 5

	// HilbertDiagonal replaces the Hilbert diagonal in GenerateDiagonalizedHilbert.
	HilbertDiagonal = 10.0
)

// System is a square linear system with its exact solution.
//
//	A: n×n coefficient matrix (0×0 for n==0)
//	B: right-hand side, B = A·X computed in float64
//	X: the solution the system was built from
type System struct {
	A *matrix.Dense
	B []float64
	X []float64
}

// Size returns n.
func (s System) Size() int {
	return len(s.X)
}
