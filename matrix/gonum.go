// SPDX-License-Identifier: MIT

package matrix

import (
	"gonum.org/v1/gonum/mat"
)

const (
	opToGonum = "ToGonum"
	opCond    = "Cond"
)

// ToGonum copies m into a gonum *mat.Dense.
// Empty matrices are rejected with ErrInvalidDimensions (gonum has no 0×0 Dense).
func ToGonum(m Matrix) (*mat.Dense, error) {
	if err := ValidateNotNil(m); err != nil {
		return nil, matrixErrorf(opToGonum, err)
	}
	r, c := m.Rows(), m.Cols()
	if r == 0 || c == 0 {
		return nil, matrixErrorf(opToGonum, ErrInvalidDimensions)
	}
	data := make([]float64, r*c)
	if d, ok := m.(*Dense); ok {
		copy(data, d.data)

		return mat.NewDense(r, c, data), nil
	}
	var i, j int
	var err error
	for i = 0; i < r; i++ {
		for j = 0; j < c; j++ {
			if data[i*c+j], err = m.At(i, j); err != nil {
				return nil, matrixErrorf(opToGonum, err)
			}
		}
	}

	return mat.NewDense(r, c, data), nil
}

// Cond returns the 2-norm condition number of a square matrix.
// A singular matrix yields +Inf.
func Cond(m Matrix) (float64, error) {
	if err := ValidateSquare(m); err != nil {
		return 0, matrixErrorf(opCond, err)
	}
	g, err := ToGonum(m)
	if err != nil {
		return 0, matrixErrorf(opCond, err)
	}

	return mat.Cond(g, 2), nil
}
