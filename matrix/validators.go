// SPDX-License-Identifier: MIT
// Package: matrix
//
// Purpose:
//  - Provide a single, canonical source of truth for common validation checks.
//  - Keep kernels minimal by delegating shape/nil/length checks here.
//  - Return tagged sentinel errors so call sites can match with errors.Is.
//
// Determinism & Performance:
//  - All checks are pure, deterministic and allocate nothing on success.
//
// Note:
//  - Each composite validator follows a fixed sequence (NotNil → Shape).

package matrix

import "fmt"

// validatorErrorf wraps an underlying error with the given validator tag.
func validatorErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}

// ValidateNotNil ensures the matrix reference is non-nil.
// A typed nil *Dense stored in the interface is also rejected.
// Complexity: O(1).
func ValidateNotNil(m Matrix) error {
	if m == nil {
		return validatorErrorf("ValidateNotNil", ErrNilMatrix)
	}
	if d, ok := m.(*Dense); ok && d == nil {
		return validatorErrorf("ValidateNotNil", ErrNilMatrix)
	}

	return nil
}

// ValidateSameShape ensures matrices a and b have equal dimensions.
// Composite: NotNil(a) → NotNil(b) → shape.
func ValidateSameShape(a, b Matrix) error {
	if err := ValidateNotNil(a); err != nil {
		return validatorErrorf("ValidateSameShape", err)
	}
	if err := ValidateNotNil(b); err != nil {
		return validatorErrorf("ValidateSameShape", err)
	}
	if a.Rows() != b.Rows() {
		return validatorErrorf("ValidateSameShape: Rows", ErrDimensionMismatch)
	}
	if a.Cols() != b.Cols() {
		return validatorErrorf("ValidateSameShape: Columns", ErrDimensionMismatch)
	}

	return nil
}

// ValidateSquare checks that m is non-nil and square (Rows == Cols).
// Errors: ErrNilMatrix, ErrDimensionMismatch.
func ValidateSquare(m Matrix) error {
	if err := ValidateNotNil(m); err != nil {
		return validatorErrorf("ValidateSquare", err)
	}
	if m.Rows() != m.Cols() {
		return validatorErrorf("ValidateSquare", ErrDimensionMismatch)
	}

	return nil
}

// ValidateAugmented checks that m is an augmented system: n rows, n+1 columns.
// A 0×0 matrix is accepted as the empty system.
func ValidateAugmented(m Matrix) error {
	if err := ValidateNotNil(m); err != nil {
		return validatorErrorf("ValidateAugmented", err)
	}
	if m.Rows() == 0 && m.Cols() == 0 {
		return nil
	}
	if m.Cols() != m.Rows()+1 {
		return validatorErrorf(
			fmt.Sprintf("ValidateAugmented: %dx%d", m.Rows(), m.Cols()), ErrDimensionMismatch)
	}

	return nil
}

// ValidateVecLen ensures the vector length matches the required size n.
// nil is accepted only for n == 0.
func ValidateVecLen(x []float64, n int) error {
	if x == nil && n != 0 {
		return validatorErrorf("ValidateVecLen", ErrNilMatrix)
	}
	if len(x) != n {
		return validatorErrorf(fmt.Sprintf("ValidateVecLen: len %d, want %d", len(x), n), ErrDimensionMismatch)
	}

	return nil
}

// ValidateFiniteVec rejects vectors holding NaN or ±Inf.
func ValidateFiniteVec(x []float64) error {
	for i, v := range x {
		if !isFinite(v) {
			return validatorErrorf(fmt.Sprintf("ValidateFiniteVec: index %d", i), ErrNaNInf)
		}
	}

	return nil
}
