// SPDX-License-Identifier: MIT

// Package matrix: numeric policy defaults.
//
// Design goals:
//   - Deterministic behavior: no global mutable state.
//   - No dead switches: each flag impacts behavior and is covered by tests.
//   - Safe by construction: panic only on nonsensical parameters (programmer error).
package matrix

import "math"

// Numeric policy.
const (
	// DefaultEpsilon is the absolute tolerance used by AllClose when callers pass 0.
	DefaultEpsilon = 1e-9

	// DefaultValidateNaNInf toggles strict finite-value validation on Set and Apply.
	DefaultValidateNaNInf = true
)

const panicEpsilonInvalid = "matrix: eps must be finite, non-negative"

// SetValidateNaNInf switches the NaN/Inf guard for this matrix.
// Disabling it lets diagnostic code store non-finite intermediates.
func (m *Dense) SetValidateNaNInf(on bool) {
	m.validateNaNInf = on
}

// ValidatesNaNInf reports whether the NaN/Inf guard is active.
func (m *Dense) ValidatesNaNInf() bool {
	return m.validateNaNInf
}

// mustEpsilon returns eps, DefaultEpsilon for eps==0, and panics on negative or
// non-finite values.
func mustEpsilon(eps float64) float64 {
	if eps < 0 || math.IsNaN(eps) || math.IsInf(eps, 0) {
		panic(panicEpsilonInvalid)
	}
	if eps == 0 {
		return DefaultEpsilon
	}

	return eps
}
