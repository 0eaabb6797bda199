// SPDX-License-Identifier: MIT
// Package matrix: sentinel error set.
// This file defines ONLY package-level sentinel errors used across the matrix
// package. Kernels return these sentinels (optionally wrapped with an operation
// tag) and tests MUST check them via errors.Is. No exported function panics on
// user-triggered error conditions.

package matrix

import "errors"

// NOTE ON NAMING & PREFIXING
// --------------------------
// Every message is prefixed with "matrix: ..." so log lines can be grepped.
// Context is added at the detection site with fmt.Errorf("Op: %w", ErrX);
// callers keep matching with errors.Is.
//
// ERROR PRIORITY (enforced in tests):
// nil -> shape -> index -> numeric policy (NaN/Inf).

var (
	// ErrInvalidDimensions indicates that requested matrix dimensions are non-positive.
	ErrInvalidDimensions = errors.New("matrix: dimensions must be > 0")

	// ErrOutOfRange indicates that an index (row or column) is outside valid bounds.
	// Public indexers (At/Set/Row/SwapRows) MUST return this, not panic.
	ErrOutOfRange = errors.New("matrix: index out of range")

	// ErrDimensionMismatch indicates incompatible dimensions between operands,
	// e.g. MatVec with len(x) != Cols, or a ragged row set.
	ErrDimensionMismatch = errors.New("matrix: dimension mismatch")

	// ErrNilMatrix indicates that a nil Matrix (receiver or argument) was used.
	ErrNilMatrix = errors.New("matrix: nil receiver")

	// ErrNaNInf signals a NaN or ±Inf value was encountered where finite values
	// are required by the numeric policy (Set, ingestion, results).
	ErrNaNInf = errors.New("matrix: NaN or Inf encountered")
)
