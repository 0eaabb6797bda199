// Package matrix provides the dense storage shared by the numlab solvers.
//
// The matrix package provides:
//
//   - Dense, a row-major float64 buffer (offset = i*cols + j) with
//     bounds-checked At/Set and a NaN/Inf guard on writes.
//   - Row-level primitives used by elimination kernels: RowView (write-through
//     slice), Row (copy) and SwapRows.
//   - Validators (ValidateNotNil, ValidateSquare, ValidateAugmented, ...)
//     returning wrapped sentinels from errors.go.
//   - MatVec, AllClose and the gonum bridge (ToGonum, Cond).
//   - Format / FormatAugmented for fixed-width diagnostic dumps.
//
// An augmented system [A | b] of size n is simply a Dense of shape n×(n+1);
// its stride is n+1, so row swaps exchange contiguous blocks.
//
// Dense is not safe for concurrent mutation; each solver call owns its buffer.
package matrix
