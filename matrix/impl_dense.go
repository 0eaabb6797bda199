// SPDX-License-Identifier: MIT

// Package matrix - Dense storage (row-major) & safe accessors.
//
// Purpose:
//   - Provide a cache-friendly row-major buffer with the explicit index formula i*cols + j.
//   - Guarantee safety at the public surface: At/Set/RowView/SwapRows return errors instead of panicking.
//   - Give elimination kernels write-through row slices (RowView) so the hot loops
//     run on the flat buffer without per-element bounds checks.
//   - Enforce the numeric policy (rejection of NaN/Inf on Set and Apply) from a single place.
//
// Complexity quicksheet:
//   - NewDense: O(r*c) zero-init; At/Set: O(1); Clone: O(r*c); RowView: O(1); SwapRows: O(c).

package matrix

import (
	"fmt"
	"math"
)

// ---------- error context tags ----------

const (
	ctxAt       = "At"       // method tag used in error wrappers
	ctxSet      = "Set"      // method tag used in error wrappers
	ctxApply    = "Apply"    // method tag used in error wrappers
	ctxRow      = "RowView"  // method tag used in error wrappers
	ctxSwapRows = "SwapRows" // method tag used in error wrappers
	ctxFromRows = "NewDenseFromRows"
)

// denseErrorf wraps an error with a uniform Dense context and callsite indices.
// Format: "Dense.<method>(row,col): <sentinel>"; the sentinel survives via %w.
func denseErrorf(method string, row, col int, err error) error {
	return fmt.Errorf("Dense.%s(%d,%d): %w", method, row, col, err)
}

// Dense is a concrete row-major matrix.
//   - r,c hold dimensions (rows, cols).
//   - data is a flat buffer of length r*c in row-major order (offset = i*c + j).
//   - validateNaNInf enables NaN/Inf rejection in Set and Apply.
type Dense struct {
	r, c           int       // row and column counts (zero allowed only via NewDenseFromRows(nil))
	data           []float64 // contiguous row-major storage (len == r*c)
	validateNaNInf bool      // numeric guard: reject NaN/Inf in Set when true
}

// Compile-time assertions for interface & fmt.Stringer conformance.
var (
	_ Matrix       = (*Dense)(nil)
	_ fmt.Stringer = (*Dense)(nil)
)

// NewDense creates an r×c zero matrix using row-major storage.
//
// Implementation:
//   - Stage 1: validate rows>0 && cols>0; else ErrInvalidDimensions.
//   - Stage 2: allocate zero-filled buffer and initialize policy.
//
// Errors:
//   - ErrInvalidDimensions (shape contract violation).
//
// Complexity:
//   - Time O(r*c), Space O(r*c).
func NewDense(rows, cols int) (*Dense, error) {
	if rows <= 0 || cols <= 0 {
		return nil, ErrInvalidDimensions
	}

	return newDenseZeroOK(rows, cols)
}

// newDenseZeroOK is the internal constructor that also admits 0×0 shapes.
func newDenseZeroOK(rows, cols int) (*Dense, error) {
	if rows < 0 || cols < 0 {
		return nil, ErrInvalidDimensions
	}

	return &Dense{
		r:              rows,
		c:              cols,
		data:           make([]float64, rows*cols),
		validateNaNInf: DefaultValidateNaNInf,
	}, nil
}

// NewDenseFromRows copies a rectangular [][]float64 into a fresh Dense.
//
// Behavior highlights:
//   - The input is never retained; later edits to rows do not leak in.
//   - An empty row set (len(rows)==0) yields the legal 0×0 matrix used for
//     degenerate n=0 systems.
//   - Ragged rows return ErrDimensionMismatch; a zero-width row set returns
//     ErrInvalidDimensions; NaN/Inf returns ErrNaNInf.
//
// Complexity:
//   - Time O(r*c), Space O(r*c).
func NewDenseFromRows(rows [][]float64) (*Dense, error) {
	if len(rows) == 0 {
		return newDenseZeroOK(0, 0)
	}
	cols := len(rows[0])
	if cols == 0 {
		return nil, fmt.Errorf("%s: %w", ctxFromRows, ErrInvalidDimensions)
	}

	m, err := NewDense(len(rows), cols)
	if err != nil {
		return nil, err
	}
	var i, j int
	for i = 0; i < len(rows); i++ {
		if len(rows[i]) != cols {
			return nil, fmt.Errorf("%s: row %d has %d columns, want %d: %w",
				ctxFromRows, i, len(rows[i]), cols, ErrDimensionMismatch)
		}
		for j = 0; j < cols; j++ {
			if m.validateNaNInf && !isFinite(rows[i][j]) {
				return nil, denseErrorf(ctxFromRows, i, j, ErrNaNInf)
			}
			m.data[i*cols+j] = rows[i][j]
		}
	}

	return m, nil
}

// Rows returns the number of rows in the matrix.
func (m *Dense) Rows() int { return m.r }

// Cols returns the number of columns in the matrix.
func (m *Dense) Cols() int { return m.c }

// indexOf computes the flat index for (row, col) or returns ErrOutOfRange
// tagged with the calling method.
func (m *Dense) indexOf(method string, row, col int) (int, error) {
	if row < 0 || row >= m.r || col < 0 || col >= m.c {
		return 0, denseErrorf(method, row, col, ErrOutOfRange)
	}

	return row*m.c + col, nil
}

// At retrieves the element at (row, col).
// Complexity: O(1).
func (m *Dense) At(row, col int) (float64, error) {
	idx, err := m.indexOf(ctxAt, row, col)
	if err != nil {
		return 0, err
	}

	return m.data[idx], nil
}

// Set assigns value v at (row, col).
// Returns ErrOutOfRange on bad indices, ErrNaNInf when the numeric guard is on
// and v is not finite.
// Complexity: O(1).
func (m *Dense) Set(row, col int, v float64) error {
	idx, err := m.indexOf(ctxSet, row, col)
	if err != nil {
		return err
	}
	if m.validateNaNInf && !isFinite(v) {
		return denseErrorf(ctxSet, row, col, ErrNaNInf)
	}
	m.data[idx] = v

	return nil
}

// Clone returns a deep copy of the Dense matrix, preserving the numeric policy.
// Complexity: O(r*c) time and memory.
func (m *Dense) Clone() Matrix {
	cp := make([]float64, len(m.data))
	copy(cp, m.data)

	return &Dense{
		r:              m.r,
		c:              m.c,
		data:           cp,
		validateNaNInf: m.validateNaNInf,
	}
}

// CloneDense is Clone without the interface hop.
func (m *Dense) CloneDense() *Dense {
	return m.Clone().(*Dense)
}

// RowView returns row i as a slice that aliases the backing buffer.
// Writes through the slice mutate the matrix and bypass the NaN/Inf guard;
// it exists for in-place kernels (elimination, substitution) that own m.
// Returns ErrOutOfRange for a bad index.
func (m *Dense) RowView(i int) ([]float64, error) {
	if i < 0 || i >= m.r {
		return nil, denseErrorf(ctxRow, i, 0, ErrOutOfRange)
	}
	base := i * m.c

	return m.data[base : base+m.c : base+m.c], nil
}

// SwapRows exchanges rows i and j in place (all columns).
// i == j is a no-op. Complexity: O(c).
func (m *Dense) SwapRows(i, j int) error {
	if i < 0 || i >= m.r {
		return denseErrorf(ctxSwapRows, i, j, ErrOutOfRange)
	}
	if j < 0 || j >= m.r {
		return denseErrorf(ctxSwapRows, i, j, ErrOutOfRange)
	}
	if i == j {
		return nil
	}
	var k int
	bi, bj := i*m.c, j*m.c
	for k = 0; k < m.c; k++ {
		m.data[bi+k], m.data[bj+k] = m.data[bj+k], m.data[bi+k]
	}

	return nil
}

// ToRows copies the matrix into a fresh [][]float64.
func (m *Dense) ToRows() [][]float64 {
	out := make([][]float64, m.r)
	var i int
	for i = 0; i < m.r; i++ {
		out[i] = make([]float64, m.c)
		copy(out[i], m.data[i*m.c:(i+1)*m.c])
	}

	return out
}

// String renders m in the fixed-width layout of Format, so a *Dense can be
// handed to loggers and %v directly.
func (m *Dense) String() string {
	return Format(m)
}

// Apply replaces each element with f(i,j,v) in-place.
// With the numeric guard on, the first non-finite result aborts with ErrNaNInf
// (elements before it are already written).
func (m *Dense) Apply(f func(i, j int, v float64) float64) error {
	var i, j, base int
	var nv float64
	for i = 0; i < m.r; i++ {
		base = i * m.c
		for j = 0; j < m.c; j++ {
			nv = f(i, j, m.data[base+j])
			if m.validateNaNInf && !isFinite(nv) {
				return denseErrorf(ctxApply, i, j, ErrNaNInf)
			}
			m.data[base+j] = nv
		}
	}

	return nil
}

// isFinite reports whether v is neither NaN nor ±Inf.
func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
