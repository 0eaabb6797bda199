// SPDX-License-Identifier: MIT

package matrix

import (
	"fmt"
	"strings"
)

// Fixed-width layout for diagnostic dumps: every entry is "%8.4f", entries are
// separated by two spaces, and the right-hand column of an augmented matrix is
// set off by "  |  ".
const (
	_fmtCell     = "%8.4f"
	_fmtCellSep  = "  "
	_fmtAugSep   = "  |  "
	_fmtLineTerm = "\n"
)

// Format renders m with one fixed-width line per row.
func Format(m *Dense) string {
	return format(m, false)
}

// FormatAugmented renders an augmented matrix [A | b]: the last column is
// separated from the coefficients by a bar.
func FormatAugmented(m *Dense) string {
	return format(m, true)
}

func format(m *Dense, augmented bool) string {
	if m == nil {
		return ""
	}
	var b strings.Builder
	var i, j, base, last int
	last = m.c
	if augmented && m.c > 0 {
		last = m.c - 1
	}
	for i = 0; i < m.r; i++ {
		base = i * m.c
		for j = 0; j < last; j++ {
			if j > 0 {
				b.WriteString(_fmtCellSep)
			}
			fmt.Fprintf(&b, _fmtCell, m.data[base+j])
		}
		if augmented && m.c > 0 {
			b.WriteString(_fmtAugSep)
			fmt.Fprintf(&b, _fmtCell, m.data[base+last])
		}
		b.WriteString(_fmtLineTerm)
	}

	return b.String()
}

// FormatVec renders a vector with the same cell layout as Format.
func FormatVec(x []float64) string {
	var b strings.Builder
	for i, v := range x {
		if i > 0 {
			b.WriteString(_fmtCellSep)
		}
		fmt.Fprintf(&b, _fmtCell, v)
	}

	return b.String()
}
