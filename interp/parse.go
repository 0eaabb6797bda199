package interp

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// ParsePoints reads "x,y" pairs separated by ';' or newlines, e.g.
// "0,0; 1,1; 2,4". Blank entries are ignored. The result is sorted by x.
func ParsePoints(s string) ([]Point, error) {
	parts := strings.FieldsFunc(s, func(r rune) bool { return r == ';' || r == '\n' })
	out := make([]Point, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		xy := strings.Split(part, ",")
		if len(xy) != 2 {
			return nil, fmt.Errorf("%w: point %q: want \"x,y\"", ErrInvalidInput, part)
		}
		x, err := strconv.ParseFloat(strings.TrimSpace(xy[0]), 64)
		if err != nil {
			return nil, fmt.Errorf("%w: point %q: %w", ErrInvalidInput, part, err)
		}
		y, err := strconv.ParseFloat(strings.TrimSpace(xy[1]), 64)
		if err != nil {
			return nil, fmt.Errorf("%w: point %q: %w", ErrInvalidInput, part, err)
		}
		if !finite(x) || !finite(y) {
			return nil, fmt.Errorf("%w: point %q is not finite", ErrInvalidInput, part)
		}
		out = append(out, Point{X: x, Y: y})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].X < out[j].X })

	return out, nil
}
