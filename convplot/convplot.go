// Package convplot renders convergence histories (error per iteration) as
// line charts with gonum/plot, one line per method.
package convplot

import (
	"errors"
	"fmt"
	"io"
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"

	// register the png, svg and pdf canvases
	_ "gonum.org/v1/plot/vg/vgimg"
	_ "gonum.org/v1/plot/vg/vgpdf"
	_ "gonum.org/v1/plot/vg/vgsvg"
)

// ErrNoData is returned when there is nothing to draw.
var ErrNoData = errors.New("convplot: no data")

// LogFloor replaces non-positive and non-finite values on a log-scale axis.
const LogFloor = 1e-17

// Default chart size.
const (
	DefaultWidth  = 6 * vg.Inch
	DefaultHeight = 4 * vg.Inch
)

// Series is one convergence history: Values[k] is the error after iteration k+1.
type Series struct {
	Name   string
	Values []float64
}

// Options controls labels, axis scale and size. Zero Width/Height pick the defaults.
type Options struct {
	Title  string
	XLabel string
	YLabel string
	LogY   bool
	Width  vg.Length
	Height vg.Length
}

// DefaultOptions returns a log-scale "error vs iteration" chart.
func DefaultOptions() Options {
	return Options{
		Title:  "Convergence",
		XLabel: "iteration",
		YLabel: "error",
		LogY:   true,
		Width:  DefaultWidth,
		Height: DefaultHeight,
	}
}

// Render draws series into w in the given format ("png", "svg", "pdf", ...).
// Series without finite values are skipped; if none remain, ErrNoData is returned.
func Render(w io.Writer, format string, opts Options, series ...Series) error {
	p := plot.New()
	p.Title.Text = opts.Title
	p.X.Label.Text = opts.XLabel
	p.Y.Label.Text = opts.YLabel
	if opts.LogY {
		p.Y.Scale = plot.LogScale{}
		p.Y.Tick.Marker = plot.LogTicks{Prec: -1}
	}
	p.Add(plotter.NewGrid())

	drawn := 0
	for _, s := range series {
		xys := points(s.Values, opts.LogY)
		if len(xys) == 0 {
			continue
		}
		line, err := plotter.NewLine(xys)
		if err != nil {
			return fmt.Errorf("convplot: series %q: %w", s.Name, err)
		}
		line.Color = plotutil.Color(drawn)
		line.Dashes = plotutil.Dashes(drawn)
		p.Add(line)
		p.Legend.Add(s.Name, line)
		drawn++
	}
	if drawn == 0 {
		return ErrNoData
	}

	width, height := opts.Width, opts.Height
	if width <= 0 {
		width = DefaultWidth
	}
	if height <= 0 {
		height = DefaultHeight
	}
	wt, err := p.WriterTo(width, height, format)
	if err != nil {
		return fmt.Errorf("convplot: %w", err)
	}
	if _, err = wt.WriteTo(w); err != nil {
		return fmt.Errorf("convplot: write %s: %w", format, err)
	}

	return nil
}

// points maps values to (iteration, value). The history is cut at the first
// non-finite value; on a log axis values below LogFloor are raised to it.
func points(values []float64, logY bool) plotter.XYs {
	xys := make(plotter.XYs, 0, len(values))
	for i, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			break
		}
		if logY && v < LogFloor {
			v = LogFloor
		}
		xys = append(xys, plotter.XY{X: float64(i + 1), Y: v})
	}

	return xys
}
