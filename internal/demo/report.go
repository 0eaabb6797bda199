package demo

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/numlab/convplot"
	"github.com/katalvlaran/numlab/matrix"
)

// Report is everything one CLI invocation produced. Sections that did not
// run are nil and omitted from YAML and JSON.
type Report struct {
	Gauss  *GaussReport  `json:"gauss,omitempty" yaml:"gauss,omitempty"`
	Relax  *RelaxReport  `json:"relax,omitempty" yaml:"relax,omitempty"`
	Roots  *RootsReport  `json:"roots,omitempty" yaml:"roots,omitempty"`
	Interp *InterpReport `json:"interp,omitempty" yaml:"interp,omitempty"`
}

// Encode writes rep to w as text, YAML or JSON.
func Encode(w io.Writer, format string, rep Report) error {
	switch strings.ToLower(format) {
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(rep); err != nil {
			return fmt.Errorf("demo: yaml: %w", err)
		}
		return enc.Close()
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(rep); err != nil {
			return fmt.Errorf("demo: json: %w", err)
		}
		return nil
	case FormatText, "":
		return writeText(w, rep)
	default:
		return fmt.Errorf("%w: output %q", ErrInvalidConfig, format)
	}
}

// WritePlot renders the root-finding convergence chart to path; the file
// extension (png, svg, pdf, ...) selects the format.
func WritePlot(path string, rep RootsReport) error {
	format := strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
	if format == "" {
		return fmt.Errorf("%w: plot file %q has no extension", ErrInvalidConfig, path)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("demo: plot: %w", err)
	}
	opts := convplot.DefaultOptions()
	opts.Title = "Root finding convergence"
	opts.YLabel = "|f(x)| or |Δx|"
	if err = convplot.Render(f, format, opts, rep.Series()...); err != nil {
		_ = f.Close()
		return err
	}

	return f.Close()
}

// errWriter keeps the first write error so the text renderer stays linear.
type errWriter struct {
	w   io.Writer
	err error
}

func (e *errWriter) printf(format string, args ...any) {
	if e.err != nil {
		return
	}
	_, e.err = fmt.Fprintf(e.w, format, args...)
}

func writeText(w io.Writer, rep Report) error {
	ew := &errWriter{w: w}

	if g := rep.Gauss; g != nil {
		ew.printf("== Gaussian elimination ==\n")
		for _, c := range g.Cases {
			ew.printf("%-8s n=%-3d cond=%-10.4g ", c.Kind, c.N, c.Cond)
			if c.Error != "" {
				ew.printf("error: %s\n", c.Error)
				continue
			}
			ew.printf("residual=%-10.3e forward=%-10.3e swaps=%d\n", c.Residual, c.ForwardError, len(c.Swaps))
			ew.printf("  x     =%s\n  exact =%s\n", matrix.FormatVec(c.X), matrix.FormatVec(c.Exact))
		}
	}

	if r := rep.Relax; r != nil {
		ew.printf("== Relaxation ==\n")
		for _, c := range r.Cases {
			ew.printf("%-20s %-12s n=%-3d sweeps=%-4d %-10s delta=%-10.3e forward=%.3e\n",
				c.Kind, c.Method, c.N, c.Iterations, c.Status, c.MaxDelta, c.ForwardError)
		}
	}

	if r := rep.Roots; r != nil {
		ew.printf("== Root finding ==\n")
		ew.printf("polynomial roots on [%g, %g]:%s\n", PolyFrom, PolyTo, matrix.FormatVec(r.Polynomial))
		for _, c := range r.Cases {
			ew.printf("%-12s %-22s root=%.10f iterations=%-4d %s", c.Method, c.Problem, c.Root, c.Iterations, c.Status)
			if c.Error != "" {
				ew.printf(" (%s)", c.Error)
			}
			ew.printf("\n")
		}
	}

	if r := rep.Interp; r != nil {
		ew.printf("== Interpolation ==\n")
		for _, c := range r.Cases {
			ew.printf("%-24s n=%-3d cond=%-10.4g ", c.Function, c.N, c.Cond)
			if c.Error != "" {
				ew.printf("error: %s\n", c.Error)
				continue
			}
			ew.printf("nodes=%-10.3e lagrange=%-10.3e max=%.3e\n", c.NodeError, c.LagrangeGap, c.MaxError)
		}
		for _, c := range r.Curves {
			ew.printf("%-24s n=%-3d ", "unit circle (t)", c.N)
			if c.Error != "" {
				ew.printf("error: %s\n", c.Error)
				continue
			}
			ew.printf("radius=%.3e\n", c.RadiusError)
		}
	}

	return ew.err
}
