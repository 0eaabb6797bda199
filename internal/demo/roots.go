package demo

import (
	"math"

	"github.com/sirupsen/logrus"

	"github.com/katalvlaran/numlab/convplot"
	"github.com/katalvlaran/numlab/roots"
)

// Polynomial is the demonstration function x⁴ + 3x³ + x² − 2x − 0.5.
func Polynomial(x float64) float64 {
	return x*x*x*x + 3*x*x*x + x*x - 2*x - 0.5
}

// Interval scanned for the polynomial's roots.
const (
	PolyFrom = -3.0
	PolyTo   = 2.0
)

// RootCase is one run of a root finder.
type RootCase struct {
	Method     string       `json:"method" yaml:"method"`
	Problem    string       `json:"problem" yaml:"problem"`
	Root       float64      `json:"root" yaml:"root"`
	Iterations int          `json:"iterations" yaml:"iterations"`
	Status     roots.Status `json:"status" yaml:"status"`
	Errors     []float64    `json:"errors,omitempty" yaml:"errors,omitempty"`
	Error      string       `json:"error,omitempty" yaml:"error,omitempty"`
}

// RootsReport holds the isolated polynomial roots and the single-method runs.
type RootsReport struct {
	Polynomial []float64  `json:"polynomial_roots" yaml:"polynomial_roots"`
	Cases      []RootCase `json:"cases" yaml:"cases"`
}

// RunRoots isolates the polynomial's roots on [PolyFrom, PolyTo], then runs
// bisection of sin on [3, 4], fixed-point iteration of cos from 1 and Newton
// on the polynomial from 1 with a numeric derivative.
// Config.RootTol and Config.RootMaxIter, when set, apply to every method.
// Non-convergence is recorded in the case, never returned.
func RunRoots(cfg Config, log logrus.FieldLogger) (RootsReport, error) {
	if err := cfg.Validate(); err != nil {
		return RootsReport{}, err
	}

	var rep RootsReport
	var err error
	rep.Polynomial, err = roots.IsolateRoots(Polynomial, PolyFrom, PolyTo, cfg.Subdivisions,
		cfg.rootOptions(roots.WithLogger(log.WithField("problem", "polynomial")))...)
	if err != nil {
		return RootsReport{}, err
	}
	log.WithField("roots", rep.Polynomial).Info("polynomial roots isolated")

	runs := []struct {
		method, problem string
		run             func(opts ...roots.Option) (roots.Result, error)
	}{
		{"bisection", "sin(x) on [3, 4]", func(opts ...roots.Option) (roots.Result, error) {
			return roots.Bisection(math.Sin, 3, 4, opts...)
		}},
		{"fixed-point", "x = cos(x), x0 = 1", func(opts ...roots.Option) (roots.Result, error) {
			return roots.FixedPoint(math.Cos, 1, opts...)
		}},
		{"newton", "polynomial, x0 = 1", func(opts ...roots.Option) (roots.Result, error) {
			return roots.Newton(Polynomial, nil, 1, opts...)
		}},
	}
	for _, r := range runs {
		res, err := r.run(cfg.rootOptions(roots.WithLogger(log.WithField("problem", r.problem)))...)
		c := RootCase{
			Method:     r.method,
			Problem:    r.problem,
			Root:       res.Root,
			Iterations: res.Iterations,
			Status:     res.Status,
			Errors:     finitePrefix(res.Errors),
		}
		if err != nil {
			log.WithError(err).WithField("method", r.method).Warn("root finder did not converge")
			c.Error = err.Error()
		}
		rep.Cases = append(rep.Cases, c)
	}

	return rep, nil
}

// rootOptions appends the configured tolerance and budget, when set, to opts.
func (c Config) rootOptions(opts ...roots.Option) []roots.Option {
	if c.RootTol > 0 {
		opts = append(opts, roots.WithTolerance(c.RootTol))
	}
	if c.RootMaxIter > 0 {
		opts = append(opts, roots.WithMaxIter(c.RootMaxIter))
	}

	return opts
}

// finitePrefix cuts an error history at its first non-finite entry (an
// overflowing step), which neither JSON nor the chart can carry.
func finitePrefix(errs []float64) []float64 {
	for i, e := range errs {
		if math.IsNaN(e) || math.IsInf(e, 0) {
			return errs[:i]
		}
	}

	return errs
}

// Series returns one convergence history per case, for convplot.Render.
func (r RootsReport) Series() []convplot.Series {
	out := make([]convplot.Series, 0, len(r.Cases))
	for _, c := range r.Cases {
		out = append(out, convplot.Series{Name: c.Method + ": " + c.Problem, Values: c.Errors})
	}

	return out
}
