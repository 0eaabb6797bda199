package demo

import (
	"math"

	"github.com/sirupsen/logrus"

	"github.com/katalvlaran/numlab/gauss"
	"github.com/katalvlaran/numlab/interp"
	"github.com/katalvlaran/numlab/matrix"
)

// Interpolated functions; every configured size is the node count, so the
// Vandermonde system has the same order as the gauss and relax systems.
const (
	FunctionSine   = "sin(x) on [0, pi]"
	FunctionRunge  = "1/(1+25x^2) on [-1, 1]"
	FunctionPoints = "points"
)

// EvalPoints is how many evenly spaced samples measure the gaps between
// the fit, the Lagrange form and the function.
const EvalPoints = 200

// InterpCase is one polynomial fit.
//   - NodeError: max |p(x_i) − y_i| over the nodes.
//   - LagrangeGap: max |p(x) − L(x)| between the Vandermonde fit and the
//     Lagrange form over EvalPoints samples.
//   - MaxError: max |p(x) − f(x)| over the same samples; 0 for raw points.
type InterpCase struct {
	Function    string    `json:"function" yaml:"function"`
	N           int       `json:"n" yaml:"n"`
	Coeffs      []float64 `json:"coeffs,omitempty" yaml:"coeffs,omitempty"`
	Cond        float64   `json:"cond" yaml:"cond"`
	NodeError   float64   `json:"node_error" yaml:"node_error"`
	LagrangeGap float64   `json:"lagrange_gap" yaml:"lagrange_gap"`
	MaxError    float64   `json:"max_error" yaml:"max_error"`
	Error       string    `json:"error,omitempty" yaml:"error,omitempty"`
}

// CurveCase is a parametric fit of n points on the unit circle;
// RadiusError is max |‖(X(t), Y(t))‖ − 1| over EvalPoints values of t.
type CurveCase struct {
	N           int       `json:"n" yaml:"n"`
	X           []float64 `json:"x,omitempty" yaml:"x,omitempty"`
	Y           []float64 `json:"y,omitempty" yaml:"y,omitempty"`
	RadiusError float64   `json:"radius_error" yaml:"radius_error"`
	Error       string    `json:"error,omitempty" yaml:"error,omitempty"`
}

// InterpReport collects the fits for every configured size.
type InterpReport struct {
	Cases  []InterpCase `json:"cases" yaml:"cases"`
	Curves []CurveCase  `json:"curves,omitempty" yaml:"curves,omitempty"`
}

func runge(x float64) float64 {
	return 1 / (1 + 25*x*x)
}

// RunInterp fits sin on [0, π] and Runge's function on [−1, 1] through n
// equally spaced nodes for every size n, then the configured points (if
// any), then the unit circle parametrically for every size n ≥ 2.
// Fit failures are recorded in the case, never returned.
func RunInterp(cfg Config, log logrus.FieldLogger) (InterpReport, error) {
	if err := cfg.Validate(); err != nil {
		return InterpReport{}, err
	}
	funcs := []struct {
		name string
		f    func(float64) float64
		a, b float64
	}{
		{FunctionSine, math.Sin, 0, math.Pi},
		{FunctionRunge, runge, -1, 1},
	}

	var rep InterpReport
	for _, fn := range funcs {
		for _, n := range cfg.Sizes {
			pts, err := interp.Sample(fn.f, fn.a, fn.b, n)
			if err != nil {
				return InterpReport{}, err
			}
			rep.Cases = append(rep.Cases, fitCase(fn.name, pts, fn.f, log.WithFields(logrus.Fields{"function": fn.name, "n": n})))
		}
	}
	if cfg.Points != "" {
		pts, err := interp.ParsePoints(cfg.Points)
		if err != nil {
			return InterpReport{}, err
		}
		rep.Cases = append(rep.Cases, fitCase(FunctionPoints, pts, nil, log.WithField("function", FunctionPoints)))
	}
	for _, n := range cfg.Sizes {
		if n >= 2 {
			rep.Curves = append(rep.Curves, curveCase(n, log.WithField("curve", n)))
		}
	}

	return rep, nil
}

func fitCase(name string, pts []interp.Point, f func(float64) float64, log logrus.FieldLogger) InterpCase {
	c := InterpCase{Function: name, N: len(pts)}
	if len(pts) == 0 {
		c.Error = interp.ErrInvalidInput.Error()
		return c
	}
	xs := make([]float64, len(pts))
	for i, p := range pts {
		xs[i] = p.X
	}
	if v, err := interp.Vandermonde(xs); err == nil {
		if cond, err := matrix.Cond(v); err == nil && !math.IsInf(cond, 0) {
			c.Cond = cond
		}
	}

	p, err := interp.Fit(pts, gauss.WithLogger(log))
	if err != nil {
		log.WithError(err).Warn("interpolation failed")
		c.Error = err.Error()
		return c
	}
	c.Coeffs = p
	for _, pt := range pts {
		c.NodeError = math.Max(c.NodeError, math.Abs(p.Eval(pt.X)-pt.Y))
	}
	for _, x := range interp.Linspace(pts[0].X, pts[len(pts)-1].X, EvalPoints) {
		y := p.Eval(x)
		if l, err := interp.Lagrange(pts, x); err == nil {
			c.LagrangeGap = math.Max(c.LagrangeGap, math.Abs(y-l))
		}
		if f != nil {
			c.MaxError = math.Max(c.MaxError, math.Abs(y-f(x)))
		}
	}
	log.WithFields(logrus.Fields{"cond": c.Cond, "lagrange_gap": c.LagrangeGap, "max_error": c.MaxError}).Info("interpolated")

	return c
}

func curveCase(n int, log logrus.FieldLogger) CurveCase {
	c := CurveCase{N: n}
	pts := make([]interp.Point, n)
	for i, t := range interp.Linspace(0, 1, n) {
		pts[i] = interp.Point{X: math.Cos(2 * math.Pi * t), Y: math.Sin(2 * math.Pi * t)}
	}
	curve, err := interp.FitParametric(pts, gauss.WithLogger(log))
	if err != nil {
		log.WithError(err).Warn("parametric interpolation failed")
		c.Error = err.Error()
		return c
	}
	c.X, c.Y = curve.X, curve.Y
	for _, t := range interp.Linspace(0, 1, EvalPoints) {
		at := curve.Eval(t)
		c.RadiusError = math.Max(c.RadiusError, math.Abs(math.Hypot(at.X, at.Y)-1))
	}

	return c
}
