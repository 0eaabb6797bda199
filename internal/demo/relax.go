package demo

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/katalvlaran/numlab/linsys"
	"github.com/katalvlaran/numlab/relax"
)

// RelaxCase is one iterative solve.
type RelaxCase struct {
	Kind         string       `json:"kind" yaml:"kind"`
	Method       string       `json:"method" yaml:"method"`
	N            int          `json:"n" yaml:"n"`
	Iterations   int          `json:"iterations" yaml:"iterations"`
	Status       relax.Status `json:"status" yaml:"status"`
	MaxDelta     float64      `json:"max_delta" yaml:"max_delta"`
	ForwardError float64      `json:"forward_error" yaml:"forward_error"`
	X            []float64    `json:"x" yaml:"x"`
	Exact        []float64    `json:"exact" yaml:"exact"`
	Deltas       []float64    `json:"deltas,omitempty" yaml:"deltas,omitempty"`
}

// RelaxReport collects the iterative solves for every configured size.
type RelaxReport struct {
	Cases []RelaxCase `json:"cases" yaml:"cases"`
}

// RunRelax runs Jacobi and Gauss–Seidel on a diagonally dominant and a
// diagonalized Hilbert system of every size, starting both methods from the
// same perturbed guess.
func RunRelax(cfg Config, log logrus.FieldLogger) (RelaxReport, error) {
	if err := cfg.Validate(); err != nil {
		return RelaxReport{}, err
	}
	rng := linsys.RNGFromSeed(cfg.Seed)
	kinds := []struct {
		name string
		gen  generator
	}{
		{KindDiagonallyDominant, linsys.GenerateDiagonallyDominant},
		{KindDiagonalHilbert, linsys.GenerateDiagonalizedHilbert},
	}
	methods := []struct {
		name  string
		solve func(s linsys.System, x0 []float64, opts ...relax.Option) (relax.Result, error)
	}{
		{"jacobi", func(s linsys.System, x0 []float64, opts ...relax.Option) (relax.Result, error) {
			return relax.Jacobi(s.A, s.B, x0, opts...)
		}},
		{"gauss-seidel", func(s linsys.System, x0 []float64, opts ...relax.Option) (relax.Result, error) {
			return relax.GaussSeidel(s.A, s.B, x0, opts...)
		}},
	}

	var rep RelaxReport
	for _, n := range cfg.Sizes {
		for _, k := range kinds {
			s, err := k.gen(n, rng)
			if err != nil {
				return RelaxReport{}, fmt.Errorf("demo: %s n=%d: %w", k.name, n, err)
			}
			x0 := linsys.Perturb(s.X, rng, cfg.Perturbation)

			for _, m := range methods {
				mlog := log.WithFields(logrus.Fields{"kind": k.name, "n": n})
				res, err := m.solve(s, x0,
					relax.WithTolerance(cfg.Tol),
					relax.WithMaxIter(cfg.MaxIter),
					relax.WithLogger(mlog))
				if err != nil {
					return RelaxReport{}, fmt.Errorf("demo: %s %s n=%d: %w", m.name, k.name, n, err)
				}
				fwd, err := linsys.ForwardError(res.X, s.X)
				if err != nil {
					return RelaxReport{}, err
				}
				rep.Cases = append(rep.Cases, RelaxCase{
					Kind:         k.name,
					Method:       m.name,
					N:            n,
					Iterations:   res.Iterations,
					Status:       res.Status,
					MaxDelta:     res.MaxDelta,
					ForwardError: fwd,
					X:            res.X,
					Exact:        s.X,
					Deltas:       res.Deltas,
				})
			}
		}
	}

	return rep, nil
}
