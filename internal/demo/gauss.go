package demo

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/sirupsen/logrus"

	"github.com/katalvlaran/numlab/gauss"
	"github.com/katalvlaran/numlab/linsys"
	"github.com/katalvlaran/numlab/matrix"
)

// System kinds used in the reports.
const (
	KindRandom             = "random"
	KindHilbert            = "hilbert"
	KindDiagonallyDominant = "diagonally-dominant"
	KindDiagonalHilbert    = "diagonalized-hilbert"
)

// GaussCase is one direct solve.
type GaussCase struct {
	Kind         string       `json:"kind" yaml:"kind"`
	N            int          `json:"n" yaml:"n"`
	X            []float64    `json:"x,omitempty" yaml:"x,omitempty"`
	Exact        []float64    `json:"exact" yaml:"exact"`
	Residual     float64      `json:"residual" yaml:"residual"`
	ForwardError float64      `json:"forward_error" yaml:"forward_error"`
	Cond         float64      `json:"cond" yaml:"cond"`
	Swaps        []gauss.Swap `json:"swaps,omitempty" yaml:"swaps,omitempty"`
	Error        string       `json:"error,omitempty" yaml:"error,omitempty"`
}

// GaussReport collects the direct solves for every configured size.
type GaussReport struct {
	Cases []GaussCase `json:"cases" yaml:"cases"`
}

type generator func(n int, rng *rand.Rand) (linsys.System, error)

// RunGauss solves a random and a Hilbert system of every size in cfg.Sizes.
// A near-singular draw is reported in its case, not returned as an error.
func RunGauss(cfg Config, log logrus.FieldLogger) (GaussReport, error) {
	if err := cfg.Validate(); err != nil {
		return GaussReport{}, err
	}
	rng := linsys.RNGFromSeed(cfg.Seed)
	kinds := []struct {
		name string
		gen  generator
	}{
		{KindRandom, linsys.GenerateRandom},
		{KindHilbert, linsys.GenerateHilbert},
	}

	var rep GaussReport
	for _, n := range cfg.Sizes {
		for _, k := range kinds {
			s, err := k.gen(n, rng)
			if err != nil {
				return GaussReport{}, fmt.Errorf("demo: %s n=%d: %w", k.name, n, err)
			}
			caseLog := log.WithFields(logrus.Fields{"kind": k.name, "n": n})
			rep.Cases = append(rep.Cases, solveCase(k.name, s, caseLog))
		}
	}

	return rep, nil
}

func solveCase(kind string, s linsys.System, log logrus.FieldLogger) GaussCase {
	c := GaussCase{Kind: kind, N: s.Size(), Exact: s.X}
	// a singular draw has cond = +Inf, which JSON cannot carry
	if cond, err := matrix.Cond(s.A); err == nil && !math.IsInf(cond, 0) {
		c.Cond = cond
	}

	log.WithField("matrix", "\n"+s.A.String()).Debug("system")
	sol, err := gauss.Solve(s.A, s.B, gauss.WithLogger(log))
	if err != nil {
		log.WithError(err).Warn("solve failed")
		c.Error = err.Error()
		return c
	}
	c.X, c.Residual, c.Swaps = sol.X, sol.Residual, sol.Swaps
	if c.ForwardError, err = linsys.ForwardError(sol.X, s.X); err != nil {
		c.Error = err.Error()
	}
	log.WithFields(logrus.Fields{"residual": c.Residual, "forward_error": c.ForwardError}).Info("solved")

	return c
}
