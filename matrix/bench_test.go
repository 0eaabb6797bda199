// Package matrix_test provides benchmarks for the dense kernels the solvers
// lean on, using deterministic random fill.
package matrix_test

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/katalvlaran/numlab/matrix"
)

// benchSizes are the matrix orders to benchmark.
var benchSizes = []int{64, 256, 512}

// sinks to defeat dead-code elimination
var (
	sinkM matrix.Matrix
	sinkV []float64
	sinkB bool
	sinkF float64
)

func randomDense(b *testing.B, r, c int, seed int64) *matrix.Dense {
	b.Helper()
	m, err := matrix.NewDense(r, c)
	if err != nil {
		b.Fatal(err)
	}
	rng := rand.New(rand.NewSource(seed))
	if err = m.Apply(func(int, int, float64) float64 { return rng.Float64()*2 - 1 }); err != nil {
		b.Fatal(err)
	}

	return m
}

func BenchmarkMatVec(b *testing.B) {
	b.ReportAllocs()
	for _, n := range benchSizes {
		b.Run(fmt.Sprintf("n=%d", n), func(b *testing.B) {
			a := randomDense(b, n, n, 1337)
			x := make([]float64, n)
			for i := range x {
				x[i] = float64(i%7) - 3
			}
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				y, err := matrix.MatVec(a, x)
				if err != nil {
					b.Fatal(err)
				}
				sinkV = y
			}
		})
	}
}

func BenchmarkSwapRows(b *testing.B) {
	b.ReportAllocs()
	for _, n := range benchSizes {
		b.Run(fmt.Sprintf("n=%d", n), func(b *testing.B) {
			// augmented shape, as used by elimination
			a := randomDense(b, n, n+1, 4242)
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				if err := a.SwapRows(i%n, (i*7+3)%n); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}

func BenchmarkClone(b *testing.B) {
	b.ReportAllocs()
	for _, n := range benchSizes {
		b.Run(fmt.Sprintf("n=%d", n), func(b *testing.B) {
			a := randomDense(b, n, n, 7)
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				sinkM = a.Clone()
			}
		})
	}
}

func BenchmarkAllClose(b *testing.B) {
	b.ReportAllocs()
	for _, n := range benchSizes {
		b.Run(fmt.Sprintf("n=%d", n), func(b *testing.B) {
			a := randomDense(b, n, n, 99)
			c := a.CloneDense()
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				ok, err := matrix.AllClose(a, c, 0, 0)
				if err != nil {
					b.Fatal(err)
				}
				sinkB = ok
			}
		})
	}
}

// BenchmarkCond is dominated by the SVD inside gonum.
func BenchmarkCond(b *testing.B) {
	b.ReportAllocs()
	for _, n := range []int{16, 64, 128} {
		b.Run(fmt.Sprintf("n=%d", n), func(b *testing.B) {
			a := randomDense(b, n, n, 2024)
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				c, err := matrix.Cond(a)
				if err != nil {
					b.Fatal(err)
				}
				sinkF = c
			}
		})
	}
}
