package linsys

import (
	"fmt"
	"math/rand"

	"github.com/katalvlaran/numlab/matrix"
)

// entryFunc yields A[i][j]; it may consume randomness.
type entryFunc func(i, j int) float64

// GenerateRandom builds an n×n system whose coefficients and solution are
// uniform integers in [IntEntryMin, IntEntryMax]. A is drawn row by row, then x.
// n==0 yields the empty system; n<0 returns ErrInvalidInput.
func GenerateRandom(n int, rng *rand.Rand) (System, error) {
	r := orDefault(rng)

	return build(n, r, func(_, _ int) float64 {
		return uniformInt(r, IntEntryMin, IntEntryMax)
	})
}

// GenerateHilbert builds the classic ill-conditioned system A[i][j] = 1/(i+j+1)
// with a random integer solution.
func GenerateHilbert(n int, rng *rand.Rand) (System, error) {
	return build(n, orDefault(rng), hilbert)
}

// GenerateDiagonallyDominant builds a strictly diagonally dominant system:
// off-diagonal entries are integers in [OffDiagMin, OffDiagMax] and
// A[i][i] = Σ_j≠i |A[i][j]| + another draw from that range.
// Jacobi and Gauss–Seidel are guaranteed to converge on it.
func GenerateDiagonallyDominant(n int, rng *rand.Rand) (System, error) {
	r := orDefault(rng)

	return build(n, r, func(i, j int) float64 {
		if i == j {
			// filled by the post pass once the row sum is known
			return 0
		}
		return uniformInt(r, OffDiagMin, OffDiagMax)
	}, func(a *matrix.Dense) error {
		var i, j int
		for i = 0; i < n; i++ {
			row, err := a.RowView(i)
			if err != nil {
				return err
			}
			sum := 0.0
			for j = 0; j < n; j++ {
				if j != i {
					sum += row[j]
				}
			}
			row[i] = sum + uniformInt(r, OffDiagMin, OffDiagMax)
		}
		return nil
	})
}

// GenerateDiagonalizedHilbert builds a Hilbert matrix whose diagonal is
// replaced by HilbertDiagonal, making it diagonally dominant for small n.
func GenerateDiagonalizedHilbert(n int, rng *rand.Rand) (System, error) {
	return build(n, orDefault(rng), func(i, j int) float64 {
		if i == j {
			return HilbertDiagonal
		}
		return hilbert(i, j)
	})
}

// FromRows wraps a literal coefficient matrix and solution into a System,
// computing b = A·x. A must be square with len(x) rows.
func FromRows(a [][]float64, x []float64) (System, error) {
	if len(a) != len(x) {
		return System{}, fmt.Errorf("%w: %d rows, %d unknowns: %w",
			ErrInvalidInput, len(a), len(x), matrix.ErrDimensionMismatch)
	}
	am, err := matrix.NewDenseFromRows(a)
	if err != nil {
		return System{}, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	if err = matrix.ValidateSquare(am); err != nil {
		return System{}, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}

	return finish(am, append([]float64{}, x...))
}

// Perturb returns x[i] + U(-radius, radius), the starting guess used for the
// relaxation solvers. x is not modified.
func Perturb(x []float64, rng *rand.Rand, radius float64) []float64 {
	r := orDefault(rng)
	out := make([]float64, len(x))
	for i, v := range x {
		out[i] = v + (2*r.Float64()-1)*radius
	}

	return out
}

func hilbert(i, j int) float64 {
	return 1.0 / float64(i+j+1)
}

// build fills A (row-major, consuming rng through entry), runs the optional
// post-processing hooks, then draws x and computes b.
func build(n int, rng *rand.Rand, entry entryFunc, post ...func(*matrix.Dense) error) (System, error) {
	if n < 0 {
		return System{}, fmt.Errorf("%w: n=%d: %w", ErrInvalidInput, n, matrix.ErrInvalidDimensions)
	}
	if n == 0 {
		a, err := matrix.NewDenseFromRows(nil)
		if err != nil {
			return System{}, err
		}
		return System{A: a, B: []float64{}, X: []float64{}}, nil
	}

	a, err := matrix.NewDense(n, n)
	if err != nil {
		return System{}, err
	}
	if err = a.Apply(func(i, j int, _ float64) float64 { return entry(i, j) }); err != nil {
		return System{}, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	for _, p := range post {
		if err = p(a); err != nil {
			return System{}, err
		}
	}

	x := make([]float64, n)
	for i := range x {
		x[i] = uniformInt(rng, IntEntryMin, IntEntryMax)
	}

	return finish(a, x)
}

func finish(a *matrix.Dense, x []float64) (System, error) {
	b, err := matrix.MatVec(a, x)
	if err != nil {
		return System{}, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}

	return System{A: a, B: b, X: x}, nil
}
