// Package numlab is a small laboratory of classic numerical methods: direct
// and iterative linear solvers, scalar root finders, polynomial
// interpolation and the test problems that show where each of them shines or
// struggles.
//
// What is inside?
//
//	matrix/:   row-major Dense storage, validators, MatVec, gonum bridge (Cond)
//	linsys/:   seeded generators: random, Hilbert, diagonally dominant, diagonalized Hilbert
//	gauss/:    Gaussian elimination with partial pivoting and back substitution
//	relax/:    Jacobi and Gauss–Seidel with convergence status
//	roots/:    bisection, fixed-point iteration, Newton, grid root isolation
//	interp/:   Vandermonde and Lagrange interpolation, parametric curves, point parsing
//	convplot/: convergence charts (png, svg, pdf) via gonum/plot
//
// The numlab command (cmd/numlab) runs the demonstrations and prints a text,
// YAML or JSON report:
//
//	numlab gauss --sizes=3,5,8
//	numlab relax --max-iter=25 -o yaml
//	numlab roots --plot=convergence.svg
//	numlab interp --points="0,1; 1,3; 2,7"
//	numlab all --config=numlab.yaml --log-level=debug
//
// Every solver accepts functional options (tolerance, iteration budget,
// logrus logger, per-step callbacks) and reports failures as wrapped sentinel
// errors to be matched with errors.Is.
//
//	go install github.com/katalvlaran/numlab/cmd/numlab@latest
package numlab
