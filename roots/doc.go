// Package roots finds roots of scalar functions f: ℝ → ℝ.
//
// Methods:
//   - Bisection: bracketing; needs f(a)·f(b) < 0, always converges linearly.
//   - FixedPoint: x ← g(x); converges when g is a contraction near the fixed point.
//   - Newton: x ← x − f/f'; quadratic near a simple root, f' may be numeric.
//   - IsolateRoots: grid scan plus bisection to find every simple root on [a, b].
//
// Every iterative method returns a Result whose Status distinguishes
// Converged, Overflowed and Exhausted. A non-converged Result comes with an
// error matching ErrDidNotConverge; overflow additionally matches
// ErrOverflowDuringIteration. No method returns a finite value as converged
// unless its stopping criterion was met.
//
// Options (functional):
//   - WithTolerance, WithMaxIter override the per-method defaults.
//   - WithLogger receives a Debug entry per iteration.
//   - WithOnIteration observes (iter, x, err) for convergence charts.
package roots
