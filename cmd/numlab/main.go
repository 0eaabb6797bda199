// Command numlab runs the numerical-methods demonstrations: Gaussian
// elimination, Jacobi and Gauss–Seidel relaxation, scalar root finding and
// polynomial interpolation.
package main

import (
	"os"
)

func main() {
	cmd := NewCmdNumlab("numlab", os.Stdout, os.Stderr)
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
