//go:build !opencl

package water

import "fmt"

func newOpenCLSolver(int) (Solver, error) {
	return nil, fmt.Errorf("%w: OpenCL support is not enabled; rebuild with -tags opencl", ErrSolverUnavailable)
}
