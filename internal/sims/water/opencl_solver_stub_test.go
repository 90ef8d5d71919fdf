//go:build !opencl

package water

import (
	"errors"
	"testing"
)

func TestOpenCLSolverUnavailableWithoutTag(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Solver = SolverOpenCL
	if _, err := New(cfg, nil); !errors.Is(err, ErrSolverUnavailable) {
		t.Fatalf("New() = %v, want ErrSolverUnavailable", err)
	}
}
