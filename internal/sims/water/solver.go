package water

import (
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// Solver advances a field by one tick. Implementations read the current
// grid, write the other one and commit it.
type Solver interface {
	Name() string
	Step(f *Field, p StepParams) error
	Close()
}

// NewSolver builds the solver named in cfg.
func NewSolver(cfg Config) (Solver, error) {
	switch cfg.Solver {
	case SolverCPU, "":
		return NewCPUSolver(0), nil
	case SolverOpenCL:
		return newOpenCLSolver(cfg.Resolution)
	default:
		return nil, fmt.Errorf("%w: unknown solver %q", ErrInvalidConfig, cfg.Solver)
	}
}

// minBandRows keeps small grids on a single goroutine.
const minBandRows = 32

// CPUSolver splits the grid into row bands and updates them concurrently.
type CPUSolver struct {
	workers int
}

// NewCPUSolver returns a solver with the given band count. Zero or negative
// uses one band per CPU.
func NewCPUSolver(workers int) *CPUSolver {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	return &CPUSolver{workers: workers}
}

func (s *CPUSolver) Name() string { return SolverCPU }

func (s *CPUSolver) Step(f *Field, p StepParams) error {
	src, dst := f.buffers()
	g := f.Grid()
	active := p.active()

	bands := s.workers
	if limit := g.H / minBandRows; bands > limit {
		bands = limit
	}
	if bands <= 1 {
		stepRows(src, dst, g, f.Extent(), p, active, 0, g.H)
		f.commit()
		return nil
	}

	band := (g.H + bands - 1) / bands
	var eg errgroup.Group
	for y0 := 0; y0 < g.H; y0 += band {
		y1 := min(y0+band, g.H)
		eg.Go(func() error {
			stepRows(src, dst, g, f.Extent(), p, active, y0, y1)
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return err
	}
	f.commit()
	return nil
}

func (s *CPUSolver) Close() {}
