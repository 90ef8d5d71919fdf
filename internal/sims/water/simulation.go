package water

import (
	"fmt"
	"time"

	"ripple/internal/core"
	pcore "ripple/pkg/core"
)

// Simulation owns the height field, its two disturbance sources and the
// solver that advances them.
type Simulation struct {
	cfg     Config
	field   *Field
	solver  Solver
	pointer PointerSource
	drops   DropSource
	rng     *pcore.RNG
	ticks   uint64
	scratch []Disturbance
}

var _ core.Tunable = (*Simulation)(nil)

// New validates cfg and allocates a flat field. A nil solver is built from
// cfg.Solver.
func New(cfg Config, solver Solver) (*Simulation, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if solver == nil {
		var err error
		if solver, err = NewSolver(cfg); err != nil {
			return nil, err
		}
	}
	return &Simulation{
		cfg:     cfg,
		field:   NewField(cfg.Resolution, cfg.Extent),
		solver:  solver,
		rng:     pcore.NewRNG(cfg.Seed),
		scratch: make([]Disturbance, 0, 2),
	}, nil
}

func (s *Simulation) Name() string { return "water" }

func (s *Simulation) Config() Config { return s.cfg }

func (s *Simulation) Field() *Field { return s.field }

func (s *Simulation) Pointer() *PointerSource { return &s.pointer }

func (s *Simulation) Drops() *DropSource { return &s.drops }

func (s *Simulation) SolverName() string { return s.solver.Name() }

// Ticks counts completed updates.
func (s *Simulation) Ticks() uint64 { return s.ticks }

// Tick consumes the pointer and drop sources and advances the field once.
func (s *Simulation) Tick() error {
	s.scratch = append(s.scratch[:0], s.pointer.Take())
	if d, ok := s.drops.Take(); ok {
		s.scratch = append(s.scratch, d)
	}
	err := s.solver.Step(s.field, StepParams{
		Damping:      s.cfg.Damping,
		Radius:       s.cfg.DisturbanceRadius,
		Strength:     s.cfg.PulseStrength,
		Disturbances: s.scratch,
	})
	if err != nil {
		return fmt.Errorf("water step %d: %w", s.ticks, err)
	}
	s.ticks++
	return nil
}

// ScheduleDrop picks a uniform point inside the field and queues it for the
// next tick.
func (s *Simulation) ScheduleDrop() Disturbance {
	x, y := s.rng.Point(s.cfg.Extent / 2)
	s.drops.Schedule(x, y)
	return Disturbance{X: x, Y: y}
}

// SetDamping changes the damping used from the next tick on.
func (s *Simulation) SetDamping(v float64) error {
	if !(v > 0 && v < 1) {
		return fmt.Errorf("%w: damping %v outside (0, 1)", ErrInvalidConfig, v)
	}
	s.cfg.Damping = v
	return nil
}

// SetDisturbanceRadius changes the pulse radius from the next tick on.
func (s *Simulation) SetDisturbanceRadius(v float64) error {
	if !(v > 0) {
		return fmt.Errorf("%w: disturbance radius %v must be positive", ErrInvalidConfig, v)
	}
	s.cfg.DisturbanceRadius = v
	return nil
}

// SetDropInterval records the drop period. The caller owns the timer and
// must apply the new interval to it.
func (s *Simulation) SetDropInterval(d time.Duration) error {
	if d <= 0 {
		return fmt.Errorf("%w: drop interval %v must be positive", ErrInvalidConfig, d)
	}
	s.cfg.DropInterval = d
	return nil
}

// Reset flattens the surface, forgets pending disturbances and reseeds the
// drop generator. A zero seed reuses the configured one.
func (s *Simulation) Reset(seed int64) {
	if seed == 0 {
		seed = s.cfg.Seed
	}
	s.cfg.Seed = seed
	s.field.Reset()
	s.pointer.Reset()
	s.drops.Reset()
	s.rng = pcore.NewRNG(seed)
	s.ticks = 0
}

// Close releases solver resources.
func (s *Simulation) Close() {
	if s.solver != nil {
		s.solver.Close()
	}
}
