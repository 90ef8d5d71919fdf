package water

import (
	"errors"
	"fmt"
	"strconv"
	"time"
)

// Solver names accepted by Config.Solver.
const (
	SolverCPU    = "cpu"
	SolverOpenCL = "opencl"
)

var (
	// ErrInvalidConfig marks configuration that cannot start a simulation.
	ErrInvalidConfig = errors.New("invalid water config")
	// ErrSolverUnavailable is returned when the requested solver cannot be built.
	ErrSolverUnavailable = errors.New("solver unavailable")
)

// Config controls the water surface simulation.
type Config struct {
	// Resolution is the number of cells along each side of the square grid.
	Resolution int
	// Extent is the world-space width the grid spans.
	Extent float64
	// Damping scales every update; energy shrinks by this factor per tick.
	Damping float64
	// DisturbanceRadius is the world-space radius of a pointer or drop pulse.
	DisturbanceRadius float64
	// PulseStrength scales the raised-cosine pulse.
	PulseStrength float64
	// DropInterval is the period of the random drop timer.
	DropInterval time.Duration

	Seed   int64
	Solver string
}

// DefaultConfig returns the standard configuration.
func DefaultConfig() Config {
	return Config{
		Resolution:        256,
		Extent:            1024,
		Damping:           0.98,
		DisturbanceRadius: 20,
		PulseStrength:     0.28,
		DropInterval:      50 * time.Millisecond,
		Seed:              1337,
		Solver:            SolverCPU,
	}
}

// FromMap populates the config from a string map (flag-style key/value pairs).
// Unparseable values keep their defaults; range checks are left to Validate.
func FromMap(cfg map[string]string) Config {
	c := DefaultConfig()
	if cfg == nil {
		return c
	}
	if v, ok := cfg["resolution"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil {
			c.Resolution = parsed
		}
	}
	if v, ok := cfg["extent"]; ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil {
			c.Extent = parsed
		}
	}
	if v, ok := cfg["damping"]; ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil {
			c.Damping = parsed
		}
	}
	if v, ok := cfg["radius"]; ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil {
			c.DisturbanceRadius = parsed
		}
	}
	if v, ok := cfg["strength"]; ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil {
			c.PulseStrength = parsed
		}
	}
	if v, ok := cfg["drop_ms"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil {
			c.DropInterval = time.Duration(parsed) * time.Millisecond
		}
	}
	if v, ok := cfg["seed"]; ok {
		if parsed, err := strconv.ParseInt(v, 10, 64); err == nil {
			c.Seed = parsed
		}
	}
	if v, ok := cfg["solver"]; ok && v != "" {
		c.Solver = v
	}
	return c
}

// Validate rejects configurations the update pass cannot run with.
func (c Config) Validate() error {
	switch {
	case c.Resolution < 2:
		return fmt.Errorf("%w: resolution %d must be at least 2", ErrInvalidConfig, c.Resolution)
	case !(c.Extent > 0):
		return fmt.Errorf("%w: extent %v must be positive", ErrInvalidConfig, c.Extent)
	case !(c.Damping > 0 && c.Damping < 1):
		return fmt.Errorf("%w: damping %v outside (0, 1)", ErrInvalidConfig, c.Damping)
	case !(c.DisturbanceRadius > 0):
		return fmt.Errorf("%w: disturbance radius %v must be positive", ErrInvalidConfig, c.DisturbanceRadius)
	case c.PulseStrength < 0:
		return fmt.Errorf("%w: pulse strength %v is negative", ErrInvalidConfig, c.PulseStrength)
	case c.DropInterval <= 0:
		return fmt.Errorf("%w: drop interval %v must be positive", ErrInvalidConfig, c.DropInterval)
	}
	switch c.Solver {
	case SolverCPU, SolverOpenCL:
	default:
		return fmt.Errorf("%w: unknown solver %q", ErrInvalidConfig, c.Solver)
	}
	return nil
}
