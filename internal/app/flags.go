package app

import (
	"flag"
	"time"

	"ripple/internal/sims/water"
)

// Config represents the command-line parameters for the application.
type Config struct {
	Width    int
	Height   int
	HUDWidth int
	TPS      int

	Seed       int64
	Resolution int
	Extent     float64
	Damping    float64
	Radius     float64
	DropMS     int
	Solver     string
}

// NewConfig returns a Config populated with sensible defaults.
func NewConfig() *Config {
	w := water.DefaultConfig()
	return &Config{
		Width:      960,
		Height:     720,
		HUDWidth:   220,
		TPS:        60,
		Seed:       w.Seed,
		Resolution: w.Resolution,
		Extent:     w.Extent,
		Damping:    w.Damping,
		Radius:     w.DisturbanceRadius,
		DropMS:     int(w.DropInterval / time.Millisecond),
		Solver:     w.Solver,
	}
}

// Bind attaches the configuration to the provided FlagSet.
func (c *Config) Bind(fs *flag.FlagSet) {
	fs.IntVar(&c.Width, "width", c.Width, "initial window width")
	fs.IntVar(&c.Height, "height", c.Height, "initial window height")
	fs.IntVar(&c.HUDWidth, "hud", c.HUDWidth, "parameter panel width (0 disables)")
	fs.IntVar(&c.TPS, "tps", c.TPS, "ticks per second")
	fs.Int64Var(&c.Seed, "seed", c.Seed, "seed for random drops")
	fs.IntVar(&c.Resolution, "resolution", c.Resolution, "grid cells per side")
	fs.Float64Var(&c.Extent, "extent", c.Extent, "world width of the surface")
	fs.Float64Var(&c.Damping, "damping", c.Damping, "damping factor (viscosity) in (0, 1)")
	fs.Float64Var(&c.Radius, "radius", c.Radius, "drop and pointer radius")
	fs.IntVar(&c.DropMS, "drop-ms", c.DropMS, "random drop interval in milliseconds")
	fs.StringVar(&c.Solver, "solver", c.Solver, "update solver: cpu or opencl")
}

// Water converts the flags into a simulation config.
func (c *Config) Water() water.Config {
	w := water.DefaultConfig()
	w.Seed = c.Seed
	w.Resolution = c.Resolution
	w.Extent = c.Extent
	w.Damping = c.Damping
	w.DisturbanceRadius = c.Radius
	w.DropInterval = time.Duration(c.DropMS) * time.Millisecond
	w.Solver = c.Solver
	return w
}
