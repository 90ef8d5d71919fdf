package app

import (
	"errors"
	"fmt"
	"log"
	"time"

	"ripple/internal/core"
	"ripple/internal/scene"
	"ripple/internal/sims/water"
	"ripple/internal/ui"
)

// ErrNotRunning is returned when the controller is asked to tick outside the
// running state.
var ErrNotRunning = errors.New("controller not running")

// State is the controller lifecycle.
type State int

const (
	StateUninitialized State = iota
	StateRunning
	StateDisposed
)

func (s State) String() string {
	switch s {
	case StateUninitialized:
		return "uninitialized"
	case StateRunning:
		return "running"
	case StateDisposed:
		return "disposed"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// SolverFactory builds the update solver for a config.
type SolverFactory func(water.Config) (water.Solver, error)

// Controller owns the simulation, scene and scheduler for one view. It maps
// input to disturbances and drives ticks; it does not draw.
type Controller struct {
	cfg       water.Config
	logger    *log.Logger
	sched     *core.Scheduler
	newSolver SolverFactory

	state    State
	viewport core.Size
	sim      *water.Simulation
	scene    *scene.Scene
	drop     *core.Timer
}

var _ core.Tunable = (*Controller)(nil)

// NewController prepares a controller. Nothing is allocated until Init.
// A nil scheduler gets a system-clock scheduler; a nil logger uses
// log.Default.
func NewController(cfg water.Config, viewport core.Size, sched *core.Scheduler, logger *log.Logger) *Controller {
	if logger == nil {
		logger = log.Default()
	}
	if sched == nil {
		sched = core.NewScheduler(nil, logger)
	}
	return &Controller{
		cfg:       cfg,
		logger:    logger,
		sched:     sched,
		newSolver: water.NewSolver,
		viewport:  viewport,
	}
}

// SetSolverFactory overrides how Init builds its solver.
func (c *Controller) SetSolverFactory(f SolverFactory) {
	if f != nil {
		c.newSolver = f
	}
}

func (c *Controller) State() State { return c.state }

func (c *Controller) Simulation() *water.Simulation { return c.sim }

func (c *Controller) Scene() *scene.Scene { return c.scene }

func (c *Controller) Scheduler() *core.Scheduler { return c.sched }

// Viewport returns the current output size in device pixels.
func (c *Controller) Viewport() core.Size { return c.viewport }

// Init builds the solver, simulation and scene and registers the frame
// callback and drop timer. On failure everything built so far is released
// and the controller stays uninitialized.
func (c *Controller) Init() error {
	if c.state != StateUninitialized {
		return fmt.Errorf("init from state %s", c.state)
	}
	if err := c.cfg.Validate(); err != nil {
		c.logger.Printf("[Controller] init failed: %v", err)
		return fmt.Errorf("init: %w", err)
	}
	solver, err := c.newSolver(c.cfg)
	if err != nil {
		c.logger.Printf("[Controller] init failed: %v", err)
		return fmt.Errorf("init solver: %w", err)
	}
	sim, err := water.New(c.cfg, solver)
	if err != nil {
		solver.Close()
		c.logger.Printf("[Controller] init failed: %v", err)
		return fmt.Errorf("init simulation: %w", err)
	}

	c.sim = sim
	c.scene = scene.New(c.cfg.Resolution, c.cfg.Extent, c.viewport)
	c.sched.OnFrame(c.frame)
	c.drop = c.sched.Every(c.cfg.DropInterval, func(time.Time) {
		c.sim.ScheduleDrop()
	})
	c.state = StateRunning
	c.logger.Printf("[Controller] running: %dx%d cells, extent %.0f, solver %s",
		c.cfg.Resolution, c.cfg.Resolution, c.cfg.Extent, solver.Name())
	return nil
}

func (c *Controller) frame(time.Time) error {
	if err := c.sim.Tick(); err != nil {
		c.logger.Printf("[Controller] tick failed: %v", err)
		return err
	}
	c.scene.Update(c.sim.Field())
	return nil
}

// Resize updates the camera aspect and viewport. It never touches the field
// and is ignored unless running.
func (c *Controller) Resize(w, h int) {
	if c.state != StateRunning {
		return
	}
	size := core.Size{W: w, H: h}
	if size == c.viewport {
		return
	}
	c.viewport = size
	c.scene.Resize(size)
}

// PointerMove maps a device pixel onto the surface and records it as the
// pointer disturbance for the next tick.
func (c *Controller) PointerMove(px, py float64) {
	if c.state != StateRunning {
		return
	}
	if x, y, ok := c.scene.Pick(px, py); ok {
		c.sim.Pointer().Move(x, y)
		return
	}
	c.sim.Pointer().Miss()
}

// PointerDown is handled like a move so taps and clicks splash too.
func (c *Controller) PointerDown(px, py float64) { c.PointerMove(px, py) }

// PointerMarker returns the screen position of the last surface hit.
func (c *Controller) PointerMarker() (float64, float64, bool) {
	if c.state != StateRunning {
		return 0, 0, false
	}
	last, ok := c.sim.Pointer().Last()
	if !ok {
		return 0, 0, false
	}
	ndcX, ndcY, _, visible := c.scene.Camera.Project(scene.SimToWorld(last.X, last.Y, 0))
	if !visible {
		return 0, 0, false
	}
	x, y := scene.Pixel(ndcX, ndcY, c.viewport)
	return x, y, true
}

// Advance fires due drop timers and runs one tick.
func (c *Controller) Advance(now time.Time) error {
	if c.state != StateRunning {
		return ErrNotRunning
	}
	return c.sched.Advance(now)
}

// Reset flattens the surface and reseeds drops. Zero keeps the seed.
func (c *Controller) Reset(seed int64) {
	if c.state != StateRunning {
		return
	}
	c.sim.Reset(seed)
	c.scene.Update(c.sim.Field())
	c.logger.Printf("[Controller] reset with seed %d", c.sim.Config().Seed)
}

// Dispose stops the loop and drop timer, then releases solver resources.
// It is safe to call more than once.
func (c *Controller) Dispose() {
	if c.state == StateDisposed {
		return
	}
	c.sched.Stop()
	if c.sim != nil {
		c.sim.Close()
	}
	c.state = StateDisposed
	c.logger.Printf("[Controller] disposed")
}

// Stats summarizes the simulation for the overlay.
func (c *Controller) Stats() ui.Stats {
	if c.sim == nil {
		return ui.Stats{State: c.state.String()}
	}
	field := c.sim.Field()
	cfg := c.sim.Config()
	return ui.Stats{
		State:     c.state.String(),
		Solver:    c.sim.SolverName(),
		Ticks:     c.sim.Ticks(),
		Cells:     field.Resolution() * field.Resolution(),
		Energy:    field.Energy(cfg.Damping),
		MaxHeight: field.MaxAbs(),
		Drops:     c.sim.Drops().Scheduled(),
		Discarded: c.sim.Drops().Discarded(),
	}
}

func (c *Controller) Name() string { return "ripple" }

// Parameters reports the live simulation values.
func (c *Controller) Parameters() core.ParameterSnapshot {
	if c.sim == nil {
		return core.ParameterSnapshot{}
	}
	return c.sim.Parameters()
}

func (c *Controller) ParameterControls() []core.ParameterControl {
	if c.sim == nil {
		return nil
	}
	return c.sim.ParameterControls()
}

// SetFloatParameter forwards HUD edits and keeps the drop timer in step.
func (c *Controller) SetFloatParameter(key string, value float64) bool {
	if c.state != StateRunning {
		return false
	}
	if !c.sim.SetFloatParameter(key, value) {
		return false
	}
	c.syncDropTimer()
	return true
}

func (c *Controller) SetIntParameter(key string, value int) bool {
	if c.state != StateRunning {
		return false
	}
	if !c.sim.SetIntParameter(key, value) {
		return false
	}
	c.syncDropTimer()
	return true
}

func (c *Controller) syncDropTimer() {
	if c.drop == nil {
		return
	}
	if d := c.sim.Config().DropInterval; d != c.drop.Interval() {
		c.drop.SetInterval(d)
		c.logger.Printf("[Controller] drop interval now %v", d)
	}
}
