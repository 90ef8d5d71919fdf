package app

import (
	"errors"
	"io"
	"log"
	"math"
	"testing"
	"time"

	"ripple/internal/core"
	"ripple/internal/sims/water"
)

var epoch = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

func quietLogger() *log.Logger { return log.New(io.Discard, "", 0) }

func testConfig() water.Config {
	cfg := water.DefaultConfig()
	cfg.Resolution = 32
	cfg.DisturbanceRadius = 60
	return cfg
}

func newRunning(t *testing.T, cfg water.Config) (*Controller, *core.ManualClock) {
	t.Helper()
	clock := core.NewManualClock(epoch)
	sched := core.NewScheduler(clock, quietLogger())
	c := NewController(cfg, core.Size{W: 800, H: 600}, sched, quietLogger())
	c.SetSolverFactory(func(water.Config) (water.Solver, error) { return water.NewCPUSolver(1), nil })
	if err := c.Init(); err != nil {
		t.Fatalf("Init: %v", err)
	}
	t.Cleanup(c.Dispose)
	return c, clock
}

func TestInitRejectsInvalidConfig(t *testing.T) {
	cfg := testConfig()
	cfg.Damping = 1.5
	c := NewController(cfg, core.Size{W: 10, H: 10}, nil, quietLogger())
	if err := c.Init(); !errors.Is(err, water.ErrInvalidConfig) {
		t.Fatalf("Init() = %v, want ErrInvalidConfig", err)
	}
	if c.State() != StateUninitialized {
		t.Fatalf("state = %s, want uninitialized", c.State())
	}
	if err := c.Advance(epoch); !errors.Is(err, ErrNotRunning) {
		t.Fatalf("Advance() = %v, want ErrNotRunning", err)
	}
}

func TestInitSolverFailureLeavesNothingRunning(t *testing.T) {
	boom := errors.New("no device")
	c := NewController(testConfig(), core.Size{W: 10, H: 10}, nil, quietLogger())
	c.SetSolverFactory(func(water.Config) (water.Solver, error) { return nil, boom })
	if err := c.Init(); !errors.Is(err, boom) {
		t.Fatalf("Init() = %v, want wrapped solver error", err)
	}
	if c.State() != StateUninitialized || c.Simulation() != nil || c.Scene() != nil {
		t.Fatal("failed init left partial state")
	}
}

func TestEventsBeforeInitAreIgnored(t *testing.T) {
	c := NewController(testConfig(), core.Size{W: 800, H: 600}, nil, quietLogger())
	c.Resize(100, 100)
	c.PointerMove(10, 10)
	if c.Viewport() != (core.Size{W: 800, H: 600}) {
		t.Fatalf("viewport changed before init: %+v", c.Viewport())
	}
	if c.SetFloatParameter(water.ParamDamping, 0.95) {
		t.Fatal("parameter accepted before init")
	}
}

func TestResizeKeepsField(t *testing.T) {
	c, clock := newRunning(t, testConfig())
	c.PointerMove(400, 300)
	if err := c.Advance(clock.Advance(16 * time.Millisecond)); err != nil {
		t.Fatalf("Advance: %v", err)
	}
	field := c.Simulation().Field()
	before := append([]water.Cell(nil), field.Current()...)
	ptr := &field.Current()[0]

	c.Resize(300, 600)

	if c.Simulation().Field() != field || &field.Current()[0] != ptr {
		t.Fatal("resize replaced field storage")
	}
	for i, cell := range field.Current() {
		if cell != before[i] {
			t.Fatalf("cell %d changed on resize", i)
		}
	}
	if got := c.Scene().Camera.Aspect(); math.Abs(got-0.5) > 1e-12 {
		t.Fatalf("aspect = %f, want 0.5", got)
	}
	if c.Scene().Viewport() != (core.Size{W: 300, H: 600}) {
		t.Fatalf("scene viewport = %+v", c.Scene().Viewport())
	}
}

func TestPointerSplashIsApplied(t *testing.T) {
	c, clock := newRunning(t, testConfig())
	c.PointerDown(400, 300)
	if err := c.Advance(clock.Advance(16 * time.Millisecond)); err != nil {
		t.Fatalf("Advance: %v", err)
	}
	field := c.Simulation().Field()
	n := field.Resolution()
	if h := field.Height(n/2, n/2); h <= 0 {
		t.Fatalf("centre height %g after splash, want positive", h)
	}
	if v := c.Scene().Mesh.Vertex(n/2, n/2); v.Height <= 0 {
		t.Fatalf("mesh not rebuilt: height %g", v.Height)
	}
	x, y, ok := c.PointerMarker()
	if !ok || math.Abs(x-400) > 1e-6 || math.Abs(y-300) > 1e-6 {
		t.Fatalf("marker = (%f, %f, %v), want (400, 300)", x, y, ok)
	}
}

func TestPointerMissRecordsSentinel(t *testing.T) {
	cfg := testConfig()
	cfg.Extent = 10
	c, clock := newRunning(t, cfg)
	c.PointerMove(0, 0)
	if err := c.Advance(clock.Advance(16 * time.Millisecond)); err != nil {
		t.Fatalf("Advance: %v", err)
	}
	if m := c.Simulation().Field().MaxAbs(); m != 0 {
		t.Fatalf("missed pointer disturbed the field: %g", m)
	}
}

func TestDropTimerFeedsNextTick(t *testing.T) {
	c, clock := newRunning(t, testConfig())
	if err := c.Advance(clock.Advance(40 * time.Millisecond)); err != nil {
		t.Fatalf("Advance: %v", err)
	}
	if got := c.Simulation().Drops().Scheduled(); got != 0 {
		t.Fatalf("drops before interval = %d, want 0", got)
	}
	if err := c.Advance(clock.Advance(10 * time.Millisecond)); err != nil {
		t.Fatalf("Advance: %v", err)
	}
	drops := c.Simulation().Drops()
	if drops.Scheduled() != 1 || drops.Pending() {
		t.Fatalf("scheduled=%d pending=%v, want one consumed drop", drops.Scheduled(), drops.Pending())
	}
	if c.Simulation().Field().MaxAbs() == 0 {
		t.Fatal("drop did not reach the field")
	}
	if c.Simulation().Ticks() != 2 {
		t.Fatalf("ticks = %d, want 2", c.Simulation().Ticks())
	}
}

func TestDropIntervalParameterRetimesTimer(t *testing.T) {
	c, clock := newRunning(t, testConfig())
	if !c.SetIntParameter(water.ParamDropIntervalMS, 20) {
		t.Fatal("drop interval rejected")
	}
	if err := c.Advance(clock.Advance(20 * time.Millisecond)); err != nil {
		t.Fatalf("Advance: %v", err)
	}
	if got := c.Simulation().Drops().Scheduled(); got != 1 {
		t.Fatalf("drops after 20ms = %d, want 1", got)
	}
	if !c.SetFloatParameter(water.ParamDamping, 0.9) {
		t.Fatal("damping rejected")
	}
	if got := c.Simulation().Config().Damping; got != 0.9 {
		t.Fatalf("damping = %f, want 0.9", got)
	}
}

func TestDisposeStopsEverything(t *testing.T) {
	c, clock := newRunning(t, testConfig())
	c.Dispose()
	c.Dispose()
	if c.State() != StateDisposed {
		t.Fatalf("state = %s, want disposed", c.State())
	}
	if !c.Scheduler().Stopped() {
		t.Fatal("scheduler still running")
	}
	if err := c.Advance(clock.Advance(time.Second)); !errors.Is(err, ErrNotRunning) {
		t.Fatalf("Advance() = %v, want ErrNotRunning", err)
	}
	if err := c.Init(); err == nil {
		t.Fatal("Init after dispose should fail")
	}
}

func TestResetFlattensSurface(t *testing.T) {
	c, clock := newRunning(t, testConfig())
	c.PointerMove(400, 300)
	if err := c.Advance(clock.Advance(16 * time.Millisecond)); err != nil {
		t.Fatalf("Advance: %v", err)
	}
	c.Reset(0)
	if c.Simulation().Field().MaxAbs() != 0 || c.Simulation().Ticks() != 0 {
		t.Fatal("reset left the surface disturbed")
	}
	if s := c.Stats(); s.State != "running" || s.Solver != water.SolverCPU || s.Cells != 32*32 {
		t.Fatalf("stats = %+v", s)
	}
}

func TestConfigWaterConversion(t *testing.T) {
	cfg := NewConfig()
	cfg.DropMS = 30
	cfg.Radius = 12
	w := cfg.Water()
	if w.DropInterval != 30*time.Millisecond || w.DisturbanceRadius != 12 {
		t.Fatalf("water config = %+v", w)
	}
	if err := w.Validate(); err != nil {
		t.Fatalf("default flags invalid: %v", err)
	}
}
