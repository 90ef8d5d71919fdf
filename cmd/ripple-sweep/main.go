package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"runtime"
	"sort"
	"strings"
	"sync"
	"time"

	"ripple/internal/core"
	"ripple/internal/sims/water"
)

type kvList []string

func (l *kvList) String() string {
	return strings.Join(*l, ",")
}

func (l *kvList) Set(value string) error {
	*l = append(*l, value)
	return nil
}

type paramSet struct {
	damping float64
	radius  float64
}

func (p paramSet) String() string {
	return fmt.Sprintf("damping=%.3f radius=%.0f", p.damping, p.radius)
}

type scenarioResult struct {
	params      paramSet
	peakEnergy  float64
	peakHeight  float64
	settleTick  int
	settled     bool
	drops       uint64
	discarded   uint64
	finalEnergy float64
	err         error
}

const frameInterval = time.Second / 60

func main() {
	dropFrames := flag.Int("drop-frames", 120, "frames with random drops enabled")
	steps := flag.Int("steps", 1200, "total frames to simulate per scenario")
	workers := flag.Int("workers", runtime.NumCPU(), "number of worker goroutines")
	settle := flag.Float64("settle", 1e-6, "energy fraction of the peak that counts as settled")
	verbose := flag.Bool("v", false, "log scheduler activity")
	var overrides kvList
	flag.Var(&overrides, "set", "config override in key=value form (repeatable)")
	flag.Parse()

	kv := map[string]string{"resolution": "96"}
	for _, o := range overrides {
		parts := strings.SplitN(o, "=", 2)
		if len(parts) != 2 {
			log.Fatalf("invalid override %q (want key=value)", o)
		}
		kv[strings.TrimSpace(parts[0])] = strings.TrimSpace(parts[1])
	}
	base := water.FromMap(kv)
	base.Solver = water.SolverCPU
	if err := base.Validate(); err != nil {
		log.Fatal(err)
	}

	logger := log.New(io.Discard, "", 0)
	if *verbose {
		logger = log.New(os.Stderr, "", log.LstdFlags)
	}

	var sets []paramSet
	for _, d := range []float64{0.95, 0.97, 0.98, 0.99, 0.995} {
		for _, r := range []float64{10, 20, 40} {
			sets = append(sets, paramSet{damping: d, radius: r})
		}
	}

	fmt.Printf("Sweeping %d parameter sets (%d workers, %d frames, drops for %d)\n", len(sets), *workers, *steps, *dropFrames)

	jobs := make(chan paramSet)
	results := make(chan scenarioResult)
	var wg sync.WaitGroup

	for i := 0; i < *workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for params := range jobs {
				results <- runScenario(base, params, *steps, *dropFrames, *settle, logger)
			}
		}()
	}

	go func() {
		wg.Wait()
		close(results)
	}()

	go func() {
		for _, params := range sets {
			jobs <- params
		}
		close(jobs)
	}()

	start := time.Now()
	var all []scenarioResult
	for res := range results {
		if res.err != nil {
			log.Fatalf("%s: %v", res.params, res.err)
		}
		all = append(all, res)
	}

	sort.Slice(all, func(i, j int) bool {
		if all[i].settled != all[j].settled {
			return all[i].settled
		}
		return all[i].settleTick < all[j].settleTick
	})

	fmt.Printf("\nResults (elapsed %s):\n", time.Since(start).Round(time.Millisecond))
	for i, res := range all {
		settleText := "never"
		if res.settled {
			settleText = fmt.Sprintf("%d", res.settleTick)
		}
		fmt.Printf("%2d) %s settle=%s peakE=%.4g peakH=%.3f finalE=%.3g drops=%d (%d overwritten)\n",
			i+1, res.params, settleText, res.peakEnergy, res.peakHeight, res.finalEnergy, res.drops, res.discarded)
	}
}

// runScenario drives a simulation through a scheduler on a manual clock:
// drops for the first dropFrames frames, then free decay.
func runScenario(base water.Config, params paramSet, steps, dropFrames int, settle float64, logger *log.Logger) scenarioResult {
	res := scenarioResult{params: params}
	cfg := base
	cfg.Damping = params.damping
	cfg.DisturbanceRadius = params.radius

	sim, err := water.New(cfg, water.NewCPUSolver(1))
	if err != nil {
		res.err = err
		return res
	}
	defer sim.Close()

	clock := core.NewManualClock(time.Unix(0, 0))
	sched := core.NewScheduler(clock, logger)
	drops := sched.Every(cfg.DropInterval, func(time.Time) { sim.ScheduleDrop() })
	if dropFrames <= 0 {
		drops.Cancel()
	}

	frame := 0
	sched.OnFrame(func(time.Time) error {
		if err := sim.Tick(); err != nil {
			return err
		}
		frame++
		if frame == dropFrames {
			drops.Cancel()
		}
		e := sim.Field().Energy(cfg.Damping)
		if e > res.peakEnergy {
			res.peakEnergy = e
		}
		if h := sim.Field().MaxAbs(); h > res.peakHeight {
			res.peakHeight = h
		}
		if frame > dropFrames && !res.settled && e <= res.peakEnergy*settle {
			res.settled = true
			res.settleTick = frame - dropFrames
		}
		res.finalEnergy = e
		return nil
	})

	ticks := make(chan time.Time)
	go func() {
		defer close(ticks)
		for i := 0; i < steps; i++ {
			ticks <- clock.Advance(frameInterval)
		}
	}()
	if err := sched.Run(context.Background(), ticks); err != nil {
		res.err = err
		// Unblock the producer.
		for range ticks {
		}
		return res
	}
	sched.Stop()

	res.drops = sim.Drops().Scheduled()
	res.discarded = sim.Drops().Discarded()
	return res
}
