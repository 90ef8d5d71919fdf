package core

import (
	"context"
	"errors"
	"log"
	"time"
)

// ErrStopped is returned by Advance once the scheduler has been stopped.
var ErrStopped = errors.New("scheduler stopped")

// Scheduler runs one frame callback and any number of recurring timers on a
// single logical loop. Each Advance fires all due timers first and then the
// frame callback exactly once, so no two frames overlap.
type Scheduler struct {
	clock  Clock
	logger *log.Logger

	frame   func(now time.Time) error
	timers  []*Timer
	stopped bool
	frames  uint64
}

// NewScheduler creates a scheduler reading time from clock.
func NewScheduler(clock Clock, logger *log.Logger) *Scheduler {
	if clock == nil {
		clock = SystemClock{}
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Scheduler{clock: clock, logger: logger}
}

// Clock exposes the scheduler's time source.
func (s *Scheduler) Clock() Clock { return s.clock }

// OnFrame installs the per-frame callback, replacing any previous one.
func (s *Scheduler) OnFrame(fn func(now time.Time) error) {
	s.frame = fn
}

// Every registers fn to run every interval, starting one interval from now.
func (s *Scheduler) Every(interval time.Duration, fn func(at time.Time)) *Timer {
	t := newTimer(s.clock.Now(), interval, fn)
	s.timers = append(s.timers, t)
	return t
}

// Frames reports how many frame callbacks have run.
func (s *Scheduler) Frames() uint64 { return s.frames }

// Stopped reports whether Stop has been called.
func (s *Scheduler) Stopped() bool { return s.stopped }

// Advance processes everything due at now: timers in registration order, then
// the frame callback.
func (s *Scheduler) Advance(now time.Time) error {
	if s.stopped {
		return ErrStopped
	}
	pending := s.timers
	s.timers = nil
	live := make([]*Timer, 0, len(pending))
	for _, t := range pending {
		if dropped := t.due(now); dropped > 0 {
			s.logger.Printf("[Scheduler] timer fell behind, dropped %d fires", dropped)
		}
		if s.stopped {
			for _, p := range pending {
				p.Cancel()
			}
			return ErrStopped
		}
		if !t.cancelled {
			live = append(live, t)
		}
	}
	s.timers = append(live, s.timers...)
	if s.frame == nil {
		return nil
	}
	s.frames++
	return s.frame(now)
}

// Step advances the scheduler to the clock's current time.
func (s *Scheduler) Step() error {
	return s.Advance(s.clock.Now())
}

// Run advances once per value received from frames until the channel closes,
// ctx is cancelled, the scheduler is stopped, or a frame returns an error.
func (s *Scheduler) Run(ctx context.Context, frames <-chan time.Time) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case now, ok := <-frames:
			if !ok {
				return nil
			}
			if err := s.Advance(now); err != nil {
				if errors.Is(err, ErrStopped) {
					return nil
				}
				return err
			}
		}
	}
}

// Stop cancels every timer and detaches the frame callback. It is safe to call
// more than once and from inside a callback.
func (s *Scheduler) Stop() {
	if s.stopped {
		return
	}
	s.stopped = true
	for _, t := range s.timers {
		t.Cancel()
	}
	s.timers = nil
	s.frame = nil
	s.logger.Printf("[Scheduler] stopped after %d frames", s.frames)
}
