package core

import "time"

// maxCatchUp bounds how many fires a single Advance may replay for one timer.
const maxCatchUp = 64

// Timer is a recurring callback owned by a Scheduler. Timers never run on
// their own goroutine; they fire from Scheduler.Advance.
type Timer struct {
	interval  time.Duration
	last      time.Time
	fn        func(at time.Time)
	cancelled bool
	fired     uint64
	skipped   uint64
}

func newTimer(start time.Time, interval time.Duration, fn func(time.Time)) *Timer {
	if interval <= 0 {
		interval = time.Millisecond
	}
	return &Timer{interval: interval, last: start, fn: fn}
}

// Interval reports the current period.
func (t *Timer) Interval() time.Duration { return t.interval }

// SetInterval changes the period. The next deadline is measured from the most
// recent fire, so a shorter interval can make the timer due immediately.
func (t *Timer) SetInterval(d time.Duration) {
	if d <= 0 {
		d = time.Millisecond
	}
	t.interval = d
}

// Cancel stops the timer permanently.
func (t *Timer) Cancel() { t.cancelled = true }

// Cancelled reports whether Cancel has been called.
func (t *Timer) Cancelled() bool { return t.cancelled }

// Fired returns the number of times the callback ran.
func (t *Timer) Fired() uint64 { return t.fired }

// due fires the callback for every deadline at or before now and returns the
// number of deadlines dropped because the timer fell too far behind.
func (t *Timer) due(now time.Time) uint64 {
	var dropped uint64
	for n := 0; !t.cancelled; n++ {
		deadline := t.last.Add(t.interval)
		if now.Before(deadline) {
			break
		}
		if n == maxCatchUp {
			dropped = uint64(now.Sub(t.last) / t.interval)
			t.last = now
			t.skipped += dropped
			break
		}
		t.last = deadline
		t.fired++
		t.fn(deadline)
	}
	return dropped
}
