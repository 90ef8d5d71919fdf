package core

import (
	"context"
	"errors"
	"io"
	"log"
	"testing"
	"time"
)

var epoch = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

func quietLogger() *log.Logger { return log.New(io.Discard, "", 0) }

func TestAdvanceFiresTimersBeforeFrame(t *testing.T) {
	clock := NewManualClock(epoch)
	s := NewScheduler(clock, quietLogger())

	var order []string
	s.Every(50*time.Millisecond, func(time.Time) { order = append(order, "timer") })
	s.OnFrame(func(time.Time) error {
		order = append(order, "frame")
		return nil
	})

	if err := s.Advance(clock.Advance(16 * time.Millisecond)); err != nil {
		t.Fatalf("advance: %v", err)
	}
	if err := s.Advance(clock.Advance(40 * time.Millisecond)); err != nil {
		t.Fatalf("advance: %v", err)
	}

	want := []string{"frame", "timer", "frame"}
	if len(order) != len(want) {
		t.Fatalf("got %v, want %v", order, want)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Fatalf("got %v, want %v", order, want)
		}
	}
	if s.Frames() != 2 {
		t.Fatalf("expected 2 frames, got %d", s.Frames())
	}
}

func TestTimerReplaysEveryMissedDeadline(t *testing.T) {
	clock := NewManualClock(epoch)
	s := NewScheduler(clock, quietLogger())

	var fires []time.Time
	timer := s.Every(10*time.Millisecond, func(at time.Time) { fires = append(fires, at) })
	if err := s.Advance(clock.Advance(35 * time.Millisecond)); err != nil {
		t.Fatalf("advance: %v", err)
	}
	if len(fires) != 3 {
		t.Fatalf("expected 3 fires, got %d", len(fires))
	}
	for i, at := range fires {
		want := epoch.Add(time.Duration(i+1) * 10 * time.Millisecond)
		if !at.Equal(want) {
			t.Fatalf("fire %d at %v, want %v", i, at, want)
		}
	}
	if timer.Fired() != 3 {
		t.Fatalf("Fired() = %d, want 3", timer.Fired())
	}
}

func TestTimerCatchUpIsBounded(t *testing.T) {
	clock := NewManualClock(epoch)
	s := NewScheduler(clock, quietLogger())
	count := 0
	s.Every(time.Millisecond, func(time.Time) { count++ })
	if err := s.Advance(clock.Advance(time.Second)); err != nil {
		t.Fatalf("advance: %v", err)
	}
	if count != maxCatchUp {
		t.Fatalf("expected %d fires, got %d", maxCatchUp, count)
	}
	count = 0
	if err := s.Advance(clock.Advance(time.Millisecond)); err != nil {
		t.Fatalf("advance: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected timer to resume at its period, got %d fires", count)
	}
}

func TestSetIntervalAppliesToNextDeadline(t *testing.T) {
	clock := NewManualClock(epoch)
	s := NewScheduler(clock, quietLogger())
	count := 0
	timer := s.Every(100*time.Millisecond, func(time.Time) { count++ })
	timer.SetInterval(5 * time.Millisecond)
	if err := s.Advance(clock.Advance(5 * time.Millisecond)); err != nil {
		t.Fatalf("advance: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected shortened interval to fire, got %d", count)
	}
}

func TestStopCancelsEverything(t *testing.T) {
	clock := NewManualClock(epoch)
	s := NewScheduler(clock, quietLogger())
	timerFires, frames := 0, 0
	timer := s.Every(time.Millisecond, func(time.Time) { timerFires++ })
	s.OnFrame(func(time.Time) error {
		frames++
		return nil
	})

	s.Stop()
	s.Stop()

	if !timer.Cancelled() {
		t.Fatal("timer should be cancelled by Stop")
	}
	if err := s.Advance(clock.Advance(time.Second)); !errors.Is(err, ErrStopped) {
		t.Fatalf("expected ErrStopped, got %v", err)
	}
	if timerFires != 0 || frames != 0 {
		t.Fatalf("callbacks ran after Stop: timer=%d frame=%d", timerFires, frames)
	}
}

func TestStopFromTimerCallbackSkipsFrame(t *testing.T) {
	clock := NewManualClock(epoch)
	s := NewScheduler(clock, quietLogger())
	frames := 0
	other := s.Every(time.Millisecond, func(time.Time) {})
	s.Every(time.Millisecond, func(time.Time) { s.Stop() })
	third := s.Every(time.Millisecond, func(time.Time) {})
	s.OnFrame(func(time.Time) error {
		frames++
		return nil
	})
	if err := s.Advance(clock.Advance(time.Millisecond)); !errors.Is(err, ErrStopped) {
		t.Fatalf("expected ErrStopped, got %v", err)
	}
	if frames != 0 {
		t.Fatal("frame ran after Stop")
	}
	if !other.Cancelled() || !third.Cancelled() {
		t.Fatal("every timer should be cancelled")
	}
}

func TestRunDrivesFramesUntilChannelCloses(t *testing.T) {
	s := NewScheduler(NewManualClock(epoch), quietLogger())
	var seen []time.Time
	s.OnFrame(func(now time.Time) error {
		seen = append(seen, now)
		return nil
	})
	frames := make(chan time.Time, 3)
	for i := 1; i <= 3; i++ {
		frames <- epoch.Add(time.Duration(i) * 16 * time.Millisecond)
	}
	close(frames)

	if err := s.Run(context.Background(), frames); err != nil {
		t.Fatalf("run: %v", err)
	}
	if len(seen) != 3 {
		t.Fatalf("expected 3 frames, got %d", len(seen))
	}
}

func TestRunReturnsFrameError(t *testing.T) {
	s := NewScheduler(NewManualClock(epoch), quietLogger())
	boom := errors.New("boom")
	s.OnFrame(func(time.Time) error { return boom })
	frames := make(chan time.Time, 1)
	frames <- epoch
	if err := s.Run(context.Background(), frames); !errors.Is(err, boom) {
		t.Fatalf("expected boom, got %v", err)
	}
}

func TestRunHonoursCancellation(t *testing.T) {
	s := NewScheduler(NewManualClock(epoch), quietLogger())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := s.Run(ctx, make(chan time.Time)); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}
