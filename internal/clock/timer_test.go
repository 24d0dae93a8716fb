package clock

import (
	"testing"
	"time"

	"timetracker/internal/domain"
)

var epoch = time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)

func TestTimerStartsPausedAtZero(t *testing.T) {
	src := NewFake(epoch)
	tm := NewTimer(src)

	src.Advance(time.Hour)
	if tm.Running() {
		t.Error("new timer should be paused")
	}
	if got := tm.Elapsed(); got != 0 {
		t.Errorf("Elapsed() = %v, want 0", got)
	}
}

func TestTimerToggleContinuity(t *testing.T) {
	src := NewFake(epoch)
	tm := NewTimer(src)

	tm.Toggle()
	src.Advance(10 * time.Minute)
	if got := tm.Elapsed(); got != 10*time.Minute {
		t.Fatalf("Elapsed() running = %v, want 10m", got)
	}

	before := tm.Elapsed()
	tm.Toggle()
	src.Advance(3 * time.Hour)
	if got := tm.Elapsed(); got != before {
		t.Errorf("Elapsed() while paused = %v, want %v", got, before)
	}
	tm.Toggle()
	if got := tm.Elapsed(); got != before {
		t.Errorf("Elapsed() after resume = %v, want %v", got, before)
	}

	src.Advance(5 * time.Second)
	if got := tm.Elapsed(); got != before+5*time.Second {
		t.Errorf("Elapsed() = %v, want %v", got, before+5*time.Second)
	}
}

func TestTimerElapsedIdempotent(t *testing.T) {
	src := NewFake(epoch)
	tm := NewTimer(src)
	tm.Toggle()
	src.Advance(time.Minute)

	first := tm.Elapsed()
	for i := 0; i < 3; i++ {
		if got := tm.Elapsed(); got != first {
			t.Fatalf("Elapsed() call %d = %v, want %v", i, got, first)
		}
	}
}

func TestTimerReset(t *testing.T) {
	src := NewFake(epoch)
	tm := NewTimer(src)
	tm.Toggle()
	src.Advance(20 * time.Minute)

	tm.Reset()
	if !tm.Running() {
		t.Error("Reset() must not change the run state")
	}
	if got := tm.Elapsed(); got != 0 {
		t.Errorf("Elapsed() after reset = %v, want 0", got)
	}
	src.Advance(time.Minute)
	if got := tm.Elapsed(); got != time.Minute {
		t.Errorf("Elapsed() = %v, want 1m", got)
	}
}

func TestTimerCommit(t *testing.T) {
	t.Run("Running", func(t *testing.T) {
		src := NewFake(epoch)
		tm := NewTimer(src)
		tm.Toggle()
		src.Advance(50 * time.Minute)

		tm.Commit(30 * time.Minute)
		if !tm.Running() {
			t.Error("Commit() must not change the run state")
		}
		if got := tm.Elapsed(); got != 20*time.Minute {
			t.Errorf("Elapsed() = %v, want 20m", got)
		}
		src.Advance(time.Minute)
		if got := tm.Elapsed(); got != 21*time.Minute {
			t.Errorf("Elapsed() = %v, want 21m", got)
		}
	})

	t.Run("Paused", func(t *testing.T) {
		src := NewFake(epoch)
		tm := NewTimer(src)
		tm.Toggle()
		src.Advance(50 * time.Minute)
		tm.Toggle()

		tm.Commit(50 * time.Minute)
		if tm.Running() {
			t.Error("Commit() must not change the run state")
		}
		if got := tm.Elapsed(); got != 0 {
			t.Errorf("Elapsed() = %v, want 0", got)
		}
		tm.Toggle()
		src.Advance(time.Minute)
		if got := tm.Elapsed(); got != time.Minute {
			t.Errorf("Elapsed() after resume = %v, want 1m", got)
		}
	})
}

func TestRestore(t *testing.T) {
	src := NewFake(epoch)
	tm := Restore(src, domain.ClockState{Running: true, Start: epoch.Add(-2 * time.Hour), Pause: epoch})
	if !tm.Running() {
		t.Fatal("restored timer should be running")
	}
	if got := tm.Elapsed(); got != 2*time.Hour {
		t.Errorf("Elapsed() = %v, want 2h", got)
	}
}
