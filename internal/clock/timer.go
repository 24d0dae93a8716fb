package clock

import (
	"time"

	"timetracker/internal/domain"
)

// Timer is the run/pause clock. Elapsed time is derived from two anchors:
// running, now - start; paused, pause - start.
type Timer struct {
	src   Source
	state domain.ClockState
}

// NewTimer returns a paused timer at zero.
func NewTimer(src Source) *Timer {
	now := src.Now()
	return &Timer{src: src, state: domain.ClockState{Start: now, Pause: now}}
}

// Restore returns a timer continuing from a previously saved state.
func Restore(src Source, state domain.ClockState) *Timer {
	return &Timer{src: src, state: state}
}

// Running reports whether the clock is accruing time.
func (t *Timer) Running() bool { return t.state.Running }

// State returns a copy of the anchors.
func (t *Timer) State() domain.ClockState { return t.state }

// Elapsed returns the visible elapsed time. It has no side effects.
func (t *Timer) Elapsed() time.Duration {
	return t.state.Elapsed(t.src.Now())
}

// Toggle pauses a running clock or resumes a paused one. Resuming shifts the
// start anchor forward by the paused span, so no time is lost or gained.
func (t *Timer) Toggle() {
	now := t.src.Now()
	if t.state.Running {
		t.state.Pause = now
	} else {
		t.state.Start = t.state.Start.Add(now.Sub(t.state.Pause))
	}
	t.state.Running = !t.state.Running
}

// Reset sets elapsed back to zero without changing the run state.
func (t *Timer) Reset() {
	now := t.src.Now()
	t.state.Start = now
	t.state.Pause = now
}

// Commit removes d from the visible elapsed time. The caller guarantees
// d <= Elapsed(); it is not checked here.
func (t *Timer) Commit(d time.Duration) {
	if t.state.Running {
		t.state.Start = t.state.Start.Add(d)
	} else {
		t.state.Pause = t.state.Pause.Add(-d)
	}
}
