package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"timetracker/internal/clock"
	"timetracker/internal/domain"
	"timetracker/internal/duration"
	"timetracker/internal/ledger"
	"timetracker/internal/ports"
)

// Options tune a Tracker.
type Options struct {
	// Order is the field order of the "H:M" duration grammar.
	Order duration.Order
	// DarkMode is the theme used when no preference has been saved yet.
	DarkMode bool
}

// Snapshot is a read-only copy of everything a front-end draws.
type Snapshot struct {
	Running  bool
	Elapsed  time.Duration
	DarkMode bool
	Entries  []domain.TrackedTime
	Tracked  time.Duration // sum of Entries
	Inputs   Inputs
}

// Tracker owns the clock, the ledger and the input buffers, and applies user
// intents to them. It is not safe for concurrent use; app.Loop serializes calls.
type Tracker struct {
	log       *slog.Logger
	store     ports.Store
	clipboard ports.Clipboard
	src       clock.Source
	parser    duration.Parser

	timer    *clock.Timer
	ledger   *ledger.Ledger
	darkMode bool
	inputs   Inputs
}

// Open restores a Tracker from store. A load failure is returned as is; the
// caller cannot continue without its initial state.
func Open(ctx context.Context, log *slog.Logger, store ports.Store, clipboard ports.Clipboard, src clock.Source, opts Options) (*Tracker, error) {
	if log == nil || store == nil || src == nil {
		return nil, errors.New("tracker not initialized: missing dependencies")
	}
	states, err := store.LoadStates(ctx)
	if err != nil {
		return nil, fmt.Errorf("load states: %w", err)
	}
	entries, err := store.LoadTrackedTimes(ctx)
	if err != nil {
		return nil, fmt.Errorf("load tracked times: %w", err)
	}

	state, darkMode := domain.DecodeStates(states, opts.DarkMode, src.Now())
	t := &Tracker{
		log:       log,
		store:     store,
		clipboard: clipboard,
		src:       src,
		parser:    duration.Parser{Order: opts.Order},
		timer:     clock.Restore(src, state),
		ledger:    ledger.New(entries),
		darkMode:  darkMode,
	}
	log.Info("tracker restored",
		slog.Bool("running", state.Running),
		slog.Duration("elapsed", t.timer.Elapsed()),
		slog.Int("entries", t.ledger.Len()),
	)
	return t, nil
}

// Running reports whether the clock is accruing time.
func (t *Tracker) Running() bool { return t.timer.Running() }

// Elapsed is the clock's visible elapsed time.
func (t *Tracker) Elapsed() time.Duration { return t.timer.Elapsed() }

// Snapshot copies the current state for rendering.
func (t *Tracker) Snapshot() Snapshot {
	return Snapshot{
		Running:  t.timer.Running(),
		Elapsed:  t.timer.Elapsed(),
		DarkMode: t.darkMode,
		Entries:  t.ledger.Entries(),
		Tracked:  t.ledger.Total(),
		Inputs:   t.inputs,
	}
}

// StartStop pauses or resumes the clock.
func (t *Tracker) StartStop() {
	t.timer.Toggle()
	t.log.Debug("clock toggled", slog.Bool("running", t.timer.Running()))
}

// Clear sets the clock back to zero.
func (t *Tracker) Clear() {
	t.timer.Reset()
	t.log.Debug("clock cleared")
}

// ToggleTheme flips the dark mode preference. It plays no part in accounting.
func (t *Tracker) ToggleTheme() {
	t.darkMode = !t.darkMode
}

// SetTimeText replaces the amount buffer if s passes the input filter.
func (t *Tracker) SetTimeText(s string) bool {
	if !acceptTimeText(s) {
		return false
	}
	t.inputs.Time = s
	return true
}

// SetDescriptionText replaces the description buffer.
func (t *Tracker) SetDescriptionText(s string) bool {
	t.inputs.Description = s
	return true
}

// SetIndexText replaces the position buffer if s passes the input filter.
func (t *Tracker) SetIndexText(s string) bool {
	if !acceptIndexText(s) {
		return false
	}
	t.inputs.Index = s
	return true
}

// Apply commits the amount in the time buffer to a new entry named by the
// description buffer or to the existing entry at the index buffer. Exactly one
// of the two must be set. On success the buffers are cleared, the amount is
// removed from the clock and the ledger and state are saved. Any rejection
// leaves everything untouched. The error carries persistence failures only.
func (t *Tracker) Apply(ctx context.Context) (Outcome, error) {
	o, err := t.commit(ctx, t.inputs)
	if o == Applied {
		t.inputs = Inputs{}
	}
	return o, err
}

// ApplyInputs is Apply with the three fields given by the caller instead of
// the buffers. The buffers are never read or changed, whatever the outcome.
// Fields that fail the input filters are Ignored.
func (t *Tracker) ApplyInputs(ctx context.Context, in Inputs) (Outcome, error) {
	if !acceptTimeText(in.Time) || !acceptIndexText(in.Index) {
		return t.reject(Ignored, nil), nil
	}
	return t.commit(ctx, in)
}

func (t *Tracker) commit(ctx context.Context, in Inputs) (Outcome, error) {
	bound := t.timer.Elapsed().Truncate(time.Second)
	d, err := t.parser.Parse(in.Time, bound)
	if err != nil {
		return t.reject(RejectedDuration, err), nil
	}

	hasDescription := in.Description != ""
	hasIndex := in.Index != ""
	if hasDescription == hasIndex {
		return t.reject(RejectedTarget, nil), nil
	}

	if hasDescription {
		if err := t.ledger.Append(in.Description, d); err != nil {
			return t.reject(RejectedTarget, err), nil
		}
	} else {
		position, err := strconv.Atoi(in.Index)
		if err != nil {
			return t.reject(RejectedIndex, err), nil
		}
		if err := t.ledger.Merge(position, d); err != nil {
			if errors.Is(err, ledger.ErrOverflow) {
				return t.reject(RejectedOverflow, err), nil
			}
			return t.reject(RejectedIndex, err), nil
		}
	}

	target := in.Description
	if target == "" {
		target = "#" + in.Index
	}
	t.timer.Commit(d)
	t.log.Info("time committed",
		slog.String("target", target),
		slog.Duration("duration", d),
		slog.Duration("tracked", t.ledger.Total()),
	)

	if err := t.saveTrackedTimes(ctx); err != nil {
		return Applied, err
	}
	return Applied, t.saveStates(ctx)
}

// Delete removes the entry at a 1-based position and saves the ledger.
func (t *Tracker) Delete(ctx context.Context, position int) (Outcome, error) {
	if err := t.ledger.Delete(position); err != nil {
		return t.reject(RejectedIndex, err), nil
	}
	t.log.Info("entry deleted", slog.Int("position", position))
	return Applied, t.saveTrackedTimes(ctx)
}

// Copy hands the description at position to the clipboard and returns it.
// Nothing is saved.
func (t *Tracker) Copy(position int) (string, Outcome, error) {
	e, err := t.ledger.At(position)
	if err != nil {
		return "", t.reject(RejectedIndex, err), nil
	}
	if t.clipboard == nil {
		return e.Description, Ignored, nil
	}
	if err := t.clipboard.WriteText(e.Description); err != nil {
		return e.Description, Ignored, fmt.Errorf("clipboard: %w", err)
	}
	return e.Description, Applied, nil
}

// Shutdown saves the clock state and theme so the next Open continues.
func (t *Tracker) Shutdown(ctx context.Context) error {
	return t.saveStates(ctx)
}

func (t *Tracker) reject(o Outcome, err error) Outcome {
	attrs := []any{slog.String("outcome", o.String())}
	if err != nil {
		attrs = append(attrs, slog.String("reason", err.Error()))
	}
	t.log.Debug("intent rejected", attrs...)
	return o
}

func (t *Tracker) saveTrackedTimes(ctx context.Context) error {
	if err := t.store.SaveTrackedTimes(ctx, t.ledger.Entries()); err != nil {
		t.log.Error("failed to save tracked times", slog.String("error", err.Error()))
		return fmt.Errorf("save tracked times: %w", err)
	}
	return nil
}

func (t *Tracker) saveStates(ctx context.Context) error {
	states := domain.EncodeStates(t.timer.State(), t.darkMode, t.src.Now())
	if err := t.store.SaveStates(ctx, states); err != nil {
		t.log.Error("failed to save state", slog.String("error", err.Error()))
		return fmt.Errorf("save states: %w", err)
	}
	return nil
}
