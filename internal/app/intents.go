package app

import (
	"context"

	"timetracker/internal/usecase"
)

// Intent is one discrete user action. The loop runs each to completion
// before accepting the next.
type Intent interface {
	apply(ctx context.Context, t *usecase.Tracker) Result
}

// Result is what an intent did plus the state right after it.
type Result struct {
	Outcome  usecase.Outcome
	Text     string // description handed to the clipboard by Copy
	Snapshot usecase.Snapshot
	Err      error // persistence or clipboard failure
}

type (
	StartStop      struct{}
	Clear          struct{}
	ToggleTheme    struct{}
	Refresh        struct{}
	SetTime        struct{ Text string }
	SetDescription struct{ Text string }
	SetIndex       struct{ Text string }
	Apply          struct{}
	Delete         struct{ Position int }
	Copy           struct{ Position int }
	// ApplyInputs applies caller-supplied fields in one step without
	// touching the buffers another front-end may be filling.
	ApplyInputs struct{ Inputs usecase.Inputs }
)

func (StartStop) apply(_ context.Context, t *usecase.Tracker) Result {
	t.StartStop()
	return Result{Outcome: usecase.Applied}
}

func (Clear) apply(_ context.Context, t *usecase.Tracker) Result {
	t.Clear()
	return Result{Outcome: usecase.Applied}
}

func (ToggleTheme) apply(_ context.Context, t *usecase.Tracker) Result {
	t.ToggleTheme()
	return Result{Outcome: usecase.Applied}
}

func (Refresh) apply(context.Context, *usecase.Tracker) Result {
	return Result{Outcome: usecase.Ignored}
}

func (i SetTime) apply(_ context.Context, t *usecase.Tracker) Result {
	return Result{Outcome: accepted(t.SetTimeText(i.Text))}
}

func (i SetDescription) apply(_ context.Context, t *usecase.Tracker) Result {
	return Result{Outcome: accepted(t.SetDescriptionText(i.Text))}
}

func (i SetIndex) apply(_ context.Context, t *usecase.Tracker) Result {
	return Result{Outcome: accepted(t.SetIndexText(i.Text))}
}

func (Apply) apply(ctx context.Context, t *usecase.Tracker) Result {
	o, err := t.Apply(ctx)
	return Result{Outcome: o, Err: err}
}

func (i Delete) apply(ctx context.Context, t *usecase.Tracker) Result {
	o, err := t.Delete(ctx, i.Position)
	return Result{Outcome: o, Err: err}
}

func (i Copy) apply(_ context.Context, t *usecase.Tracker) Result {
	text, o, err := t.Copy(i.Position)
	return Result{Outcome: o, Text: text, Err: err}
}

func (i ApplyInputs) apply(ctx context.Context, t *usecase.Tracker) Result {
	o, err := t.ApplyInputs(ctx, i.Inputs)
	return Result{Outcome: o, Err: err}
}

func accepted(ok bool) usecase.Outcome {
	if ok {
		return usecase.Applied
	}
	return usecase.Ignored
}
