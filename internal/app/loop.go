package app

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"timetracker/internal/usecase"
)

// ErrStopped is returned by Submit once the loop has exited.
var ErrStopped = errors.New("loop stopped")

type request struct {
	intent Intent
	reply  chan Result
}

// Loop is the single owner of a Tracker. Intents from any front-end are
// queued and processed one at a time; a redraw tick runs only while the
// clock is running and never mutates anything.
type Loop struct {
	log     *slog.Logger
	tracker *usecase.Tracker
	tick    time.Duration

	requests chan request
	done     chan struct{}
	redraw   []func(usecase.Snapshot)
}

func NewLoop(log *slog.Logger, tracker *usecase.Tracker, tick time.Duration) *Loop {
	return &Loop{
		log:      log,
		tracker:  tracker,
		tick:     tick,
		requests: make(chan request),
		done:     make(chan struct{}),
	}
}

// OnRedraw registers fn to receive a snapshot after every intent and on
// every tick. Register before Run; fn runs on the loop goroutine.
func (l *Loop) OnRedraw(fn func(usecase.Snapshot)) {
	l.redraw = append(l.redraw, fn)
}

// Run processes intents until ctx is cancelled, then saves the clock state.
func (l *Loop) Run(ctx context.Context) error {
	defer close(l.done)

	var ticker *time.Ticker
	var tickC <-chan time.Time
	syncTicker := func() {
		running := l.tracker.Running()
		switch {
		case running && ticker == nil:
			ticker = time.NewTicker(l.tick)
			tickC = ticker.C
		case !running && ticker != nil:
			ticker.Stop()
			ticker, tickC = nil, nil
		}
	}
	defer func() {
		if ticker != nil {
			ticker.Stop()
		}
	}()

	syncTicker()
	l.publish(l.tracker.Snapshot())
	for {
		select {
		case <-ctx.Done():
			l.log.Info("loop stopping")
			saveCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			return l.tracker.Shutdown(saveCtx)
		case req := <-l.requests:
			res := req.intent.apply(ctx, l.tracker)
			res.Snapshot = l.tracker.Snapshot()
			syncTicker()
			l.publish(res.Snapshot)
			req.reply <- res
		case <-tickC:
			l.publish(l.tracker.Snapshot())
		}
	}
}

// Submit queues an intent and waits for its result.
func (l *Loop) Submit(ctx context.Context, in Intent) (Result, error) {
	req := request{intent: in, reply: make(chan Result, 1)}
	select {
	case l.requests <- req:
	case <-l.done:
		return Result{}, ErrStopped
	case <-ctx.Done():
		return Result{}, ctx.Err()
	}
	select {
	case res := <-req.reply:
		return res, nil
	case <-ctx.Done():
		return Result{}, ctx.Err()
	}
}

func (l *Loop) publish(s usecase.Snapshot) {
	for _, fn := range l.redraw {
		fn(s)
	}
}
