package clock

import (
	"sync"
	"time"
)

// Source provides the current time. Engine code never calls time.Now directly.
type Source interface {
	Now() time.Time
}

// System reads the wall clock. Values carry Go's monotonic reading, so
// subtracting two of them is immune to wall clock steps.
type System struct{}

func (System) Now() time.Time { return time.Now() }

// Fake is a manually advanced Source for tests.
type Fake struct {
	mu  sync.Mutex
	now time.Time
}

func NewFake(start time.Time) *Fake {
	return &Fake{now: start}
}

func (f *Fake) Now() time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.now
}

func (f *Fake) Advance(d time.Duration) {
	f.mu.Lock()
	f.now = f.now.Add(d)
	f.mu.Unlock()
}
