package ports

import (
	"context"

	"timetracker/internal/domain"
)

// Store durably keeps the key/value state and the tracked times. Saves replace
// the whole table; loads return rows in insertion order.
type Store interface {
	LoadStates(ctx context.Context) (domain.States, error)
	SaveStates(ctx context.Context, states domain.States) error
	LoadTrackedTimes(ctx context.Context) ([]domain.TrackedTime, error)
	SaveTrackedTimes(ctx context.Context, entries []domain.TrackedTime) error
	Close() error
}

// Clipboard receives text copied out of the ledger.
type Clipboard interface {
	WriteText(text string) error
}
