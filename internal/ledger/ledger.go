package ledger

import (
	"errors"
	"math"
	"time"

	"timetracker/internal/domain"
)

var (
	ErrEmptyDescription = errors.New("ledger: description is empty")
	ErrOutOfRange       = errors.New("ledger: position out of range")
	ErrOverflow         = errors.New("ledger: duration overflow")
)

// Ledger is an ordered list of tracked times. Positions are 1-based and shift
// down when an earlier entry is deleted; they are not stable identifiers.
type Ledger struct {
	entries []domain.TrackedTime
}

// New returns a ledger holding a copy of entries in the given order.
func New(entries []domain.TrackedTime) *Ledger {
	l := &Ledger{}
	l.entries = append(l.entries, entries...)
	return l
}

func (l *Ledger) Len() int { return len(l.entries) }

// Entries returns a copy of the entries in order.
func (l *Ledger) Entries() []domain.TrackedTime {
	out := make([]domain.TrackedTime, len(l.entries))
	copy(out, l.entries)
	return out
}

// At returns the entry at a 1-based position.
func (l *Ledger) At(position int) (domain.TrackedTime, error) {
	if !l.valid(position) {
		return domain.TrackedTime{}, ErrOutOfRange
	}
	return l.entries[position-1], nil
}

// Total sums all durations, saturating at the largest Duration.
func (l *Ledger) Total() time.Duration {
	var total time.Duration
	for _, e := range l.entries {
		if total > math.MaxInt64-e.Duration {
			return math.MaxInt64
		}
		total += e.Duration
	}
	return total
}

// Append adds a new entry at the end.
func (l *Ledger) Append(description string, d time.Duration) error {
	if description == "" {
		return ErrEmptyDescription
	}
	l.entries = append(l.entries, domain.TrackedTime{Description: description, Duration: d})
	return nil
}

// Merge adds d to the entry at position. On any error the entry is unchanged.
func (l *Ledger) Merge(position int, d time.Duration) error {
	if !l.valid(position) {
		return ErrOutOfRange
	}
	e := &l.entries[position-1]
	if d > 0 && e.Duration > math.MaxInt64-d {
		return ErrOverflow
	}
	e.Duration += d
	return nil
}

// Delete removes the entry at position; later entries move up by one.
func (l *Ledger) Delete(position int) error {
	if !l.valid(position) {
		return ErrOutOfRange
	}
	l.entries = append(l.entries[:position-1], l.entries[position:]...)
	return nil
}

func (l *Ledger) valid(position int) bool {
	return position >= 1 && position <= len(l.entries)
}
