package memory

import (
	"context"
	"sync"

	"timetracker/internal/domain"
)

// Store implements ports.Store in memory. Nothing survives the process; it
// backs tests and throwaway sessions.
type Store struct {
	mu      sync.Mutex
	states  domain.States
	entries []domain.TrackedTime

	// Saves counts SaveStates and SaveTrackedTimes calls.
	Saves int
	// Err, when set, is returned from every call.
	Err error
}

func NewStore() *Store {
	return &Store{states: domain.States{}}
}

func (s *Store) LoadStates(ctx context.Context) (domain.States, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	out := make(domain.States, len(s.states))
	for k, v := range s.states {
		out[k] = v
	}
	return out, nil
}

func (s *Store) SaveStates(ctx context.Context, states domain.States) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}
	s.states = make(domain.States, len(states))
	for k, v := range states {
		s.states[k] = v
	}
	s.Saves++
	return nil
}

func (s *Store) LoadTrackedTimes(ctx context.Context) ([]domain.TrackedTime, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	return append([]domain.TrackedTime(nil), s.entries...), nil
}

func (s *Store) SaveTrackedTimes(ctx context.Context, entries []domain.TrackedTime) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}
	s.entries = append([]domain.TrackedTime(nil), entries...)
	s.Saves++
	return nil
}

func (s *Store) Close() error { return nil }
