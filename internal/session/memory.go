package session

import (
	"context"
	"sync"
)

// MemoryStore keeps sessions in a process-local map. Good for dev and
// tests; state dies with the process.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]State
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		sessions: make(map[string]State),
	}
}

func (s *MemoryStore) Get(_ context.Context, token string) (*State, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	state, ok := s.sessions[token]
	if !ok {
		return nil, nil
	}
	return copyState(state), nil
}

func (s *MemoryStore) Save(_ context.Context, token string, state *State) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.sessions[token] = *copyState(*state)
	return nil
}

func (s *MemoryStore) Delete(_ context.Context, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.sessions, token)
	return nil
}

// copyState keeps callers from mutating stored state through shared slices
// or pointers.
func copyState(state State) *State {
	out := State{}
	if state.Identity != nil {
		id := *state.Identity
		out.Identity = &id
	}
	if len(state.Flashes) > 0 {
		out.Flashes = append([]Flash(nil), state.Flashes...)
	}
	return &out
}
