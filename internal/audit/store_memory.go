package audit

import (
	"context"
	"sync"

	id "penledger/pkg/domain"
)

// InMemoryStore keeps the audit trail in process memory. It intentionally
// favors clarity over performance.
type InMemoryStore struct {
	mu     sync.RWMutex
	events []Event
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{}
}

func (s *InMemoryStore) Append(_ context.Context, event Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, event)
	return nil
}

func (s *InMemoryStore) ListByAccount(_ context.Context, account id.AccountID) ([]Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []Event
	for _, e := range s.events {
		if e.Actor == account || e.Subject == account {
			out = append(out, e)
		}
	}
	return out, nil
}
