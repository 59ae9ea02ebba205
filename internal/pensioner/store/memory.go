// Package store persists pensioner records. The Execute method is the
// atomicity primitive: it holds the record lock across validation and
// mutation so a failed precondition leaves state completely unchanged and
// no caller ever observes a partially updated record.
package store

import (
	"context"
	"sync"

	"penledger/internal/pensioner/models"
	id "penledger/pkg/domain"
	"penledger/pkg/platform/sentinel"
)

// Store is interface-driven so the registry and the payout lifecycle can
// share one record set while staying testable.
type Store interface {
	// Create inserts a new record, failing with sentinel.ErrConflict if the
	// id is already registered.
	Create(ctx context.Context, p *models.Pensioner) error
	// FindByID returns a copy of the record or sentinel.ErrNotFound.
	FindByID(ctx context.Context, pensionerID id.AccountID) (*models.Pensioner, error)
	// Exists reports whether a record is registered under the id.
	Exists(ctx context.Context, pensionerID id.AccountID) (bool, error)
	// Execute atomically validates then mutates a record. The lock is held
	// for the whole callback pair; if validate fails, nothing is applied and
	// the error is returned as-is. The updated record copy is returned.
	Execute(ctx context.Context, pensionerID id.AccountID,
		validate func(*models.Pensioner) error,
		mutate func(*models.Pensioner)) (*models.Pensioner, error)
}

// InMemory keeps records in process memory. It intentionally favors clarity
// over performance.
type InMemory struct {
	mu      sync.RWMutex
	records map[id.AccountID]*models.Pensioner
}

func NewInMemory() *InMemory {
	return &InMemory{records: make(map[id.AccountID]*models.Pensioner)}
}

func (s *InMemory) Create(_ context.Context, p *models.Pensioner) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.records[p.ID]; exists {
		return sentinel.ErrConflict
	}
	cp := *p
	s.records[p.ID] = &cp
	return nil
}

func (s *InMemory) FindByID(_ context.Context, pensionerID id.AccountID) (*models.Pensioner, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	record, ok := s.records[pensionerID]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	cp := *record
	return &cp, nil
}

func (s *InMemory) Exists(_ context.Context, pensionerID id.AccountID) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.records[pensionerID]
	return ok, nil
}

func (s *InMemory) Execute(_ context.Context, pensionerID id.AccountID,
	validate func(*models.Pensioner) error,
	mutate func(*models.Pensioner)) (*models.Pensioner, error) {

	s.mu.Lock()
	defer s.mu.Unlock()

	record, ok := s.records[pensionerID]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	if err := validate(record); err != nil {
		return nil, err
	}
	mutate(record)
	cp := *record
	return &cp, nil
}
