package authz

import (
	"context"
	"sync"

	id "penledger/pkg/domain"
	"penledger/pkg/platform/sentinel"
)

// Store persists the owner identity and the role sets. Interface-driven to
// keep the service testable and allow swapping persistence without rewiring
// business code.
type Store interface {
	Owner(ctx context.Context) (id.AccountID, error)
	SetOwner(ctx context.Context, owner id.AccountID) error
	Add(ctx context.Context, role Role, account id.AccountID) error
	Remove(ctx context.Context, role Role, account id.AccountID) error
	Has(ctx context.Context, role Role, account id.AccountID) (bool, error)
}

// InMemory keeps role sets in process memory behind a RWMutex.
type InMemory struct {
	mu    sync.RWMutex
	owner id.AccountID
	roles map[Role]map[id.AccountID]struct{}
}

// NewInMemory builds the store with the owner fixed at construction, the
// way the contract fixes its owner at deployment.
func NewInMemory(owner id.AccountID) *InMemory {
	return &InMemory{
		owner: owner,
		roles: map[Role]map[id.AccountID]struct{}{
			RoleCompany:   {},
			RoleBank:      {},
			RoleTaxOffice: {},
		},
	}
}

func (s *InMemory) Owner(_ context.Context) (id.AccountID, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.owner, nil
}

func (s *InMemory) SetOwner(_ context.Context, owner id.AccountID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.owner = owner
	return nil
}

func (s *InMemory) Add(_ context.Context, role Role, account id.AccountID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	set := s.roles[role]
	if _, exists := set[account]; exists {
		return sentinel.ErrConflict
	}
	set[account] = struct{}{}
	return nil
}

func (s *InMemory) Remove(_ context.Context, role Role, account id.AccountID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	set := s.roles[role]
	if _, exists := set[account]; !exists {
		return sentinel.ErrNotFound
	}
	delete(set, account)
	return nil
}

func (s *InMemory) Has(_ context.Context, role Role, account id.AccountID) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, exists := s.roles[role][account]
	return exists, nil
}
