package ledger

import (
	"context"
	"sync"

	id "penledger/pkg/domain"
	"penledger/pkg/platform/sentinel"
)

// Store persists policies and tax rates. Interface-driven so persistence can
// be swapped without rewiring the service.
type Store interface {
	AppendPolicy(ctx context.Context, policy *InsurancePolicy) error
	ListPolicies(ctx context.Context, pensionerID id.AccountID) ([]InsurancePolicy, error)
	SetTaxRate(ctx context.Context, rate *TaxRate) error
	GetTaxRate(ctx context.Context, pensionerID id.AccountID) (*TaxRate, error)
}

// InMemory keeps the ledger in process memory behind a RWMutex.
type InMemory struct {
	mu       sync.RWMutex
	policies map[id.AccountID][]InsurancePolicy
	taxRates map[id.AccountID]TaxRate
}

func NewInMemory() *InMemory {
	return &InMemory{
		policies: make(map[id.AccountID][]InsurancePolicy),
		taxRates: make(map[id.AccountID]TaxRate),
	}
}

func (s *InMemory) AppendPolicy(_ context.Context, policy *InsurancePolicy) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.policies[policy.PensionerID] = append(s.policies[policy.PensionerID], *policy)
	return nil
}

func (s *InMemory) ListPolicies(_ context.Context, pensionerID id.AccountID) ([]InsurancePolicy, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	stored := s.policies[pensionerID]
	out := make([]InsurancePolicy, len(stored))
	copy(out, stored)
	return out, nil
}

func (s *InMemory) SetTaxRate(_ context.Context, rate *TaxRate) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.taxRates[rate.PensionerID] = *rate
	return nil
}

func (s *InMemory) GetTaxRate(_ context.Context, pensionerID id.AccountID) (*TaxRate, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rate, ok := s.taxRates[pensionerID]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	return &rate, nil
}
