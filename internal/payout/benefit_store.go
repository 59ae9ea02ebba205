package payout

import (
	"context"
	"sync"
	"time"

	"penledger/internal/pensioner/models"
	id "penledger/pkg/domain"
	"penledger/pkg/platform/sentinel"
)

// Benefit is the beneficiary-side view of an assigned death benefit, keyed
// by the spouse so a beneficiary can look up what they are owed without
// knowing the pensioner's record.
type Benefit struct {
	SpouseID    id.AccountID              `json:"spouse_id"`
	PensionerID id.AccountID              `json:"pensioner_id"`
	Amount      int64                     `json:"amount"`
	Status      models.DeathBenefitStatus `json:"status"`
	AssignedAt  time.Time                 `json:"assigned_at"`
}

// BenefitStore indexes assigned benefits by beneficiary. The pensioner
// record stays the canonical state machine; this is the lookup side.
type BenefitStore interface {
	Assign(ctx context.Context, benefit Benefit) error
	FindBySpouse(ctx context.Context, spouseID id.AccountID) (*Benefit, error)
	MarkPaid(ctx context.Context, spouseID id.AccountID) error
}

// InMemoryBenefitStore keeps the beneficiary index in process memory.
type InMemoryBenefitStore struct {
	mu       sync.RWMutex
	benefits map[id.AccountID]Benefit
}

func NewInMemoryBenefitStore() *InMemoryBenefitStore {
	return &InMemoryBenefitStore{benefits: make(map[id.AccountID]Benefit)}
}

func (s *InMemoryBenefitStore) Assign(_ context.Context, benefit Benefit) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.benefits[benefit.SpouseID] = benefit
	return nil
}

func (s *InMemoryBenefitStore) FindBySpouse(_ context.Context, spouseID id.AccountID) (*Benefit, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	benefit, ok := s.benefits[spouseID]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	return &benefit, nil
}

func (s *InMemoryBenefitStore) MarkPaid(_ context.Context, spouseID id.AccountID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	benefit, ok := s.benefits[spouseID]
	if !ok {
		return sentinel.ErrNotFound
	}
	benefit.Status = models.DeathBenefitPaid
	s.benefits[spouseID] = benefit
	return nil
}
