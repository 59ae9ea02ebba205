package ledger

import (
	"context"
	"errors"
	"log/slog"

	"penledger/internal/audit"
	"penledger/internal/authz"
	id "penledger/pkg/domain"
	dErrors "penledger/pkg/domain-errors"
	"penledger/pkg/platform/sentinel"
	"penledger/pkg/requestcontext"
)

// Directory answers whether a pensioner record exists, without pulling the
// whole registry in. The pensioner store satisfies it.
type Directory interface {
	Exists(ctx context.Context, pensionerID id.AccountID) (bool, error)
}

// Service gates ledger mutations: banks attach policies, tax offices set the
// rate. Both require the pensioner to be registered first.
type Service struct {
	store      Store
	pensioners Directory
	authz      *authz.Service
	logger     *slog.Logger
	audit      *audit.Publisher
}

// Option configures the Service.
type Option func(*Service)

// WithLogger sets the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) { s.logger = logger }
}

// WithAudit sets the audit publisher.
func WithAudit(p *audit.Publisher) Option {
	return func(s *Service) { s.audit = p }
}

func New(store Store, pensioners Directory, authzSvc *authz.Service, opts ...Option) *Service {
	s := &Service{store: store, pensioners: pensioners, authz: authzSvc}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// AddInsurancePolicy appends a policy issued by the calling bank.
func (s *Service) AddInsurancePolicy(ctx context.Context, caller, pensionerID id.AccountID, amount int64, details string) (*InsurancePolicy, error) {
	policy, err := s.appendPolicy(ctx, caller, pensionerID, amount, details)
	s.emit(ctx, caller, "add_insurance_policy", pensionerID, err)
	return policy, err
}

func (s *Service) appendPolicy(ctx context.Context, caller, pensionerID id.AccountID, amount int64, details string) (*InsurancePolicy, error) {
	if err := s.authz.RequireRole(ctx, authz.RoleBank, caller); err != nil {
		return nil, err
	}
	if err := s.requirePensioner(ctx, pensionerID); err != nil {
		return nil, err
	}

	policy, err := NewInsurancePolicy(pensionerID, caller, amount, details, requestcontext.Now(ctx))
	if err != nil {
		return nil, err
	}
	if err := s.store.AppendPolicy(ctx, policy); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to append insurance policy")
	}
	return policy, nil
}

// SetTaxRate overwrites the pensioner's tax rate with one issued by the
// calling tax office. A single rate is active per pensioner.
func (s *Service) SetTaxRate(ctx context.Context, caller, pensionerID id.AccountID, percent int64) (*TaxRate, error) {
	rate, err := s.applyTaxRate(ctx, caller, pensionerID, percent)
	s.emit(ctx, caller, "set_tax_rate", pensionerID, err)
	return rate, err
}

func (s *Service) applyTaxRate(ctx context.Context, caller, pensionerID id.AccountID, percent int64) (*TaxRate, error) {
	if err := s.authz.RequireRole(ctx, authz.RoleTaxOffice, caller); err != nil {
		return nil, err
	}
	if err := s.requirePensioner(ctx, pensionerID); err != nil {
		return nil, err
	}

	rate, err := NewTaxRate(pensionerID, caller, percent, requestcontext.Now(ctx))
	if err != nil {
		return nil, err
	}
	if err := s.store.SetTaxRate(ctx, rate); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to set tax rate")
	}
	return rate, nil
}

// Policies lists the pensioner's insurance policies. Read-only, any caller.
func (s *Service) Policies(ctx context.Context, pensionerID id.AccountID) ([]InsurancePolicy, error) {
	if err := s.requirePensioner(ctx, pensionerID); err != nil {
		return nil, err
	}
	policies, err := s.store.ListPolicies(ctx, pensionerID)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list policies")
	}
	return policies, nil
}

// TaxRateFor returns the pensioner's active tax rate, or NotFound if no tax
// office has applied one yet.
func (s *Service) TaxRateFor(ctx context.Context, pensionerID id.AccountID) (*TaxRate, error) {
	if err := s.requirePensioner(ctx, pensionerID); err != nil {
		return nil, err
	}
	rate, err := s.store.GetTaxRate(ctx, pensionerID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "no tax rate applied")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to read tax rate")
	}
	return rate, nil
}

// InsuranceContribution sums the effective policy amounts for use by the
// payout calculation.
func (s *Service) InsuranceContribution(ctx context.Context, pensionerID id.AccountID) (int64, error) {
	policies, err := s.store.ListPolicies(ctx, pensionerID)
	if err != nil {
		return 0, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list policies")
	}
	var total int64
	for _, p := range policies {
		if p.Effective {
			total += p.Amount
		}
	}
	return total, nil
}

// EffectiveTaxPercent returns the active tax percentage, zero when no rate
// has been applied.
func (s *Service) EffectiveTaxPercent(ctx context.Context, pensionerID id.AccountID) (uint8, error) {
	rate, err := s.store.GetTaxRate(ctx, pensionerID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return 0, nil
		}
		return 0, dErrors.Wrap(err, dErrors.CodeInternal, "failed to read tax rate")
	}
	if !rate.Effective {
		return 0, nil
	}
	return rate.Percent, nil
}

func (s *Service) requirePensioner(ctx context.Context, pensionerID id.AccountID) error {
	ok, err := s.pensioners.Exists(ctx, pensionerID)
	if err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to check pensioner")
	}
	if !ok {
		return dErrors.New(dErrors.CodeNotFound, "pensioner not found")
	}
	return nil
}

// emit records the command whether it applied or was rejected; rejections
// carry the reason in Detail.
func (s *Service) emit(ctx context.Context, actor id.AccountID, action string, subject id.AccountID, err error) {
	if s.audit == nil {
		return
	}
	event := audit.Event{
		Actor:   actor,
		Action:  action,
		Subject: subject,
		Outcome: audit.OutcomeOK,
	}
	if err != nil {
		event.Outcome = audit.OutcomeRejected
		event.Detail = err.Error()
	}
	s.audit.Emit(ctx, event)
}
