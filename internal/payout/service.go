package payout

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"penledger/internal/audit"
	"penledger/internal/authz"
	"penledger/internal/ledger"
	"penledger/internal/pensioner/models"
	"penledger/internal/pensioner/store"
	payoutmetrics "penledger/internal/payout/metrics"
	id "penledger/pkg/domain"
	dErrors "penledger/pkg/domain-errors"
	"penledger/pkg/platform/sentinel"
	"penledger/pkg/requestcontext"
)

// Service is the payout lifecycle manager and death benefit processor. It
// shares the pensioner registry's record store so every transition runs
// against the canonical record under the store's Execute lock.
type Service struct {
	records  store.Store
	ledger   *ledger.Service
	authz    *authz.Service
	benefits BenefitStore
	logger   *slog.Logger
	metrics  *payoutmetrics.Metrics
	audit    *audit.Publisher
}

// Option configures the Service.
type Option func(*Service)

// WithLogger sets the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) { s.logger = logger }
}

// WithMetrics sets the metrics collector.
func WithMetrics(m *payoutmetrics.Metrics) Option {
	return func(s *Service) { s.metrics = m }
}

// WithAudit sets the audit publisher.
func WithAudit(p *audit.Publisher) Option {
	return func(s *Service) { s.audit = p }
}

func New(records store.Store, ledgerSvc *ledger.Service, authzSvc *authz.Service, benefits BenefitStore, opts ...Option) *Service {
	s := &Service{
		records:  records,
		ledger:   ledgerSvc,
		authz:    authzSvc,
		benefits: benefits,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// EstimatePayout computes the current payout estimate from the record and
// ledger entries. Read-only, any caller; rejected once the pensioner is
// deceased (the entitlement converts to a death benefit).
func (s *Service) EstimatePayout(ctx context.Context, pensionerID id.AccountID) (int64, error) {
	start := time.Now()
	record, err := s.records.FindByID(ctx, pensionerID)
	if err != nil {
		return 0, wrapRecordErr(err)
	}
	if record.Status == models.EmploymentDeceased {
		return 0, dErrors.New(dErrors.CodeInvalidState, "pensioner is deceased")
	}

	insurance, taxPercent, err := s.ledgerInputs(ctx, pensionerID)
	if err != nil {
		return 0, err
	}

	amount := Estimate(record.YearsWorked, record.Salary, insurance, taxPercent)
	if s.metrics != nil {
		s.metrics.ObserveEstimate(start)
	}
	return amount, nil
}

// InitiatePayout computes and stores the final payout amount and moves the
// lifecycle to initiated. Callable by the owner or the pensioner themself;
// a payout is initiated at most once.
func (s *Service) InitiatePayout(ctx context.Context, caller, pensionerID id.AccountID) (*models.Pensioner, error) {
	record, err := s.initiate(ctx, caller, pensionerID)
	s.emit(ctx, caller, "initiate_payout", pensionerID, err)
	return record, err
}

func (s *Service) initiate(ctx context.Context, caller, pensionerID id.AccountID) (*models.Pensioner, error) {
	if err := s.requireOwnerOrSelf(ctx, caller, pensionerID); err != nil {
		return nil, err
	}

	insurance, taxPercent, err := s.ledgerInputs(ctx, pensionerID)
	if err != nil {
		return nil, err
	}

	now := requestcontext.Now(ctx)
	record, err := s.records.Execute(ctx, pensionerID,
		func(p *models.Pensioner) error {
			return p.CanInitiatePayout()
		},
		func(p *models.Pensioner) {
			amount := Estimate(p.YearsWorked, p.Salary, insurance, taxPercent)
			p.ApplyPayoutInitiation(amount, now)
		},
	)
	if err != nil {
		return nil, wrapRecordErr(err)
	}

	if s.metrics != nil {
		s.metrics.PayoutsInitiated.Inc()
	}
	return record, nil
}

// CompletePayout acknowledges disbursement and moves the lifecycle to its
// terminal state. The core records the transition; moving funds is the
// external collaborator's job. Callable by the owner or the pensioner.
func (s *Service) CompletePayout(ctx context.Context, caller, pensionerID id.AccountID) (*models.Pensioner, error) {
	record, err := s.complete(ctx, caller, pensionerID)
	s.emit(ctx, caller, "complete_payout", pensionerID, err)
	return record, err
}

func (s *Service) complete(ctx context.Context, caller, pensionerID id.AccountID) (*models.Pensioner, error) {
	if err := s.requireOwnerOrSelf(ctx, caller, pensionerID); err != nil {
		return nil, err
	}

	now := requestcontext.Now(ctx)
	record, err := s.records.Execute(ctx, pensionerID,
		func(p *models.Pensioner) error {
			return p.CanCompletePayout()
		},
		func(p *models.Pensioner) {
			p.ApplyPayoutCompletion(now)
		},
	)
	if err != nil {
		return nil, wrapRecordErr(err)
	}

	if s.metrics != nil {
		s.metrics.PayoutsCompleted.Inc()
	}
	return record, nil
}

// ReportDeath marks the pensioner deceased, freezes employment updates, and
// assigns the death benefit if a beneficiary was designated. Callable by the
// owner or the pensioner's own employer company. The benefit is computed
// from the record as it stood at the moment of death.
func (s *Service) ReportDeath(ctx context.Context, caller, pensionerID id.AccountID) (*models.Pensioner, error) {
	record, err := s.reportDeath(ctx, caller, pensionerID)
	s.emit(ctx, caller, "report_death", pensionerID, err)
	return record, err
}

func (s *Service) reportDeath(ctx context.Context, caller, pensionerID id.AccountID) (*models.Pensioner, error) {
	owner, err := s.authz.Owner(ctx)
	if err != nil {
		return nil, err
	}
	if caller != owner {
		if err := s.authz.RequireRole(ctx, authz.RoleCompany, caller); err != nil {
			return nil, err
		}
	}

	insurance, taxPercent, err := s.ledgerInputs(ctx, pensionerID)
	if err != nil {
		return nil, err
	}

	now := requestcontext.Now(ctx)
	record, err := s.records.Execute(ctx, pensionerID,
		func(p *models.Pensioner) error {
			if caller != owner && p.EmployerID != caller {
				return dErrors.New(dErrors.CodeUnauthorized, "only the owner or the pensioner's employer may report a death")
			}
			return p.CanReportDeath()
		},
		func(p *models.Pensioner) {
			// Benefit base uses the record as it stood before death.
			benefit := DeathBenefit(p.YearsWorked, p.Salary, insurance, taxPercent)
			p.ApplyDeath(now)
			if p.Beneficiary != nil {
				p.ApplyDeathBenefit(benefit, now)
			}
		},
	)
	if err != nil {
		return nil, wrapRecordErr(err)
	}

	if record.Beneficiary != nil {
		assignErr := s.benefits.Assign(ctx, Benefit{
			SpouseID:    *record.Beneficiary,
			PensionerID: record.ID,
			Amount:      record.DeathBenefitAmount,
			Status:      models.DeathBenefitAssigned,
			AssignedAt:  now,
		})
		if assignErr != nil && s.logger != nil {
			s.logger.ErrorContext(ctx, "failed to index death benefit by beneficiary",
				"pensioner", record.ID, "error", assignErr)
		}
		if s.metrics != nil {
			s.metrics.DeathBenefitAssigned.Inc()
		}
	}

	if s.metrics != nil {
		s.metrics.DeathsReported.Inc()
	}
	return record, nil
}

// MarkDeathBenefitPaid acknowledges the external disbursement of an
// assigned benefit. Owner only.
func (s *Service) MarkDeathBenefitPaid(ctx context.Context, caller, pensionerID id.AccountID) (*models.Pensioner, error) {
	record, err := s.markBenefitPaid(ctx, caller, pensionerID)
	s.emit(ctx, caller, "mark_death_benefit_paid", pensionerID, err)
	return record, err
}

func (s *Service) markBenefitPaid(ctx context.Context, caller, pensionerID id.AccountID) (*models.Pensioner, error) {
	if err := s.authz.RequireOwner(ctx, caller); err != nil {
		return nil, err
	}

	now := requestcontext.Now(ctx)
	record, err := s.records.Execute(ctx, pensionerID,
		func(p *models.Pensioner) error {
			return p.CanMarkDeathBenefitPaid()
		},
		func(p *models.Pensioner) {
			p.ApplyDeathBenefitPaid(now)
		},
	)
	if err != nil {
		return nil, wrapRecordErr(err)
	}

	if record.Beneficiary != nil {
		if err := s.benefits.MarkPaid(ctx, *record.Beneficiary); err != nil && s.logger != nil {
			s.logger.ErrorContext(ctx, "failed to update beneficiary benefit index",
				"pensioner", record.ID, "error", err)
		}
	}

	if s.metrics != nil {
		s.metrics.DeathBenefitsPaid.Inc()
	}
	return record, nil
}

// DeathBenefitFor returns the benefit assigned to a beneficiary, or
// NotFound if none is assigned.
func (s *Service) DeathBenefitFor(ctx context.Context, spouseID id.AccountID) (*Benefit, error) {
	benefit, err := s.benefits.FindBySpouse(ctx, spouseID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "no death benefit assigned")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to read death benefit")
	}
	return benefit, nil
}

func (s *Service) requireOwnerOrSelf(ctx context.Context, caller, pensionerID id.AccountID) error {
	owner, err := s.authz.Owner(ctx)
	if err != nil {
		return err
	}
	if caller != owner && caller != pensionerID {
		return dErrors.New(dErrors.CodeUnauthorized, "only the owner or the pensioner may drive the payout lifecycle")
	}
	return nil
}

func (s *Service) ledgerInputs(ctx context.Context, pensionerID id.AccountID) (int64, uint8, error) {
	insurance, err := s.ledger.InsuranceContribution(ctx, pensionerID)
	if err != nil {
		return 0, 0, err
	}
	taxPercent, err := s.ledger.EffectiveTaxPercent(ctx, pensionerID)
	if err != nil {
		return 0, 0, err
	}
	return insurance, taxPercent, nil
}

// wrapRecordErr mirrors the registry's sentinel translation.
func wrapRecordErr(err error) error {
	if errors.Is(err, sentinel.ErrNotFound) {
		return dErrors.New(dErrors.CodeNotFound, "pensioner not found")
	}
	var de *dErrors.Error
	if errors.As(err, &de) {
		return err
	}
	return dErrors.Wrap(err, dErrors.CodeInternal, "pensioner store failure")
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
