// Package service implements the pensioner registry: record creation,
// employment updates by the registered employer, beneficiary designation by
// the pensioner themself, and record lookup.
package service

import (
	"context"
	"errors"
	"log/slog"

	"penledger/internal/audit"
	"penledger/internal/authz"
	"penledger/internal/pensioner/models"
	"penledger/internal/pensioner/store"
	id "penledger/pkg/domain"
	dErrors "penledger/pkg/domain-errors"
	"penledger/pkg/platform/sentinel"
	"penledger/pkg/requestcontext"
)

// Service gates every mutation through the authorization registry first,
// then applies it atomically through the store's Execute callback.
type Service struct {
	records          store.Store
	authz            *authz.Service
	eligibilityYears uint32
	logger           *slog.Logger
	audit            *audit.Publisher
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

// New builds the registry service. eligibilityYears is the minimum years
// worked before the eligibility flag derives to true.
func New(records store.Store, authzSvc *authz.Service, eligibilityYears uint32, opts ...Option) *Service {
	s := &Service{
		records:          records,
		authz:            authzSvc,
		eligibilityYears: eligibilityYears,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Store exposes the record store for the payout lifecycle manager, which
// shares the same canonical record set.
func (s *Service) Store() store.Store {
	return s.records
}

// EligibilityYears returns the configured eligibility threshold.
func (s *Service) EligibilityYears() uint32 {
	return s.eligibilityYears
}

// Register creates the record for a pensioner employed by the calling
// company. The caller must be the employer itself and must hold a company
// authorization; a record is created exactly once per identifier.
func (s *Service) Register(ctx context.Context, caller, pensionerID, employerID id.AccountID) (*models.Pensioner, error) {
	record, err := s.createRecord(ctx, caller, pensionerID, employerID)
	s.emit(ctx, caller, "register_pensioner", pensionerID, err)
	return record, err
}

func (s *Service) createRecord(ctx context.Context, caller, pensionerID, employerID id.AccountID) (*models.Pensioner, error) {
	if caller != employerID {
		return nil, dErrors.New(dErrors.CodeUnauthorized, "a company may only register its own pensioners")
	}
	if err := s.authz.RequireRole(ctx, authz.RoleCompany, caller); err != nil {
		return nil, err
	}

	record, err := models.NewPensioner(pensionerID, employerID, requestcontext.Now(ctx))
	if err != nil {
		return nil, err
	}
	if err := s.records.Create(ctx, record); err != nil {
		if errors.Is(err, sentinel.ErrConflict) {
			return nil, dErrors.New(dErrors.CodeAlreadyRegistered, "pensioner is already registered")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to register pensioner")
	}
	return record, nil
}

// UpdateEmployment writes years worked, salary and status, and recomputes
// the eligibility flag. Only the registered employer may call it, and only
// while the pensioner is not deceased.
func (s *Service) UpdateEmployment(ctx context.Context, caller, pensionerID id.AccountID, years, salary int64, status models.EmploymentStatus) (*models.Pensioner, error) {
	record, err := s.applyEmployment(ctx, caller, pensionerID, years, salary, status)
	s.emit(ctx, caller, "update_employment", pensionerID, err)
	return record, err
}

func (s *Service) applyEmployment(ctx context.Context, caller, pensionerID id.AccountID, years, salary int64, status models.EmploymentStatus) (*models.Pensioner, error) {
	if err := models.ValidateEmployment(years, salary, status); err != nil {
		return nil, err
	}
	if err := s.authz.RequireRole(ctx, authz.RoleCompany, caller); err != nil {
		return nil, err
	}

	now := requestcontext.Now(ctx)
	record, err := s.records.Execute(ctx, pensionerID,
		func(p *models.Pensioner) error {
			if p.EmployerID != caller {
				return dErrors.New(dErrors.CodeUnauthorized, "caller is not the pensioner's employer")
			}
			return p.CanUpdateEmployment(status)
		},
		func(p *models.Pensioner) {
			p.ApplyEmployment(uint32(years), salary, status, s.eligibilityYears, now)
		},
	)
	if err != nil {
		return nil, wrapRecordErr(err)
	}
	return record, nil
}

// SetBeneficiary designates the spouse beneficiary. Only the pensioner
// themself may call it, and only while active. Last write wins.
func (s *Service) SetBeneficiary(ctx context.Context, caller, pensionerID, spouseID id.AccountID) (*models.Pensioner, error) {
	record, err := s.designateBeneficiary(ctx, caller, pensionerID, spouseID)
	s.emit(ctx, caller, "set_beneficiary", pensionerID, err)
	return record, err
}

func (s *Service) designateBeneficiary(ctx context.Context, caller, pensionerID, spouseID id.AccountID) (*models.Pensioner, error) {
	if caller != pensionerID {
		return nil, dErrors.New(dErrors.CodeUnauthorized, "only the pensioner may designate a beneficiary")
	}

	now := requestcontext.Now(ctx)
	record, err := s.records.Execute(ctx, pensionerID,
		func(p *models.Pensioner) error {
			return p.CanSetBeneficiary(spouseID)
		},
		func(p *models.Pensioner) {
			p.ApplyBeneficiary(spouseID, now)
		},
	)
	if err != nil {
		return nil, wrapRecordErr(err)
	}
	return record, nil
}

// GetRecord returns the full record. Read-only, any caller.
func (s *Service) GetRecord(ctx context.Context, pensionerID id.AccountID) (*models.Pensioner, error) {
	record, err := s.records.FindByID(ctx, pensionerID)
	if err != nil {
		return nil, wrapRecordErr(err)
	}
	return record, nil
}

// wrapRecordErr translates store sentinels into coded domain errors and
// passes already-coded errors through untouched.
func wrapRecordErr(err error) error {
	switch {
	case errors.Is(err, sentinel.ErrNotFound):
		return dErrors.New(dErrors.CodeNotFound, "pensioner not found")
	case dErrors.HasCode(err, dErrors.CodeInternal):
		return err
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
