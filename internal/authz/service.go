package authz

import (
	"context"
	"errors"
	"log/slog"

	"penledger/internal/audit"
	authzmetrics "penledger/internal/authz/metrics"
	id "penledger/pkg/domain"
	dErrors "penledger/pkg/domain-errors"
	"penledger/pkg/platform/sentinel"
)

// Service enforces who may mutate the role sets. Every mutator here is
// owner-only; read checks are open to any caller.
type Service struct {
	store   Store
	logger  *slog.Logger
	metrics *authzmetrics.Metrics
	audit   *audit.Publisher
}

// Option configures the Service.
type Option func(*Service)

// WithLogger sets the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) { s.logger = logger }
}

// WithMetrics sets the metrics collector.
func WithMetrics(m *authzmetrics.Metrics) Option {
	return func(s *Service) { s.metrics = m }
}

// WithAudit sets the audit publisher.
func WithAudit(p *audit.Publisher) Option {
	return func(s *Service) { s.audit = p }
}

func New(store Store, opts ...Option) *Service {
	s := &Service{store: store}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Owner returns the current contract owner.
func (s *Service) Owner(ctx context.Context) (id.AccountID, error) {
	owner, err := s.store.Owner(ctx)
	if err != nil {
		return id.AccountID{}, dErrors.Wrap(err, dErrors.CodeInternal, "failed to read owner")
	}
	return owner, nil
}

// RequireOwner fails Unauthorized unless caller is the contract owner.
func (s *Service) RequireOwner(ctx context.Context, caller id.AccountID) error {
	owner, err := s.Owner(ctx)
	if err != nil {
		return err
	}
	if caller != owner {
		return dErrors.New(dErrors.CodeUnauthorized, "caller is not the contract owner")
	}
	return nil
}

// RequireRole fails Unauthorized unless caller is in the given role set.
func (s *Service) RequireRole(ctx context.Context, role Role, caller id.AccountID) error {
	ok, err := s.store.Has(ctx, role, caller)
	if err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to check role")
	}
	if !ok {
		return dErrors.Newf(dErrors.CodeUnauthorized, "caller is not an authorized %s", role)
	}
	return nil
}

// IsAuthorizedCompany reports whether the account is a registered company.
func (s *Service) IsAuthorizedCompany(ctx context.Context, account id.AccountID) (bool, error) {
	return s.store.Has(ctx, RoleCompany, account)
}

// IsAuthorizedBank reports whether the account is a registered bank.
func (s *Service) IsAuthorizedBank(ctx context.Context, account id.AccountID) (bool, error) {
	return s.store.Has(ctx, RoleBank, account)
}

// IsAuthorizedTaxOffice reports whether the account is a registered tax office.
func (s *Service) IsAuthorizedTaxOffice(ctx context.Context, account id.AccountID) (bool, error) {
	return s.store.Has(ctx, RoleTaxOffice, account)
}

// RegisterCompany authorizes a company id. Owner only.
func (s *Service) RegisterCompany(ctx context.Context, caller, company id.AccountID) error {
	return s.register(ctx, caller, RoleCompany, company)
}

// RegisterBank authorizes a bank id. Owner only.
func (s *Service) RegisterBank(ctx context.Context, caller, bank id.AccountID) error {
	return s.register(ctx, caller, RoleBank, bank)
}

// RegisterTaxOffice authorizes a tax office id. Owner only.
func (s *Service) RegisterTaxOffice(ctx context.Context, caller, office id.AccountID) error {
	return s.register(ctx, caller, RoleTaxOffice, office)
}

// UnregisterCompany revokes a company authorization. Owner only.
func (s *Service) UnregisterCompany(ctx context.Context, caller, company id.AccountID) error {
	return s.unregister(ctx, caller, RoleCompany, company)
}

// UnregisterBank revokes a bank authorization. Owner only.
func (s *Service) UnregisterBank(ctx context.Context, caller, bank id.AccountID) error {
	return s.unregister(ctx, caller, RoleBank, bank)
}

// UnregisterTaxOffice revokes a tax office authorization. Owner only.
func (s *Service) UnregisterTaxOffice(ctx context.Context, caller, office id.AccountID) error {
	return s.unregister(ctx, caller, RoleTaxOffice, office)
}

// TransferOwnership hands the owner identity to another account. Only the
// current owner may do this, and only to a non-nil id.
func (s *Service) TransferOwnership(ctx context.Context, caller, newOwner id.AccountID) error {
	err := s.transfer(ctx, caller, newOwner)
	if err == nil && s.metrics != nil {
		s.metrics.IncOwnerTransferred()
	}
	s.emit(ctx, caller, "transfer_ownership", newOwner, err)
	return err
}

func (s *Service) transfer(ctx context.Context, caller, newOwner id.AccountID) error {
	if err := s.RequireOwner(ctx, caller); err != nil {
		return err
	}
	if newOwner.IsNil() {
		return dErrors.New(dErrors.CodeInvalidInput, "new owner id cannot be nil")
	}
	if err := s.store.SetOwner(ctx, newOwner); err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to transfer ownership")
	}
	return nil
}

func (s *Service) register(ctx context.Context, caller id.AccountID, role Role, account id.AccountID) error {
	err := s.addRole(ctx, caller, role, account)
	if err == nil && s.metrics != nil {
		s.metrics.IncRegistered(role.String())
	}
	s.emit(ctx, caller, "register_"+role.String(), account, err)
	return err
}

func (s *Service) addRole(ctx context.Context, caller id.AccountID, role Role, account id.AccountID) error {
	if err := s.RequireOwner(ctx, caller); err != nil {
		return err
	}
	if account.IsNil() {
		return dErrors.New(dErrors.CodeInvalidInput, "account id cannot be nil")
	}
	if err := s.store.Add(ctx, role, account); err != nil {
		if errors.Is(err, sentinel.ErrConflict) {
			return dErrors.Newf(dErrors.CodeAlreadyRegistered, "%s is already registered", role)
		}
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to register "+role.String())
	}
	return nil
}

func (s *Service) unregister(ctx context.Context, caller id.AccountID, role Role, account id.AccountID) error {
	err := s.removeRole(ctx, caller, role, account)
	if err == nil && s.metrics != nil {
		s.metrics.IncDeregistered(role.String())
	}
	s.emit(ctx, caller, "unregister_"+role.String(), account, err)
	return err
}

func (s *Service) removeRole(ctx context.Context, caller id.AccountID, role Role, account id.AccountID) error {
	if err := s.RequireOwner(ctx, caller); err != nil {
		return err
	}
	if err := s.store.Remove(ctx, role, account); err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return dErrors.Newf(dErrors.CodeNotFound, "%s is not registered", role)
		}
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to unregister "+role.String())
	}
	return nil
}

// emit records the command in the audit trail whether it applied or was
// rejected; rejections carry the reason in Detail.
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
