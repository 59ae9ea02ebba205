package audit

import (
	"context"
	"log/slog"

	id "penledger/pkg/domain"
	"penledger/pkg/requestcontext"
)

// Store is the append-only sink behind the publisher.
type Store interface {
	Append(ctx context.Context, event Event) error
	ListByAccount(ctx context.Context, account id.AccountID) ([]Event, error)
}

// Publisher captures structured audit events. It is append-only and uses the
// storage layer for persistence so tests can swap sinks easily.
//
// Auditing never blocks a command: append failures are logged, not returned,
// because the command has already validated and applied by the time it is
// recorded.
type Publisher struct {
	store  Store
	logger *slog.Logger
}

func NewPublisher(store Store, logger *slog.Logger) *Publisher {
	return &Publisher{store: store, logger: logger}
}

// Emit records an event, stamping the request time if unset.
func (p *Publisher) Emit(ctx context.Context, event Event) {
	if event.Timestamp.IsZero() {
		event.Timestamp = requestcontext.Now(ctx)
	}
	if err := p.store.Append(ctx, event); err != nil && p.logger != nil {
		p.logger.ErrorContext(ctx, "audit append failed",
			"action", event.Action,
			"actor", event.Actor,
			"error", err,
		)
	}
}

// List returns the trail touching an account, as actor or subject.
func (p *Publisher) List(ctx context.Context, account id.AccountID) ([]Event, error) {
	return p.store.ListByAccount(ctx, account)
}
