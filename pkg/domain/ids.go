// Package domain holds the typed identifiers shared across the ledger.
//
// Identifiers are opaque account handles. An account id names an actor
// (owner, company, bank, tax office, pensioner or spouse); which role set
// it belongs to is decided by the authorization registry, not the type.
package domain

import (
	"github.com/google/uuid"

	dErrors "penledger/pkg/domain-errors"
)

// AccountID identifies any actor known to the ledger.
type AccountID uuid.UUID

// ParseAccountID validates and returns an AccountID.
// IDs must be valid, non-empty, non-nil UUIDs.
func ParseAccountID(s string) (AccountID, error) {
	if s == "" {
		return AccountID{}, dErrors.New(dErrors.CodeInvalidInput, "account id cannot be empty")
	}
	u, err := uuid.Parse(s)
	if err != nil {
		return AccountID{}, dErrors.New(dErrors.CodeInvalidInput, "account id must be a valid UUID")
	}
	if u == uuid.Nil {
		return AccountID{}, dErrors.New(dErrors.CodeInvalidInput, "account id cannot be the nil UUID")
	}
	return AccountID(u), nil
}

// String returns the canonical UUID string form.
func (a AccountID) String() string {
	return uuid.UUID(a).String()
}

// IsNil reports whether the id is unset.
func (a AccountID) IsNil() bool {
	return uuid.UUID(a) == uuid.Nil
}

// MarshalText implements encoding.TextMarshaler so IDs serialize as UUID strings.
func (a AccountID) MarshalText() ([]byte, error) {
	return []byte(a.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (a *AccountID) UnmarshalText(b []byte) error {
	parsed, err := ParseAccountID(string(b))
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}
