// Package ledger keeps the per-pensioner financial attachments: insurance
// policies written by banks and the single active tax rate applied by tax
// offices. Both feed the payout calculation.
package ledger

import (
	"time"

	"github.com/google/uuid"

	id "penledger/pkg/domain"
	dErrors "penledger/pkg/domain-errors"
)

// MaxTaxRatePercent bounds tax rates; a rate above this is invalid input.
const MaxTaxRatePercent = 100

const maxDetailsLen = 256

// InsurancePolicy is one bank-issued policy attached to a pensioner.
// Policies accumulate; every effective policy's amount contributes to the
// payout calculation.
type InsurancePolicy struct {
	ID          uuid.UUID    `json:"id"`
	PensionerID id.AccountID `json:"pensioner_id"`
	BankID      id.AccountID `json:"bank_id"`
	// Amount is the policy's contribution per payout period, in the same
	// currency units as salary.
	Amount    int64     `json:"amount"`
	Details   string    `json:"details,omitempty"`
	Effective bool      `json:"effective"`
	CreatedAt time.Time `json:"created_at"`
}

// NewInsurancePolicy validates and builds a policy record.
func NewInsurancePolicy(pensionerID, bankID id.AccountID, amount int64, details string, now time.Time) (*InsurancePolicy, error) {
	if amount < 0 {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "insurance amount cannot be negative")
	}
	if len(details) > maxDetailsLen {
		return nil, dErrors.Newf(dErrors.CodeInvalidInput, "policy details must be %d characters or less", maxDetailsLen)
	}
	return &InsurancePolicy{
		ID:          uuid.New(),
		PensionerID: pensionerID,
		BankID:      bankID,
		Amount:      amount,
		Details:     details,
		Effective:   true,
		CreatedAt:   now,
	}, nil
}

// TaxRate is the single active tax configuration for a pensioner. Setting a
// new rate overwrites the previous one; rates do not accumulate.
type TaxRate struct {
	PensionerID id.AccountID `json:"pensioner_id"`
	TaxOfficeID id.AccountID `json:"tax_office_id"`
	Percent     uint8        `json:"percent"`
	Effective   bool         `json:"effective"`
	UpdatedAt   time.Time    `json:"updated_at"`
}

// NewTaxRate validates the rate bound [0, MaxTaxRatePercent].
func NewTaxRate(pensionerID, officeID id.AccountID, percent int64, now time.Time) (*TaxRate, error) {
	if percent < 0 || percent > MaxTaxRatePercent {
		return nil, dErrors.Newf(dErrors.CodeInvalidInput, "tax rate must be between 0 and %d percent", MaxTaxRatePercent)
	}
	return &TaxRate{
		PensionerID: pensionerID,
		TaxOfficeID: officeID,
		Percent:     uint8(percent),
		Effective:   true,
		UpdatedAt:   now,
	}, nil
}
