package models

import (
	"math"
	"time"

	id "penledger/pkg/domain"
	dErrors "penledger/pkg/domain-errors"
)

// Pensioner is the aggregate root for a tracked pension entitlement.
//
// Invariants:
//   - ID and EmployerID are non-nil; EmployerID is immutable after registration
//   - YearsWorked and Salary are never negative
//   - Eligible is derived from YearsWorked and Status, never set directly
//   - Status follows the employment transition table; Deceased is terminal
//     and freezes employment updates and beneficiary designation
//   - PayoutStatus moves only forward (not_started -> initiated -> completed);
//     PayoutAmount is written exactly once, at initiation
//   - DeathBenefitStatus moves only forward; it leaves not_applicable only
//     when death is reported with a beneficiary designated
//
// A record is created exactly once per identifier and never deleted: death
// and payout completion are terminal states, not removals.
type Pensioner struct {
	ID          id.AccountID     `json:"id"`
	EmployerID  id.AccountID     `json:"employer_id"`
	YearsWorked uint32           `json:"years_worked"`
	Salary      int64            `json:"salary"`
	Status      EmploymentStatus `json:"status"`
	Eligible    bool             `json:"eligible"`
	Beneficiary *id.AccountID    `json:"beneficiary,omitempty"`

	PayoutStatus PayoutStatus `json:"payout_status"`
	PayoutAmount int64        `json:"payout_amount"`

	DeathBenefitStatus DeathBenefitStatus `json:"death_benefit_status"`
	DeathBenefitAmount int64              `json:"death_benefit_amount"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewPensioner builds a freshly registered record: zero employment data,
// active, not eligible, payout not started.
func NewPensioner(pensionerID, employerID id.AccountID, now time.Time) (*Pensioner, error) {
	if pensionerID.IsNil() {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "pensioner id cannot be nil")
	}
	if employerID.IsNil() {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "employer id cannot be nil")
	}
	return &Pensioner{
		ID:                 pensionerID,
		EmployerID:         employerID,
		Status:             EmploymentActive,
		PayoutStatus:       PayoutNotStarted,
		DeathBenefitStatus: DeathBenefitNotApplicable,
		CreatedAt:          now,
		UpdatedAt:          now,
	}, nil
}

// ValidateEmployment checks the raw employment inputs before any state is
// touched. Years and salary arrive as signed values from the wire so
// negatives can be rejected explicitly rather than wrapping.
func ValidateEmployment(years, salary int64, status EmploymentStatus) error {
	if years < 0 {
		return dErrors.New(dErrors.CodeInvalidInput, "years worked cannot be negative")
	}
	// YearsWorked is stored as uint32; reject anything that would wrap.
	if years > math.MaxUint32 {
		return dErrors.Newf(dErrors.CodeInvalidInput, "years worked cannot exceed %d", uint32(math.MaxUint32))
	}
	if salary < 0 {
		return dErrors.New(dErrors.CodeInvalidInput, "salary cannot be negative")
	}
	if !status.IsValid() {
		return dErrors.New(dErrors.CodeInvalidInput, "invalid employment status")
	}
	if status == EmploymentDeceased {
		return dErrors.New(dErrors.CodeInvalidInput, "death is reported through the death report operation, not an employment update")
	}
	return nil
}

// CanUpdateEmployment checks the record accepts the employment transition.
// Call before ApplyEmployment inside an Execute callback.
func (p *Pensioner) CanUpdateEmployment(status EmploymentStatus) error {
	if p.Status == EmploymentDeceased {
		return dErrors.New(dErrors.CodeInvalidState, "pensioner is deceased; employment data is frozen")
	}
	if !p.Status.CanTransitionTo(status) {
		return dErrors.Newf(dErrors.CodeInvalidState, "employment status cannot change from %s to %s", p.Status, status)
	}
	return nil
}

// ApplyEmployment writes the employment fields and recomputes eligibility.
// This is the sole path by which employment fields change.
func (p *Pensioner) ApplyEmployment(years uint32, salary int64, status EmploymentStatus, eligibilityYears uint32, now time.Time) {
	p.YearsWorked = years
	p.Salary = salary
	p.Status = status
	p.recomputeEligibility(eligibilityYears)
	p.UpdatedAt = now
}

// recomputeEligibility derives the eligibility flag. A pensioner qualifies
// once years worked reach the threshold while Active or Retired; the
// deceased are never eligible.
func (p *Pensioner) recomputeEligibility(eligibilityYears uint32) {
	p.Eligible = p.YearsWorked >= eligibilityYears &&
		(p.Status == EmploymentActive || p.Status == EmploymentRetired)
}

// CanSetBeneficiary checks designation is allowed: only while active.
// Re-designation overwrites the previous beneficiary (last write wins).
func (p *Pensioner) CanSetBeneficiary(spouse id.AccountID) error {
	if p.Status != EmploymentActive {
		return dErrors.New(dErrors.CodeInvalidState, "beneficiary can only be designated while the pensioner is active")
	}
	if spouse.IsNil() {
		return dErrors.New(dErrors.CodeInvalidInput, "beneficiary id cannot be nil")
	}
	if spouse == p.ID {
		return dErrors.New(dErrors.CodeInvalidInput, "beneficiary cannot be the pensioner themself")
	}
	return nil
}

// ApplyBeneficiary designates the spouse beneficiary.
func (p *Pensioner) ApplyBeneficiary(spouse id.AccountID, now time.Time) {
	p.Beneficiary = &spouse
	p.UpdatedAt = now
}

// CanInitiatePayout checks payout preconditions: eligibility first, then the
// forward-only lifecycle.
func (p *Pensioner) CanInitiatePayout() error {
	if !p.Eligible {
		return dErrors.New(dErrors.CodeNotEligible, "pensioner is not eligible for payout")
	}
	if !p.PayoutStatus.CanTransitionTo(PayoutInitiated) {
		return dErrors.Newf(dErrors.CodeInvalidState, "payout cannot be initiated from state %s", p.PayoutStatus)
	}
	return nil
}

// ApplyPayoutInitiation stores the computed amount and moves to initiated.
func (p *Pensioner) ApplyPayoutInitiation(amount int64, now time.Time) {
	p.PayoutAmount = amount
	p.PayoutStatus = PayoutInitiated
	p.UpdatedAt = now
}

// CanCompletePayout checks the disbursement acknowledgement is in order.
// Death stops an in-flight payout: the entitlement converts to the death
// benefit instead of being disbursed to the deceased.
func (p *Pensioner) CanCompletePayout() error {
	if p.Status == EmploymentDeceased {
		return dErrors.New(dErrors.CodeInvalidState, "pensioner is deceased; the payout is stopped")
	}
	if !p.PayoutStatus.CanTransitionTo(PayoutCompleted) {
		return dErrors.Newf(dErrors.CodeInvalidState, "payout cannot be completed from state %s", p.PayoutStatus)
	}
	return nil
}

// ApplyPayoutCompletion marks the payout disbursed. Terminal.
func (p *Pensioner) ApplyPayoutCompletion(now time.Time) {
	p.PayoutStatus = PayoutCompleted
	p.UpdatedAt = now
}

// CanReportDeath rejects double reporting.
func (p *Pensioner) CanReportDeath() error {
	if p.Status == EmploymentDeceased {
		return dErrors.New(dErrors.CodeInvalidState, "pensioner is already deceased")
	}
	return nil
}

// ApplyDeath marks the record deceased and strips eligibility. Employment
// updates and beneficiary designation are frozen from here on.
func (p *Pensioner) ApplyDeath(now time.Time) {
	p.Status = EmploymentDeceased
	p.Eligible = false
	p.UpdatedAt = now
}

// ApplyDeathBenefit assigns the computed benefit to the designated
// beneficiary. Only reachable from not_applicable.
func (p *Pensioner) ApplyDeathBenefit(amount int64, now time.Time) {
	p.DeathBenefitAmount = amount
	p.DeathBenefitStatus = DeathBenefitAssigned
	p.UpdatedAt = now
}

// CanMarkDeathBenefitPaid checks a benefit is assigned and unpaid.
func (p *Pensioner) CanMarkDeathBenefitPaid() error {
	if !p.DeathBenefitStatus.CanTransitionTo(DeathBenefitPaid) {
		return dErrors.Newf(dErrors.CodeInvalidState, "death benefit cannot be paid from state %s", p.DeathBenefitStatus)
	}
	return nil
}

// ApplyDeathBenefitPaid marks the benefit disbursed. Terminal.
func (p *Pensioner) ApplyDeathBenefitPaid(now time.Time) {
	p.DeathBenefitStatus = DeathBenefitPaid
	p.UpdatedAt = now
}
