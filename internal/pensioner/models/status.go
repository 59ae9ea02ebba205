package models

import (
	dErrors "penledger/pkg/domain-errors"
)

// EmploymentStatus is the pensioner's employment lifecycle state.
type EmploymentStatus string

const (
	EmploymentActive   EmploymentStatus = "active"
	EmploymentRetired  EmploymentStatus = "retired"
	EmploymentDeceased EmploymentStatus = "deceased"
)

// employmentTransitions is the exhaustive transition table. Self-transitions
// are allowed so an employment update can change salary or years without
// changing status. Deceased is terminal.
var employmentTransitions = map[EmploymentStatus][]EmploymentStatus{
	EmploymentActive:   {EmploymentActive, EmploymentRetired, EmploymentDeceased},
	EmploymentRetired:  {EmploymentRetired, EmploymentDeceased},
	EmploymentDeceased: {},
}

// IsValid checks the status is one of the supported enum values.
func (s EmploymentStatus) IsValid() bool {
	switch s {
	case EmploymentActive, EmploymentRetired, EmploymentDeceased:
		return true
	}
	return false
}

// CanTransitionTo reports whether the transition is listed in the table.
func (s EmploymentStatus) CanTransitionTo(next EmploymentStatus) bool {
	for _, allowed := range employmentTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// ParseEmploymentStatus validates a wire-format status string.
func ParseEmploymentStatus(s string) (EmploymentStatus, error) {
	status := EmploymentStatus(s)
	if !status.IsValid() {
		return "", dErrors.Newf(dErrors.CodeInvalidInput, "unknown employment status %q", s)
	}
	return status, nil
}

// PayoutStatus is the payout lifecycle state. It only moves forward:
// not_started -> initiated -> completed. Completed is terminal.
type PayoutStatus string

const (
	PayoutNotStarted PayoutStatus = "not_started"
	PayoutInitiated  PayoutStatus = "initiated"
	PayoutCompleted  PayoutStatus = "completed"
)

var payoutTransitions = map[PayoutStatus][]PayoutStatus{
	PayoutNotStarted: {PayoutInitiated},
	PayoutInitiated:  {PayoutCompleted},
	PayoutCompleted:  {},
}

func (s PayoutStatus) IsValid() bool {
	switch s {
	case PayoutNotStarted, PayoutInitiated, PayoutCompleted:
		return true
	}
	return false
}

func (s PayoutStatus) CanTransitionTo(next PayoutStatus) bool {
	for _, allowed := range payoutTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// DeathBenefitStatus tracks the benefit owed to a designated beneficiary.
// It only moves forward: not_applicable -> assigned -> paid.
type DeathBenefitStatus string

const (
	DeathBenefitNotApplicable DeathBenefitStatus = "not_applicable"
	DeathBenefitAssigned      DeathBenefitStatus = "assigned"
	DeathBenefitPaid          DeathBenefitStatus = "paid"
)

var deathBenefitTransitions = map[DeathBenefitStatus][]DeathBenefitStatus{
	DeathBenefitNotApplicable: {DeathBenefitAssigned},
	DeathBenefitAssigned:      {DeathBenefitPaid},
	DeathBenefitPaid:          {},
}

func (s DeathBenefitStatus) IsValid() bool {
	switch s {
	case DeathBenefitNotApplicable, DeathBenefitAssigned, DeathBenefitPaid:
		return true
	}
	return false
}

func (s DeathBenefitStatus) CanTransitionTo(next DeathBenefitStatus) bool {
	for _, allowed := range deathBenefitTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}
