package models

import (
	"math"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	id "penledger/pkg/domain"
	dErrors "penledger/pkg/domain-errors"
)

const testEligibilityYears = 10

func newRecord(t *testing.T) *Pensioner {
	t.Helper()
	p, err := NewPensioner(id.AccountID(uuid.New()), id.AccountID(uuid.New()), time.Now())
	require.NoError(t, err)
	return p
}

func TestNewPensioner(t *testing.T) {
	t.Run("starts active, not eligible, payout not started", func(t *testing.T) {
		p := newRecord(t)
		assert.Equal(t, EmploymentActive, p.Status)
		assert.False(t, p.Eligible)
		assert.Equal(t, PayoutNotStarted, p.PayoutStatus)
		assert.Equal(t, DeathBenefitNotApplicable, p.DeathBenefitStatus)
		assert.Nil(t, p.Beneficiary)
	})

	t.Run("rejects nil ids", func(t *testing.T) {
		_, err := NewPensioner(id.AccountID{}, id.AccountID(uuid.New()), time.Now())
		assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput))

		_, err = NewPensioner(id.AccountID(uuid.New()), id.AccountID{}, time.Now())
		assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput))
	})
}

func TestValidateEmployment(t *testing.T) {
	assert.True(t, dErrors.HasCode(ValidateEmployment(-1, 0, EmploymentActive), dErrors.CodeInvalidInput))
	// Above the uint32 range must be rejected, not silently wrapped.
	assert.True(t, dErrors.HasCode(ValidateEmployment(math.MaxUint32+1, 0, EmploymentActive), dErrors.CodeInvalidInput))
	assert.NoError(t, ValidateEmployment(math.MaxUint32, 0, EmploymentActive))
	assert.True(t, dErrors.HasCode(ValidateEmployment(0, -1, EmploymentActive), dErrors.CodeInvalidInput))
	assert.True(t, dErrors.HasCode(ValidateEmployment(0, 0, EmploymentStatus("fired")), dErrors.CodeInvalidInput))
	// Death is reported through its own operation.
	assert.True(t, dErrors.HasCode(ValidateEmployment(0, 0, EmploymentDeceased), dErrors.CodeInvalidInput))
	assert.NoError(t, ValidateEmployment(0, 0, EmploymentActive))
	assert.NoError(t, ValidateEmployment(40, 120000, EmploymentRetired))
}

func TestEmploymentTransitions(t *testing.T) {
	t.Run("eligibility derives from years and status", func(t *testing.T) {
		p := newRecord(t)

		p.ApplyEmployment(testEligibilityYears-1, 50000, EmploymentActive, testEligibilityYears, time.Now())
		assert.False(t, p.Eligible)

		p.ApplyEmployment(testEligibilityYears, 50000, EmploymentActive, testEligibilityYears, time.Now())
		assert.True(t, p.Eligible)

		// Retirement keeps the earned entitlement.
		p.ApplyEmployment(testEligibilityYears, 50000, EmploymentRetired, testEligibilityYears, time.Now())
		assert.True(t, p.Eligible)
	})

	t.Run("retired cannot return to active", func(t *testing.T) {
		p := newRecord(t)
		p.ApplyEmployment(5, 30000, EmploymentRetired, testEligibilityYears, time.Now())

		err := p.CanUpdateEmployment(EmploymentActive)
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidState))
	})

	t.Run("deceased freezes employment", func(t *testing.T) {
		p := newRecord(t)
		p.ApplyDeath(time.Now())

		err := p.CanUpdateEmployment(EmploymentActive)
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidState))
		assert.False(t, p.Eligible)
	})
}

func TestPayoutLifecycle(t *testing.T) {
	t.Run("not eligible blocks initiation", func(t *testing.T) {
		p := newRecord(t)
		err := p.CanInitiatePayout()
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeNotEligible))
	})

	t.Run("moves only forward", func(t *testing.T) {
		p := newRecord(t)
		p.ApplyEmployment(20, 60000, EmploymentActive, testEligibilityYears, time.Now())

		require.NoError(t, p.CanInitiatePayout())
		p.ApplyPayoutInitiation(24000, time.Now())
		assert.Equal(t, PayoutInitiated, p.PayoutStatus)
		assert.Equal(t, int64(24000), p.PayoutAmount)

		// Second initiation is rejected and the amount is untouched.
		err := p.CanInitiatePayout()
		assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidState))
		assert.Equal(t, int64(24000), p.PayoutAmount)

		require.NoError(t, p.CanCompletePayout())
		p.ApplyPayoutCompletion(time.Now())
		assert.Equal(t, PayoutCompleted, p.PayoutStatus)

		assert.True(t, dErrors.HasCode(p.CanInitiatePayout(), dErrors.CodeInvalidState))
		assert.True(t, dErrors.HasCode(p.CanCompletePayout(), dErrors.CodeInvalidState))
	})

	t.Run("complete requires initiated", func(t *testing.T) {
		p := newRecord(t)
		err := p.CanCompletePayout()
		assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidState))
	})

	t.Run("death stops an initiated payout", func(t *testing.T) {
		p := newRecord(t)
		p.ApplyEmployment(20, 60000, EmploymentActive, testEligibilityYears, time.Now())
		p.ApplyPayoutInitiation(24000, time.Now())
		p.ApplyDeath(time.Now())

		err := p.CanCompletePayout()
		assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidState))
	})
}

func TestBeneficiary(t *testing.T) {
	t.Run("only while active, last write wins", func(t *testing.T) {
		p := newRecord(t)
		first := id.AccountID(uuid.New())
		second := id.AccountID(uuid.New())

		require.NoError(t, p.CanSetBeneficiary(first))
		p.ApplyBeneficiary(first, time.Now())
		require.NoError(t, p.CanSetBeneficiary(second))
		p.ApplyBeneficiary(second, time.Now())
		assert.Equal(t, second, *p.Beneficiary)
	})

	t.Run("rejected after death", func(t *testing.T) {
		p := newRecord(t)
		p.ApplyDeath(time.Now())
		err := p.CanSetBeneficiary(id.AccountID(uuid.New()))
		assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidState))
	})

	t.Run("cannot name themself", func(t *testing.T) {
		p := newRecord(t)
		err := p.CanSetBeneficiary(p.ID)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput))
	})
}

func TestDeathLifecycle(t *testing.T) {
	t.Run("death is reported at most once", func(t *testing.T) {
		p := newRecord(t)
		require.NoError(t, p.CanReportDeath())
		p.ApplyDeath(time.Now())

		err := p.CanReportDeath()
		assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidState))
	})

	t.Run("benefit assignment and payment move only forward", func(t *testing.T) {
		p := newRecord(t)
		p.ApplyDeath(time.Now())

		// Nothing assigned yet.
		assert.True(t, dErrors.HasCode(p.CanMarkDeathBenefitPaid(), dErrors.CodeInvalidState))

		p.ApplyDeathBenefit(5000, time.Now())
		assert.Equal(t, DeathBenefitAssigned, p.DeathBenefitStatus)

		require.NoError(t, p.CanMarkDeathBenefitPaid())
		p.ApplyDeathBenefitPaid(time.Now())
		assert.Equal(t, DeathBenefitPaid, p.DeathBenefitStatus)

		assert.True(t, dErrors.HasCode(p.CanMarkDeathBenefitPaid(), dErrors.CodeInvalidState))
	})
}

func TestStatusTables(t *testing.T) {
	assert.True(t, PayoutNotStarted.CanTransitionTo(PayoutInitiated))
	assert.False(t, PayoutNotStarted.CanTransitionTo(PayoutCompleted))
	assert.False(t, PayoutInitiated.CanTransitionTo(PayoutNotStarted))
	assert.False(t, PayoutCompleted.CanTransitionTo(PayoutInitiated))

	assert.True(t, DeathBenefitNotApplicable.CanTransitionTo(DeathBenefitAssigned))
	assert.False(t, DeathBenefitPaid.CanTransitionTo(DeathBenefitAssigned))

	assert.True(t, EmploymentActive.CanTransitionTo(EmploymentRetired))
	assert.False(t, EmploymentDeceased.CanTransitionTo(EmploymentActive))

	_, err := ParseEmploymentStatus("active")
	assert.NoError(t, err)
	_, err = ParseEmploymentStatus("unknown")
	assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput))
}
