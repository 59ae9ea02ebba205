package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"penledger/internal/authz"
	"penledger/internal/pensioner/models"
	"penledger/internal/pensioner/store"
	id "penledger/pkg/domain"
	dErrors "penledger/pkg/domain-errors"
)

const eligibilityYears = 10

type fixture struct {
	svc     *Service
	owner   id.AccountID
	company id.AccountID
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	owner := id.AccountID(uuid.New())
	company := id.AccountID(uuid.New())

	authzSvc := authz.New(authz.NewInMemory(owner))
	require.NoError(t, authzSvc.RegisterCompany(context.Background(), owner, company))

	return &fixture{
		svc:     New(store.NewInMemory(), authzSvc, eligibilityYears),
		owner:   owner,
		company: company,
	}
}

func (f *fixture) register(t *testing.T) id.AccountID {
	t.Helper()
	pensionerID := id.AccountID(uuid.New())
	_, err := f.svc.Register(context.Background(), f.company, pensionerID, f.company)
	require.NoError(t, err)
	return pensionerID
}

func TestRegister(t *testing.T) {
	ctx := context.Background()

	t.Run("company registers its own pensioner", func(t *testing.T) {
		f := newFixture(t)
		pensionerID := id.AccountID(uuid.New())

		record, err := f.svc.Register(ctx, f.company, pensionerID, f.company)
		require.NoError(t, err)
		assert.Equal(t, pensionerID, record.ID)
		assert.Equal(t, f.company, record.EmployerID)
		assert.Equal(t, models.EmploymentActive, record.Status)
		assert.False(t, record.Eligible)
	})

	t.Run("duplicate registration is rejected", func(t *testing.T) {
		f := newFixture(t)
		pensionerID := f.register(t)

		_, err := f.svc.Register(ctx, f.company, pensionerID, f.company)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeAlreadyRegistered))
	})

	t.Run("unauthorized company is rejected", func(t *testing.T) {
		f := newFixture(t)
		stranger := id.AccountID(uuid.New())

		_, err := f.svc.Register(ctx, stranger, id.AccountID(uuid.New()), stranger)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeUnauthorized))
	})

	t.Run("company cannot register on behalf of another employer", func(t *testing.T) {
		f := newFixture(t)
		other := id.AccountID(uuid.New())

		_, err := f.svc.Register(ctx, f.company, id.AccountID(uuid.New()), other)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeUnauthorized))
	})
}

func TestUpdateEmployment(t *testing.T) {
	ctx := context.Background()

	t.Run("employer updates and eligibility derives", func(t *testing.T) {
		f := newFixture(t)
		pensionerID := f.register(t)

		record, err := f.svc.UpdateEmployment(ctx, f.company, pensionerID, eligibilityYears, 60000, models.EmploymentActive)
		require.NoError(t, err)
		assert.True(t, record.Eligible)
		assert.Equal(t, int64(60000), record.Salary)
	})

	t.Run("another company cannot touch the record", func(t *testing.T) {
		f := newFixture(t)
		pensionerID := f.register(t)

		// A second authorized company that is not the employer.
		rival := id.AccountID(uuid.New())
		require.NoError(t, f.svc.authz.RegisterCompany(ctx, f.owner, rival))

		_, err := f.svc.UpdateEmployment(ctx, rival, pensionerID, 5, 1000, models.EmploymentActive)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeUnauthorized))

		// Rejected update left the record untouched.
		record, getErr := f.svc.GetRecord(ctx, pensionerID)
		require.NoError(t, getErr)
		assert.Equal(t, int64(0), record.Salary)
	})

	t.Run("invalid input is rejected before authorization", func(t *testing.T) {
		f := newFixture(t)
		pensionerID := f.register(t)

		_, err := f.svc.UpdateEmployment(ctx, f.company, pensionerID, -1, 1000, models.EmploymentActive)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput))
	})

	t.Run("years above the uint32 range do not wrap", func(t *testing.T) {
		f := newFixture(t)
		pensionerID := f.register(t)

		_, err := f.svc.UpdateEmployment(ctx, f.company, pensionerID, 1<<32, 60000, models.EmploymentActive)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput))

		record, getErr := f.svc.GetRecord(ctx, pensionerID)
		require.NoError(t, getErr)
		assert.Equal(t, uint32(0), record.YearsWorked)
		assert.Equal(t, int64(0), record.Salary)
	})

	t.Run("unknown pensioner", func(t *testing.T) {
		f := newFixture(t)
		_, err := f.svc.UpdateEmployment(ctx, f.company, id.AccountID(uuid.New()), 5, 1000, models.EmploymentActive)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeNotFound))
	})
}

func TestSetBeneficiary(t *testing.T) {
	ctx := context.Background()

	t.Run("pensioner designates their spouse", func(t *testing.T) {
		f := newFixture(t)
		pensionerID := f.register(t)
		spouse := id.AccountID(uuid.New())

		record, err := f.svc.SetBeneficiary(ctx, pensionerID, pensionerID, spouse)
		require.NoError(t, err)
		require.NotNil(t, record.Beneficiary)
		assert.Equal(t, spouse, *record.Beneficiary)
	})

	t.Run("only the pensioner themself may designate", func(t *testing.T) {
		f := newFixture(t)
		pensionerID := f.register(t)

		_, err := f.svc.SetBeneficiary(ctx, f.company, pensionerID, id.AccountID(uuid.New()))
		assert.True(t, dErrors.HasCode(err, dErrors.CodeUnauthorized))
	})
}

func TestGetRecord(t *testing.T) {
	f := newFixture(t)
	_, err := f.svc.GetRecord(context.Background(), id.AccountID(uuid.New()))
	assert.True(t, dErrors.HasCode(err, dErrors.CodeNotFound))
}
