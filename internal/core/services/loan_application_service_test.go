package services

import (
	"context"
	"testing"

	"lendcheck/internal/adapters/persistence/models"
	"lendcheck/internal/core/domain"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoanApplicationService_Apply_Approved(t *testing.T) {
	db := setupTestDB(t)
	svc := newTestApplicationService(db)

	product := seedProduct(t, db)
	applicant := seedApplicant(t, db, 1, decimal.NewFromInt(100000), decimal.Zero)

	decision, err := svc.Apply(context.Background(), applicant.ID, product.ID, ApplicationInput{
		RequestedAmount:       decimal.NewFromInt(20000),
		RequestedTenureMonths: 12,
	})
	require.NoError(t, err)

	assert.Equal(t, string(domain.StatusApproved), decision.Application.Status)
	assert.True(t, decision.Eligibility.Approved)
	assert.Empty(t, decision.Eligibility.Reasons)
	assert.True(t, decision.Eligibility.EMI.IsPositive())
	assert.Equal(t, decision.Application.ID, decision.Risk.ApplicationID)

	// the first assessment row is written alongside the application
	var count int64
	require.NoError(t, db.Model(&models.RiskAssessment{}).
		Where("loan_application_id = ?", decision.Application.ID).
		Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestLoanApplicationService_Apply_RejectedRecordsReasons(t *testing.T) {
	db := setupTestDB(t)
	svc := newTestApplicationService(db)

	product := seedProduct(t, db)
	applicant := seedApplicant(t, db, 1, decimal.NewFromInt(100000), decimal.Zero)

	decision, err := svc.Apply(context.Background(), applicant.ID, product.ID, ApplicationInput{
		RequestedAmount:       decimal.NewFromInt(60000),
		RequestedTenureMonths: 12,
	})
	require.NoError(t, err)

	assert.Equal(t, string(domain.StatusRejected), decision.Application.Status)
	assert.False(t, decision.Eligibility.Approved)
	assert.Equal(t, []domain.RejectionReason{domain.ReasonAmountOutOfRange}, decision.Eligibility.Reasons)
	assert.Equal(t, "AMOUNT_OUT_OF_RANGE", decision.Application.RejectionReasons)
}

func TestLoanApplicationService_Apply_UnknownApplicantOrProduct(t *testing.T) {
	db := setupTestDB(t)
	svc := newTestApplicationService(db)

	product := seedProduct(t, db)
	applicant := seedApplicant(t, db, 1, decimal.NewFromInt(100000), decimal.Zero)

	input := ApplicationInput{
		RequestedAmount:       decimal.NewFromInt(20000),
		RequestedTenureMonths: 12,
	}

	_, err := svc.Apply(context.Background(), 999, product.ID, input)
	assert.ErrorIs(t, err, ErrApplicantNotFound)

	_, err = svc.Apply(context.Background(), applicant.ID, 999, input)
	assert.ErrorIs(t, err, ErrProductNotFound)
}

func TestLoanApplicationService_Apply_NonPositiveTerms(t *testing.T) {
	db := setupTestDB(t)
	svc := newTestApplicationService(db)

	_, err := svc.Apply(context.Background(), 1, 1, ApplicationInput{
		RequestedAmount:       decimal.Zero,
		RequestedTenureMonths: 12,
	})
	assert.ErrorIs(t, err, ErrNonPositiveAmount)

	_, err = svc.Apply(context.Background(), 1, 1, ApplicationInput{
		RequestedAmount:       decimal.NewFromInt(20000),
		RequestedTenureMonths: 0,
	})
	assert.ErrorIs(t, err, ErrNonPositiveTenure)
}

func TestLoanApplicationService_UpdateStatus(t *testing.T) {
	db := setupTestDB(t)
	svc := newTestApplicationService(db)

	product := seedProduct(t, db)
	applicant := seedApplicant(t, db, 1, decimal.NewFromInt(100000), decimal.Zero)

	pending := &models.LoanApplication{
		ApplicantID:           applicant.ID,
		LoanProductID:         product.ID,
		Status:                string(domain.StatusPending),
		RequestedAmount:       decimal.NewFromInt(20000),
		RequestedTenureMonths: 12,
	}
	require.NoError(t, db.Create(pending).Error)

	updated, err := svc.UpdateStatus(context.Background(), pending.ID, "WITHDRAWN")
	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusWithdrawn), updated.Status)

	// withdrawn is terminal
	_, err = svc.UpdateStatus(context.Background(), pending.ID, "APPROVED")
	assert.ErrorIs(t, err, ErrTerminalStatus)

	_, err = svc.UpdateStatus(context.Background(), pending.ID, "SHREDDED")
	assert.ErrorIs(t, err, ErrInvalidStatus)

	_, err = svc.UpdateStatus(context.Background(), 999, "APPROVED")
	assert.ErrorIs(t, err, ErrApplicationNotFound)
}

func TestLoanApplicationService_ListByApplicant(t *testing.T) {
	db := setupTestDB(t)
	svc := newTestApplicationService(db)

	product := seedProduct(t, db)
	applicant := seedApplicant(t, db, 1, decimal.NewFromInt(100000), decimal.Zero)

	input := ApplicationInput{
		RequestedAmount:       decimal.NewFromInt(20000),
		RequestedTenureMonths: 12,
	}
	_, err := svc.Apply(context.Background(), applicant.ID, product.ID, input)
	require.NoError(t, err)
	_, err = svc.Apply(context.Background(), applicant.ID, product.ID, input)
	require.NoError(t, err)

	applications, err := svc.ListByApplicant(context.Background(), applicant.ID)
	require.NoError(t, err)
	assert.Len(t, applications, 2)

	_, err = svc.ListByApplicant(context.Background(), 999)
	assert.ErrorIs(t, err, ErrApplicantNotFound)
}
