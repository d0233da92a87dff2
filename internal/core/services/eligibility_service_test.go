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

func TestEligibilityService_ScanAll_MovesPendingToVerdict(t *testing.T) {
	db := setupTestDB(t)
	svc := newTestEligibilityService(db)

	product := seedProduct(t, db)
	applicant := seedApplicant(t, db, 1, decimal.NewFromInt(100000), decimal.Zero)

	passing := &models.LoanApplication{
		ApplicantID:           applicant.ID,
		LoanProductID:         product.ID,
		Status:                string(domain.StatusPending),
		RequestedAmount:       decimal.NewFromInt(20000),
		RequestedTenureMonths: 12,
	}
	require.NoError(t, db.Create(passing).Error)

	failing := &models.LoanApplication{
		ApplicantID:           applicant.ID,
		LoanProductID:         product.ID,
		Status:                string(domain.StatusPending),
		RequestedAmount:       decimal.NewFromInt(60000), // above product max
		RequestedTenureMonths: 12,
	}
	require.NoError(t, db.Create(failing).Error)

	report, err := svc.ScanAll(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 2, report.Scanned)
	assert.Equal(t, 2, report.Succeeded)
	assert.Equal(t, 0, report.Failed)
	assert.NotEmpty(t, report.BatchID)

	var got models.LoanApplication
	require.NoError(t, db.First(&got, passing.ID).Error)
	assert.Equal(t, string(domain.StatusApproved), got.Status)

	// fresh dest struct, or GORM reuses the previous primary key as a condition
	got = models.LoanApplication{}
	require.NoError(t, db.First(&got, failing.ID).Error)
	assert.Equal(t, string(domain.StatusRejected), got.Status)

	// every success recorded an assessment tagged with the batch
	var assessments []models.RiskAssessment
	require.NoError(t, db.Where("scan_batch_id = ?", report.BatchID).Find(&assessments).Error)
	assert.Len(t, assessments, 2)
}

func TestEligibilityService_ScanAll_PartialFailure(t *testing.T) {
	db := setupTestDB(t)
	svc := newTestEligibilityService(db)

	product := seedProduct(t, db)
	applicant := seedApplicant(t, db, 1, decimal.NewFromInt(100000), decimal.Zero)

	good := &models.LoanApplication{
		ApplicantID:           applicant.ID,
		LoanProductID:         product.ID,
		Status:                string(domain.StatusPending),
		RequestedAmount:       decimal.NewFromInt(20000),
		RequestedTenureMonths: 12,
	}
	require.NoError(t, db.Create(good).Error)

	// references an applicant that does not exist
	orphan := &models.LoanApplication{
		ApplicantID:           999,
		LoanProductID:         product.ID,
		Status:                string(domain.StatusPending),
		RequestedAmount:       decimal.NewFromInt(20000),
		RequestedTenureMonths: 12,
	}
	require.NoError(t, db.Create(orphan).Error)

	report, err := svc.ScanAll(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 2, report.Scanned)
	assert.Equal(t, 1, report.Succeeded)
	assert.Equal(t, 1, report.Failed)
	require.Len(t, report.Failures, 1)
	assert.Equal(t, orphan.ID, report.Failures[0].ApplicationID)
	assert.NotEmpty(t, report.Failures[0].Error)

	// the bad record never blocks the good one
	var got models.LoanApplication
	require.NoError(t, db.First(&got, good.ID).Error)
	assert.Equal(t, string(domain.StatusApproved), got.Status)

	// the orphan stays pending for the next run
	got = models.LoanApplication{}
	require.NoError(t, db.First(&got, orphan.ID).Error)
	assert.Equal(t, string(domain.StatusPending), got.Status)
}

func TestEligibilityService_ScanAll_Empty(t *testing.T) {
	db := setupTestDB(t)
	svc := newTestEligibilityService(db)

	report, err := svc.ScanAll(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, report.Scanned)
	assert.Empty(t, report.Results)
	assert.Empty(t, report.Failures)
}

func TestEligibilityService_Evaluate_CachesVerdict(t *testing.T) {
	db := setupTestDB(t)
	svc := newTestEligibilityService(db)

	product := seedProduct(t, db)
	applicant := seedApplicant(t, db, 1, decimal.NewFromInt(100000), decimal.Zero)

	amount := decimal.NewFromInt(20000)
	first, firstRisk, err := svc.Evaluate(context.Background(), applicant.ToSnapshot(), product.ToSnapshot(), amount, 12)
	require.NoError(t, err)

	key := verdictKey(applicant.ToSnapshot(), product.ToSnapshot(), amount, 12)
	_, cached := svc.cache.Get(context.Background(), key)
	assert.True(t, cached)

	second, secondRisk, err := svc.Evaluate(context.Background(), applicant.ToSnapshot(), product.ToSnapshot(), amount, 12)
	require.NoError(t, err)

	assert.Equal(t, first.Approved, second.Approved)
	assert.True(t, first.EMI.Equal(second.EMI))
	assert.True(t, firstRisk.RiskScore.Equal(secondRisk.RiskScore))
	assert.Equal(t, firstRisk.RiskCategory, secondRisk.RiskCategory)
}

func TestEligibilityService_Evaluate_DeactivationBypassesCache(t *testing.T) {
	db := setupTestDB(t)
	svc := newTestEligibilityService(db)

	product := seedProduct(t, db)
	applicant := seedApplicant(t, db, 1, decimal.NewFromInt(100000), decimal.Zero)
	amount := decimal.NewFromInt(20000)

	first, _, err := svc.Evaluate(context.Background(), applicant.ToSnapshot(), product.ToSnapshot(), amount, 12)
	require.NoError(t, err)
	require.True(t, first.Approved)

	// same profile, now inactive: the cached approval must not be served
	inactive := applicant.ToSnapshot()
	inactive.Active = false
	second, _, err := svc.Evaluate(context.Background(), inactive, product.ToSnapshot(), amount, 12)
	require.NoError(t, err)

	assert.False(t, second.Approved)
	assert.Contains(t, second.Reasons, domain.ReasonApplicantInactive)
}

func TestEligibilityService_AssessmentHistory(t *testing.T) {
	db := setupTestDB(t)
	svc := newTestEligibilityService(db)

	product := seedProduct(t, db)
	applicant := seedApplicant(t, db, 1, decimal.NewFromInt(100000), decimal.Zero)

	application := &models.LoanApplication{
		ApplicantID:           applicant.ID,
		LoanProductID:         product.ID,
		Status:                string(domain.StatusPending),
		RequestedAmount:       decimal.NewFromInt(20000),
		RequestedTenureMonths: 12,
	}
	require.NoError(t, db.Create(application).Error)

	// two scans produce two append-only rows
	_, err := svc.ScanAll(context.Background())
	require.NoError(t, err)
	require.NoError(t, db.Model(&models.LoanApplication{}).
		Where("id = ?", application.ID).
		Update("status", string(domain.StatusPending)).Error)
	_, err = svc.ScanAll(context.Background())
	require.NoError(t, err)

	history, err := svc.AssessmentHistory(context.Background(), application.ID)
	require.NoError(t, err)
	assert.Len(t, history, 2)

	_, err = svc.AssessmentHistory(context.Background(), 999)
	assert.ErrorIs(t, err, ErrApplicationNotFound)
}
