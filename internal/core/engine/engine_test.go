package engine

import (
	"testing"

	"lendcheck/internal/core/domain"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testApplicant(income, obligations int64) *domain.ApplicantSnapshot {
	return &domain.ApplicantSnapshot{
		ApplicantID:            1,
		FullName:               "Test Applicant",
		MonthlyIncome:          decimal.NewFromInt(income),
		ExistingEMIObligations: decimal.NewFromInt(obligations),
		EmploymentType:         domain.EmploymentSalaried,
		Country:                "IN",
		Active:                 true,
	}
}

func testProduct() *domain.LoanProductSnapshot {
	return &domain.LoanProductSnapshot{
		ProductID:                 1,
		ProductCode:               "PERS-01",
		LoanType:                  "PERSONAL",
		MinAmount:                 decimal.NewFromInt(10_000),
		MaxAmount:                 decimal.NewFromInt(50_000),
		MinTenureMonths:           6,
		MaxTenureMonths:           36,
		AnnualInterestRatePercent: decimal.NewFromFloat(10.5),
		BaseRiskWeight:            5,
	}
}

func TestMonthlyInstallment_KnownValue(t *testing.T) {
	// 100,000 at 12% annual over 12 months is the textbook 8,884.88.
	emi := MonthlyInstallment(decimal.NewFromInt(100_000), decimal.NewFromInt(12), 12)
	assert.True(t, emi.Equal(decimal.NewFromFloat(8884.88)), "got %s", emi)
}

func TestMonthlyInstallment_ZeroPrincipal(t *testing.T) {
	emi := MonthlyInstallment(decimal.Zero, decimal.NewFromInt(12), 12)
	assert.True(t, emi.IsZero())
}

func TestMonthlyInstallment_ZeroRateFallback(t *testing.T) {
	emi := MonthlyInstallment(decimal.NewFromInt(1200), decimal.Zero, 12)
	assert.True(t, emi.Equal(decimal.NewFromInt(100)), "got %s", emi)
}

func TestMonthlyInstallment_MonotonicInPrincipal(t *testing.T) {
	rate := decimal.NewFromFloat(10.5)
	prev := decimal.Zero
	for _, principal := range []int64{10_000, 20_000, 40_000, 80_000} {
		emi := MonthlyInstallment(decimal.NewFromInt(principal), rate, 24)
		assert.True(t, emi.GreaterThan(prev), "emi %s not above %s for principal %d", emi, prev, principal)
		prev = emi
	}
}

func TestMonthlyInstallment_MonotonicInRate(t *testing.T) {
	principal := decimal.NewFromInt(50_000)
	prev := decimal.Zero
	for _, rate := range []float64{5, 8, 12, 18} {
		emi := MonthlyInstallment(principal, decimal.NewFromFloat(rate), 24)
		assert.True(t, emi.GreaterThan(prev), "emi %s not above %s for rate %v", emi, prev, rate)
		prev = emi
	}
}

func TestEvaluate_Approved(t *testing.T) {
	e := New(DefaultPolicy())

	result, err := e.Evaluate(testApplicant(50_000, 5_000), testProduct(), decimal.NewFromInt(20_000), 12)
	require.NoError(t, err)

	assert.True(t, result.Approved)
	assert.Empty(t, result.Reasons)
	assert.True(t, result.EMI.GreaterThan(decimal.Zero))
}

func TestEvaluate_AmountAboveMax(t *testing.T) {
	e := New(DefaultPolicy())

	// Product allows 10,000-50,000; requesting 60,000.
	result, err := e.Evaluate(testApplicant(50_000, 5_000), testProduct(), decimal.NewFromInt(60_000), 12)
	require.NoError(t, err)

	assert.False(t, result.Approved)
	assert.Equal(t, []domain.RejectionReason{domain.ReasonAmountOutOfRange}, result.Reasons)
}

func TestEvaluate_AmountBelowMin(t *testing.T) {
	e := New(DefaultPolicy())

	result, err := e.Evaluate(testApplicant(50_000, 0), testProduct(), decimal.NewFromInt(5_000), 12)
	require.NoError(t, err)

	assert.False(t, result.Approved)
	assert.Contains(t, result.Reasons, domain.ReasonAmountOutOfRange)
}

func TestEvaluate_TenureOutOfRange(t *testing.T) {
	e := New(DefaultPolicy())

	for _, tenure := range []int{5, 37} {
		result, err := e.Evaluate(testApplicant(50_000, 0), testProduct(), decimal.NewFromInt(20_000), tenure)
		require.NoError(t, err)
		assert.False(t, result.Approved)
		assert.Contains(t, result.Reasons, domain.ReasonTenureOutOfRange, "tenure %d", tenure)
	}
}

func TestEvaluate_DTIExceeded(t *testing.T) {
	e := New(DefaultPolicy())

	// Obligations alone already eat 60% of income.
	result, err := e.Evaluate(testApplicant(10_000, 6_000), testProduct(), decimal.NewFromInt(20_000), 12)
	require.NoError(t, err)

	assert.False(t, result.Approved)
	assert.Contains(t, result.Reasons, domain.ReasonDTIExceeded)
}

func TestEvaluate_AllViolationsReported(t *testing.T) {
	e := New(DefaultPolicy())

	// Amount and tenure both out of range, and DTI blown.
	result, err := e.Evaluate(testApplicant(10_000, 6_000), testProduct(), decimal.NewFromInt(60_000), 48)
	require.NoError(t, err)

	assert.False(t, result.Approved)
	assert.Equal(t, []domain.RejectionReason{
		domain.ReasonAmountOutOfRange,
		domain.ReasonTenureOutOfRange,
		domain.ReasonDTIExceeded,
	}, result.Reasons)
}

func TestEvaluate_NonPositiveIncomeSkipsEMI(t *testing.T) {
	e := New(DefaultPolicy())

	result, err := e.Evaluate(testApplicant(-1, 0), testProduct(), decimal.NewFromInt(20_000), 12)
	require.NoError(t, err)

	assert.False(t, result.Approved)
	assert.Contains(t, result.Reasons, domain.ReasonNonPositiveIncome)
	assert.True(t, result.EMI.IsZero(), "EMI must not be computed without income")
}

func TestEvaluate_NilSnapshots(t *testing.T) {
	e := New(DefaultPolicy())

	_, err := e.Evaluate(nil, testProduct(), decimal.NewFromInt(20_000), 12)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = e.Evaluate(testApplicant(50_000, 0), nil, decimal.NewFromInt(20_000), 12)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestEvaluate_InactiveApplicant(t *testing.T) {
	e := New(DefaultPolicy())
	applicant := testApplicant(50_000, 0)
	applicant.Active = false

	result, err := e.Evaluate(applicant, testProduct(), decimal.NewFromInt(20_000), 12)
	require.NoError(t, err)

	assert.False(t, result.Approved)
	assert.Contains(t, result.Reasons, domain.ReasonApplicantInactive)
}

func TestEvaluate_Deterministic(t *testing.T) {
	e := New(DefaultPolicy())
	applicant := testApplicant(50_000, 5_000)
	product := testProduct()
	amount := decimal.NewFromInt(20_000)

	first, err := e.Evaluate(applicant, product, amount, 12)
	require.NoError(t, err)
	second, err := e.Evaluate(applicant, product, amount, 12)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestAssessRisk_ScoreAndCategory(t *testing.T) {
	e := New(DefaultPolicy())
	applicant := testApplicant(50_000, 5_000)
	product := testProduct()
	amount := decimal.NewFromInt(20_000)

	eligibility, err := e.Evaluate(applicant, product, amount, 12)
	require.NoError(t, err)

	risk, err := e.AssessRisk(applicant, product, amount, eligibility.EMI)
	require.NoError(t, err)

	// base 5*4=20, dti ~0.1353*100*0.4 ~= 5.41, exposure 0.4*100*0.3=12.
	assert.True(t, risk.RiskScore.GreaterThanOrEqual(decimal.Zero))
	assert.True(t, risk.RiskScore.LessThanOrEqual(decimal.NewFromInt(100)))
	assert.Equal(t, domain.RiskMedium, risk.RiskCategory)
}

func TestAssessRisk_ClampedToHundred(t *testing.T) {
	e := New(DefaultPolicy())

	// DTI in the thousands of percent forces the raw score far past 100.
	risk, err := e.AssessRisk(testApplicant(1_000, 100_000), testProduct(), decimal.NewFromInt(50_000), decimal.Zero)
	require.NoError(t, err)

	assert.True(t, risk.RiskScore.Equal(decimal.NewFromInt(100)), "got %s", risk.RiskScore)
	assert.Equal(t, domain.RiskHigh, risk.RiskCategory)
}

func TestAssessRisk_InvalidInputs(t *testing.T) {
	e := New(DefaultPolicy())
	amount := decimal.NewFromInt(20_000)

	_, err := e.AssessRisk(nil, testProduct(), amount, decimal.Zero)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = e.AssessRisk(testApplicant(50_000, 0), nil, amount, decimal.Zero)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = e.AssessRisk(testApplicant(50_000, 0), testProduct(), amount, decimal.NewFromInt(-1))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = e.AssessRisk(testApplicant(0, 0), testProduct(), amount, decimal.Zero)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestCategorize_Boundaries(t *testing.T) {
	e := New(DefaultPolicy())

	// Default thresholds: LOW < 35 <= MEDIUM < 65 <= HIGH.
	assert.Equal(t, domain.RiskLow, e.Categorize(decimal.NewFromFloat(34.99)))
	assert.Equal(t, domain.RiskMedium, e.Categorize(decimal.NewFromInt(35)))
	assert.Equal(t, domain.RiskMedium, e.Categorize(decimal.NewFromFloat(64.99)))
	assert.Equal(t, domain.RiskHigh, e.Categorize(decimal.NewFromInt(65)))
}

func TestBulkScan_PartialFailure(t *testing.T) {
	e := New(DefaultPolicy())
	amount := decimal.NewFromInt(20_000)

	items := []ScanItem{
		{ApplicationID: 1, Applicant: testApplicant(50_000, 5_000), Product: testProduct(), RequestedAmount: amount, RequestedTenureMonths: 12},
		{ApplicationID: 2, Applicant: nil, Product: testProduct(), RequestedAmount: amount, RequestedTenureMonths: 12},
		{ApplicationID: 3, Applicant: testApplicant(40_000, 0), Product: testProduct(), RequestedAmount: amount, RequestedTenureMonths: 24},
	}

	results := e.BulkScan(items)
	require.Len(t, results, 3)

	assert.Equal(t, uint(1), results[0].ApplicationID)
	assert.NoError(t, results[0].Err)
	assert.NotNil(t, results[0].Eligibility)
	assert.NotNil(t, results[0].Risk)
	assert.Equal(t, uint(1), results[0].Risk.ApplicationID)

	assert.Equal(t, uint(2), results[1].ApplicationID)
	assert.ErrorIs(t, results[1].Err, domain.ErrInvalidInput)
	assert.Nil(t, results[1].Eligibility)

	assert.Equal(t, uint(3), results[2].ApplicationID)
	assert.NoError(t, results[2].Err)
}

func TestBulkScan_Empty(t *testing.T) {
	e := New(DefaultPolicy())
	assert.Empty(t, e.BulkScan(nil))
}

func TestBulkScan_MatchesSequentialEvaluation(t *testing.T) {
	e := New(DefaultPolicy())

	items := make([]ScanItem, 0, 20)
	for i := 0; i < 20; i++ {
		items = append(items, ScanItem{
			ApplicationID:         uint(i + 1),
			Applicant:             testApplicant(30_000+int64(i)*1_000, int64(i)*500),
			Product:               testProduct(),
			RequestedAmount:       decimal.NewFromInt(15_000 + int64(i)*1_000),
			RequestedTenureMonths: 12 + i,
		})
	}

	parallel := e.BulkScan(items)
	for i, item := range items {
		want := e.scanOne(item)
		assert.Equal(t, want, parallel[i], "item %d", i)
	}
}
