package services

import (
	"testing"
	"time"

	"lendcheck/internal/adapters/persistence/cache"
	"lendcheck/internal/adapters/persistence/models"
	"lendcheck/internal/adapters/persistence/repositories"
	"lendcheck/internal/config"
	"lendcheck/internal/core/engine"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, models.AutoMigrate(db))
	return db
}

func testConfig() *config.Config {
	return &config.Config{
		AppMode: "dev",
		JWT: config.JWTConfig{
			Secret:           "test-secret",
			RefreshSecret:    "test-refresh-secret",
			AccessTokenMins:  15,
			RefreshTokenDays: 7,
		},
	}
}

func seedProduct(t *testing.T, db *gorm.DB) *models.LoanProduct {
	t.Helper()

	product := &models.LoanProduct{
		ProductCode:               "PERS-STD",
		ProductName:               "Personal Loan Standard",
		LoanType:                  "PERSONAL",
		MinAmount:                 decimal.NewFromInt(10000),
		MaxAmount:                 decimal.NewFromInt(50000),
		MinTenureMonths:           6,
		MaxTenureMonths:           36,
		AnnualInterestRatePercent: decimal.NewFromFloat(10.5),
		BaseRiskWeight:            5,
		IsActive:                  true,
	}
	require.NoError(t, db.Create(product).Error)
	return product
}

func seedApplicant(t *testing.T, db *gorm.DB, userID uint, income, obligations decimal.Decimal) *models.ApplicantProfile {
	t.Helper()

	profile := &models.ApplicantProfile{
		UserID:                 userID,
		FullName:               "Jordan Reyes",
		DateOfBirth:            time.Date(1990, 4, 12, 0, 0, 0, 0, time.UTC),
		EmploymentType:         "SALARIED",
		MonthlyIncome:          income,
		ExistingEMIObligations: obligations,
		Country:                "IN",
		Active:                 true,
	}
	require.NoError(t, db.Create(profile).Error)
	return profile
}

func newTestEligibilityService(db *gorm.DB) *EligibilityService {
	return NewEligibilityService(
		repositories.NewLoanApplicationRepository(db),
		repositories.NewRiskAssessmentRepository(db),
		engine.New(engine.DefaultPolicy()),
		cache.NewMemoryCache(),
	)
}

func newTestApplicationService(db *gorm.DB) *LoanApplicationService {
	return NewLoanApplicationService(
		repositories.NewLoanApplicationRepository(db),
		repositories.NewApplicantProfileRepository(db),
		repositories.NewLoanProductRepository(db),
		repositories.NewRiskAssessmentRepository(db),
		newTestEligibilityService(db),
	)
}
