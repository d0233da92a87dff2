package config

import (
	"log"

	"lendcheck/internal/adapters/persistence/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// SeedMasterData seeds the initial loan product catalog. Idempotent:
// existing product codes are left untouched.
func SeedMasterData(db *gorm.DB) error {
	products := []models.LoanProduct{
		{
			ProductCode:               "PERS-STD",
			ProductName:               "Standard Personal Loan",
			LoanType:                  "PERSONAL",
			MinAmount:                 decimal.NewFromInt(10_000),
			MaxAmount:                 decimal.NewFromInt(50_000),
			MinTenureMonths:           6,
			MaxTenureMonths:           36,
			AnnualInterestRatePercent: decimal.NewFromFloat(10.5),
			BaseRiskWeight:            5,
			IsActive:                  true,
		},
		{
			ProductCode:               "HOME-STD",
			ProductName:               "Standard Home Loan",
			LoanType:                  "HOME",
			MinAmount:                 decimal.NewFromInt(500_000),
			MaxAmount:                 decimal.NewFromInt(5_000_000),
			MinTenureMonths:           60,
			MaxTenureMonths:           360,
			AnnualInterestRatePercent: decimal.NewFromFloat(8.25),
			BaseRiskWeight:            2,
			IsActive:                  true,
		},
		{
			ProductCode:               "VEHI-STD",
			ProductName:               "Vehicle Loan",
			LoanType:                  "VEHICLE",
			MinAmount:                 decimal.NewFromInt(100_000),
			MaxAmount:                 decimal.NewFromInt(1_500_000),
			MinTenureMonths:           12,
			MaxTenureMonths:           84,
			AnnualInterestRatePercent: decimal.NewFromFloat(9.75),
			BaseRiskWeight:            3,
			IsActive:                  true,
		},
	}

	for _, product := range products {
		var count int64
		if err := db.Model(&models.LoanProduct{}).
			Where("product_code = ?", product.ProductCode).
			Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			continue
		}
		if err := db.Create(&product).Error; err != nil {
			return err
		}
	}

	log.Println("✅ Master data seeded successfully")
	return nil
}
