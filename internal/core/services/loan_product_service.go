package services

import (
	"context"
	"errors"

	"lendcheck/internal/adapters/persistence/models"
	"lendcheck/internal/adapters/persistence/repositories"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Loan product service errors
var (
	ErrProductNotFound     = errors.New("loan product not found")
	ErrProductCodeTaken    = errors.New("product code already exists")
	ErrInvalidAmountBounds = errors.New("min amount must not exceed max amount and both must be positive")
	ErrInvalidTenureBounds = errors.New("min tenure must not exceed max tenure and both must be positive")
	ErrInvalidInterestRate = errors.New("annual interest rate must be positive")
	ErrInvalidRiskWeight   = errors.New("base risk weight must be at least 1")
)

// LoanProductService handles loan product business logic
type LoanProductService struct {
	productRepo repositories.LoanProductRepository
}

// NewLoanProductService creates a new loan product service
func NewLoanProductService(productRepo repositories.LoanProductRepository) *LoanProductService {
	return &LoanProductService{productRepo: productRepo}
}

// ProductInput represents create/update product input
type ProductInput struct {
	ProductCode               string          `json:"product_code" validate:"required"`
	ProductName               string          `json:"product_name" validate:"required"`
	LoanType                  string          `json:"loan_type" validate:"required"`
	MinAmount                 decimal.Decimal `json:"min_amount"`
	MaxAmount                 decimal.Decimal `json:"max_amount"`
	MinTenureMonths           int             `json:"min_tenure_months"`
	MaxTenureMonths           int             `json:"max_tenure_months"`
	AnnualInterestRatePercent decimal.Decimal `json:"annual_interest_rate_percent"`
	BaseRiskWeight            int             `json:"base_risk_weight"`
}

// validate checks the product term invariants
func (in *ProductInput) validate() error {
	if in.MinAmount.Sign() <= 0 || in.MaxAmount.Sign() <= 0 || in.MinAmount.GreaterThan(in.MaxAmount) {
		return ErrInvalidAmountBounds
	}
	if in.MinTenureMonths <= 0 || in.MaxTenureMonths <= 0 || in.MinTenureMonths > in.MaxTenureMonths {
		return ErrInvalidTenureBounds
	}
	if in.AnnualInterestRatePercent.Sign() <= 0 {
		return ErrInvalidInterestRate
	}
	if in.BaseRiskWeight < 1 {
		return ErrInvalidRiskWeight
	}
	return nil
}

// Add creates a new loan product
func (s *LoanProductService) Add(ctx context.Context, input *ProductInput) (*models.LoanProduct, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}

	exists, err := s.productRepo.ExistsByCode(ctx, input.ProductCode)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrProductCodeTaken
	}

	product := &models.LoanProduct{
		ProductCode:               input.ProductCode,
		ProductName:               input.ProductName,
		LoanType:                  input.LoanType,
		MinAmount:                 input.MinAmount,
		MaxAmount:                 input.MaxAmount,
		MinTenureMonths:           input.MinTenureMonths,
		MaxTenureMonths:           input.MaxTenureMonths,
		AnnualInterestRatePercent: input.AnnualInterestRatePercent,
		BaseRiskWeight:            input.BaseRiskWeight,
		IsActive:                  true,
	}

	if err := s.productRepo.Create(ctx, product); err != nil {
		return nil, err
	}

	return product, nil
}

// GetByID gets a loan product by ID
func (s *LoanProductService) GetByID(ctx context.Context, id uint) (*models.LoanProduct, error) {
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}
	return product, nil
}

// GetByCode gets a loan product by its unique code
func (s *LoanProductService) GetByCode(ctx context.Context, code string) (*models.LoanProduct, error) {
	product, err := s.productRepo.GetByCode(ctx, code)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}
	return product, nil
}

// Update updates the terms of an existing product
func (s *LoanProductService) Update(ctx context.Context, id uint, input *ProductInput) (*models.LoanProduct, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}

	product, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.ProductCode != product.ProductCode {
		exists, err := s.productRepo.ExistsByCode(ctx, input.ProductCode)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, ErrProductCodeTaken
		}
		product.ProductCode = input.ProductCode
	}

	product.ProductName = input.ProductName
	product.LoanType = input.LoanType
	product.MinAmount = input.MinAmount
	product.MaxAmount = input.MaxAmount
	product.MinTenureMonths = input.MinTenureMonths
	product.MaxTenureMonths = input.MaxTenureMonths
	product.AnnualInterestRatePercent = input.AnnualInterestRatePercent
	product.BaseRiskWeight = input.BaseRiskWeight

	if err := s.productRepo.Update(ctx, product); err != nil {
		return nil, err
	}

	return product, nil
}

// Delete soft-deletes a loan product
func (s *LoanProductService) Delete(ctx context.Context, id uint) error {
	if _, err := s.GetByID(ctx, id); err != nil {
		return err
	}
	return s.productRepo.Delete(ctx, id)
}

// ListOutput represents list products output
type ListProductsOutput struct {
	Products   []*models.LoanProduct `json:"products"`
	Total      int64                 `json:"total"`
	Page       int                   `json:"page"`
	Limit      int                   `json:"limit"`
	TotalPages int                   `json:"total_pages"`
}

// List lists loan products with pagination
func (s *LoanProductService) List(ctx context.Context, page, limit int) (*ListProductsOutput, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}

	products, total, err := s.productRepo.List(ctx, (page-1)*limit, limit)
	if err != nil {
		return nil, err
	}

	totalPages := int(total) / limit
	if int(total)%limit > 0 {
		totalPages++
	}

	return &ListProductsOutput{
		Products:   products,
		Total:      total,
		Page:       page,
		Limit:      limit,
		TotalPages: totalPages,
	}, nil
}
