package repositories

import (
	"context"

	"lendcheck/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// loanProductRepository implements LoanProductRepository interface
type loanProductRepository struct {
	db *gorm.DB
}

// NewLoanProductRepository creates a new loan product repository
func NewLoanProductRepository(db *gorm.DB) LoanProductRepository {
	return &loanProductRepository{db: db}
}

// Create creates a new loan product
func (r *loanProductRepository) Create(ctx context.Context, product *models.LoanProduct) error {
	return r.db.WithContext(ctx).Create(product).Error
}

// GetByID gets a loan product by ID
func (r *loanProductRepository) GetByID(ctx context.Context, id uint) (*models.LoanProduct, error) {
	var product models.LoanProduct
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&product).Error
	if err != nil {
		return nil, err
	}
	return &product, nil
}

// GetByCode gets a loan product by its unique code
func (r *loanProductRepository) GetByCode(ctx context.Context, code string) (*models.LoanProduct, error) {
	var product models.LoanProduct
	err := r.db.WithContext(ctx).Where("product_code = ?", code).First(&product).Error
	if err != nil {
		return nil, err
	}
	return &product, nil
}

// Update updates a loan product
func (r *loanProductRepository) Update(ctx context.Context, product *models.LoanProduct) error {
	return r.db.WithContext(ctx).Save(product).Error
}

// Delete soft-deletes a loan product
func (r *loanProductRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.LoanProduct{}, id).Error
}

// List lists loan products with pagination
func (r *loanProductRepository) List(ctx context.Context, offset, limit int) ([]*models.LoanProduct, int64, error) {
	var products []*models.LoanProduct
	var total int64

	if err := r.db.WithContext(ctx).Model(&models.LoanProduct{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := r.db.WithContext(ctx).
		Order("product_code ASC").
		Offset(offset).
		Limit(limit).
		Find(&products).Error
	if err != nil {
		return nil, 0, err
	}

	return products, total, nil
}

// ExistsByCode checks if a product with the code exists
func (r *loanProductRepository) ExistsByCode(ctx context.Context, code string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.LoanProduct{}).Where("product_code = ?", code).Count(&count).Error
	return count > 0, err
}
