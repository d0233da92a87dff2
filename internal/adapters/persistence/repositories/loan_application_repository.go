package repositories

import (
	"context"

	"lendcheck/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// loanApplicationRepository implements LoanApplicationRepository interface
type loanApplicationRepository struct {
	db *gorm.DB
}

// NewLoanApplicationRepository creates a new loan application repository
func NewLoanApplicationRepository(db *gorm.DB) LoanApplicationRepository {
	return &loanApplicationRepository{db: db}
}

// Create creates a new loan application
func (r *loanApplicationRepository) Create(ctx context.Context, application *models.LoanApplication) error {
	return r.db.WithContext(ctx).Create(application).Error
}

// GetByID gets a loan application by ID with applicant and product preloaded
func (r *loanApplicationRepository) GetByID(ctx context.Context, id uint) (*models.LoanApplication, error) {
	var application models.LoanApplication
	err := r.db.WithContext(ctx).
		Preload("Applicant").
		Preload("LoanProduct").
		Where("id = ?", id).
		First(&application).Error
	if err != nil {
		return nil, err
	}
	return &application, nil
}

// ListByApplicantID lists applications filed by an applicant
func (r *loanApplicationRepository) ListByApplicantID(ctx context.Context, applicantID uint) ([]*models.LoanApplication, error) {
	var applications []*models.LoanApplication
	err := r.db.WithContext(ctx).
		Preload("LoanProduct").
		Where("applicant_id = ?", applicantID).
		Order("id ASC").
		Find(&applications).Error
	return applications, err
}

// ListByStatuses lists applications in the given statuses with applicant
// and product preloaded, ordered by id for a deterministic scan order
func (r *loanApplicationRepository) ListByStatuses(ctx context.Context, statuses []string) ([]*models.LoanApplication, error) {
	var applications []*models.LoanApplication
	err := r.db.WithContext(ctx).
		Preload("Applicant").
		Preload("LoanProduct").
		Where("status IN ?", statuses).
		Order("id ASC").
		Find(&applications).Error
	return applications, err
}

// List lists applications with pagination
func (r *loanApplicationRepository) List(ctx context.Context, offset, limit int) ([]*models.LoanApplication, int64, error) {
	var applications []*models.LoanApplication
	var total int64

	if err := r.db.WithContext(ctx).Model(&models.LoanApplication{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := r.db.WithContext(ctx).
		Preload("Applicant").
		Preload("LoanProduct").
		Order("id ASC").
		Offset(offset).
		Limit(limit).
		Find(&applications).Error
	if err != nil {
		return nil, 0, err
	}

	return applications, total, nil
}

// UpdateStatus updates only the status column
func (r *loanApplicationRepository) UpdateStatus(ctx context.Context, id uint, status string) error {
	return r.db.WithContext(ctx).
		Model(&models.LoanApplication{}).
		Where("id = ?", id).
		Update("status", status).Error
}

// Update updates a loan application
func (r *loanApplicationRepository) Update(ctx context.Context, application *models.LoanApplication) error {
	return r.db.WithContext(ctx).Save(application).Error
}

// CountByStatus returns application counts grouped by status
func (r *loanApplicationRepository) CountByStatus(ctx context.Context) (map[string]int64, error) {
	type row struct {
		Status string
		Count  int64
	}
	var rows []row
	err := r.db.WithContext(ctx).
		Model(&models.LoanApplication{}).
		Select("status, count(*) as count").
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[string]int64, len(rows))
	for _, r := range rows {
		counts[r.Status] = r.Count
	}
	return counts, nil
}
