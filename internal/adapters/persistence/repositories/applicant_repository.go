package repositories

import (
	"context"

	"lendcheck/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// applicantProfileRepository implements ApplicantProfileRepository interface
type applicantProfileRepository struct {
	db *gorm.DB
}

// NewApplicantProfileRepository creates a new applicant profile repository
func NewApplicantProfileRepository(db *gorm.DB) ApplicantProfileRepository {
	return &applicantProfileRepository{db: db}
}

// Create creates a new applicant profile
func (r *applicantProfileRepository) Create(ctx context.Context, profile *models.ApplicantProfile) error {
	return r.db.WithContext(ctx).Create(profile).Error
}

// GetByID gets an applicant profile by ID
func (r *applicantProfileRepository) GetByID(ctx context.Context, id uint) (*models.ApplicantProfile, error) {
	var profile models.ApplicantProfile
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&profile).Error
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

// ListByUserID lists all applicant profiles owned by a user
func (r *applicantProfileRepository) ListByUserID(ctx context.Context, userID uint) ([]*models.ApplicantProfile, error) {
	var profiles []*models.ApplicantProfile
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("id ASC").
		Find(&profiles).Error
	return profiles, err
}

// Update updates an applicant profile
func (r *applicantProfileRepository) Update(ctx context.Context, profile *models.ApplicantProfile) error {
	return r.db.WithContext(ctx).Save(profile).Error
}
