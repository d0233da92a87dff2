package repositories

import (
	"context"

	"lendcheck/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// riskAssessmentRepository implements RiskAssessmentRepository interface
type riskAssessmentRepository struct {
	db *gorm.DB
}

// NewRiskAssessmentRepository creates a new risk assessment repository
func NewRiskAssessmentRepository(db *gorm.DB) RiskAssessmentRepository {
	return &riskAssessmentRepository{db: db}
}

// Create appends a new risk assessment record
func (r *riskAssessmentRepository) Create(ctx context.Context, assessment *models.RiskAssessment) error {
	return r.db.WithContext(ctx).Create(assessment).Error
}

// ListByApplicationID lists all assessments of an application, newest first
func (r *riskAssessmentRepository) ListByApplicationID(ctx context.Context, applicationID uint) ([]*models.RiskAssessment, error) {
	var assessments []*models.RiskAssessment
	err := r.db.WithContext(ctx).
		Where("loan_application_id = ?", applicationID).
		Order("id DESC").
		Find(&assessments).Error
	return assessments, err
}

// LatestByApplicationID gets the most recent assessment of an application
func (r *riskAssessmentRepository) LatestByApplicationID(ctx context.Context, applicationID uint) (*models.RiskAssessment, error) {
	var assessment models.RiskAssessment
	err := r.db.WithContext(ctx).
		Where("loan_application_id = ?", applicationID).
		Order("id DESC").
		First(&assessment).Error
	if err != nil {
		return nil, err
	}
	return &assessment, nil
}

// CountByCategory returns assessment counts grouped by risk category
func (r *riskAssessmentRepository) CountByCategory(ctx context.Context) (map[string]int64, error) {
	type row struct {
		RiskCategory string
		Count        int64
	}
	var rows []row
	err := r.db.WithContext(ctx).
		Model(&models.RiskAssessment{}).
		Select("risk_category, count(*) as count").
		Group("risk_category").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[string]int64, len(rows))
	for _, r := range rows {
		counts[r.RiskCategory] = r.Count
	}
	return counts, nil
}
