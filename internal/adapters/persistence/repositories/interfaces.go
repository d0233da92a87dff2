package repositories

import (
	"context"

	"lendcheck/internal/adapters/persistence/models"
)

// UserRepository defines user repository interface
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id uint) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	Update(ctx context.Context, user *models.User) error
	List(ctx context.Context, offset, limit int) ([]*models.User, int64, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
}

// RefreshTokenRepository defines refresh token repository interface
type RefreshTokenRepository interface {
	Create(ctx context.Context, token *models.RefreshToken) error
	GetByTokenHash(ctx context.Context, tokenHash string) (*models.RefreshToken, error)
	RevokeByTokenHash(ctx context.Context, tokenHash string) error
	RevokeAllByUserID(ctx context.Context, userID uint) error
	DeleteExpired(ctx context.Context) error
}

// LoanProductRepository defines loan product repository interface
type LoanProductRepository interface {
	Create(ctx context.Context, product *models.LoanProduct) error
	GetByID(ctx context.Context, id uint) (*models.LoanProduct, error)
	GetByCode(ctx context.Context, code string) (*models.LoanProduct, error)
	Update(ctx context.Context, product *models.LoanProduct) error
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context, offset, limit int) ([]*models.LoanProduct, int64, error)
	ExistsByCode(ctx context.Context, code string) (bool, error)
}

// ApplicantProfileRepository defines applicant profile repository interface
type ApplicantProfileRepository interface {
	Create(ctx context.Context, profile *models.ApplicantProfile) error
	GetByID(ctx context.Context, id uint) (*models.ApplicantProfile, error)
	ListByUserID(ctx context.Context, userID uint) ([]*models.ApplicantProfile, error)
	Update(ctx context.Context, profile *models.ApplicantProfile) error
}

// LoanApplicationRepository defines loan application repository interface
type LoanApplicationRepository interface {
	Create(ctx context.Context, application *models.LoanApplication) error
	GetByID(ctx context.Context, id uint) (*models.LoanApplication, error)
	ListByApplicantID(ctx context.Context, applicantID uint) ([]*models.LoanApplication, error)
	ListByStatuses(ctx context.Context, statuses []string) ([]*models.LoanApplication, error)
	List(ctx context.Context, offset, limit int) ([]*models.LoanApplication, int64, error)
	UpdateStatus(ctx context.Context, id uint, status string) error
	Update(ctx context.Context, application *models.LoanApplication) error
	CountByStatus(ctx context.Context) (map[string]int64, error)
}

// RiskAssessmentRepository defines risk assessment repository interface.
// Assessments are append-only; there is deliberately no update method.
type RiskAssessmentRepository interface {
	Create(ctx context.Context, assessment *models.RiskAssessment) error
	ListByApplicationID(ctx context.Context, applicationID uint) ([]*models.RiskAssessment, error)
	LatestByApplicationID(ctx context.Context, applicationID uint) (*models.RiskAssessment, error)
	CountByCategory(ctx context.Context) (map[string]int64, error)
}
