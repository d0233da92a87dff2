package services

import (
	"context"
	"errors"
	"time"

	"lendcheck/internal/adapters/persistence/models"
	"lendcheck/internal/adapters/persistence/repositories"
	"lendcheck/internal/core/domain"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Applicant service errors
var (
	ErrApplicantNotFound     = errors.New("applicant profile not found")
	ErrNegativeIncome        = errors.New("monthly income must not be negative")
	ErrNegativeObligations   = errors.New("existing EMI obligations must not be negative")
	ErrInvalidEmploymentType = errors.New("unknown employment type")
	ErrInvalidDateOfBirth    = errors.New("date of birth must be in the past")
	ErrInvalidDateFormat     = errors.New("invalid date format, use YYYY-MM-DD")
	ErrNotProfileOwner       = errors.New("profile belongs to another user")
)

// ApplicantService handles applicant profile business logic
type ApplicantService struct {
	applicantRepo repositories.ApplicantProfileRepository
}

// NewApplicantService creates a new applicant service
func NewApplicantService(applicantRepo repositories.ApplicantProfileRepository) *ApplicantService {
	return &ApplicantService{applicantRepo: applicantRepo}
}

// ApplicantInput represents create/update applicant input
type ApplicantInput struct {
	FullName               string          `json:"full_name" validate:"required"`
	DateOfBirth            string          `json:"date_of_birth" validate:"required"`
	EmploymentType         string          `json:"employment_type" validate:"required"`
	MonthlyIncome          decimal.Decimal `json:"monthly_income"`
	ExistingEMIObligations decimal.Decimal `json:"existing_emi_obligations"`
	Country                string          `json:"country" validate:"required,len=2"`
	Active                 bool            `json:"active"`
}

// parse validates the input and returns the parsed date of birth
func (in *ApplicantInput) parse() (time.Time, error) {
	if in.MonthlyIncome.Sign() < 0 {
		return time.Time{}, ErrNegativeIncome
	}
	if in.ExistingEMIObligations.Sign() < 0 {
		return time.Time{}, ErrNegativeObligations
	}
	if !domain.ValidEmploymentType(domain.EmploymentType(in.EmploymentType)) {
		return time.Time{}, ErrInvalidEmploymentType
	}

	dob, err := time.Parse("2006-01-02", in.DateOfBirth)
	if err != nil {
		return time.Time{}, ErrInvalidDateFormat
	}
	if !dob.Before(time.Now()) {
		return time.Time{}, ErrInvalidDateOfBirth
	}

	return dob, nil
}

// Create creates a new applicant profile owned by the given user
func (s *ApplicantService) Create(ctx context.Context, userID uint, input *ApplicantInput) (*models.ApplicantProfile, error) {
	dob, err := input.parse()
	if err != nil {
		return nil, err
	}

	profile := &models.ApplicantProfile{
		UserID:                 userID,
		FullName:               input.FullName,
		DateOfBirth:            dob,
		EmploymentType:         input.EmploymentType,
		MonthlyIncome:          input.MonthlyIncome,
		ExistingEMIObligations: input.ExistingEMIObligations,
		Country:                input.Country,
		Active:                 input.Active,
	}

	if err := s.applicantRepo.Create(ctx, profile); err != nil {
		return nil, err
	}

	return profile, nil
}

// GetByID gets an applicant profile by ID
func (s *ApplicantService) GetByID(ctx context.Context, id uint) (*models.ApplicantProfile, error) {
	profile, err := s.applicantRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrApplicantNotFound
		}
		return nil, err
	}
	return profile, nil
}

// ListByUser lists profiles owned by a user
func (s *ApplicantService) ListByUser(ctx context.Context, userID uint) ([]*models.ApplicantProfile, error) {
	return s.applicantRepo.ListByUserID(ctx, userID)
}

// Update updates an applicant profile. Only the owning user may update it.
func (s *ApplicantService) Update(ctx context.Context, id, userID uint, input *ApplicantInput) (*models.ApplicantProfile, error) {
	dob, err := input.parse()
	if err != nil {
		return nil, err
	}

	profile, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if profile.UserID != userID {
		return nil, ErrNotProfileOwner
	}

	profile.FullName = input.FullName
	profile.DateOfBirth = dob
	profile.EmploymentType = input.EmploymentType
	profile.MonthlyIncome = input.MonthlyIncome
	profile.ExistingEMIObligations = input.ExistingEMIObligations
	profile.Country = input.Country
	profile.Active = input.Active

	if err := s.applicantRepo.Update(ctx, profile); err != nil {
		return nil, err
	}

	return profile, nil
}
