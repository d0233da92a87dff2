package services

import (
	"context"
	"errors"
	"log"
	"time"

	"lendcheck/internal/adapters/persistence/models"
	"lendcheck/internal/adapters/persistence/repositories"
	"lendcheck/internal/core/domain"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Loan application service errors
var (
	ErrNonPositiveAmount = errors.New("requested amount must be positive")
	ErrNonPositiveTenure = errors.New("requested tenure must be positive")
	ErrInvalidStatus     = errors.New("invalid application status")
	ErrTerminalStatus    = errors.New("application is in a terminal status")
	ErrInactiveProduct   = errors.New("loan product is not active")
	ErrInactiveApplicant = errors.New("applicant profile is not active")
)

// LoanApplicationService handles loan application business logic
type LoanApplicationService struct {
	applicationRepo repositories.LoanApplicationRepository
	applicantRepo   repositories.ApplicantProfileRepository
	productRepo     repositories.LoanProductRepository
	riskRepo        repositories.RiskAssessmentRepository
	eligibilitySvc  *EligibilityService
}

// NewLoanApplicationService creates a new loan application service
func NewLoanApplicationService(
	applicationRepo repositories.LoanApplicationRepository,
	applicantRepo repositories.ApplicantProfileRepository,
	productRepo repositories.LoanProductRepository,
	riskRepo repositories.RiskAssessmentRepository,
	eligibilitySvc *EligibilityService,
) *LoanApplicationService {
	return &LoanApplicationService{
		applicationRepo: applicationRepo,
		applicantRepo:   applicantRepo,
		productRepo:     productRepo,
		riskRepo:        riskRepo,
		eligibilitySvc:  eligibilitySvc,
	}
}

// ApplicationInput contains the loan request terms
type ApplicationInput struct {
	RequestedAmount       decimal.Decimal `json:"requested_amount" validate:"required"`
	RequestedTenureMonths int             `json:"requested_tenure_months" validate:"required,min=1"`
}

// ApplicationDecision is the full outcome of filing one application
type ApplicationDecision struct {
	Application *models.LoanApplication   `json:"application"`
	Eligibility *domain.EligibilityResult `json:"eligibility"`
	Risk        *domain.RiskAssessment    `json:"risk"`
}

// Apply files a loan application for an applicant against a product,
// runs the eligibility and risk evaluation, and persists both the
// application and its first risk assessment. The application lands in
// APPROVED or REJECTED according to the verdict.
func (s *LoanApplicationService) Apply(ctx context.Context, applicantID, productID uint, input ApplicationInput) (*ApplicationDecision, error) {
	if input.RequestedAmount.Sign() <= 0 {
		return nil, ErrNonPositiveAmount
	}
	if input.RequestedTenureMonths <= 0 {
		return nil, ErrNonPositiveTenure
	}

	applicant, err := s.applicantRepo.GetByID(ctx, applicantID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrApplicantNotFound
		}
		return nil, err
	}
	if !applicant.Active {
		return nil, ErrInactiveApplicant
	}

	product, err := s.productRepo.GetByID(ctx, productID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}
	if !product.IsActive {
		return nil, ErrInactiveProduct
	}

	eligibility, risk, err := s.eligibilitySvc.Evaluate(
		ctx,
		applicant.ToSnapshot(),
		product.ToSnapshot(),
		input.RequestedAmount,
		input.RequestedTenureMonths,
	)
	if err != nil {
		return nil, err
	}

	status := domain.StatusRejected
	if eligibility.Approved {
		status = domain.StatusApproved
	}

	application := &models.LoanApplication{
		ApplicantID:           applicantID,
		LoanProductID:         productID,
		ApplicationDate:       time.Now(),
		Status:                string(status),
		RequestedAmount:       input.RequestedAmount,
		RequestedTenureMonths: input.RequestedTenureMonths,
		EMI:                   eligibility.EMI,
		RejectionReasons:      joinReasons(eligibility.Reasons),
	}
	if err := s.applicationRepo.Create(ctx, application); err != nil {
		return nil, err
	}

	assessment := &models.RiskAssessment{
		LoanApplicationID: application.ID,
		RiskScore:         risk.RiskScore,
		RiskCategory:      string(risk.RiskCategory),
	}
	if err := s.riskRepo.Create(ctx, assessment); err != nil {
		return nil, err
	}

	application.Applicant = *applicant
	application.LoanProduct = *product
	risk.ApplicationID = application.ID
	risk.CreatedAt = assessment.CreatedAt

	log.Printf("✅ Application %d filed by applicant %d: %s (risk %s %s)",
		application.ID, applicantID, application.Status, risk.RiskScore, risk.RiskCategory)

	return &ApplicationDecision{
		Application: application,
		Eligibility: eligibility,
		Risk:        risk,
	}, nil
}

// GetByID gets a loan application by ID with its latest risk assessment
func (s *LoanApplicationService) GetByID(ctx context.Context, id uint) (*models.LoanApplication, *models.RiskAssessment, error) {
	application, err := s.applicationRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrApplicationNotFound
		}
		return nil, nil, err
	}

	latest, err := s.riskRepo.LatestByApplicationID(ctx, id)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil, err
	}

	return application, latest, nil
}

// ListByApplicant lists all applications filed by one applicant
func (s *LoanApplicationService) ListByApplicant(ctx context.Context, applicantID uint) ([]*models.LoanApplication, error) {
	if _, err := s.applicantRepo.GetByID(ctx, applicantID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrApplicantNotFound
		}
		return nil, err
	}
	return s.applicationRepo.ListByApplicantID(ctx, applicantID)
}

// List lists applications with pagination
func (s *LoanApplicationService) List(ctx context.Context, offset, limit int) ([]*models.LoanApplication, int64, error) {
	return s.applicationRepo.List(ctx, offset, limit)
}

// UpdateStatus moves an application to a new status. Terminal statuses
// admit no further transitions.
func (s *LoanApplicationService) UpdateStatus(ctx context.Context, id uint, status string) (*models.LoanApplication, error) {
	target := domain.ApplicationStatus(status)
	switch target {
	case domain.StatusPending, domain.StatusApproved, domain.StatusRejected, domain.StatusWithdrawn:
	default:
		return nil, ErrInvalidStatus
	}

	application, err := s.applicationRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrApplicationNotFound
		}
		return nil, err
	}

	if domain.ApplicationStatus(application.Status).IsTerminal() {
		return nil, ErrTerminalStatus
	}

	if err := s.applicationRepo.UpdateStatus(ctx, id, string(target)); err != nil {
		return nil, err
	}
	application.Status = string(target)
	return application, nil
}
