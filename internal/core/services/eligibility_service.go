package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"

	"lendcheck/internal/adapters/persistence/cache"
	"lendcheck/internal/adapters/persistence/models"
	"lendcheck/internal/adapters/persistence/repositories"
	"lendcheck/internal/core/domain"
	"lendcheck/internal/core/engine"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Eligibility service errors
var (
	ErrApplicationNotFound = errors.New("loan application not found")
)

// EligibilityService orchestrates the pure decision engine against stored
// applications and owns persistence of the verdicts it produces.
type EligibilityService struct {
	applicationRepo repositories.LoanApplicationRepository
	riskRepo        repositories.RiskAssessmentRepository
	engine          *engine.Engine
	cache           cache.CacheRepository
}

// NewEligibilityService creates a new eligibility service. cacheRepo may
// be nil, in which case every evaluation is computed fresh.
func NewEligibilityService(
	applicationRepo repositories.LoanApplicationRepository,
	riskRepo repositories.RiskAssessmentRepository,
	eng *engine.Engine,
	cacheRepo cache.CacheRepository,
) *EligibilityService {
	return &EligibilityService{
		applicationRepo: applicationRepo,
		riskRepo:        riskRepo,
		engine:          eng,
		cache:           cacheRepo,
	}
}

// verdict is the cacheable outcome of one evaluation
type verdict struct {
	Eligibility *domain.EligibilityResult `json:"eligibility"`
	Risk        *domain.RiskAssessment    `json:"risk"`
}

// Evaluate runs the engine for one applicant/product/request tuple.
// The engine is deterministic, so the verdict is cached under a key built
// from every input the engine reads; any change to the profile or the
// product terms produces a different key.
func (s *EligibilityService) Evaluate(
	ctx context.Context,
	applicant *domain.ApplicantSnapshot,
	product *domain.LoanProductSnapshot,
	requestedAmount decimal.Decimal,
	requestedTenureMonths int,
) (*domain.EligibilityResult, *domain.RiskAssessment, error) {
	key := verdictKey(applicant, product, requestedAmount, requestedTenureMonths)

	if s.cache != nil && key != "" {
		if raw, ok := s.cache.Get(ctx, key); ok {
			var v verdict
			if err := json.Unmarshal([]byte(raw), &v); err == nil {
				return v.Eligibility, v.Risk, nil
			}
		}
	}

	eligibility, err := s.engine.Evaluate(applicant, product, requestedAmount, requestedTenureMonths)
	if err != nil {
		return nil, nil, err
	}

	risk, err := s.engine.AssessRisk(applicant, product, requestedAmount, eligibility.EMI)
	if err != nil {
		return nil, nil, err
	}

	if s.cache != nil && key != "" {
		if raw, err := json.Marshal(verdict{Eligibility: eligibility, Risk: risk}); err == nil {
			if err := s.cache.Set(ctx, key, string(raw)); err != nil {
				log.Printf("⚠️ Failed to cache verdict: %v", err)
			}
		}
	}

	return eligibility, risk, nil
}

// verdictKey builds the cache key from every engine input
func verdictKey(
	applicant *domain.ApplicantSnapshot,
	product *domain.LoanProductSnapshot,
	amount decimal.Decimal,
	tenureMonths int,
) string {
	if applicant == nil || product == nil {
		return ""
	}
	return fmt.Sprintf("verdict:a%d:act%t:i%s:o%s:p%d:%s:%s:%d:%d:%s:w%d:amt%s:ten%d",
		applicant.ApplicantID,
		applicant.Active,
		applicant.MonthlyIncome,
		applicant.ExistingEMIObligations,
		product.ProductID,
		product.MinAmount,
		product.MaxAmount,
		product.MinTenureMonths,
		product.MaxTenureMonths,
		product.AnnualInterestRatePercent,
		product.BaseRiskWeight,
		amount,
		tenureMonths,
	)
}

// ScanFailure records one application that could not be re-evaluated
type ScanFailure struct {
	ApplicationID uint   `json:"application_id"`
	Error         string `json:"error"`
}

// ScanResult is one successfully re-evaluated application
type ScanResult struct {
	ApplicationID uint                      `json:"application_id"`
	Eligibility   *domain.EligibilityResult `json:"eligibility"`
	Risk          *domain.RiskAssessment    `json:"risk"`
}

// ScanReport summarizes a bulk scan run
type ScanReport struct {
	BatchID   string        `json:"batch_id"`
	Scanned   int           `json:"scanned"`
	Succeeded int           `json:"succeeded"`
	Failed    int           `json:"failed"`
	Results   []ScanResult  `json:"results"`
	Failures  []ScanFailure `json:"failures"`
}

// ScanAll re-evaluates every application still in a non-terminal status.
// Each item is independent: a bad record is reported in Failures and
// never aborts the rest. Every success appends a fresh risk assessment
// row and, for pending applications, moves the status to the verdict.
func (s *EligibilityService) ScanAll(ctx context.Context) (*ScanReport, error) {
	applications, err := s.applicationRepo.ListByStatuses(ctx, []string{string(domain.StatusPending)})
	if err != nil {
		return nil, err
	}

	items := make([]engine.ScanItem, 0, len(applications))
	for _, app := range applications {
		item := engine.ScanItem{
			ApplicationID:         app.ID,
			RequestedAmount:       app.RequestedAmount,
			RequestedTenureMonths: app.RequestedTenureMonths,
		}
		// Preloads leave zero-valued structs for dangling references;
		// pass nil so the engine reports them as item failures.
		if app.Applicant.ID != 0 {
			item.Applicant = app.Applicant.ToSnapshot()
		}
		if app.LoanProduct.ID != 0 {
			item.Product = app.LoanProduct.ToSnapshot()
		}
		items = append(items, item)
	}

	report := &ScanReport{
		BatchID:  uuid.New().String(),
		Scanned:  len(items),
		Results:  make([]ScanResult, 0, len(items)),
		Failures: make([]ScanFailure, 0),
	}

	for _, res := range s.engine.BulkScan(items) {
		if res.Err != nil {
			report.Failed++
			report.Failures = append(report.Failures, ScanFailure{
				ApplicationID: res.ApplicationID,
				Error:         res.Err.Error(),
			})
			continue
		}

		if err := s.persistVerdict(ctx, res, report.BatchID); err != nil {
			report.Failed++
			report.Failures = append(report.Failures, ScanFailure{
				ApplicationID: res.ApplicationID,
				Error:         err.Error(),
			})
			continue
		}

		report.Succeeded++
		report.Results = append(report.Results, ScanResult{
			ApplicationID: res.ApplicationID,
			Eligibility:   res.Eligibility,
			Risk:          res.Risk,
		})
	}

	log.Printf("✅ Bulk scan %s completed: %d scanned, %d succeeded, %d failed",
		report.BatchID, report.Scanned, report.Succeeded, report.Failed)

	return report, nil
}

// persistVerdict writes the assessment row and advances the application
// status according to the verdict
func (s *EligibilityService) persistVerdict(ctx context.Context, res engine.ScanItemResult, batchID string) error {
	assessment := &models.RiskAssessment{
		LoanApplicationID: res.ApplicationID,
		RiskScore:         res.Risk.RiskScore,
		RiskCategory:      string(res.Risk.RiskCategory),
		ScanBatchID:       batchID,
	}
	if err := s.riskRepo.Create(ctx, assessment); err != nil {
		return err
	}

	status := domain.StatusRejected
	if res.Eligibility.Approved {
		status = domain.StatusApproved
	}
	return s.applicationRepo.UpdateStatus(ctx, res.ApplicationID, string(status))
}

// AssessmentHistory lists all assessments recorded for an application,
// newest first
func (s *EligibilityService) AssessmentHistory(ctx context.Context, applicationID uint) ([]*models.RiskAssessment, error) {
	if _, err := s.applicationRepo.GetByID(ctx, applicationID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrApplicationNotFound
		}
		return nil, err
	}
	return s.riskRepo.ListByApplicationID(ctx, applicationID)
}

// joinReasons flattens reason codes for the application row
func joinReasons(reasons []domain.RejectionReason) string {
	if len(reasons) == 0 {
		return ""
	}
	parts := make([]string, 0, len(reasons))
	for _, r := range reasons {
		parts = append(parts, string(r))
	}
	return strings.Join(parts, ",")
}
