package services

import (
	"context"

	"lendcheck/internal/adapters/persistence/repositories"
	"lendcheck/internal/core/domain"
)

// DashboardService aggregates portfolio-level counters
type DashboardService struct {
	applicationRepo repositories.LoanApplicationRepository
	riskRepo        repositories.RiskAssessmentRepository
}

// NewDashboardService creates a new dashboard service
func NewDashboardService(
	applicationRepo repositories.LoanApplicationRepository,
	riskRepo repositories.RiskAssessmentRepository,
) *DashboardService {
	return &DashboardService{
		applicationRepo: applicationRepo,
		riskRepo:        riskRepo,
	}
}

// DashboardSummary contains portfolio-level counters
type DashboardSummary struct {
	TotalApplications    int64            `json:"total_applications"`
	ApplicationsByStatus map[string]int64 `json:"applications_by_status"`
	PendingApplications  int64            `json:"pending_applications"`
	AssessmentsByRisk    map[string]int64 `json:"assessments_by_risk"`
}

// GetSummary builds the portfolio summary
func (s *DashboardService) GetSummary(ctx context.Context) (*DashboardSummary, error) {
	byStatus, err := s.applicationRepo.CountByStatus(ctx)
	if err != nil {
		return nil, err
	}

	byRisk, err := s.riskRepo.CountByCategory(ctx)
	if err != nil {
		return nil, err
	}

	summary := &DashboardSummary{
		ApplicationsByStatus: byStatus,
		PendingApplications:  byStatus[string(domain.StatusPending)],
		AssessmentsByRisk:    byRisk,
	}
	for _, count := range byStatus {
		summary.TotalApplications += count
	}
	return summary, nil
}
