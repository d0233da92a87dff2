package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Role represents user role in the system
type Role string

const (
	RoleUser  Role = "USER"
	RoleAdmin Role = "ADMIN"
)

// EmploymentType represents how an applicant earns income
type EmploymentType string

const (
	EmploymentSalaried     EmploymentType = "SALARIED"
	EmploymentSelfEmployed EmploymentType = "SELF_EMPLOYED"
	EmploymentRetired      EmploymentType = "RETIRED"
	EmploymentUnemployed   EmploymentType = "UNEMPLOYED"
)

// ValidEmploymentType reports whether t is a known employment type
func ValidEmploymentType(t EmploymentType) bool {
	switch t {
	case EmploymentSalaried, EmploymentSelfEmployed, EmploymentRetired, EmploymentUnemployed:
		return true
	}
	return false
}

// ApplicationStatus represents the lifecycle state of a loan application
type ApplicationStatus string

const (
	StatusPending   ApplicationStatus = "PENDING"
	StatusApproved  ApplicationStatus = "APPROVED"
	StatusRejected  ApplicationStatus = "REJECTED"
	StatusWithdrawn ApplicationStatus = "WITHDRAWN"
)

// IsTerminal reports whether the status admits no further transitions
func (s ApplicationStatus) IsTerminal() bool {
	return s == StatusApproved || s == StatusRejected || s == StatusWithdrawn
}

// RejectionReason is a stable machine-readable code for a failed eligibility check
type RejectionReason string

const (
	ReasonAmountOutOfRange  RejectionReason = "AMOUNT_OUT_OF_RANGE"
	ReasonTenureOutOfRange  RejectionReason = "TENURE_OUT_OF_RANGE"
	ReasonDTIExceeded       RejectionReason = "DTI_EXCEEDED"
	ReasonNonPositiveIncome RejectionReason = "NON_POSITIVE_INCOME"
	ReasonApplicantInactive RejectionReason = "APPLICANT_INACTIVE"
)

// RiskCategory classifies a numeric risk score
type RiskCategory string

const (
	RiskLow    RiskCategory = "LOW"
	RiskMedium RiskCategory = "MEDIUM"
	RiskHigh   RiskCategory = "HIGH"
)

// ApplicantSnapshot is a read-only view of an applicant profile,
// assembled by the persistence layer for the eligibility engine
type ApplicantSnapshot struct {
	ApplicantID            uint
	FullName               string
	MonthlyIncome          decimal.Decimal
	ExistingEMIObligations decimal.Decimal
	EmploymentType         EmploymentType
	DateOfBirth            time.Time
	Country                string
	Active                 bool
}

// LoanProductSnapshot is a read-only view of a loan product's terms
type LoanProductSnapshot struct {
	ProductID                 uint
	ProductCode               string
	LoanType                  string
	MinAmount                 decimal.Decimal
	MaxAmount                 decimal.Decimal
	MinTenureMonths           int
	MaxTenureMonths           int
	AnnualInterestRatePercent decimal.Decimal
	BaseRiskWeight            int
}

// EligibilityResult is the engine's verdict for a single loan request.
// Reasons is empty when Approved is true; every violated condition is
// listed, not just the first one found.
type EligibilityResult struct {
	Approved bool              `json:"approved"`
	Reasons  []RejectionReason `json:"reasons"`
	EMI      decimal.Decimal   `json:"emi"`
}

// RiskAssessment is the engine's composite risk verdict for an application.
// Each evaluation produces a new record; existing records are never mutated.
// CreatedAt is assigned by the persistence layer, not the engine.
type RiskAssessment struct {
	ApplicationID uint            `json:"application_id"`
	RiskScore     decimal.Decimal `json:"risk_score"`
	RiskCategory  RiskCategory    `json:"risk_category"`
	CreatedAt     time.Time       `json:"created_at"`
}
