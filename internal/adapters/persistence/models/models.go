package models

import (
	"time"

	"lendcheck/internal/core/domain"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ============================================================
// Auth & User Tables
// ============================================================

// User represents users table
type User struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	Name      string         `gorm:"size:100;not null" json:"name"`
	Email     string         `gorm:"uniqueIndex;size:100;not null" json:"email"`
	Password  string         `gorm:"size:255;not null" json:"-"`
	Role      string         `gorm:"size:20;default:'USER'" json:"role"`
	IsActive  bool           `gorm:"default:true" json:"is_active"`
	CreatedAt time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (User) TableName() string {
	return "users"
}

// UserResponse DTO
type UserResponse struct {
	ID        uint      `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
}

func (u *User) ToResponse() *UserResponse {
	return &UserResponse{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Role:      u.Role,
		IsActive:  u.IsActive,
		CreatedAt: u.CreatedAt,
	}
}

// RefreshToken represents refresh_tokens table
type RefreshToken struct {
	ID        uint       `gorm:"primaryKey" json:"id"`
	UserID    uint       `gorm:"index;not null" json:"user_id"`
	TokenHash string     `gorm:"size:255;not null;index" json:"-"`
	ExpiresAt time.Time  `gorm:"not null" json:"expires_at"`
	CreatedAt time.Time  `gorm:"autoCreateTime" json:"created_at"`
	RevokedAt *time.Time `gorm:"index" json:"revoked_at"`
	User      User       `gorm:"foreignKey:UserID" json:"-"`
}

func (RefreshToken) TableName() string {
	return "refresh_tokens"
}

func (rt *RefreshToken) IsRevoked() bool {
	return rt.RevokedAt != nil
}

func (rt *RefreshToken) IsExpired() bool {
	return time.Now().After(rt.ExpiresAt)
}

// ============================================================
// Loan Domain Tables
// ============================================================

// LoanProduct represents loan_products table (master data)
type LoanProduct struct {
	ID                        uint            `gorm:"primaryKey" json:"id"`
	ProductCode               string          `gorm:"size:40;uniqueIndex;not null" json:"product_code"`
	ProductName               string          `gorm:"size:100;not null" json:"product_name"`
	LoanType                  string          `gorm:"size:30;not null" json:"loan_type"`
	MinAmount                 decimal.Decimal `gorm:"type:decimal(15,2);not null" json:"min_amount"`
	MaxAmount                 decimal.Decimal `gorm:"type:decimal(15,2);not null" json:"max_amount"`
	MinTenureMonths           int             `gorm:"not null" json:"min_tenure_months"`
	MaxTenureMonths           int             `gorm:"not null" json:"max_tenure_months"`
	AnnualInterestRatePercent decimal.Decimal `gorm:"type:decimal(5,2);not null" json:"annual_interest_rate_percent"`
	BaseRiskWeight            int             `gorm:"not null;default:1" json:"base_risk_weight"`
	IsActive                  bool            `gorm:"default:true" json:"is_active"`
	CreatedAt                 time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt                 time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt                 gorm.DeletedAt  `gorm:"index" json:"-"`
}

func (LoanProduct) TableName() string {
	return "loan_products"
}

// ToSnapshot builds the read-only view the eligibility engine consumes
func (p *LoanProduct) ToSnapshot() *domain.LoanProductSnapshot {
	return &domain.LoanProductSnapshot{
		ProductID:                 p.ID,
		ProductCode:               p.ProductCode,
		LoanType:                  p.LoanType,
		MinAmount:                 p.MinAmount,
		MaxAmount:                 p.MaxAmount,
		MinTenureMonths:           p.MinTenureMonths,
		MaxTenureMonths:           p.MaxTenureMonths,
		AnnualInterestRatePercent: p.AnnualInterestRatePercent,
		BaseRiskWeight:            p.BaseRiskWeight,
	}
}

// ApplicantProfile represents applicant_profiles table
type ApplicantProfile struct {
	ID                     uint            `gorm:"primaryKey" json:"id"`
	UserID                 uint            `gorm:"index;not null" json:"user_id"`
	FullName               string          `gorm:"size:100;not null" json:"full_name"`
	DateOfBirth            time.Time       `gorm:"type:date;not null" json:"date_of_birth"`
	EmploymentType         string          `gorm:"size:20;not null" json:"employment_type"`
	MonthlyIncome          decimal.Decimal `gorm:"type:decimal(15,2);not null" json:"monthly_income"`
	ExistingEMIObligations decimal.Decimal `gorm:"type:decimal(15,2);not null;default:0" json:"existing_emi_obligations"`
	Country                string          `gorm:"size:2;not null" json:"country"`
	Active                 bool            `gorm:"default:true" json:"active"`
	CreatedAt              time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt              time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt              gorm.DeletedAt  `gorm:"index" json:"-"`
	User                   User            `gorm:"foreignKey:UserID" json:"-"`
}

func (ApplicantProfile) TableName() string {
	return "applicant_profiles"
}

// ToSnapshot builds the read-only view the eligibility engine consumes
func (a *ApplicantProfile) ToSnapshot() *domain.ApplicantSnapshot {
	return &domain.ApplicantSnapshot{
		ApplicantID:            a.ID,
		FullName:               a.FullName,
		MonthlyIncome:          a.MonthlyIncome,
		ExistingEMIObligations: a.ExistingEMIObligations,
		EmploymentType:         domain.EmploymentType(a.EmploymentType),
		DateOfBirth:            a.DateOfBirth,
		Country:                a.Country,
		Active:                 a.Active,
	}
}

// LoanApplication represents loan_applications table
type LoanApplication struct {
	ID                    uint            `gorm:"primaryKey" json:"id"`
	ApplicantID           uint            `gorm:"index;not null" json:"applicant_id"`
	LoanProductID         uint            `gorm:"index;not null" json:"loan_product_id"`
	ApplicationDate       time.Time       `gorm:"type:date;not null" json:"application_date"`
	Status                string          `gorm:"size:20;not null;default:'PENDING';index" json:"status"`
	RequestedAmount       decimal.Decimal `gorm:"type:decimal(15,2);not null" json:"requested_amount"`
	RequestedTenureMonths int             `gorm:"not null" json:"requested_tenure_months"`
	EMI                   decimal.Decimal `gorm:"type:decimal(15,2)" json:"emi"`
	RejectionReasons      string          `gorm:"size:255" json:"rejection_reasons,omitempty"`
	CreatedAt             time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt             time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt             gorm.DeletedAt  `gorm:"index" json:"-"`

	Applicant   ApplicantProfile `gorm:"foreignKey:ApplicantID" json:"applicant,omitempty"`
	LoanProduct LoanProduct      `gorm:"foreignKey:LoanProductID" json:"loan_product,omitempty"`
}

func (LoanApplication) TableName() string {
	return "loan_applications"
}

// RiskAssessment represents risk_assessments table. Rows are append-only:
// every evaluation writes a new record and never touches prior ones, so
// the scoring history of an application stays auditable.
type RiskAssessment struct {
	ID                uint            `gorm:"primaryKey" json:"id"`
	LoanApplicationID uint            `gorm:"index;not null" json:"loan_application_id"`
	RiskScore         decimal.Decimal `gorm:"type:decimal(5,2);not null" json:"risk_score"`
	RiskCategory      string          `gorm:"size:10;not null;index" json:"risk_category"`
	ScanBatchID       string          `gorm:"size:36;index" json:"scan_batch_id,omitempty"`
	CreatedAt         time.Time       `gorm:"autoCreateTime" json:"created_at"`

	LoanApplication LoanApplication `gorm:"foreignKey:LoanApplicationID" json:"-"`
}

func (RiskAssessment) TableName() string {
	return "risk_assessments"
}

// ToDomain converts the stored row back to the engine's record shape
func (r *RiskAssessment) ToDomain() *domain.RiskAssessment {
	return &domain.RiskAssessment{
		ApplicationID: r.LoanApplicationID,
		RiskScore:     r.RiskScore,
		RiskCategory:  domain.RiskCategory(r.RiskCategory),
		CreatedAt:     r.CreatedAt,
	}
}

// AutoMigrate runs auto migration for all tables
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&User{},
		&RefreshToken{},
		&LoanProduct{},
		&ApplicantProfile{},
		&LoanApplication{},
		&RiskAssessment{},
	)
}
