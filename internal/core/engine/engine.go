package engine

import (
	"sync"

	"lendcheck/internal/core/domain"

	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// Engine is the eligibility and EMI-risk decision core. It performs no
// I/O and holds no mutable state: every method is a pure function over
// its inputs and safe for concurrent use.
type Engine struct {
	policy Policy
}

// New returns an engine using the given policy calibration.
func New(policy Policy) *Engine {
	return &Engine{policy: policy}
}

// Policy returns the calibration the engine was built with.
func (e *Engine) Policy() Policy {
	return e.policy
}

// Evaluate decides whether the applicant qualifies for the requested loan.
// Bound checks and the debt-to-income check are independent: every
// violated condition contributes its own reason code. Income that is not
// strictly positive short-circuits the EMI computation because the DTI
// ratio is undefined without it.
func (e *Engine) Evaluate(
	applicant *domain.ApplicantSnapshot,
	product *domain.LoanProductSnapshot,
	requestedAmount decimal.Decimal,
	requestedTenureMonths int,
) (*domain.EligibilityResult, error) {
	if applicant == nil {
		return nil, domain.ErrNilApplicantSnapshot
	}
	if product == nil {
		return nil, domain.ErrNilProductSnapshot
	}

	reasons := make([]domain.RejectionReason, 0, 4)

	if !applicant.Active {
		reasons = append(reasons, domain.ReasonApplicantInactive)
	}
	if requestedAmount.LessThan(product.MinAmount) || requestedAmount.GreaterThan(product.MaxAmount) {
		reasons = append(reasons, domain.ReasonAmountOutOfRange)
	}
	if requestedTenureMonths < product.MinTenureMonths || requestedTenureMonths > product.MaxTenureMonths {
		reasons = append(reasons, domain.ReasonTenureOutOfRange)
	}

	emi := decimal.Zero
	if applicant.MonthlyIncome.Sign() <= 0 {
		reasons = append(reasons, domain.ReasonNonPositiveIncome)
	} else {
		emi = MonthlyInstallment(requestedAmount, product.AnnualInterestRatePercent, requestedTenureMonths)
		totalObligation := applicant.ExistingEMIObligations.Add(emi)
		dti := totalObligation.Div(applicant.MonthlyIncome)
		if dti.GreaterThan(e.policy.MaxDTIRatio) {
			reasons = append(reasons, domain.ReasonDTIExceeded)
		}
	}

	return &domain.EligibilityResult{
		Approved: len(reasons) == 0,
		Reasons:  reasons,
		EMI:      emi,
	}, nil
}

// AssessRisk computes a composite risk score for the requested exposure
// and maps it to a category. The score weighs the product's base risk
// weight, the applicant's debt-to-income ratio with the new EMI included,
// and the requested amount relative to the product maximum, clamped to
// [0,100] and rounded to 2 decimal places.
func (e *Engine) AssessRisk(
	applicant *domain.ApplicantSnapshot,
	product *domain.LoanProductSnapshot,
	requestedAmount decimal.Decimal,
	emi decimal.Decimal,
) (*domain.RiskAssessment, error) {
	if applicant == nil {
		return nil, domain.ErrNilApplicantSnapshot
	}
	if product == nil {
		return nil, domain.ErrNilProductSnapshot
	}
	if emi.Sign() < 0 {
		return nil, domain.ErrNegativeEMI
	}
	if applicant.MonthlyIncome.Sign() <= 0 {
		return nil, domain.InvalidFieldError("monthly_income", "must be positive")
	}
	if product.MaxAmount.Sign() <= 0 {
		return nil, domain.InvalidFieldError("max_amount", "must be positive")
	}

	dti := applicant.ExistingEMIObligations.Add(emi).Div(applicant.MonthlyIncome)
	exposure := requestedAmount.Div(product.MaxAmount)

	score := e.policy.BaseWeightFactor.Mul(decimal.NewFromInt(int64(product.BaseRiskWeight))).
		Add(e.policy.DTIWeight.Mul(dti.Mul(hundred))).
		Add(e.policy.ExposureWeight.Mul(exposure.Mul(hundred)))

	if score.Sign() < 0 {
		score = decimal.Zero
	} else if score.GreaterThan(hundred) {
		score = hundred
	}
	score = score.Round(2)

	return &domain.RiskAssessment{
		RiskScore:    score,
		RiskCategory: e.Categorize(score),
	}, nil
}

// Categorize maps a clamped risk score to its category. Scores exactly on
// a threshold land in the higher bucket.
func (e *Engine) Categorize(score decimal.Decimal) domain.RiskCategory {
	switch {
	case score.LessThan(e.policy.LowThreshold):
		return domain.RiskLow
	case score.LessThan(e.policy.HighThreshold):
		return domain.RiskMedium
	default:
		return domain.RiskHigh
	}
}

// ScanItem is one stored loan application presented for re-evaluation.
type ScanItem struct {
	ApplicationID         uint
	Applicant             *domain.ApplicantSnapshot
	Product               *domain.LoanProductSnapshot
	RequestedAmount       decimal.Decimal
	RequestedTenureMonths int
}

// ScanItemResult pairs an application with its re-evaluation outcome.
// Err is set when the item's data was inconsistent; Eligibility and Risk
// are set otherwise.
type ScanItemResult struct {
	ApplicationID uint
	Eligibility   *domain.EligibilityResult
	Risk          *domain.RiskAssessment
	Err           error
}

// bulkScanWorkers bounds the fan-out during a bulk scan.
const bulkScanWorkers = 8

// BulkScan re-runs Evaluate and AssessRisk for every item. Items are
// processed independently across a bounded worker pool; one item's bad
// data never aborts the rest. Results come back in input order, so a
// sequential run yields the identical result set.
func (e *Engine) BulkScan(items []ScanItem) []ScanItemResult {
	results := make([]ScanItemResult, len(items))
	if len(items) == 0 {
		return results
	}

	workers := bulkScanWorkers
	if workers > len(items) {
		workers = len(items)
	}

	jobs := make(chan int)
	var wg sync.WaitGroup
	wg.Add(workers)
	for w := 0; w < workers; w++ {
		go func() {
			defer wg.Done()
			for i := range jobs {
				results[i] = e.scanOne(items[i])
			}
		}()
	}
	for i := range items {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	return results
}

func (e *Engine) scanOne(item ScanItem) ScanItemResult {
	res := ScanItemResult{ApplicationID: item.ApplicationID}

	eligibility, err := e.Evaluate(item.Applicant, item.Product, item.RequestedAmount, item.RequestedTenureMonths)
	if err != nil {
		res.Err = err
		return res
	}

	risk, err := e.AssessRisk(item.Applicant, item.Product, item.RequestedAmount, eligibility.EMI)
	if err != nil {
		res.Err = err
		return res
	}
	risk.ApplicationID = item.ApplicationID

	res.Eligibility = eligibility
	res.Risk = risk
	return res
}
