package engine

import "github.com/shopspring/decimal"

// Policy holds the tunable lending-policy constants used by the engine.
// All values can be overridden through configuration so the calibration
// can change without a code change.
type Policy struct {
	// MaxDTIRatio is the highest acceptable debt-to-income ratio.
	// Total monthly obligation (existing EMIs + new EMI) divided by
	// monthly income must not exceed it.
	MaxDTIRatio decimal.Decimal

	// Risk score weights:
	// score = BaseWeightFactor*baseRiskWeight
	//       + DTIWeight*(dti*100)
	//       + ExposureWeight*(exposure*100)
	// clamped to [0,100].
	BaseWeightFactor decimal.Decimal
	DTIWeight        decimal.Decimal
	ExposureWeight   decimal.Decimal

	// Category thresholds: score < LowThreshold is LOW,
	// score < HighThreshold is MEDIUM, anything else HIGH.
	// A score exactly on a threshold lands in the higher bucket.
	LowThreshold  decimal.Decimal
	HighThreshold decimal.Decimal
}

// DefaultPolicy returns the stock calibration. baseRiskWeight is a small
// integer (1-10), so BaseWeightFactor 4 lets the product contribute up to
// 40 points; DTI and exposure contribute up to 40 and 30 before clamping.
func DefaultPolicy() Policy {
	return Policy{
		MaxDTIRatio:      decimal.NewFromFloat(0.50),
		BaseWeightFactor: decimal.NewFromInt(4),
		DTIWeight:        decimal.NewFromFloat(0.4),
		ExposureWeight:   decimal.NewFromFloat(0.3),
		LowThreshold:     decimal.NewFromInt(35),
		HighThreshold:    decimal.NewFromInt(65),
	}
}
