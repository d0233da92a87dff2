package engine

import "github.com/shopspring/decimal"

var one = decimal.NewFromInt(1)

// MonthlyInstallment computes the equated monthly installment for an
// amortizing loan using the standard formula
//
//	EMI = P * r * (1+r)^n / ((1+r)^n - 1)
//
// where r is the monthly rate (annualRatePercent/12/100) and n the tenure
// in months. The result is rounded half-up to 2 decimal places.
func MonthlyInstallment(principal, annualRatePercent decimal.Decimal, tenureMonths int) decimal.Decimal {
	if tenureMonths <= 0 || principal.Sign() <= 0 {
		return decimal.Zero
	}
	months := decimal.NewFromInt(int64(tenureMonths))

	// Products carry a strictly positive rate; the zero-rate branch keeps
	// the function total for defensive callers.
	if annualRatePercent.Sign() <= 0 {
		return principal.DivRound(months, 2)
	}

	r := annualRatePercent.Div(decimal.NewFromInt(1200))
	compound := one.Add(r).Pow(months)
	return principal.Mul(r).Mul(compound).DivRound(compound.Sub(one), 2)
}
