// Package payout computes pension amounts and drives the payout and death
// benefit lifecycles.
//
// The calculation is pure integer arithmetic so every deployment produces
// the same amounts: 2% of salary accrues per year worked, capped at an 80%
// replacement ratio; effective insurance contributions add on top; the tax
// rate is applied last. All divisions truncate and every step floors at
// zero, so a result is never negative. At magnitudes where a product would
// exceed int64 the arithmetic saturates instead of wrapping.
package payout

import "math"

const (
	// accrualPercentPerYear: each year worked accrues this percentage of
	// current salary into the base pension.
	accrualPercentPerYear = 2
	// maxReplacementPercent caps the base pension relative to salary.
	maxReplacementPercent = 80
	// deathBenefitPercent of the full calculated payout goes to the
	// designated beneficiary on death.
	deathBenefitPercent = 20
)

// Estimate computes the payout amount for the given inputs. It is
// monotonically non-decreasing in years, salary and insurance, and
// non-increasing in taxPercent. Rounding is truncation at each division.
func Estimate(yearsWorked uint32, salary, insurance int64, taxPercent uint8) int64 {
	if salary < 0 {
		salary = 0
	}
	if insurance < 0 {
		insurance = 0
	}

	base := satMul(salary/100*accrualPercentPerYear, int64(yearsWorked))
	if ceiling := percentOf(salary, maxReplacementPercent); base > ceiling {
		base = ceiling
	}

	gross := satAdd(base, insurance)

	rate := int64(taxPercent)
	if rate > 100 {
		rate = 100
	}
	net := gross - percentOf(gross, rate)
	if net < 0 {
		net = 0
	}
	return net
}

// DeathBenefit computes the beneficiary's share of the payout the pensioner
// had accrued at the time of death.
func DeathBenefit(yearsWorked uint32, salary, insurance int64, taxPercent uint8) int64 {
	return percentOf(Estimate(yearsWorked, salary, insurance, taxPercent), deathBenefitPercent)
}

// percentOf returns amount*percent/100 with truncation. When the product
// would overflow it divides first, losing at most one percent-unit of
// sub-hundred remainder instead of wrapping.
func percentOf(amount, percent int64) int64 {
	if amount > math.MaxInt64/100 {
		return amount / 100 * percent
	}
	return amount * percent / 100
}

func satMul(a, b int64) int64 {
	if a > 0 && b > 0 && a > math.MaxInt64/b {
		return math.MaxInt64
	}
	return a * b
}

func satAdd(a, b int64) int64 {
	if a > math.MaxInt64-b {
		return math.MaxInt64
	}
	return a + b
}
