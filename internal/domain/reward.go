package domain

import "github.com/shopspring/decimal"

var monthsPerYear = decimal.NewFromInt(12)

// EstimateReward computes the reward a position pays at full maturity:
// principal * apr * (lockMonths / 12), rounded half-up to 2 decimal places
// (currency precision). The reward is frozen at position creation and does
// not continue accruing afterwards. Zero principal or zero duration yields
// a zero reward; inputs are never mutated.
func EstimateReward(principal, apr, lockMonths decimal.Decimal) decimal.Decimal {
	return principal.Mul(apr).Mul(lockMonths).Div(monthsPerYear).Round(2)
}
