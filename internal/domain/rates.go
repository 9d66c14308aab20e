package domain

import "github.com/shopspring/decimal"

// rateTier maps a lock-duration breakpoint to an annual percentage rate.
// A tier applies when lockMonths <= MaxMonths; the last tier of a table has
// no upper bound.
type rateTier struct {
	MaxMonths decimal.Decimal
	APR       decimal.Decimal
}

// aprTables holds the per-network APR schedules as data so rates stay
// independently testable and tunable. Solana carries the higher-yield,
// higher-risk schedule and is strictly above Ethereum at every breakpoint.
var aprTables = map[Network][]rateTier{
	NetworkEthereum: {
		{MaxMonths: decimal.NewFromInt(1), APR: decimal.NewFromFloat(0.03)},
		{MaxMonths: decimal.NewFromInt(3), APR: decimal.NewFromFloat(0.04)},
		{MaxMonths: decimal.NewFromInt(6), APR: decimal.NewFromFloat(0.05)},
		{APR: decimal.NewFromFloat(0.06)},
	},
	NetworkSolana: {
		{MaxMonths: decimal.NewFromInt(1), APR: decimal.NewFromFloat(0.05)},
		{MaxMonths: decimal.NewFromInt(3), APR: decimal.NewFromFloat(0.07)},
		{MaxMonths: decimal.NewFromInt(6), APR: decimal.NewFromFloat(0.09)},
		{APR: decimal.NewFromFloat(0.11)},
	},
}

// APR returns the annual percentage rate for a network and lock duration.
// Any non-positive lockMonths resolves to the lowest tier. Unknown networks
// fall back to the Ethereum schedule so the function stays total.
func APR(network Network, lockMonths decimal.Decimal) decimal.Decimal {
	tiers, ok := aprTables[network]
	if !ok {
		tiers = aprTables[NetworkEthereum]
	}

	for _, tier := range tiers {
		if tier.MaxMonths.IsZero() {
			// Unbounded top tier
			return tier.APR
		}
		if lockMonths.LessThanOrEqual(tier.MaxMonths) {
			return tier.APR
		}
	}

	// Unreachable as long as every table ends with an unbounded tier
	return tiers[len(tiers)-1].APR
}
