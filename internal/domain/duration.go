package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// DurationKind discriminates the two lock-duration input shapes
type DurationKind string

const (
	DurationKindPreset DurationKind = "PRESET"
	DurationKindCustom DurationKind = "CUSTOM"
)

// DurationUnit represents the unit of a custom lock duration
type DurationUnit string

const (
	DurationUnitHours  DurationUnit = "HOURS"
	DurationUnitDays   DurationUnit = "DAYS"
	DurationUnitWeeks  DurationUnit = "WEEKS"
	DurationUnitMonths DurationUnit = "MONTHS"
)

// presetMonths are the lock terms offered by the product UI
var presetMonths = map[int]bool{3: true, 6: true, 12: true}

// Normalization divisors for sub-month units: 720 hours, 30 days or 4 weeks
// approximate one month for rate lookup purposes.
var (
	hoursPerMonth = decimal.NewFromInt(720)
	daysPerMonth  = decimal.NewFromInt(30)
	weeksPerMonth = decimal.NewFromInt(4)
)

// LockDuration is the tagged variant describing how long a position is locked:
// either a preset number of months or a custom value with an explicit unit.
type LockDuration struct {
	Kind   DurationKind
	Months int          // preset only
	Value  int          // custom only
	Unit   DurationUnit // custom only
}

// PresetDuration builds a preset lock duration
func PresetDuration(months int) LockDuration {
	return LockDuration{Kind: DurationKindPreset, Months: months}
}

// CustomDuration builds a custom lock duration
func CustomDuration(value int, unit DurationUnit) LockDuration {
	return LockDuration{Kind: DurationKindCustom, Value: value, Unit: unit}
}

// Resolve converts the duration into an absolute unlock timestamp relative to
// `from`, plus the normalized month figure used for APR lookup and reward
// computation. Month-based durations use exact calendar-month addition; the
// sub-month units use fixed arithmetic (1 day = 24h, 1 week = 7 days).
// Returns ErrInvalidDuration for non-positive values, preset terms outside
// {3, 6, 12}, or an unknown unit. Resolve is deterministic for equal inputs.
func (d LockDuration) Resolve(from time.Time) (time.Time, decimal.Decimal, error) {
	switch d.Kind {
	case DurationKindPreset:
		if !presetMonths[d.Months] {
			return time.Time{}, decimal.Zero, ErrInvalidDuration
		}
		return from.AddDate(0, d.Months, 0), decimal.NewFromInt(int64(d.Months)), nil

	case DurationKindCustom:
		if d.Value <= 0 {
			return time.Time{}, decimal.Zero, ErrInvalidDuration
		}
		value := decimal.NewFromInt(int64(d.Value))

		switch d.Unit {
		case DurationUnitHours:
			unlockAt := from.Add(time.Duration(d.Value) * time.Hour)
			return unlockAt, value.Div(hoursPerMonth), nil
		case DurationUnitDays:
			unlockAt := from.Add(time.Duration(d.Value) * 24 * time.Hour)
			return unlockAt, value.Div(daysPerMonth), nil
		case DurationUnitWeeks:
			unlockAt := from.Add(time.Duration(d.Value) * 7 * 24 * time.Hour)
			return unlockAt, value.Div(weeksPerMonth), nil
		case DurationUnitMonths:
			return from.AddDate(0, d.Value, 0), value, nil
		default:
			return time.Time{}, decimal.Zero, ErrInvalidDuration
		}

	default:
		return time.Time{}, decimal.Zero, ErrInvalidDuration
	}
}
