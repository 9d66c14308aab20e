package domain

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var resolveFrom = time.Date(2025, time.January, 15, 10, 0, 0, 0, time.UTC)

func TestLockDuration_Resolve_Preset(t *testing.T) {
	tests := []struct {
		name       string
		months     int
		wantUnlock time.Time
		wantErr    bool
	}{
		{
			name:       "3 month preset uses calendar month addition",
			months:     3,
			wantUnlock: time.Date(2025, time.April, 15, 10, 0, 0, 0, time.UTC),
		},
		{
			name:       "6 month preset",
			months:     6,
			wantUnlock: time.Date(2025, time.July, 15, 10, 0, 0, 0, time.UTC),
		},
		{
			name:       "12 month preset",
			months:     12,
			wantUnlock: time.Date(2026, time.January, 15, 10, 0, 0, 0, time.UTC),
		},
		{
			name:    "preset outside offered terms fails",
			months:  9,
			wantErr: true,
		},
		{
			name:    "zero preset fails",
			months:  0,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			unlockAt, lockMonths, err := PresetDuration(tt.months).Resolve(resolveFrom)

			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidDuration)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.wantUnlock, unlockAt)
			assert.True(t, decimal.NewFromInt(int64(tt.months)).Equal(lockMonths))
		})
	}
}

func TestLockDuration_Resolve_Custom(t *testing.T) {
	tests := []struct {
		name           string
		value          int
		unit           DurationUnit
		wantUnlock     time.Time
		wantLockMonths decimal.Decimal
		wantErr        bool
	}{
		{
			name:           "hours normalize against 720 hours per month",
			value:          720,
			unit:           DurationUnitHours,
			wantUnlock:     resolveFrom.Add(720 * time.Hour),
			wantLockMonths: decimal.NewFromInt(1),
		},
		{
			name:           "days normalize against 30 days per month",
			value:          15,
			unit:           DurationUnitDays,
			wantUnlock:     resolveFrom.Add(15 * 24 * time.Hour),
			wantLockMonths: decimal.NewFromFloat(0.5),
		},
		{
			name:           "weeks normalize against 4 weeks per month",
			value:          2,
			unit:           DurationUnitWeeks,
			wantUnlock:     resolveFrom.Add(14 * 24 * time.Hour),
			wantLockMonths: decimal.NewFromFloat(0.5),
		},
		{
			name:           "custom months use calendar month addition",
			value:          2,
			unit:           DurationUnitMonths,
			wantUnlock:     time.Date(2025, time.March, 15, 10, 0, 0, 0, time.UTC),
			wantLockMonths: decimal.NewFromInt(2),
		},
		{
			name:    "zero value fails",
			value:   0,
			unit:    DurationUnitDays,
			wantErr: true,
		},
		{
			name:    "negative value fails",
			value:   -5,
			unit:    DurationUnitWeeks,
			wantErr: true,
		},
		{
			name:    "unknown unit fails",
			value:   10,
			unit:    DurationUnit("FORTNIGHTS"),
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			unlockAt, lockMonths, err := CustomDuration(tt.value, tt.unit).Resolve(resolveFrom)

			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidDuration)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.wantUnlock, unlockAt)
			assert.True(t, tt.wantLockMonths.Equal(lockMonths),
				"lockMonths = %s, want %s", lockMonths, tt.wantLockMonths)
		})
	}
}

func TestLockDuration_Resolve_Deterministic(t *testing.T) {
	d := CustomDuration(45, DurationUnitDays)

	unlock1, months1, err1 := d.Resolve(resolveFrom)
	unlock2, months2, err2 := d.Resolve(resolveFrom)

	require.NoError(t, err1)
	require.NoError(t, err2)
	assert.Equal(t, unlock1, unlock2)
	assert.True(t, months1.Equal(months2))
}

func TestLockDuration_Resolve_UnknownKind(t *testing.T) {
	_, _, err := LockDuration{Kind: DurationKind("RANGE")}.Resolve(resolveFrom)
	assert.ErrorIs(t, err, ErrInvalidDuration)
}
