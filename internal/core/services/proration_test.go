package services_test

import (
	"testing"
	"time"

	"github.com/rqos/agency-ops-backend/internal/core/services"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func datePtr(year int, month time.Month, day int) *time.Time {
	t := date(year, month, day)
	return &t
}

func TestProrate(t *testing.T) {
	rate := decimal.RequireFromString("3000.00")

	tests := []struct {
		name       string
		rate       decimal.Decimal
		start      time.Time
		end        *time.Time
		month      int
		year       int
		wantDays   int
		wantAmount string
	}{
		{
			name:       "full 31-day month clamps to the 30-day basis",
			rate:       rate,
			start:      date(2023, time.December, 1),
			end:        nil,
			month:      1,
			year:       2024,
			wantDays:   30,
			wantAmount: "3000.00",
		},
		{
			name:       "mid-month start",
			rate:       rate,
			start:      date(2024, time.January, 16),
			end:        nil,
			month:      1,
			year:       2024,
			wantDays:   16,
			wantAmount: "1600.00",
		},
		{
			name:       "mid-month start in leap February",
			rate:       rate,
			start:      date(2024, time.February, 10),
			end:        nil,
			month:      2,
			year:       2024,
			wantDays:   20,
			wantAmount: "2000.00",
		},
		{
			name:       "full short February bills the exact monthly rate",
			rate:       rate,
			start:      date(2023, time.January, 1),
			end:        nil,
			month:      2,
			year:       2023,
			wantDays:   30,
			wantAmount: "3000.00",
		},
		{
			name:       "end date inside the month",
			rate:       rate,
			start:      date(2024, time.January, 1),
			end:        datePtr(2024, time.March, 10),
			month:      3,
			year:       2024,
			wantDays:   10,
			wantAmount: "1000.00",
		},
		{
			name:       "allocation entirely before the month",
			rate:       rate,
			start:      date(2024, time.January, 1),
			end:        datePtr(2024, time.February, 29),
			month:      3,
			year:       2024,
			wantDays:   0,
			wantAmount: "0",
		},
		{
			name:       "allocation starting after the month",
			rate:       rate,
			start:      date(2024, time.May, 1),
			end:        nil,
			month:      3,
			year:       2024,
			wantDays:   0,
			wantAmount: "0",
		},
		{
			name:       "single active day",
			rate:       rate,
			start:      date(2024, time.March, 31),
			end:        nil,
			month:      3,
			year:       2024,
			wantDays:   1,
			wantAmount: "100.00",
		},
		{
			name:       "rounding is half-up to cents",
			rate:       decimal.RequireFromString("1000.00"),
			start:      date(2024, time.April, 24),
			end:        nil,
			month:      4,
			year:       2024,
			wantDays:   7,
			wantAmount: "233.33",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := services.Prorate(tt.rate, tt.start, tt.end, tt.month, tt.year)
			assert.Equal(t, 30, result.DaysInPeriod)
			assert.Equal(t, tt.wantDays, result.ActiveDays)
			assert.True(t, result.ProratedValue.Equal(decimal.RequireFromString(tt.wantAmount)),
				"got %s, want %s", result.ProratedValue, tt.wantAmount)
		})
	}
}

// A month fully covered by the allocation must bill the exact monthly rate, with
// no residue from the divide-and-multiply path.
func TestProrate_FullMonthIsExact(t *testing.T) {
	rate := decimal.RequireFromString("1234.56")
	result := services.Prorate(rate, date(2024, time.March, 12), nil, 4, 2024)
	assert.Equal(t, 30, result.ActiveDays)
	assert.True(t, result.ProratedValue.Equal(rate), "got %s, want %s", result.ProratedValue, rate)
}
