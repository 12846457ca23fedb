package services

import (
	"time"

	"github.com/rqos/agency-ops-backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// billingDaysPerMonth is the fixed billing basis: every month is billed over 30
// days regardless of its true length, so each month carries the same daily rate.
const billingDaysPerMonth = 30

// Prorate computes the billable subset of one reporting month for a staffing
// allocation. The true calendar month is used only to detect overlap between the
// allocation's date range and the period: an allocation covering the whole
// calendar month bills all 30 basis days regardless of the month's real length,
// while a partial overlap counts literal inclusive days clamped to the basis.
// Values round half-up to 2 decimal places.
//
// An allocation entirely outside the month yields ActiveDays 0 and must be
// excluded from every aggregate.
func Prorate(monthlyRate decimal.Decimal, startDate time.Time, endDate *time.Time, month, year int) domain.ProrationResult {
	monthStart := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	monthEnd := monthStart.AddDate(0, 1, -1)

	effectiveStart := truncateToDay(startDate)
	if effectiveStart.Before(monthStart) {
		effectiveStart = monthStart
	}
	effectiveEnd := monthEnd
	if endDate != nil {
		if truncated := truncateToDay(*endDate); truncated.Before(monthEnd) {
			effectiveEnd = truncated
		}
	}

	activeDays := 0
	if !effectiveStart.After(monthEnd) && !effectiveEnd.Before(monthStart) && !effectiveEnd.Before(effectiveStart) {
		if effectiveStart.Equal(monthStart) && effectiveEnd.Equal(monthEnd) {
			// Full containment of the calendar month bills the whole 30-day
			// basis even when the month is shorter.
			activeDays = billingDaysPerMonth
		} else {
			activeDays = daysBetweenInclusive(effectiveStart, effectiveEnd)
			if activeDays > billingDaysPerMonth {
				activeDays = billingDaysPerMonth
			}
		}
	}

	prorated := decimal.Zero
	switch {
	case activeDays == billingDaysPerMonth:
		// A fully active month bills the exact monthly rate, untouched by the
		// divide-and-multiply rounding path.
		prorated = monthlyRate.Round(2)
	case activeDays > 0:
		prorated = monthlyRate.
			Div(decimal.NewFromInt(billingDaysPerMonth)).
			Mul(decimal.NewFromInt(int64(activeDays))).
			Round(2)
	}

	return domain.ProrationResult{
		DaysInPeriod:  billingDaysPerMonth,
		ActiveDays:    activeDays,
		ProratedValue: prorated,
	}
}

// daysBetweenInclusive counts whole calendar days from a through b, both ends
// included. Inputs are already truncated to midnight UTC.
func daysBetweenInclusive(a, b time.Time) int {
	return int(b.Sub(a).Hours()/24) + 1
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
