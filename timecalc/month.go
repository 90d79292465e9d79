/*
month.go - Month and period aggregation

PURPOSE:
  Folds a month's shift and non-accounting-day records into a MonthSummary,
  and folds month summaries into quarter/year totals.

THE QUOTA:
  Expected hours come from a fixed 160-hour monthly quota prorated by the
  fraction of the month that is a working day:

    expected = (160 / daysInMonth) * workingDays

  A month with no non-accounting days is expected in full; a month fully
  on leave expects zero.

FAILURE SEMANTICS:
  Invalid month references and inverted ranges are rejected, never
  defaulted. A summary is all-or-nothing: no partial results on error.

SEE ALSO:
  - night.go: Per-shift duration feeding WorkedHours
  - types.go: Shift and NonAccountingDay value types
*/
package timecalc

import (
	"time"

	"github.com/shopspring/decimal"
)

// MonthlyQuotaHours is the fixed monthly quota prorated across working days.
const MonthlyQuotaHours = 160

// =============================================================================
// MONTH SUMMARY - The aggregation result for one calendar month
// =============================================================================

type MonthSummary struct {
	Month             Month
	DaysInMonth       int
	NonAccountingDays int
	WorkingDays       int
	ExpectedHours     Amount
	WorkedHours       Amount
	Balance           Amount
}

// SummarizeMonth computes the summary for one calendar month.
//
// Inputs are the shifts whose date falls in the month and the
// non-accounting ranges that intersect it. Shifts outside the month and
// ranges that do not intersect are ignored, so callers may pass wider
// result sets (e.g. a quarter's records) unfiltered.
//
// Overlapping non-accounting ranges are summed without deduplication;
// the working-day floor at zero contains pathological overlap.
func SummarizeMonth(month Month, shifts []Shift, nonAccounting []NonAccountingDay) (MonthSummary, error) {
	if !month.Valid() {
		return MonthSummary{}, &InvalidDateError{Input: month.String()}
	}

	daysInMonth := month.Days()

	nonAccountingDays := 0
	for _, r := range nonAccounting {
		if err := r.Validate(); err != nil {
			return MonthSummary{}, err
		}
		clipped, ok := r.ClipTo(month)
		if !ok {
			continue
		}
		nonAccountingDays += clipped.Days()
	}

	workingDays := daysInMonth - nonAccountingDays
	if workingDays < 0 {
		workingDays = 0
	}

	// Multiply before dividing so a fully-working month is expected at
	// exactly the quota.
	expected := Amount{
		Value: decimal.NewFromInt(MonthlyQuotaHours).
			Mul(decimal.NewFromInt(int64(workingDays))).
			Div(decimal.NewFromInt(int64(daysInMonth))),
		Unit: UnitHours,
	}

	worked := ZeroHours()
	for _, s := range shifts {
		if !month.Contains(s.Date) {
			continue
		}
		if err := s.Validate(); err != nil {
			return MonthSummary{}, err
		}
		worked = worked.Add(s.TotalHours())
	}

	return MonthSummary{
		Month:             month,
		DaysInMonth:       daysInMonth,
		NonAccountingDays: nonAccountingDays,
		WorkingDays:       workingDays,
		ExpectedHours:     expected,
		WorkedHours:       worked,
		Balance:           worked.Sub(expected),
	}, nil
}

// =============================================================================
// PERIOD TOTALS - Quarter/year fold over month summaries
// =============================================================================

type PeriodTotals struct {
	ExpectedHours Amount
	WorkedHours   Amount
	Balance       Amount
}

// SummarizePeriod folds month summaries into period totals. Balance is
// the difference of the two sums, computed once at the end, not a sum of
// per-month balances.
func SummarizePeriod(months []MonthSummary) PeriodTotals {
	expected := ZeroHours()
	worked := ZeroHours()
	for _, m := range months {
		expected = expected.Add(m.ExpectedHours)
		worked = worked.Add(m.WorkedHours)
	}
	return PeriodTotals{
		ExpectedHours: expected,
		WorkedHours:   worked,
		Balance:       worked.Sub(expected),
	}
}

// QuarterMonths returns the three months of a quarter (1-4).
func QuarterMonths(year, quarter int) ([3]Month, error) {
	if quarter < 1 || quarter > 4 || year <= 0 {
		return [3]Month{}, &InvalidDateError{Input: "quarter"}
	}
	first := Month{Year: year, Month: time.Month((quarter-1)*3 + 1)}
	return [3]Month{first, first.AddMonths(1), first.AddMonths(2)}, nil
}

// YearMonths returns the twelve months of a year.
func YearMonths(year int) ([12]Month, error) {
	if year <= 0 {
		return [12]Month{}, &InvalidDateError{Input: "year"}
	}
	var months [12]Month
	for i := range months {
		months[i] = Month{Year: year, Month: time.Month(i + 1)}
	}
	return months, nil
}
