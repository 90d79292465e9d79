/*
reporter.go - Report assembly for months, quarters, and years

PURPOSE:
  Fetches a user's records for a reporting period and runs them through
  the timecalc core. This is the seam between persistence and the pure
  calculation: the reporter owns the queries, the core owns the math.

GRANULARITY:
  MonthReport   One month: summary plus the shift list with per-shift hours
  QuarterReport Three month summaries folded into period totals
  YearReport    Twelve month summaries folded into period totals

  Quarter and year reports never re-derive shift-level data; they fold
  month summaries, so the three granularities always agree.

SEE ALSO:
  - store.go: The Store interface consumed here
  - timecalc/month.go: SummarizeMonth / SummarizePeriod
*/
package timesheet

import (
	"context"
	"fmt"

	"github.com/wpmkt/hourglance/timecalc"
)

// Reporter builds derived reports from stored records.
type Reporter struct {
	Store Store
}

func NewReporter(store Store) *Reporter {
	return &Reporter{Store: store}
}

// =============================================================================
// MONTH REPORT
// =============================================================================

// ShiftLine is a shift with its computed credited hours, for listing.
type ShiftLine struct {
	Shift Shift
	Hours timecalc.Amount
}

// MonthReport carries everything the month view needs.
type MonthReport struct {
	Summary       timecalc.MonthSummary
	Shifts        []ShiftLine
	NonAccounting []NonAccountingDay
}

// Month computes the report for one calendar month.
func (r *Reporter) Month(ctx context.Context, userID string, month timecalc.Month) (*MonthReport, error) {
	if !month.Valid() {
		return nil, &timecalc.InvalidDateError{Input: month.String()}
	}

	shifts, ranges, err := r.fetch(ctx, userID, month.First(), month.Last())
	if err != nil {
		return nil, err
	}

	summary, err := timecalc.SummarizeMonth(month, shiftValues(shifts), rangeValues(ranges))
	if err != nil {
		return nil, err
	}

	lines := make([]ShiftLine, len(shifts))
	for i, s := range shifts {
		lines[i] = ShiftLine{Shift: s, Hours: s.Value().TotalHours()}
	}

	return &MonthReport{
		Summary:       summary,
		Shifts:        lines,
		NonAccounting: ranges,
	}, nil
}

// =============================================================================
// PERIOD REPORTS - Quarter and year folds
// =============================================================================

// PeriodReport is the fold of several month summaries.
type PeriodReport struct {
	Months []timecalc.MonthSummary
	Totals timecalc.PeriodTotals
}

// Quarter computes the report for a calendar quarter (1-4). Records are
// fetched once for the whole quarter; SummarizeMonth filters per month.
func (r *Reporter) Quarter(ctx context.Context, userID string, year, quarter int) (*PeriodReport, error) {
	months, err := timecalc.QuarterMonths(year, quarter)
	if err != nil {
		return nil, err
	}
	return r.period(ctx, userID, months[:])
}

// Year computes the report for a calendar year.
func (r *Reporter) Year(ctx context.Context, userID string, year int) (*PeriodReport, error) {
	months, err := timecalc.YearMonths(year)
	if err != nil {
		return nil, err
	}
	return r.period(ctx, userID, months[:])
}

func (r *Reporter) period(ctx context.Context, userID string, months []timecalc.Month) (*PeriodReport, error) {
	first := months[0].First()
	last := months[len(months)-1].Last()

	shifts, ranges, err := r.fetch(ctx, userID, first, last)
	if err != nil {
		return nil, err
	}

	sv := shiftValues(shifts)
	rv := rangeValues(ranges)

	summaries := make([]timecalc.MonthSummary, len(months))
	for i, m := range months {
		summary, err := timecalc.SummarizeMonth(m, sv, rv)
		if err != nil {
			return nil, err
		}
		summaries[i] = summary
	}

	return &PeriodReport{
		Months: summaries,
		Totals: timecalc.SummarizePeriod(summaries),
	}, nil
}

func (r *Reporter) fetch(ctx context.Context, userID string, from, to timecalc.Date) ([]Shift, []NonAccountingDay, error) {
	if userID == "" {
		return nil, nil, fmt.Errorf("reporter: %w", ErrUserNotFound)
	}

	shifts, err := r.Store.ShiftsInRange(ctx, userID, from, to)
	if err != nil {
		return nil, nil, fmt.Errorf("load shifts: %w", err)
	}

	ranges, err := r.Store.RangesIntersecting(ctx, userID, from, to)
	if err != nil {
		return nil, nil, fmt.Errorf("load non-accounting ranges: %w", err)
	}

	return shifts, ranges, nil
}

func shiftValues(shifts []Shift) []timecalc.Shift {
	out := make([]timecalc.Shift, len(shifts))
	for i, s := range shifts {
		out[i] = s.Value()
	}
	return out
}

func rangeValues(ranges []NonAccountingDay) []timecalc.NonAccountingDay {
	out := make([]timecalc.NonAccountingDay, len(ranges))
	for i, r := range ranges {
		out[i] = r.Value()
	}
	return out
}
