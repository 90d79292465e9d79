package timesheet_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wpmkt/hourglance/store/memory"
	"github.com/wpmkt/hourglance/timecalc"
	"github.com/wpmkt/hourglance/timesheet"
)

// =============================================================================
// TEST SETUP
// =============================================================================

func newTestReporter(t *testing.T) (*timesheet.Reporter, *memory.Store) {
	t.Helper()
	store := memory.New()
	return timesheet.NewReporter(store), store
}

func seedShift(t *testing.T, store *memory.Store, id string, date timecalc.Date, start, end string) {
	t.Helper()
	s, err := timecalc.ParseTimeOfDay(start)
	require.NoError(t, err)
	e, err := timecalc.ParseTimeOfDay(end)
	require.NoError(t, err)

	require.NoError(t, store.SaveShift(context.Background(), timesheet.Shift{
		ID:     id,
		UserID: "user-1",
		Date:   date,
		Start:  s,
		End:    e,
	}))
}

func seedRange(t *testing.T, store *memory.Store, id string, start, end timecalc.Date) {
	t.Helper()
	require.NoError(t, store.SaveRange(context.Background(), timesheet.NonAccountingDay{
		ID:     id,
		UserID: "user-1",
		Start:  start,
		End:    end,
		Reason: "vacation",
	}))
}

// =============================================================================
// MONTH REPORT TESTS
// =============================================================================

func TestReporter_Month_EndToEnd(t *testing.T) {
	// GIVEN: February 2023 with 3 day shifts and a 2-day vacation
	// WHEN: Building the month report
	// THEN: Summary matches the hand-computed metrics and lists are populated

	reporter, store := newTestReporter(t)
	ctx := context.Background()

	seedShift(t, store, "s1", timecalc.NewDate(2023, time.February, 6), "09:00", "17:00")
	seedShift(t, store, "s2", timecalc.NewDate(2023, time.February, 7), "09:00", "17:00")
	seedShift(t, store, "s3", timecalc.NewDate(2023, time.February, 8), "09:00", "17:00")
	seedRange(t, store, "r1",
		timecalc.NewDate(2023, time.February, 13), timecalc.NewDate(2023, time.February, 14))

	report, err := reporter.Month(ctx, "user-1", timecalc.Month{Year: 2023, Month: time.February})
	require.NoError(t, err)

	assert.Equal(t, 28, report.Summary.DaysInMonth)
	assert.Equal(t, 2, report.Summary.NonAccountingDays)
	assert.Equal(t, 26, report.Summary.WorkingDays)
	assert.InDelta(t, 148.5714, report.Summary.ExpectedHours.Float64(), 0.001)
	assert.InDelta(t, 24.0, report.Summary.WorkedHours.Float64(), 0.0001)
	assert.InDelta(t, -124.5714, report.Summary.Balance.Float64(), 0.001)

	require.Len(t, report.Shifts, 3)
	assert.InDelta(t, 8.0, report.Shifts[0].Hours.Float64(), 0.0001)
	require.Len(t, report.NonAccounting, 1)
}

func TestReporter_Month_NightShiftBonusIncluded(t *testing.T) {
	// GIVEN: A single 22:00-06:00 shift
	// WHEN: Building the month report
	// THEN: Worked hours are 9 (8 elapsed + 1h night bonus)

	reporter, store := newTestReporter(t)
	seedShift(t, store, "s1", timecalc.NewDate(2025, time.March, 10), "22:00", "06:00")

	report, err := reporter.Month(context.Background(), "user-1",
		timecalc.Month{Year: 2025, Month: time.March})
	require.NoError(t, err)

	assert.InDelta(t, 9.0, report.Summary.WorkedHours.Float64(), 0.0001)
}

func TestReporter_Month_InvalidMonth_Rejected(t *testing.T) {
	reporter, _ := newTestReporter(t)

	_, err := reporter.Month(context.Background(), "user-1", timecalc.Month{})
	assert.ErrorIs(t, err, timecalc.ErrInvalidDate)
}

func TestReporter_Month_EmptyUser_Rejected(t *testing.T) {
	reporter, _ := newTestReporter(t)

	_, err := reporter.Month(context.Background(), "", timecalc.Month{Year: 2025, Month: time.March})
	assert.ErrorIs(t, err, timesheet.ErrUserNotFound)
}

// =============================================================================
// QUARTER / YEAR REPORT TESTS
// =============================================================================

func TestReporter_Quarter_FoldsThreeMonths(t *testing.T) {
	// GIVEN: One 8h shift in each month of Q3
	// WHEN: Building the quarter report
	// THEN: Totals are the fold of the three month summaries

	reporter, store := newTestReporter(t)
	seedShift(t, store, "s1", timecalc.NewDate(2025, time.July, 10), "09:00", "17:00")
	seedShift(t, store, "s2", timecalc.NewDate(2025, time.August, 10), "09:00", "17:00")
	seedShift(t, store, "s3", timecalc.NewDate(2025, time.September, 10), "09:00", "17:00")

	report, err := reporter.Quarter(context.Background(), "user-1", 2025, 3)
	require.NoError(t, err)
	require.Len(t, report.Months, 3)

	assert.InDelta(t, 24.0, report.Totals.WorkedHours.Float64(), 0.0001)
	// Jul, Aug, Sep fully working: 160h expected each
	assert.InDelta(t, 480.0, report.Totals.ExpectedHours.Float64(), 0.0001)
	assert.InDelta(t, -456.0, report.Totals.Balance.Float64(), 0.0001)

	for i, m := range report.Months {
		assert.InDelta(t, 8.0, m.WorkedHours.Float64(), 0.0001, "month %d", i)
	}
}

func TestReporter_Quarter_RangeSpanningMonthBoundary(t *testing.T) {
	// GIVEN: A vacation from Jul 28 to Aug 3
	// WHEN: Building the Q3 report
	// THEN: 4 days count in July, 3 in August; nothing double-counts

	reporter, store := newTestReporter(t)
	seedRange(t, store, "r1",
		timecalc.NewDate(2025, time.July, 28), timecalc.NewDate(2025, time.August, 3))

	report, err := reporter.Quarter(context.Background(), "user-1", 2025, 3)
	require.NoError(t, err)

	assert.Equal(t, 4, report.Months[0].NonAccountingDays, "July")
	assert.Equal(t, 3, report.Months[1].NonAccountingDays, "August")
	assert.Equal(t, 0, report.Months[2].NonAccountingDays, "September")
}

func TestReporter_Quarter_InvalidQuarter_Rejected(t *testing.T) {
	reporter, _ := newTestReporter(t)

	_, err := reporter.Quarter(context.Background(), "user-1", 2025, 5)
	assert.ErrorIs(t, err, timecalc.ErrInvalidDate)
}

func TestReporter_Year_TwelveMonths(t *testing.T) {
	reporter, store := newTestReporter(t)
	seedShift(t, store, "s1", timecalc.NewDate(2025, time.January, 15), "09:00", "17:00")
	seedShift(t, store, "s2", timecalc.NewDate(2025, time.December, 15), "09:00", "17:00")

	report, err := reporter.Year(context.Background(), "user-1", 2025)
	require.NoError(t, err)
	require.Len(t, report.Months, 12)

	assert.InDelta(t, 16.0, report.Totals.WorkedHours.Float64(), 0.0001)
	assert.InDelta(t, 8.0, report.Months[0].WorkedHours.Float64(), 0.0001)
	assert.InDelta(t, 8.0, report.Months[11].WorkedHours.Float64(), 0.0001)
}

func TestReporter_PeriodAndMonthAgree(t *testing.T) {
	// GIVEN: The same records
	// WHEN: Summarizing a month directly and through the quarter fold
	// THEN: The month numbers are identical either way

	reporter, store := newTestReporter(t)
	seedShift(t, store, "s1", timecalc.NewDate(2025, time.July, 10), "23:00", "05:00")
	seedRange(t, store, "r1",
		timecalc.NewDate(2025, time.July, 1), timecalc.NewDate(2025, time.July, 5))

	ctx := context.Background()
	monthly, err := reporter.Month(ctx, "user-1", timecalc.Month{Year: 2025, Month: time.July})
	require.NoError(t, err)

	quarterly, err := reporter.Quarter(ctx, "user-1", 2025, 3)
	require.NoError(t, err)

	assert.Equal(t, monthly.Summary, quarterly.Months[0])
}
