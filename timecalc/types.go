/*
Package timecalc is the time-accounting calculation core.

PURPOSE:
  Pure functions that turn raw shift records (date, start time, end time)
  and non-accounting-day ranges into derived metrics: working days,
  expected hours, worked hours (with night differential), and balance.

KEY CONCEPTS IN THIS FILE (types.go):
  - Amount: A quantity with a unit (e.g., 8 hours, 60 minutes, 2 days)
  - Shift: A single work period attributed to one calendar day
  - NonAccountingDay: An inclusive date range excluded from working days

DESIGN PRINCIPLES:
  1. Statelessness: Every function is a pure function of its inputs
  2. Precision: Uses decimal.Decimal to avoid floating-point errors;
     floats appear only at the presentation edge
  3. Rejection over coercion: Malformed dates/times/ranges are errors,
     never silently defaulted or skipped

USAGE:
  summary, err := timecalc.SummarizeMonth(month, shifts, nonAccounting)
  if err != nil { ... }
  fmt.Println(summary.Balance)

SEE ALSO:
  - night.go: Night-differential calculator
  - month.go: Month and period aggregation
  - clock.go: TimeOfDay / Date / Month value types
*/
package timecalc

import (
	"github.com/shopspring/decimal"
)

// =============================================================================
// AMOUNT - Quantity with unit
// =============================================================================

type Amount struct {
	Value decimal.Decimal
	Unit  Unit
}

type Unit string

const (
	UnitDays    Unit = "days"
	UnitHours   Unit = "hours"
	UnitMinutes Unit = "minutes"
)

func NewAmount(value float64, unit Unit) Amount {
	return Amount{Value: decimal.NewFromFloat(value), Unit: unit}
}

func NewAmountFromInt(value int, unit Unit) Amount {
	return Amount{Value: decimal.NewFromInt(int64(value)), Unit: unit}
}

// Hours is shorthand for an hour amount, the unit every summary reports in.
func Hours(value float64) Amount { return NewAmount(value, UnitHours) }

func ZeroHours() Amount { return Amount{Value: decimal.Zero, Unit: UnitHours} }

func (a Amount) Add(b Amount) Amount       { return Amount{Value: a.Value.Add(b.Value), Unit: a.Unit} }
func (a Amount) Sub(b Amount) Amount       { return Amount{Value: a.Value.Sub(b.Value), Unit: a.Unit} }
func (a Amount) Neg() Amount               { return Amount{Value: a.Value.Neg(), Unit: a.Unit} }
func (a Amount) IsNegative() bool          { return a.Value.IsNegative() }
func (a Amount) IsZero() bool              { return a.Value.IsZero() }
func (a Amount) IsPositive() bool          { return a.Value.IsPositive() }
func (a Amount) Equal(b Amount) bool       { return a.Unit == b.Unit && a.Value.Equal(b.Value) }
func (a Amount) GreaterThan(b Amount) bool { return a.Value.GreaterThan(b.Value) }
func (a Amount) LessThan(b Amount) bool    { return a.Value.LessThan(b.Value) }

// Float64 returns the value for presentation. Internal math stays decimal.
func (a Amount) Float64() float64 {
	f, _ := a.Value.Float64()
	return f
}

// Round1 rounds to one decimal place, the granularity dashboards show.
func (a Amount) Round1() Amount { return Amount{Value: a.Value.Round(1), Unit: a.Unit} }

func (a Amount) String() string { return a.Value.String() + " " + string(a.Unit) }

// =============================================================================
// SHIFT - A single recorded work period
// =============================================================================

// Shift is one work period. Start and End are wall-clock times without an
// implicit date: if End is at or before Start the shift crosses midnight and
// ends the following day. A shift never spans more than 24 hours.
type Shift struct {
	Date    Date
	Start   TimeOfDay
	End     TimeOfDay
	Comment string
}

// Validate rejects shifts whose date or times are malformed. The calculators
// assume valid inputs; callers at the boundary run this first.
func (s Shift) Validate() error {
	if s.Date.IsZero() {
		return &InvalidDateError{Input: "shift date"}
	}
	if !s.Start.valid() {
		return &InvalidTimeOfDayError{Input: s.Start.String()}
	}
	if !s.End.valid() {
		return &InvalidTimeOfDayError{Input: s.End.String()}
	}
	return nil
}

// TotalHours returns the shift's credited duration: elapsed time plus the
// night differential.
func (s Shift) TotalHours() Amount {
	return TotalHours(s.Start, s.End)
}

// =============================================================================
// NON-ACCOUNTING DAY - Date range excluded from working days
// =============================================================================

// NonAccountingDay is an inclusive calendar-date range (vacation, leave)
// whose days do not count as working days.
type NonAccountingDay struct {
	Start  Date
	End    Date
	Reason string
}

// Validate rejects inverted or incomplete ranges. An inverted range is an
// error, not a zero-length range: treating it as empty would under-count.
func (r NonAccountingDay) Validate() error {
	if r.Start.IsZero() || r.End.IsZero() {
		return &InvalidDateError{Input: "non-accounting range"}
	}
	if r.End.Before(r.Start) {
		return &InvalidRangeError{Start: r.Start, End: r.End}
	}
	return nil
}

// Days returns the inclusive day count of the range.
func (r NonAccountingDay) Days() int {
	return DaysBetween(r.Start, r.End) + 1
}

// Intersects reports whether the range overlaps the month at all.
func (r NonAccountingDay) Intersects(m Month) bool {
	return !r.Start.After(m.Last()) && !r.End.Before(m.First())
}

// ClipTo clips the range to the month's [first, last] bounds. Only the
// intersecting portion counts toward that month's non-accounting total.
func (r NonAccountingDay) ClipTo(m Month) (NonAccountingDay, bool) {
	if !r.Intersects(m) {
		return NonAccountingDay{}, false
	}
	clipped := r
	if clipped.Start.Before(m.First()) {
		clipped.Start = m.First()
	}
	if clipped.End.After(m.Last()) {
		clipped.End = m.Last()
	}
	return clipped, true
}
