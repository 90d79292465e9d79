package timecalc

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// =============================================================================
// TIME OF DAY - Wall-clock time without a date
// =============================================================================

// TimeOfDay is an hour:minute wall-clock value. Seconds are accepted on
// parse but carry no weight in the calculations.
type TimeOfDay struct {
	Hour   int
	Minute int
}

const minutesPerDay = 24 * 60

// ParseTimeOfDay parses "HH:MM" or "HH:MM:SS".
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	parts := strings.Split(s, ":")
	if len(parts) != 2 && len(parts) != 3 {
		return TimeOfDay{}, &InvalidTimeOfDayError{Input: s}
	}
	fields := make([]int, len(parts))
	for i, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil {
			return TimeOfDay{}, &InvalidTimeOfDayError{Input: s}
		}
		fields[i] = n
	}
	tod := TimeOfDay{Hour: fields[0], Minute: fields[1]}
	if !tod.valid() {
		return TimeOfDay{}, &InvalidTimeOfDayError{Input: s}
	}
	if len(fields) == 3 && (fields[2] < 0 || fields[2] > 59) {
		return TimeOfDay{}, &InvalidTimeOfDayError{Input: s}
	}
	return tod, nil
}

func (t TimeOfDay) valid() bool {
	return t.Hour >= 0 && t.Hour <= 23 && t.Minute >= 0 && t.Minute <= 59
}

// MinuteOfDay returns minutes since midnight.
func (t TimeOfDay) MinuteOfDay() int { return t.Hour*60 + t.Minute }

func (t TimeOfDay) String() string { return fmt.Sprintf("%02d:%02d", t.Hour, t.Minute) }

// =============================================================================
// DATE - Calendar date (day granularity)
// =============================================================================

// Date is a calendar date normalized to UTC midnight.
type Date struct {
	t time.Time
}

func NewDate(year int, month time.Month, day int) Date {
	return Date{t: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// ParseDate parses "YYYY-MM-DD" and rejects impossible calendar dates.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return Date{}, &InvalidDateError{Input: s}
	}
	return Date{t: t.UTC()}, nil
}

func Today() Date {
	now := time.Now().UTC()
	return NewDate(now.Year(), now.Month(), now.Day())
}

// Comparison
func (d Date) Before(other Date) bool { return d.t.Before(other.t) }
func (d Date) After(other Date) bool  { return d.t.After(other.t) }
func (d Date) Equal(other Date) bool  { return d.t.Equal(other.t) }
func (d Date) IsZero() bool           { return d.t.IsZero() }

// Arithmetic
func (d Date) AddDays(n int) Date { return Date{t: d.t.AddDate(0, 0, n)} }

// Properties
func (d Date) Year() int         { return d.t.Year() }
func (d Date) Month() time.Month { return d.t.Month() }
func (d Date) Day() int          { return d.t.Day() }

func (d Date) Time() time.Time { return d.t }

func (d Date) String() string { return d.t.Format("2006-01-02") }

// DaysBetween returns the calendar-day distance from one date to another.
// This is calendar-date subtraction, not time-of-day subtraction.
func DaysBetween(from, to Date) int {
	return int(to.t.Sub(from.t).Hours() / 24)
}

// =============================================================================
// MONTH - A reporting period
// =============================================================================

// Month identifies one calendar month, the unit of reporting.
type Month struct {
	Year  int
	Month time.Month
}

// MonthOf returns the month containing the given date.
func MonthOf(d Date) Month { return Month{Year: d.Year(), Month: d.Month()} }

// ParseMonth parses "YYYY-MM".
func ParseMonth(s string) (Month, error) {
	t, err := time.Parse("2006-01", s)
	if err != nil {
		return Month{}, &InvalidDateError{Input: s}
	}
	return Month{Year: t.Year(), Month: t.Month()}, nil
}

// Valid reports whether the month denotes a real calendar month. The
// aggregator rejects invalid months instead of substituting "now", so
// callers can distinguish "no month supplied" from "this month" deliberately.
func (m Month) Valid() bool {
	return m.Year > 0 && m.Month >= time.January && m.Month <= time.December
}

// Days returns the number of calendar days in the month (28-31).
func (m Month) Days() int {
	return time.Date(m.Year, m.Month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

func (m Month) First() Date { return NewDate(m.Year, m.Month, 1) }
func (m Month) Last() Date  { return NewDate(m.Year, m.Month, m.Days()) }

func (m Month) Contains(d Date) bool {
	return d.Year() == m.Year && d.Month() == m.Month
}

func (m Month) AddMonths(n int) Month {
	t := time.Date(m.Year, m.Month, 1, 0, 0, 0, 0, time.UTC).AddDate(0, n, 0)
	return Month{Year: t.Year(), Month: t.Month()}
}

func (m Month) String() string {
	return fmt.Sprintf("%04d-%02d", m.Year, int(m.Month))
}
