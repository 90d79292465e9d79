// Package timesheet is the domain layer over the timecalc core: persistent
// shift and non-accounting-day records owned by a user, boundary validation,
// and report assembly for months, quarters, and years.
package timesheet

import (
	"time"

	"github.com/wpmkt/hourglance/timecalc"
)

// =============================================================================
// RECORDS - Persisted entities; the core only ever sees their value form
// =============================================================================

// User owns shifts and non-accounting days. Identity and ownership live
// here and in the store, never inside the calculation core.
type User struct {
	ID        string
	Name      string
	Email     string
	CreatedAt time.Time
}

// Shift is a stored work period. The core reads it, never mutates it.
type Shift struct {
	ID        string
	UserID    string
	Date      timecalc.Date
	Start     timecalc.TimeOfDay
	End       timecalc.TimeOfDay
	Comment   string
	CreatedAt time.Time
}

// Validate runs the boundary checks the core assumes have already passed.
func (s Shift) Validate() error {
	return s.Value().Validate()
}

// Value strips persistence identity down to the calculation input.
func (s Shift) Value() timecalc.Shift {
	return timecalc.Shift{
		Date:    s.Date,
		Start:   s.Start,
		End:     s.End,
		Comment: s.Comment,
	}
}

// NonAccountingDay is a stored date range excluded from working days.
type NonAccountingDay struct {
	ID        string
	UserID    string
	Start     timecalc.Date
	End       timecalc.Date
	Reason    string
	CreatedAt time.Time
}

func (r NonAccountingDay) Validate() error {
	return r.Value().Validate()
}

func (r NonAccountingDay) Value() timecalc.NonAccountingDay {
	return timecalc.NonAccountingDay{
		Start:  r.Start,
		End:    r.End,
		Reason: r.Reason,
	}
}
