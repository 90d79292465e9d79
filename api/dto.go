/*
dto.go - Data Transfer Objects for API requests and responses

PURPOSE:
  JSON structures for API communication, decoupling the domain model from
  the external contract. Hours cross the wire as floats; all internal
  math is decimal.

NAMING CONVENTION:
  - *DTO: Response types returned to clients
  - *Request: Request body types from clients

VALIDATION:
  Dates and times are parsed and validated in handlers before anything
  reaches the calculation core. DTOs are pure data carriers.

SEE ALSO:
  - handlers.go: Uses these types
*/
package api

import (
	"time"

	"github.com/wpmkt/hourglance/timecalc"
	"github.com/wpmkt/hourglance/timesheet"
)

// =============================================================================
// USERS
// =============================================================================

type UserDTO struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email,omitempty"`
	CreatedAt string `json:"created_at,omitempty"`
}

type CreateUserRequest struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// =============================================================================
// SHIFTS
// =============================================================================

type ShiftDTO struct {
	ID         string  `json:"id"`
	Date       string  `json:"date"`
	StartTime  string  `json:"start_time"`
	EndTime    string  `json:"end_time"`
	Comment    string  `json:"comment,omitempty"`
	TotalHours float64 `json:"total_hours"`
}

type ShiftRequest struct {
	Date      string `json:"date"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
	Comment   string `json:"comment"`
}

// =============================================================================
// NON-ACCOUNTING DAYS
// =============================================================================

type NonAccountingDayDTO struct {
	ID        string `json:"id"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
	Reason    string `json:"reason,omitempty"`
	Days      int    `json:"days"`
}

type NonAccountingDayRequest struct {
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
	Reason    string `json:"reason"`
}

// =============================================================================
// REPORTS
// =============================================================================

type MonthSummaryDTO struct {
	Month             string  `json:"month"`
	DaysInMonth       int     `json:"days_in_month"`
	NonAccountingDays int     `json:"non_accounting_days"`
	WorkingDays       int     `json:"working_days"`
	ExpectedHours     float64 `json:"expected_hours"`
	WorkedHours       float64 `json:"worked_hours"`
	Balance           float64 `json:"balance"`
}

type MonthReportDTO struct {
	Summary       MonthSummaryDTO       `json:"summary"`
	Shifts        []ShiftDTO            `json:"shifts"`
	NonAccounting []NonAccountingDayDTO `json:"non_accounting_days"`
}

// PeriodReportDTO is the quarter/year fold. Totals are rounded to one
// decimal, the granularity the dashboard shows.
type PeriodReportDTO struct {
	Months        []MonthSummaryDTO `json:"months"`
	ExpectedHours float64           `json:"expected_hours"`
	WorkedHours   float64           `json:"worked_hours"`
	Balance       float64           `json:"balance"`
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// =============================================================================
// CONVERSIONS
// =============================================================================

func toUserDTO(u timesheet.User) UserDTO {
	dto := UserDTO{ID: u.ID, Name: u.Name, Email: u.Email}
	if !u.CreatedAt.IsZero() {
		dto.CreatedAt = u.CreatedAt.Format(time.RFC3339)
	}
	return dto
}

func toShiftDTO(s timesheet.Shift, hours timecalc.Amount) ShiftDTO {
	return ShiftDTO{
		ID:         s.ID,
		Date:       s.Date.String(),
		StartTime:  s.Start.String(),
		EndTime:    s.End.String(),
		Comment:    s.Comment,
		TotalHours: hours.Float64(),
	}
}

func toRangeDTO(r timesheet.NonAccountingDay) NonAccountingDayDTO {
	return NonAccountingDayDTO{
		ID:        r.ID,
		StartDate: r.Start.String(),
		EndDate:   r.End.String(),
		Reason:    r.Reason,
		Days:      r.Value().Days(),
	}
}

func toMonthSummaryDTO(s timecalc.MonthSummary) MonthSummaryDTO {
	return MonthSummaryDTO{
		Month:             s.Month.String(),
		DaysInMonth:       s.DaysInMonth,
		NonAccountingDays: s.NonAccountingDays,
		WorkingDays:       s.WorkingDays,
		ExpectedHours:     s.ExpectedHours.Float64(),
		WorkedHours:       s.WorkedHours.Float64(),
		Balance:           s.Balance.Float64(),
	}
}

func toMonthReportDTO(r *timesheet.MonthReport) MonthReportDTO {
	shifts := make([]ShiftDTO, len(r.Shifts))
	for i, line := range r.Shifts {
		shifts[i] = toShiftDTO(line.Shift, line.Hours)
	}
	ranges := make([]NonAccountingDayDTO, len(r.NonAccounting))
	for i, na := range r.NonAccounting {
		ranges[i] = toRangeDTO(na)
	}
	return MonthReportDTO{
		Summary:       toMonthSummaryDTO(r.Summary),
		Shifts:        shifts,
		NonAccounting: ranges,
	}
}

func toPeriodReportDTO(r *timesheet.PeriodReport) PeriodReportDTO {
	months := make([]MonthSummaryDTO, len(r.Months))
	for i, m := range r.Months {
		months[i] = toMonthSummaryDTO(m)
	}
	return PeriodReportDTO{
		Months:        months,
		ExpectedHours: r.Totals.ExpectedHours.Round1().Float64(),
		WorkedHours:   r.Totals.WorkedHours.Round1().Float64(),
		Balance:       r.Totals.Balance.Round1().Float64(),
	}
}
