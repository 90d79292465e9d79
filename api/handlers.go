/*
handlers.go - HTTP API handlers for the time-accounting service

PURPOSE:
  Exposes the timesheet domain via REST. Handles HTTP request/response,
  JSON serialization, boundary validation, and delegates to the reporter
  and store.

ENDPOINTS:
  Users:
    GET    /api/users                         List users
    POST   /api/users                         Create user
    GET    /api/users/{id}                    Get user

  Shifts:
    GET    /api/users/{id}/shifts?month=      List a month's shifts
    POST   /api/users/{id}/shifts             Create shift
    PUT    /api/users/{id}/shifts/{shiftID}   Update shift
    DELETE /api/users/{id}/shifts/{shiftID}   Delete shift

  Non-accounting days:
    GET    /api/users/{id}/non-accounting-days?month=
    POST   /api/users/{id}/non-accounting-days
    DELETE /api/users/{id}/non-accounting-days/{rangeID}

  Reports:
    GET    /api/users/{id}/months/{YYYY-MM}   Month report
    GET    /api/users/{id}/quarters/{YYYY-Qn} Quarter report
    GET    /api/users/{id}/years/{YYYY}       Year report

ERROR HANDLING:
  Errors are returned as JSON with appropriate HTTP status:
  - 400: Validation errors, invalid dates/times/ranges
  - 404: User/shift/range not found
  - 409: Duplicate id
  - 500: Internal errors

SEE ALSO:
  - dto.go: Request/response data structures
  - server.go: Router setup and middleware
*/
package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/wpmkt/hourglance/timecalc"
	"github.com/wpmkt/hourglance/timesheet"
)

// =============================================================================
// HANDLER CONTEXT
// =============================================================================

// Handler holds all dependencies for HTTP handlers.
type Handler struct {
	Store    timesheet.Store
	Reporter *timesheet.Reporter
}

// NewHandler creates a new handler over the given store.
func NewHandler(store timesheet.Store) *Handler {
	return &Handler{
		Store:    store,
		Reporter: timesheet.NewReporter(store),
	}
}

// =============================================================================
// USER HANDLERS
// =============================================================================

// ListUsers returns all users.
func (h *Handler) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.Store.ListUsers(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list users", err)
		return
	}

	dtos := make([]UserDTO, len(users))
	for i, u := range users {
		dtos[i] = toUserDTO(u)
	}
	writeJSON(w, http.StatusOK, dtos)
}

// CreateUser creates a new user.
func (h *Handler) CreateUser(w http.ResponseWriter, r *http.Request) {
	var req CreateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if req.Name == "" {
		writeError(w, http.StatusBadRequest, "Name is required", nil)
		return
	}

	u := timesheet.User{
		ID:    req.ID,
		Name:  req.Name,
		Email: req.Email,
	}
	if u.ID == "" {
		u.ID = newID("user")
	}

	if err := h.Store.SaveUser(r.Context(), u); err != nil {
		if errors.Is(err, timesheet.ErrDuplicateID) {
			writeError(w, http.StatusConflict, "User already exists", err)
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to create user", err)
		return
	}

	writeJSON(w, http.StatusCreated, toUserDTO(u))
}

// GetUser returns a single user.
func (h *Handler) GetUser(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	u, err := h.Store.GetUser(r.Context(), id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to get user", err)
		return
	}
	if u == nil {
		writeError(w, http.StatusNotFound, "User not found", nil)
		return
	}
	writeJSON(w, http.StatusOK, toUserDTO(*u))
}

// =============================================================================
// SHIFT HANDLERS
// =============================================================================

// ListShifts returns a user's shifts for one month (?month=YYYY-MM,
// defaulting to the current month).
func (h *Handler) ListShifts(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "id")

	month, err := monthParam(r.URL.Query().Get("month"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid month (use YYYY-MM)", err)
		return
	}

	shifts, err := h.Store.ShiftsInRange(r.Context(), userID, month.First(), month.Last())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list shifts", err)
		return
	}

	dtos := make([]ShiftDTO, len(shifts))
	for i, s := range shifts {
		dtos[i] = toShiftDTO(s, s.Value().TotalHours())
	}
	writeJSON(w, http.StatusOK, dtos)
}

// CreateShift records a new shift.
func (h *Handler) CreateShift(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "id")

	shift, ok := h.decodeShift(w, r, userID, newID("shift"))
	if !ok {
		return
	}

	if err := h.Store.SaveShift(r.Context(), shift); err != nil {
		if errors.Is(err, timesheet.ErrDuplicateID) {
			writeError(w, http.StatusConflict, "Shift already exists", err)
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to save shift", err)
		return
	}

	writeJSON(w, http.StatusCreated, toShiftDTO(shift, shift.Value().TotalHours()))
}

// UpdateShift replaces an existing shift's fields.
func (h *Handler) UpdateShift(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "id")
	shiftID := chi.URLParam(r, "shiftID")

	shift, ok := h.decodeShift(w, r, userID, shiftID)
	if !ok {
		return
	}

	if err := h.Store.UpdateShift(r.Context(), shift); err != nil {
		if errors.Is(err, timesheet.ErrShiftNotFound) {
			writeError(w, http.StatusNotFound, "Shift not found", err)
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to update shift", err)
		return
	}

	writeJSON(w, http.StatusOK, toShiftDTO(shift, shift.Value().TotalHours()))
}

// DeleteShift removes a shift.
func (h *Handler) DeleteShift(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "id")
	shiftID := chi.URLParam(r, "shiftID")

	if err := h.Store.DeleteShift(r.Context(), userID, shiftID); err != nil {
		if errors.Is(err, timesheet.ErrShiftNotFound) {
			writeError(w, http.StatusNotFound, "Shift not found", err)
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to delete shift", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// decodeShift parses and validates a shift payload. All boundary
// validation happens here; the core assumes valid values.
func (h *Handler) decodeShift(w http.ResponseWriter, r *http.Request, userID, shiftID string) (timesheet.Shift, bool) {
	var req ShiftRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return timesheet.Shift{}, false
	}

	date, err := timecalc.ParseDate(req.Date)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid date (use YYYY-MM-DD)", err)
		return timesheet.Shift{}, false
	}
	start, err := timecalc.ParseTimeOfDay(req.StartTime)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid start_time (use HH:MM)", err)
		return timesheet.Shift{}, false
	}
	end, err := timecalc.ParseTimeOfDay(req.EndTime)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid end_time (use HH:MM)", err)
		return timesheet.Shift{}, false
	}

	return timesheet.Shift{
		ID:      shiftID,
		UserID:  userID,
		Date:    date,
		Start:   start,
		End:     end,
		Comment: req.Comment,
	}, true
}

// =============================================================================
// NON-ACCOUNTING DAY HANDLERS
// =============================================================================

// ListRanges returns the non-accounting ranges intersecting one month.
func (h *Handler) ListRanges(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "id")

	month, err := monthParam(r.URL.Query().Get("month"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid month (use YYYY-MM)", err)
		return
	}

	ranges, err := h.Store.RangesIntersecting(r.Context(), userID, month.First(), month.Last())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list non-accounting days", err)
		return
	}

	dtos := make([]NonAccountingDayDTO, len(ranges))
	for i, na := range ranges {
		dtos[i] = toRangeDTO(na)
	}
	writeJSON(w, http.StatusOK, dtos)
}

// CreateRange records a new non-accounting range.
func (h *Handler) CreateRange(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "id")

	var req NonAccountingDayRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	start, err := timecalc.ParseDate(req.StartDate)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid start_date (use YYYY-MM-DD)", err)
		return
	}
	end, err := timecalc.ParseDate(req.EndDate)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid end_date (use YYYY-MM-DD)", err)
		return
	}

	na := timesheet.NonAccountingDay{
		ID:     newID("narange"),
		UserID: userID,
		Start:  start,
		End:    end,
		Reason: req.Reason,
	}
	if err := na.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid range", err)
		return
	}

	if err := h.Store.SaveRange(r.Context(), na); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to save non-accounting range", err)
		return
	}

	writeJSON(w, http.StatusCreated, toRangeDTO(na))
}

// DeleteRange removes a non-accounting range.
func (h *Handler) DeleteRange(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "id")
	rangeID := chi.URLParam(r, "rangeID")

	if err := h.Store.DeleteRange(r.Context(), userID, rangeID); err != nil {
		if errors.Is(err, timesheet.ErrRangeNotFound) {
			writeError(w, http.StatusNotFound, "Non-accounting range not found", err)
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to delete non-accounting range", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// =============================================================================
// REPORT HANDLERS
// =============================================================================

// GetMonthReport returns the month summary plus shift and range lists.
func (h *Handler) GetMonthReport(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "id")

	month, err := timecalc.ParseMonth(chi.URLParam(r, "month"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid month (use YYYY-MM)", err)
		return
	}

	report, err := h.Reporter.Month(r.Context(), userID, month)
	if err != nil {
		h.writeReportError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toMonthReportDTO(report))
}

// GetQuarterReport returns the three-month fold for {YYYY-Qn}.
func (h *Handler) GetQuarterReport(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "id")

	year, quarter, err := parseQuarter(chi.URLParam(r, "quarter"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid quarter (use YYYY-Q1..YYYY-Q4)", err)
		return
	}

	report, err := h.Reporter.Quarter(r.Context(), userID, year, quarter)
	if err != nil {
		h.writeReportError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toPeriodReportDTO(report))
}

// GetYearReport returns the twelve-month fold.
func (h *Handler) GetYearReport(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "id")

	year, err := strconv.Atoi(chi.URLParam(r, "year"))
	if err != nil || year <= 0 {
		writeError(w, http.StatusBadRequest, "Invalid year", err)
		return
	}

	report, err := h.Reporter.Year(r.Context(), userID, year)
	if err != nil {
		h.writeReportError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toPeriodReportDTO(report))
}

func (h *Handler) writeReportError(w http.ResponseWriter, err error) {
	switch {
	case timecalc.IsInvalidInput(err):
		writeError(w, http.StatusBadRequest, "Invalid report input", err)
	case timesheet.IsNotFound(err):
		writeError(w, http.StatusNotFound, "Not found", err)
	default:
		writeError(w, http.StatusInternalServerError, "Failed to build report", err)
	}
}

// =============================================================================
// HELPERS
// =============================================================================

// monthParam parses ?month=YYYY-MM, defaulting to the current month when
// absent. An explicit but malformed value is an error, not a default.
func monthParam(raw string) (timecalc.Month, error) {
	if raw == "" {
		return timecalc.MonthOf(timecalc.Today()), nil
	}
	return timecalc.ParseMonth(raw)
}

// parseQuarter parses "YYYY-Qn".
func parseQuarter(raw string) (year, quarter int, err error) {
	parts := strings.SplitN(raw, "-Q", 2)
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("malformed quarter %q", raw)
	}
	if year, err = strconv.Atoi(parts[0]); err != nil {
		return 0, 0, fmt.Errorf("malformed quarter %q", raw)
	}
	if quarter, err = strconv.Atoi(parts[1]); err != nil {
		return 0, 0, fmt.Errorf("malformed quarter %q", raw)
	}
	return year, quarter, nil
}

func newID(prefix string) string {
	return fmt.Sprintf("%s-%d", prefix, time.Now().UnixNano())
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string, err error) {
	resp := ErrorResponse{Error: message}
	if err != nil {
		resp.Details = err.Error()
	}
	writeJSON(w, status, resp)
}
