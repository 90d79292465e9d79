/*
handlers_test.go - HTTP-level tests for the API

Covers the request/response contract: boundary validation, status code
mapping, and the report endpoints end to end over the in-memory store.
*/
package api_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wpmkt/hourglance/api"
	"github.com/wpmkt/hourglance/store/memory"
)

// =============================================================================
// TEST SETUP
// =============================================================================

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	handler := api.NewHandler(memory.New())
	server := httptest.NewServer(api.NewRouter(handler, []string{"*"}))
	t.Cleanup(server.Close)
	return server
}

func doJSON(t *testing.T, method, url string, body any) *http.Response {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req, err := http.NewRequest(method, url, &buf)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	var v T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&v))
	return v
}

func seedUser(t *testing.T, server *httptest.Server) string {
	t.Helper()
	resp := doJSON(t, http.MethodPost, server.URL+"/api/users", api.CreateUserRequest{
		ID:   "user-1",
		Name: "Test User",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	return "user-1"
}

// =============================================================================
// SHIFT ENDPOINT TESTS
// =============================================================================

func TestAPI_CreateShift_ReturnsComputedHours(t *testing.T) {
	// GIVEN: A night shift crossing midnight
	// WHEN: POSTing it
	// THEN: The response carries the credited hours incl. night bonus

	server := newTestServer(t)
	userID := seedUser(t, server)

	resp := doJSON(t, http.MethodPost, server.URL+"/api/users/"+userID+"/shifts", api.ShiftRequest{
		Date:      "2025-03-10",
		StartTime: "22:00",
		EndTime:   "06:00",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	dto := decode[api.ShiftDTO](t, resp)
	assert.Equal(t, "2025-03-10", dto.Date)
	assert.InDelta(t, 9.0, dto.TotalHours, 0.0001)
	assert.NotEmpty(t, dto.ID)
}

func TestAPI_CreateShift_InvalidTime_Rejected(t *testing.T) {
	// GIVEN: An out-of-range start time
	// WHEN: POSTing it
	// THEN: 400; the record is rejected at the boundary, not coerced

	server := newTestServer(t)
	userID := seedUser(t, server)

	resp := doJSON(t, http.MethodPost, server.URL+"/api/users/"+userID+"/shifts", api.ShiftRequest{
		Date:      "2025-03-10",
		StartTime: "25:00",
		EndTime:   "06:00",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestAPI_CreateShift_InvalidDate_Rejected(t *testing.T) {
	server := newTestServer(t)
	userID := seedUser(t, server)

	resp := doJSON(t, http.MethodPost, server.URL+"/api/users/"+userID+"/shifts", api.ShiftRequest{
		Date:      "2025-02-30",
		StartTime: "09:00",
		EndTime:   "17:00",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestAPI_UpdateAndDeleteShift(t *testing.T) {
	server := newTestServer(t)
	userID := seedUser(t, server)

	resp := doJSON(t, http.MethodPost, server.URL+"/api/users/"+userID+"/shifts", api.ShiftRequest{
		Date:      "2025-03-10",
		StartTime: "09:00",
		EndTime:   "17:00",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	created := decode[api.ShiftDTO](t, resp)

	resp = doJSON(t, http.MethodPut, server.URL+"/api/users/"+userID+"/shifts/"+created.ID, api.ShiftRequest{
		Date:      "2025-03-11",
		StartTime: "10:00",
		EndTime:   "18:30",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	updated := decode[api.ShiftDTO](t, resp)
	assert.Equal(t, "2025-03-11", updated.Date)
	assert.InDelta(t, 8.5, updated.TotalHours, 0.0001)

	resp = doJSON(t, http.MethodDelete, server.URL+"/api/users/"+userID+"/shifts/"+created.ID, nil)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp = doJSON(t, http.MethodDelete, server.URL+"/api/users/"+userID+"/shifts/"+created.ID, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

// =============================================================================
// NON-ACCOUNTING DAY ENDPOINT TESTS
// =============================================================================

func TestAPI_CreateRange_InvertedRange_Rejected(t *testing.T) {
	// GIVEN: A range whose end precedes its start
	// WHEN: POSTing it
	// THEN: 400; it is never stored as a zero-length range

	server := newTestServer(t)
	userID := seedUser(t, server)

	resp := doJSON(t, http.MethodPost, server.URL+"/api/users/"+userID+"/non-accounting-days",
		api.NonAccountingDayRequest{
			StartDate: "2025-03-10",
			EndDate:   "2025-03-05",
			Reason:    "vacation",
		})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestAPI_CreateRange_ReportsInclusiveDays(t *testing.T) {
	server := newTestServer(t)
	userID := seedUser(t, server)

	resp := doJSON(t, http.MethodPost, server.URL+"/api/users/"+userID+"/non-accounting-days",
		api.NonAccountingDayRequest{
			StartDate: "2025-03-10",
			EndDate:   "2025-03-14",
			Reason:    "vacation",
		})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	dto := decode[api.NonAccountingDayDTO](t, resp)
	assert.Equal(t, 5, dto.Days)
}

// =============================================================================
// REPORT ENDPOINT TESTS
// =============================================================================

func TestAPI_MonthReport_EndToEnd(t *testing.T) {
	// GIVEN: February 2023 with 3 day shifts and a 2-day vacation
	// WHEN: GETting the month report
	// THEN: The summary matches the canonical February scenario

	server := newTestServer(t)
	userID := seedUser(t, server)

	for _, date := range []string{"2023-02-06", "2023-02-07", "2023-02-08"} {
		resp := doJSON(t, http.MethodPost, server.URL+"/api/users/"+userID+"/shifts", api.ShiftRequest{
			Date: date, StartTime: "09:00", EndTime: "17:00",
		})
		require.Equal(t, http.StatusCreated, resp.StatusCode)
	}
	resp := doJSON(t, http.MethodPost, server.URL+"/api/users/"+userID+"/non-accounting-days",
		api.NonAccountingDayRequest{StartDate: "2023-02-13", EndDate: "2023-02-14", Reason: "vacation"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp = doJSON(t, http.MethodGet, server.URL+"/api/users/"+userID+"/months/2023-02", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	report := decode[api.MonthReportDTO](t, resp)
	assert.Equal(t, 28, report.Summary.DaysInMonth)
	assert.Equal(t, 26, report.Summary.WorkingDays)
	assert.InDelta(t, 148.57, report.Summary.ExpectedHours, 0.01)
	assert.InDelta(t, 24.0, report.Summary.WorkedHours, 0.0001)
	assert.Len(t, report.Shifts, 3)
	assert.Len(t, report.NonAccounting, 1)
}

func TestAPI_MonthReport_InvalidMonth_Rejected(t *testing.T) {
	server := newTestServer(t)
	userID := seedUser(t, server)

	resp := doJSON(t, http.MethodGet, server.URL+"/api/users/"+userID+"/months/2023-13", nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestAPI_QuarterReport_RoundedTotals(t *testing.T) {
	// GIVEN: A single 7:45 shift in Q1 (7.75h, no night hours)
	// WHEN: GETting the quarter report
	// THEN: Totals come back rounded to one decimal

	server := newTestServer(t)
	userID := seedUser(t, server)

	resp := doJSON(t, http.MethodPost, server.URL+"/api/users/"+userID+"/shifts", api.ShiftRequest{
		Date: "2025-01-15", StartTime: "09:00", EndTime: "16:45",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp = doJSON(t, http.MethodGet, server.URL+"/api/users/"+userID+"/quarters/2025-Q1", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	report := decode[api.PeriodReportDTO](t, resp)
	require.Len(t, report.Months, 3)
	assert.InDelta(t, 7.8, report.WorkedHours, 0.0001) // 7.75 rounded to 1 decimal
}

func TestAPI_QuarterReport_MalformedQuarter_Rejected(t *testing.T) {
	server := newTestServer(t)
	userID := seedUser(t, server)

	for _, q := range []string{"2025-Q5", "2025-Q0", "banana"} {
		resp := doJSON(t, http.MethodGet, server.URL+"/api/users/"+userID+"/quarters/"+q, nil)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode, "quarter %q", q)
	}
}

func TestAPI_YearReport(t *testing.T) {
	server := newTestServer(t)
	userID := seedUser(t, server)

	resp := doJSON(t, http.MethodGet, server.URL+"/api/users/"+userID+"/years/2025", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	report := decode[api.PeriodReportDTO](t, resp)
	assert.Len(t, report.Months, 12)
	assert.InDelta(t, 0.0, report.WorkedHours, 0.0001)
}

// =============================================================================
// USER ENDPOINT TESTS
// =============================================================================

func TestAPI_Users(t *testing.T) {
	server := newTestServer(t)

	resp := doJSON(t, http.MethodPost, server.URL+"/api/users", api.CreateUserRequest{Name: "No ID"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	created := decode[api.UserDTO](t, resp)
	assert.NotEmpty(t, created.ID)

	resp = doJSON(t, http.MethodGet, server.URL+"/api/users/"+created.ID, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp = doJSON(t, http.MethodGet, server.URL+"/api/users/nobody", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp = doJSON(t, http.MethodPost, server.URL+"/api/users", api.CreateUserRequest{ID: created.ID, Name: "Dup"})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
}
