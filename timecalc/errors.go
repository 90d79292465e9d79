/*
errors.go - Error types for the calculation core

PURPOSE:
  All failures here are precondition violations: the core does no I/O, so
  there are no transient or retryable errors. Computation either fully
  succeeds or fails for the requested period; no partial summaries.

USAGE:
  Callers wrap or branch with errors.Is:

    if errors.Is(err, timecalc.ErrInvalidDate) { ... }

SEE ALSO:
  - month.go: Where rejection happens
  - clock.go: Parsers that produce these errors
*/
package timecalc

import (
	"errors"
	"fmt"
)

// =============================================================================
// SENTINEL ERRORS - Use with errors.Is()
// =============================================================================

var (
	// ErrInvalidDate is returned when a reference date or month is
	// unparseable or not a real calendar date. The aggregator rejects
	// rather than defaulting to "now".
	ErrInvalidDate = errors.New("invalid date")

	// ErrInvalidTimeOfDay is returned when a shift time cannot be read as
	// a valid wall-clock value. Records are never coerced to midnight or
	// silently skipped.
	ErrInvalidTimeOfDay = errors.New("invalid time of day")

	// ErrInvalidRange is returned for a non-accounting range whose end
	// precedes its start.
	ErrInvalidRange = errors.New("invalid range: end before start")
)

// =============================================================================
// STRUCTURED ERRORS - Carry the offending input
// =============================================================================

type InvalidDateError struct {
	Input string
}

func (e *InvalidDateError) Error() string { return fmt.Sprintf("invalid date: %q", e.Input) }
func (e *InvalidDateError) Unwrap() error { return ErrInvalidDate }

type InvalidTimeOfDayError struct {
	Input string
}

func (e *InvalidTimeOfDayError) Error() string {
	return fmt.Sprintf("invalid time of day: %q", e.Input)
}
func (e *InvalidTimeOfDayError) Unwrap() error { return ErrInvalidTimeOfDay }

type InvalidRangeError struct {
	Start Date
	End   Date
}

func (e *InvalidRangeError) Error() string {
	return fmt.Sprintf("invalid range: end %s before start %s", e.End, e.Start)
}
func (e *InvalidRangeError) Unwrap() error { return ErrInvalidRange }

// IsInvalidInput returns true if the error is a precondition violation,
// i.e. the caller supplied bad data rather than anything going wrong here.
func IsInvalidInput(err error) bool {
	return errors.Is(err, ErrInvalidDate) ||
		errors.Is(err, ErrInvalidTimeOfDay) ||
		errors.Is(err, ErrInvalidRange)
}
