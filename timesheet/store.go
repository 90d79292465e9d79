/*
store.go - Persistence interface for timesheet records

PURPOSE:
  Defines what the domain needs from storage. Implementations live in
  store/sqlite (production) and store/memory (tests). The calculation
  core performs no storage access itself; records are fetched here by
  date-range query keyed on the owning user and period bounds.

SEE ALSO:
  - reporter.go: The only consumer of the range queries
  - store/sqlite/sqlite.go: SQLite implementation
  - store/memory/memory.go: In-memory implementation for tests
*/
package timesheet

import (
	"context"
	"errors"

	"github.com/wpmkt/hourglance/timecalc"
)

// =============================================================================
// SENTINEL ERRORS - Use with errors.Is()
// =============================================================================

var (
	// ErrUserNotFound is returned when a referenced user doesn't exist.
	ErrUserNotFound = errors.New("user not found")

	// ErrShiftNotFound is returned when a shift id doesn't exist for the user.
	ErrShiftNotFound = errors.New("shift not found")

	// ErrRangeNotFound is returned when a non-accounting range id doesn't
	// exist for the user.
	ErrRangeNotFound = errors.New("non-accounting range not found")

	// ErrDuplicateID is returned when inserting a record whose id exists.
	ErrDuplicateID = errors.New("duplicate id")
)

// IsNotFound returns true if the error indicates a missing record.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrUserNotFound) ||
		errors.Is(err, ErrShiftNotFound) ||
		errors.Is(err, ErrRangeNotFound)
}

// =============================================================================
// STORE INTERFACE
// =============================================================================

// Store is the persistence boundary for timesheet records.
//
// Range semantics:
//   - ShiftsInRange returns shifts whose date d satisfies from <= d <= to.
//   - RangesIntersecting returns non-accounting ranges overlapping
//     [from, to] at all; clipping to period bounds is the core's job.
type Store interface {
	SaveUser(ctx context.Context, u User) error
	GetUser(ctx context.Context, id string) (*User, error)
	ListUsers(ctx context.Context) ([]User, error)

	SaveShift(ctx context.Context, s Shift) error
	UpdateShift(ctx context.Context, s Shift) error
	DeleteShift(ctx context.Context, userID, shiftID string) error
	GetShift(ctx context.Context, userID, shiftID string) (*Shift, error)
	ShiftsInRange(ctx context.Context, userID string, from, to timecalc.Date) ([]Shift, error)

	SaveRange(ctx context.Context, r NonAccountingDay) error
	DeleteRange(ctx context.Context, userID, rangeID string) error
	RangesIntersecting(ctx context.Context, userID string, from, to timecalc.Date) ([]NonAccountingDay, error)
}
