/*
Package sqlite provides the SQLite-backed implementation of timesheet.Store.

PURPOSE:
  Persists users, shifts, and non-accounting-day ranges and answers the
  date-range queries the reporter needs. The same patterns apply to
  PostgreSQL; only minor SQL dialect differences.

KEY TABLES:
  users                 Record owners
  shifts                One row per work period (date + start/end time)
  non_accounting_days   Inclusive date ranges excluded from working days

INDEXES:
  idx_shifts_user_date  Month/quarter range queries (hot path)
  idx_ranges_user_dates Intersection queries for non-accounting ranges

STORAGE FORMAT:
  Dates as "2006-01-02" TEXT, times of day as "HH:MM" TEXT. Lexicographic
  order matches chronological order, so range predicates stay plain
  string comparisons.

WAL MODE:
  SQLite is opened with WAL for better concurrency: readers don't block
  and crash recovery is cheaper.

USAGE:
  store, err := sqlite.New("./data/hourglance.db")
  if err != nil {
      log.Fatal(err)
  }
  defer store.Close()

SEE ALSO:
  - timesheet/store.go: Interface definition
  - store/memory/memory.go: In-memory implementation for tests
*/
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"sync"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/wpmkt/hourglance/timecalc"
	"github.com/wpmkt/hourglance/timesheet"
)

// Store implements timesheet.Store using SQLite.
type Store struct {
	db *sql.DB
	mu sync.RWMutex
}

var _ timesheet.Store = (*Store)(nil)

// New creates a new SQLite store with the given database path.
// Use ":memory:" for an in-memory database.
func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_foreign_keys=on&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return store, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// migrate creates the database schema.
func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS users (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		email TEXT,
		created_at TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS shifts (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL REFERENCES users(id),
		date TEXT NOT NULL,
		start_time TEXT NOT NULL,
		end_time TEXT NOT NULL,
		comment TEXT,
		created_at TEXT NOT NULL
	);

	-- Month and quarter reports query by owner + date bounds (hot path)
	CREATE INDEX IF NOT EXISTS idx_shifts_user_date
		ON shifts(user_id, date);

	CREATE TABLE IF NOT EXISTS non_accounting_days (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL REFERENCES users(id),
		start_date TEXT NOT NULL,
		end_date TEXT NOT NULL,
		reason TEXT,
		created_at TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_ranges_user_dates
		ON non_accounting_days(user_id, start_date, end_date);
	`

	_, err := s.db.Exec(schema)
	return err
}

// =============================================================================
// USERS
// =============================================================================

func (s *Store) SaveUser(ctx context.Context, u timesheet.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	createdAt := u.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO users (id, name, email, created_at) VALUES (?, ?, ?, ?)`,
		u.ID, u.Name, nullString(u.Email), createdAt.Format(time.RFC3339),
	)
	if err != nil {
		if isUniqueConstraintError(err) {
			return timesheet.ErrDuplicateID
		}
		return fmt.Errorf("failed to save user: %w", err)
	}
	return nil
}

func (s *Store) GetUser(ctx context.Context, id string) (*timesheet.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row := s.db.QueryRowContext(ctx,
		`SELECT id, name, email, created_at FROM users WHERE id = ?`, id)

	u, err := scanUser(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return u, nil
}

func (s *Store) ListUsers(ctx context.Context) ([]timesheet.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, email, created_at FROM users ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	defer rows.Close()

	var users []timesheet.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, *u)
	}
	return users, rows.Err()
}

// =============================================================================
// SHIFTS
// =============================================================================

func (s *Store) SaveShift(ctx context.Context, shift timesheet.Shift) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	createdAt := shift.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO shifts (id, user_id, date, start_time, end_time, comment, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		shift.ID, shift.UserID,
		shift.Date.String(), shift.Start.String(), shift.End.String(),
		nullString(shift.Comment), createdAt.Format(time.RFC3339),
	)
	if err != nil {
		if isUniqueConstraintError(err) {
			return timesheet.ErrDuplicateID
		}
		return fmt.Errorf("failed to save shift: %w", err)
	}
	return nil
}

func (s *Store) UpdateShift(ctx context.Context, shift timesheet.Shift) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.ExecContext(ctx,
		`UPDATE shifts SET date = ?, start_time = ?, end_time = ?, comment = ?
		 WHERE id = ? AND user_id = ?`,
		shift.Date.String(), shift.Start.String(), shift.End.String(),
		nullString(shift.Comment), shift.ID, shift.UserID,
	)
	if err != nil {
		return fmt.Errorf("failed to update shift: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return timesheet.ErrShiftNotFound
	}
	return nil
}

func (s *Store) DeleteShift(ctx context.Context, userID, shiftID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.ExecContext(ctx,
		`DELETE FROM shifts WHERE id = ? AND user_id = ?`, shiftID, userID)
	if err != nil {
		return fmt.Errorf("failed to delete shift: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return timesheet.ErrShiftNotFound
	}
	return nil
}

func (s *Store) GetShift(ctx context.Context, userID, shiftID string) (*timesheet.Shift, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row := s.db.QueryRowContext(ctx,
		`SELECT id, user_id, date, start_time, end_time, comment, created_at
		 FROM shifts WHERE id = ? AND user_id = ?`, shiftID, userID)

	shift, err := scanShift(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get shift: %w", err)
	}
	return shift, nil
}

func (s *Store) ShiftsInRange(ctx context.Context, userID string, from, to timecalc.Date) ([]timesheet.Shift, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, user_id, date, start_time, end_time, comment, created_at
		 FROM shifts
		 WHERE user_id = ? AND date >= ? AND date <= ?
		 ORDER BY date ASC, start_time ASC`,
		userID, from.String(), to.String(),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query shifts: %w", err)
	}
	defer rows.Close()

	var shifts []timesheet.Shift
	for rows.Next() {
		shift, err := scanShift(rows)
		if err != nil {
			return nil, err
		}
		shifts = append(shifts, *shift)
	}
	return shifts, rows.Err()
}

// =============================================================================
// NON-ACCOUNTING RANGES
// =============================================================================

func (s *Store) SaveRange(ctx context.Context, r timesheet.NonAccountingDay) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	createdAt := r.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO non_accounting_days (id, user_id, start_date, end_date, reason, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		r.ID, r.UserID, r.Start.String(), r.End.String(),
		nullString(r.Reason), createdAt.Format(time.RFC3339),
	)
	if err != nil {
		if isUniqueConstraintError(err) {
			return timesheet.ErrDuplicateID
		}
		return fmt.Errorf("failed to save range: %w", err)
	}
	return nil
}

func (s *Store) DeleteRange(ctx context.Context, userID, rangeID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.ExecContext(ctx,
		`DELETE FROM non_accounting_days WHERE id = ? AND user_id = ?`, rangeID, userID)
	if err != nil {
		return fmt.Errorf("failed to delete range: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return timesheet.ErrRangeNotFound
	}
	return nil
}

func (s *Store) RangesIntersecting(ctx context.Context, userID string, from, to timecalc.Date) ([]timesheet.NonAccountingDay, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	// Overlap predicate: the range starts before the window ends and ends
	// after the window starts.
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, user_id, start_date, end_date, reason, created_at
		 FROM non_accounting_days
		 WHERE user_id = ? AND start_date <= ? AND end_date >= ?
		 ORDER BY start_date ASC`,
		userID, to.String(), from.String(),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query ranges: %w", err)
	}
	defer rows.Close()

	var ranges []timesheet.NonAccountingDay
	for rows.Next() {
		r, err := scanRange(rows)
		if err != nil {
			return nil, err
		}
		ranges = append(ranges, *r)
	}
	return ranges, rows.Err()
}

// =============================================================================
// ROW SCANNING
// =============================================================================

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(row rowScanner) (*timesheet.User, error) {
	var u timesheet.User
	var email sql.NullString
	var createdAt string

	if err := row.Scan(&u.ID, &u.Name, &email, &createdAt); err != nil {
		return nil, err
	}
	u.Email = email.String
	u.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	return &u, nil
}

func scanShift(row rowScanner) (*timesheet.Shift, error) {
	var shift timesheet.Shift
	var date, start, end, createdAt string
	var comment sql.NullString

	if err := row.Scan(&shift.ID, &shift.UserID, &date, &start, &end, &comment, &createdAt); err != nil {
		return nil, err
	}

	var err error
	if shift.Date, err = timecalc.ParseDate(date); err != nil {
		return nil, fmt.Errorf("corrupt shift %s: %w", shift.ID, err)
	}
	if shift.Start, err = timecalc.ParseTimeOfDay(start); err != nil {
		return nil, fmt.Errorf("corrupt shift %s: %w", shift.ID, err)
	}
	if shift.End, err = timecalc.ParseTimeOfDay(end); err != nil {
		return nil, fmt.Errorf("corrupt shift %s: %w", shift.ID, err)
	}
	shift.Comment = comment.String
	shift.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	return &shift, nil
}

func scanRange(row rowScanner) (*timesheet.NonAccountingDay, error) {
	var r timesheet.NonAccountingDay
	var start, end, createdAt string
	var reason sql.NullString

	if err := row.Scan(&r.ID, &r.UserID, &start, &end, &reason, &createdAt); err != nil {
		return nil, err
	}

	var err error
	if r.Start, err = timecalc.ParseDate(start); err != nil {
		return nil, fmt.Errorf("corrupt range %s: %w", r.ID, err)
	}
	if r.End, err = timecalc.ParseDate(end); err != nil {
		return nil, fmt.Errorf("corrupt range %s: %w", r.ID, err)
	}
	r.Reason = reason.String
	r.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	return &r, nil
}

// =============================================================================
// HELPERS
// =============================================================================

func nullString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}

func isUniqueConstraintError(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}
