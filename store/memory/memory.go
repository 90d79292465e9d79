// Package memory provides an in-memory timesheet.Store for tests and dev.
package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/wpmkt/hourglance/timecalc"
	"github.com/wpmkt/hourglance/timesheet"
)

// =============================================================================
// MEMORY STORE - In-memory implementation (for testing/dev)
// =============================================================================

type Store struct {
	mu     sync.RWMutex
	users  map[string]timesheet.User
	shifts map[string][]timesheet.Shift           // keyed by user id
	ranges map[string][]timesheet.NonAccountingDay // keyed by user id
}

func New() *Store {
	return &Store{
		users:  make(map[string]timesheet.User),
		shifts: make(map[string][]timesheet.Shift),
		ranges: make(map[string][]timesheet.NonAccountingDay),
	}
}

var _ timesheet.Store = (*Store)(nil)

// -----------------------------------------------------------------------------
// Users
// -----------------------------------------------------------------------------

func (m *Store) SaveUser(_ context.Context, u timesheet.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, exists := m.users[u.ID]; exists {
		return timesheet.ErrDuplicateID
	}
	m.users[u.ID] = u
	return nil
}

func (m *Store) GetUser(_ context.Context, id string) (*timesheet.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	u, ok := m.users[id]
	if !ok {
		return nil, nil
	}
	return &u, nil
}

func (m *Store) ListUsers(_ context.Context) ([]timesheet.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]timesheet.User, 0, len(m.users))
	for _, u := range m.users {
		out = append(out, u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// -----------------------------------------------------------------------------
// Shifts
// -----------------------------------------------------------------------------

func (m *Store) SaveShift(_ context.Context, s timesheet.Shift) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.shifts[s.UserID] {
		if existing.ID == s.ID {
			return timesheet.ErrDuplicateID
		}
	}
	m.shifts[s.UserID] = append(m.shifts[s.UserID], s)
	return nil
}

func (m *Store) UpdateShift(_ context.Context, s timesheet.Shift) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	shifts := m.shifts[s.UserID]
	for i, existing := range shifts {
		if existing.ID == s.ID {
			s.CreatedAt = existing.CreatedAt
			shifts[i] = s
			return nil
		}
	}
	return timesheet.ErrShiftNotFound
}

func (m *Store) DeleteShift(_ context.Context, userID, shiftID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	shifts := m.shifts[userID]
	for i, existing := range shifts {
		if existing.ID == shiftID {
			m.shifts[userID] = append(shifts[:i], shifts[i+1:]...)
			return nil
		}
	}
	return timesheet.ErrShiftNotFound
}

func (m *Store) GetShift(_ context.Context, userID, shiftID string) (*timesheet.Shift, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, s := range m.shifts[userID] {
		if s.ID == shiftID {
			return &s, nil
		}
	}
	return nil, nil
}

func (m *Store) ShiftsInRange(_ context.Context, userID string, from, to timecalc.Date) ([]timesheet.Shift, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []timesheet.Shift
	for _, s := range m.shifts[userID] {
		if s.Date.Before(from) || s.Date.After(to) {
			continue
		}
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out, nil
}

// -----------------------------------------------------------------------------
// Non-accounting ranges
// -----------------------------------------------------------------------------

func (m *Store) SaveRange(_ context.Context, r timesheet.NonAccountingDay) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.ranges[r.UserID] {
		if existing.ID == r.ID {
			return timesheet.ErrDuplicateID
		}
	}
	m.ranges[r.UserID] = append(m.ranges[r.UserID], r)
	return nil
}

func (m *Store) DeleteRange(_ context.Context, userID, rangeID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	ranges := m.ranges[userID]
	for i, existing := range ranges {
		if existing.ID == rangeID {
			m.ranges[userID] = append(ranges[:i], ranges[i+1:]...)
			return nil
		}
	}
	return timesheet.ErrRangeNotFound
}

func (m *Store) RangesIntersecting(_ context.Context, userID string, from, to timecalc.Date) ([]timesheet.NonAccountingDay, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []timesheet.NonAccountingDay
	for _, r := range m.ranges[userID] {
		if r.End.Before(from) || r.Start.After(to) {
			continue
		}
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Start.Before(out[j].Start) })
	return out, nil
}
