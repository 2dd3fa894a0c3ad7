// Package memory holds in-process repositories with the same atomic
// semantics as the PostgreSQL ones: unique keys, conditional transitions and
// per-employee locks. Service tests run against it.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/cmlabs-hris/hris-payroll-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hris-payroll-go/internal/domain/employee"
	"github.com/cmlabs-hris/hris-payroll-go/internal/domain/leave"
	"github.com/google/uuid"
)

// Store is the shared state behind every repository in this package.
type Store struct {
	mu  sync.Mutex
	now func() time.Time

	employees map[string]employee.Employee

	// attendance and leave share the store so leave approval can see attendance
	attendances map[string]attendance.Attendance
	leaves      map[string]leave.LeaveRequest

	employeeLocks sync.Map // employeeID -> *sync.Mutex
}

func NewStore() *Store {
	return &Store{
		now:         time.Now,
		employees:   make(map[string]employee.Employee),
		attendances: make(map[string]attendance.Attendance),
		leaves:      make(map[string]leave.LeaveRequest),
	}
}

func newID() string {
	return uuid.NewString()
}

type txKey struct{}

type txState struct {
	mu       sync.Mutex
	releases []func()
}

// Transactor groups calls like a database transaction. Writes are not rolled
// back; only employee locks are scoped to it.
type Transactor struct{}

func NewTransactor() *Transactor {
	return &Transactor{}
}

func (t *Transactor) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if _, ok := ctx.Value(txKey{}).(*txState); ok {
		return fn(ctx)
	}

	state := &txState{}
	defer func() {
		state.mu.Lock()
		defer state.mu.Unlock()
		for i := len(state.releases) - 1; i >= 0; i-- {
			state.releases[i]()
		}
	}()

	return fn(context.WithValue(ctx, txKey{}, state))
}

// lockEmployee blocks until the employee lock is free and holds it until the
// surrounding transaction ends. Outside a transaction it is a no-op.
func (s *Store) lockEmployee(ctx context.Context, employeeID string) error {
	state, ok := ctx.Value(txKey{}).(*txState)
	if !ok {
		return nil
	}

	m, _ := s.employeeLocks.LoadOrStore(employeeID, &sync.Mutex{})
	mu := m.(*sync.Mutex)
	mu.Lock()

	state.mu.Lock()
	state.releases = append(state.releases, mu.Unlock)
	state.mu.Unlock()
	return nil
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func ptr[T any](v T) *T {
	return &v
}
