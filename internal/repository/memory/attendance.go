package memory

import (
	"context"
	"sort"
	"time"

	"github.com/cmlabs-hris/hris-payroll-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hris-payroll-go/internal/domain/leave"
)

type AttendanceRepository struct {
	store *Store
}

func NewAttendanceRepository(store *Store) *AttendanceRepository {
	return &AttendanceRepository{store: store}
}

// Seed stores a record as is, bypassing check-in rules.
func (r *AttendanceRepository) Seed(a attendance.Attendance) attendance.Attendance {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if a.ID == "" {
		a.ID = newID()
	}
	a.Date = dateOnly(a.Date)
	a.HalfDay = a.HalfDay || a.Type == attendance.TypeHalfDay
	r.store.attendances[a.ID] = a
	return a
}

func (r *AttendanceRepository) Create(_ context.Context, a attendance.Attendance) (attendance.Attendance, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	a.Date = dateOnly(a.Date)
	for _, existing := range r.store.attendances {
		if existing.EmployeeID == a.EmployeeID && existing.Date.Equal(a.Date) {
			return attendance.Attendance{}, attendance.ErrAlreadyCheckedIn
		}
	}

	now := r.store.now()
	a.ID = newID()
	a.CreatedAt = now
	a.UpdatedAt = now
	r.store.attendances[a.ID] = a
	return a, nil
}

func (r *AttendanceRepository) GetByID(_ context.Context, id string, companyID string) (attendance.Attendance, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	return r.get(id, companyID)
}

func (r *AttendanceRepository) get(id string, companyID string) (attendance.Attendance, error) {
	a, ok := r.store.attendances[id]
	if !ok || a.CompanyID != companyID {
		return attendance.Attendance{}, attendance.ErrAttendanceNotFound
	}
	return a, nil
}

func (r *AttendanceRepository) GetByEmployeeAndDate(_ context.Context, employeeID string, date time.Time, companyID string) (attendance.Attendance, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	date = dateOnly(date)
	for _, a := range r.store.attendances {
		if a.EmployeeID == employeeID && a.CompanyID == companyID && a.Date.Equal(date) {
			return a, nil
		}
	}
	return attendance.Attendance{}, attendance.ErrAttendanceNotFound
}

func (r *AttendanceRepository) SetCheckOut(_ context.Context, id string, companyID string, checkOut time.Time) (attendance.Attendance, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	a, err := r.get(id, companyID)
	if err != nil {
		return attendance.Attendance{}, err
	}
	if a.CheckOut != nil {
		return attendance.Attendance{}, attendance.ErrAlreadyCheckedOut
	}
	a.CheckOut = ptr(checkOut)
	a.UpdatedAt = r.store.now()
	r.store.attendances[id] = a
	return a, nil
}

func (r *AttendanceRepository) LockEmployee(ctx context.Context, employeeID string) error {
	return r.store.lockEmployee(ctx, employeeID)
}

func (r *AttendanceRepository) Resolve(_ context.Context, id string, companyID string, status attendance.Status, resolvedBy string) (attendance.Attendance, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	a, err := r.get(id, companyID)
	if err != nil {
		return attendance.Attendance{}, err
	}
	if a.Status != attendance.StatusPending {
		return attendance.Attendance{}, &attendance.AlreadyResolvedError{Current: a.Status}
	}

	if status == attendance.StatusApproved {
		for _, l := range r.store.leaves {
			if l.EmployeeID == a.EmployeeID && l.Status == leave.StatusApproved &&
				!a.Date.Before(l.FromDate) && !a.Date.After(l.ToDate) {
				return attendance.Attendance{}, attendance.ErrLeaveConflict
			}
		}
	}

	now := r.store.now()
	a.Status = status
	a.ResolvedAt = &now
	if resolvedBy != "" {
		a.ResolvedBy = ptr(resolvedBy)
	}
	a.UpdatedAt = now
	r.store.attendances[id] = a
	return a, nil
}

func (r *AttendanceRepository) ListApprovedBetween(_ context.Context, employeeID string, companyID string, from, to time.Time) ([]attendance.Attendance, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	from, to = dateOnly(from), dateOnly(to)

	var result []attendance.Attendance
	for _, a := range r.store.attendances {
		if a.EmployeeID == employeeID && a.CompanyID == companyID &&
			a.Status == attendance.StatusApproved &&
			!a.Date.Before(from) && !a.Date.After(to) {
			result = append(result, a)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Date.Before(result[j].Date) })
	return result, nil
}

func (r *AttendanceRepository) ExistsNonRejectedBetween(_ context.Context, employeeID string, companyID string, from, to time.Time) (bool, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	from, to = dateOnly(from), dateOnly(to)
	for _, a := range r.store.attendances {
		if a.EmployeeID == employeeID && a.CompanyID == companyID &&
			a.Status != attendance.StatusRejected &&
			!a.Date.Before(from) && !a.Date.After(to) {
			return true, nil
		}
	}
	return false, nil
}
