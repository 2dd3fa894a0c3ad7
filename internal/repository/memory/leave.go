package memory

import (
	"context"
	"sort"
	"time"

	"github.com/cmlabs-hris/hris-payroll-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hris-payroll-go/internal/domain/leave"
)

type LeaveRequestRepository struct {
	store *Store
}

func NewLeaveRequestRepository(store *Store) *LeaveRequestRepository {
	return &LeaveRequestRepository{store: store}
}

// Seed stores a request as is, bypassing overlap rules.
func (r *LeaveRequestRepository) Seed(l leave.LeaveRequest) leave.LeaveRequest {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if l.ID == "" {
		l.ID = newID()
	}
	l.FromDate, l.ToDate = dateOnly(l.FromDate), dateOnly(l.ToDate)
	r.store.leaves[l.ID] = l
	return l
}

func (r *LeaveRequestRepository) Create(_ context.Context, l leave.LeaveRequest) (leave.LeaveRequest, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	now := r.store.now()
	l.ID = newID()
	l.FromDate, l.ToDate = dateOnly(l.FromDate), dateOnly(l.ToDate)
	l.CreatedAt = now
	l.UpdatedAt = now
	r.store.leaves[l.ID] = l
	return l, nil
}

func (r *LeaveRequestRepository) GetByID(_ context.Context, id string, companyID string) (leave.LeaveRequest, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	return r.get(id, companyID)
}

func (r *LeaveRequestRepository) get(id string, companyID string) (leave.LeaveRequest, error) {
	l, ok := r.store.leaves[id]
	if !ok || l.CompanyID != companyID {
		return leave.LeaveRequest{}, leave.ErrLeaveRequestNotFound
	}
	return l, nil
}

func (r *LeaveRequestRepository) LockEmployee(ctx context.Context, employeeID string) error {
	return r.store.lockEmployee(ctx, employeeID)
}

func (r *LeaveRequestRepository) ExistsNonRejectedOverlapping(_ context.Context, employeeID string, companyID string, from, to time.Time) (bool, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	from, to = dateOnly(from), dateOnly(to)
	for _, l := range r.store.leaves {
		if l.EmployeeID == employeeID && l.CompanyID == companyID &&
			l.Status != leave.StatusRejected && l.Overlaps(from, to) {
			return true, nil
		}
	}
	return false, nil
}

// Resolve checks the attendance ledger and writes under one store lock, as the
// single UPDATE statement does in PostgreSQL.
func (r *LeaveRequestRepository) Resolve(_ context.Context, id string, companyID string, status leave.Status, resolvedBy string) (leave.LeaveRequest, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	l, err := r.get(id, companyID)
	if err != nil {
		return leave.LeaveRequest{}, err
	}
	if l.Status != leave.StatusPending {
		return leave.LeaveRequest{}, &leave.AlreadyResolvedError{Current: l.Status}
	}

	if status == leave.StatusApproved {
		for _, a := range r.store.attendances {
			if a.EmployeeID == l.EmployeeID && a.Status == attendance.StatusApproved &&
				!a.Date.Before(l.FromDate) && !a.Date.After(l.ToDate) {
				return leave.LeaveRequest{}, leave.ErrAttendanceConflict
			}
		}
	}

	now := r.store.now()
	l.Status = status
	l.ResolvedAt = &now
	if resolvedBy != "" {
		l.ResolvedBy = ptr(resolvedBy)
	}
	l.UpdatedAt = now
	r.store.leaves[id] = l
	return l, nil
}

func (r *LeaveRequestRepository) ListApprovedPaidOverlapping(_ context.Context, employeeID string, companyID string, from, to time.Time) ([]leave.LeaveRequest, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	from, to = dateOnly(from), dateOnly(to)

	var result []leave.LeaveRequest
	for _, l := range r.store.leaves {
		if l.EmployeeID == employeeID && l.CompanyID == companyID &&
			l.Status == leave.StatusApproved && l.IsPaid && l.Overlaps(from, to) {
			result = append(result, l)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].FromDate.Before(result[j].FromDate) })
	return result, nil
}
