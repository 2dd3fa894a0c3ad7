package attendance

import (
	"context"
	"time"
)

// AttendanceRepository defines data access methods for attendance records.
// All methods include companyID parameter to prevent cross-company data access.
type AttendanceRepository interface {
	// Create returns ErrAlreadyCheckedIn when the employee already has a record for the date.
	Create(ctx context.Context, attendance Attendance) (Attendance, error)

	GetByID(ctx context.Context, id string, companyID string) (Attendance, error)

	// GetByEmployeeAndDate returns ErrAttendanceNotFound when there is no record.
	GetByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time, companyID string) (Attendance, error)

	// SetCheckOut fills check_out once; returns ErrAlreadyCheckedOut when already set.
	SetCheckOut(ctx context.Context, id string, companyID string, checkOut time.Time) (Attendance, error)

	// LockEmployee serializes approvals for one employee until the
	// surrounding transaction ends.
	LockEmployee(ctx context.Context, employeeID string) error

	// Resolve moves a Pending record to status in a single conditional write.
	// Approval additionally requires that no Approved leave of the employee
	// covers the date, otherwise ErrLeaveConflict.
	// It returns ErrAttendanceNotFound or *AlreadyResolvedError when nothing was written.
	Resolve(ctx context.Context, id string, companyID string, status Status, resolvedBy string) (Attendance, error)

	// ListApprovedBetween returns approved records with date in [from, to].
	ListApprovedBetween(ctx context.Context, employeeID string, companyID string, from, to time.Time) ([]Attendance, error)

	// ExistsNonRejectedBetween reports any Pending or Approved record with date in [from, to].
	ExistsNonRejectedBetween(ctx context.Context, employeeID string, companyID string, from, to time.Time) (bool, error)
}
