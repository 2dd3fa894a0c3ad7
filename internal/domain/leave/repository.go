package leave

import (
	"context"
	"time"
)

type LeaveRequestRepository interface {
	Create(ctx context.Context, req LeaveRequest) (LeaveRequest, error)
	GetByID(ctx context.Context, id string, companyID string) (LeaveRequest, error)

	// LockEmployee serializes leave creation and approvals for one employee
	// until the surrounding transaction ends.
	LockEmployee(ctx context.Context, employeeID string) error

	// ExistsNonRejectedOverlapping reports a Pending or Approved request intersecting [from, to].
	ExistsNonRejectedOverlapping(ctx context.Context, employeeID string, companyID string, from, to time.Time) (bool, error)

	// Resolve moves a Pending request to status in one conditional write.
	// Approval additionally requires that the employee has no Approved
	// attendance inside the request dates, otherwise ErrAttendanceConflict.
	// Returns ErrLeaveRequestNotFound or *AlreadyResolvedError when nothing was written.
	Resolve(ctx context.Context, id string, companyID string, status Status, resolvedBy string) (LeaveRequest, error)

	// ListApprovedPaidOverlapping returns approved paid requests intersecting [from, to].
	ListApprovedPaidOverlapping(ctx context.Context, employeeID string, companyID string, from, to time.Time) ([]LeaveRequest, error)
}
