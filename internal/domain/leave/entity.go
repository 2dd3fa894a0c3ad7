package leave

import "time"

type Status string

const (
	StatusPending  Status = "Pending"
	StatusApproved Status = "Approved"
	StatusRejected Status = "Rejected"
)

// LeaveTypeUnpaid is the only leave type that is not paid.
const LeaveTypeUnpaid = "Unpaid"

// LeaveRequest covers FromDate..ToDate inclusive.
type LeaveRequest struct {
	ID         string
	CompanyID  string
	EmployeeID string
	FromDate   time.Time
	ToDate     time.Time
	Reason     string
	LeaveType  string
	IsPaid     bool
	Status     Status
	ResolvedAt *time.Time
	ResolvedBy *string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

func IsPaidLeaveType(leaveType string) bool {
	return leaveType != LeaveTypeUnpaid
}

// Overlaps reports whether the request intersects [from, to].
func (l LeaveRequest) Overlaps(from, to time.Time) bool {
	return !l.FromDate.After(to) && !l.ToDate.Before(from)
}
