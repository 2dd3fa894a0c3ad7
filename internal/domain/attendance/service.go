package attendance

import (
	"context"
)

// AttendanceService defines business logic for attendance operations
type AttendanceService interface {
	// CheckIn creates today's record for the authenticated employee.
	CheckIn(ctx context.Context, req CheckInRequest) (AttendanceResponse, error)

	// CheckOut stamps check_out on today's record.
	CheckOut(ctx context.Context) (AttendanceResponse, error)

	GetAttendance(ctx context.Context, id string) (AttendanceResponse, error)

	// UpdateStatus performs the one-shot Pending -> Approved/Rejected transition.
	UpdateStatus(ctx context.Context, req UpdateStatusRequest) (AttendanceResponse, error)
}
