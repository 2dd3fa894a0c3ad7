package leave

import (
	"context"
)

type LeaveService interface {
	// CreateRequest files a Pending request for the authenticated employee.
	CreateRequest(ctx context.Context, req CreateLeaveRequest) (LeaveRequestResponse, error)

	GetRequest(ctx context.Context, id string) (LeaveRequestResponse, error)

	// UpdateStatus performs the one-shot Pending -> Approved/Rejected transition.
	UpdateStatus(ctx context.Context, req UpdateStatusRequest) (LeaveRequestResponse, error)
}
