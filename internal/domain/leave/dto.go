package leave

import (
	"time"

	"github.com/cmlabs-hris/hris-payroll-go/internal/pkg/validator"
)

type CreateLeaveRequest struct {
	FromDate  string `json:"fromDate" validate:"required,datetime=2006-01-02"`
	ToDate    string `json:"toDate" validate:"required,datetime=2006-01-02"`
	Reason    string `json:"reason" validate:"max=1000"`
	LeaveType string `json:"leaveType" validate:"required,max=50"`
}

func (r *CreateLeaveRequest) Validate() error {
	errs := validator.Struct(r)
	if len(errs) > 0 {
		return errs
	}

	from, _ := validator.IsValidDate(r.FromDate)
	to, _ := validator.IsValidDate(r.ToDate)
	if to.Before(from) {
		errs.Add("toDate", "must be on or after fromDate")
	}
	if to.Sub(from) > 366*24*time.Hour {
		errs.Add("toDate", "leave cannot span more than a year")
	}

	return errs.Err()
}

// Dates returns the parsed range. Call after Validate.
func (r *CreateLeaveRequest) Dates() (time.Time, time.Time) {
	from, _ := validator.IsValidDate(r.FromDate)
	to, _ := validator.IsValidDate(r.ToDate)
	return from, to
}

type UpdateStatusRequest struct {
	ID     string `json:"-" validate:"required,uuid"`
	Status string `json:"status" validate:"required,oneof=Approved Rejected"`
}

func (r *UpdateStatusRequest) Validate() error {
	return validator.Struct(r).Err()
}

type LeaveRequestResponse struct {
	ID         string     `json:"id"`
	EmployeeID string     `json:"employeeId"`
	FromDate   string     `json:"fromDate"`
	ToDate     string     `json:"toDate"`
	Reason     string     `json:"reason"`
	LeaveType  string     `json:"leaveType"`
	IsPaid     bool       `json:"isPaid"`
	Status     string     `json:"status"`
	ResolvedAt *time.Time `json:"resolvedAt,omitempty"`
	ResolvedBy *string    `json:"resolvedBy,omitempty"`
}

func NewLeaveRequestResponse(l LeaveRequest) LeaveRequestResponse {
	return LeaveRequestResponse{
		ID:         l.ID,
		EmployeeID: l.EmployeeID,
		FromDate:   l.FromDate.Format(validator.DateLayout),
		ToDate:     l.ToDate.Format(validator.DateLayout),
		Reason:     l.Reason,
		LeaveType:  l.LeaveType,
		IsPaid:     l.IsPaid,
		Status:     string(l.Status),
		ResolvedAt: l.ResolvedAt,
		ResolvedBy: l.ResolvedBy,
	}
}
