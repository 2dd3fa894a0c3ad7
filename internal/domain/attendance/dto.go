package attendance

import (
	"time"

	"github.com/cmlabs-hris/hris-payroll-go/internal/pkg/validator"
)

type CheckInRequest struct {
	Type string `json:"type" validate:"omitempty,oneof=Present WFH 'Half Day'"`
}

func (r *CheckInRequest) Validate() error {
	return validator.Struct(r).Err()
}

// AttendanceType defaults to Present.
func (r *CheckInRequest) AttendanceType() AttendanceType {
	if r.Type == "" {
		return TypePresent
	}
	return AttendanceType(r.Type)
}

type UpdateStatusRequest struct {
	ID     string `json:"-" validate:"required,uuid"`
	Status string `json:"status" validate:"required,oneof=Approved Rejected"`
}

func (r *UpdateStatusRequest) Validate() error {
	return validator.Struct(r).Err()
}

type AttendanceResponse struct {
	ID         string     `json:"id"`
	EmployeeID string     `json:"employeeId"`
	Date       string     `json:"date"`
	CheckIn    time.Time  `json:"checkIn"`
	CheckOut   *time.Time `json:"checkOut,omitempty"`
	Type       string     `json:"type"`
	IsHalfDay  bool       `json:"isHalfDay"`
	Status     string     `json:"status"`
	ResolvedAt *time.Time `json:"resolvedAt,omitempty"`
	ResolvedBy *string    `json:"resolvedBy,omitempty"`
}

func NewAttendanceResponse(a Attendance) AttendanceResponse {
	return AttendanceResponse{
		ID:         a.ID,
		EmployeeID: a.EmployeeID,
		Date:       a.Date.Format(validator.DateLayout),
		CheckIn:    a.CheckIn,
		CheckOut:   a.CheckOut,
		Type:       string(a.Type),
		IsHalfDay:  a.HalfDay,
		Status:     string(a.Status),
		ResolvedAt: a.ResolvedAt,
		ResolvedBy: a.ResolvedBy,
	}
}
