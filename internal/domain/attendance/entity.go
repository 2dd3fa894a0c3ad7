package attendance

import (
	"time"
)

type AttendanceType string

const (
	TypePresent AttendanceType = "Present"
	TypeWFH     AttendanceType = "WFH"
	TypeHalfDay AttendanceType = "Half Day"
	TypeLeave   AttendanceType = "Leave"
)

type Status string

const (
	StatusPending  Status = "Pending"
	StatusApproved Status = "Approved"
	StatusRejected Status = "Rejected"
)

// Attendance is one employee's record for one calendar day.
// HalfDay is the normalized flag: see IsHalfDay.
type Attendance struct {
	ID         string
	CompanyID  string
	EmployeeID string
	Date       time.Time
	CheckIn    time.Time
	CheckOut   *time.Time
	Type       AttendanceType
	HalfDay    bool
	Status     Status
	ResolvedAt *time.Time
	ResolvedBy *string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// IsHalfDay folds the two stored representations of a half day into one.
// A NULL legacy flag counts as false.
func IsHalfDay(t AttendanceType, legacyFlag *bool) bool {
	if t == TypeHalfDay {
		return true
	}
	return legacyFlag != nil && *legacyFlag
}

// CountsAsFullDay reports an approved Present or WFH day that is not a half day.
func (a Attendance) CountsAsFullDay() bool {
	if a.Status != StatusApproved || a.HalfDay {
		return false
	}
	return a.Type == TypePresent || a.Type == TypeWFH
}

func (a Attendance) CountsAsHalfDay() bool {
	return a.Status == StatusApproved && a.HalfDay
}
