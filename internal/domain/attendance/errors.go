package attendance

import (
	"errors"
	"fmt"
)

// Attendance domain errors
var (
	// Check-in errors
	ErrAlreadyCheckedIn  = errors.New("you have already checked in today")
	ErrNotCheckedIn      = errors.New("you have not checked in yet")
	ErrAlreadyCheckedOut = errors.New("you have already checked out")

	// General errors
	ErrAttendanceNotFound = errors.New("attendance record not found")
	ErrAlreadyResolved    = errors.New("attendance has already been approved or rejected")

	// Approval errors
	ErrLeaveConflict = errors.New("employee has approved leave on this date")
)

// AlreadyResolvedError carries the status a record was already resolved to.
type AlreadyResolvedError struct {
	Current Status
}

func (e *AlreadyResolvedError) Error() string {
	return fmt.Sprintf("attendance is already %s. Action is final", e.Current)
}

func (e *AlreadyResolvedError) Is(target error) bool {
	return target == ErrAlreadyResolved
}
