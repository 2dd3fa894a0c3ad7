package leave

import (
	"errors"
	"fmt"
)

var (
	ErrLeaveRequestNotFound = errors.New("leave request not found")
	ErrAlreadyResolved      = errors.New("leave request already processed")
	ErrOverlappingLeave     = errors.New("leave request overlaps an existing leave request")
	ErrAttendanceOnDates    = errors.New("attendance already recorded within the requested dates")
	// ErrAttendanceConflict is returned when approving leave over an approved attendance day.
	ErrAttendanceConflict = errors.New("employee has approved attendance within the leave dates")
)

// AlreadyResolvedError carries the status a request was already resolved to.
type AlreadyResolvedError struct {
	Current Status
}

func (e *AlreadyResolvedError) Error() string {
	return fmt.Sprintf("leave request is already %s. Action is final", e.Current)
}

func (e *AlreadyResolvedError) Is(target error) bool {
	return target == ErrAlreadyResolved
}
