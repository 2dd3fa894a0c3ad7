package response

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/hris-payroll-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hris-payroll-go/internal/domain/auth"
	"github.com/cmlabs-hris/hris-payroll-go/internal/domain/employee"
	"github.com/cmlabs-hris/hris-payroll-go/internal/domain/holiday"
	"github.com/cmlabs-hris/hris-payroll-go/internal/domain/leave"
	"github.com/cmlabs-hris/hris-payroll-go/internal/domain/salary"
	"github.com/cmlabs-hris/hris-payroll-go/internal/pkg/validator"
)

// Error codes beyond the generic HTTP ones
const (
	CodeAlreadyResolved     = "ALREADY_RESOLVED"
	CodeInvalidState        = "INVALID_STATE"
	CodeDuplicateGeneration = "DUPLICATE_GENERATION"
	CodeTimingGate          = "TIMING_GATE"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Auth domain errors
	case errors.Is(err, auth.ErrInvalidToken):
		Unauthorized(w, err.Error())
	case errors.Is(err, auth.ErrCompanyIDRequired),
		errors.Is(err, auth.ErrEmployeeIDRequired),
		errors.Is(err, auth.ErrManagerAccessRequired):
		Forbidden(w, err.Error())

	// Not found
	case errors.Is(err, employee.ErrEmployeeNotFound),
		errors.Is(err, salary.ErrSalaryNotFound),
		errors.Is(err, salary.ErrProfileNotFound),
		errors.Is(err, attendance.ErrAttendanceNotFound),
		errors.Is(err, leave.ErrLeaveRequestNotFound),
		errors.Is(err, holiday.ErrHolidayNotFound):
		NotFound(w, err.Error())

	// One-shot approvals
	case errors.Is(err, attendance.ErrAlreadyResolved),
		errors.Is(err, leave.ErrAlreadyResolved):
		ErrorWithCode(w, http.StatusBadRequest, CodeAlreadyResolved, err.Error())

	// Salary lifecycle
	case errors.Is(err, salary.ErrAlreadyApproved),
		errors.Is(err, salary.ErrNotApproved):
		ErrorWithCode(w, http.StatusBadRequest, CodeInvalidState, err.Error())
	case errors.Is(err, salary.ErrDuplicateGeneration):
		ErrorWithCode(w, http.StatusBadRequest, CodeDuplicateGeneration, err.Error())
	case errors.Is(err, salary.ErrTimingGate):
		ErrorWithCode(w, http.StatusBadRequest, CodeTimingGate, err.Error())
	case errors.Is(err, salary.ErrGenerationInProgress):
		Conflict(w, err.Error())

	// Leave and attendance conflicts
	case errors.Is(err, leave.ErrAttendanceConflict),
		errors.Is(err, leave.ErrOverlappingLeave),
		errors.Is(err, leave.ErrAttendanceOnDates),
		errors.Is(err, attendance.ErrLeaveConflict),
		errors.Is(err, attendance.ErrAlreadyCheckedIn):
		Conflict(w, err.Error())
	case errors.Is(err, attendance.ErrNotCheckedIn),
		errors.Is(err, attendance.ErrAlreadyCheckedOut):
		BadRequest(w, err.Error(), nil)

	// Default
	default:
		slog.Error("Unhandled error", "error", err)
		InternalServerError(w, err.Error())
	}
}
