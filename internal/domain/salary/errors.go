package salary

import (
	"errors"
	"fmt"
	"time"
)

var (
	ErrSalaryNotFound       = errors.New("salary record not found")
	ErrProfileNotFound      = errors.New("salary profile not found")
	ErrAlreadyApproved      = errors.New("salary is already approved")
	ErrNotApproved          = errors.New("salary must be approved before it can be paid")
	ErrDuplicateGeneration  = errors.New("salary already generated for this period")
	ErrTimingGate           = errors.New("salary generation is not open yet for this period")
	ErrGenerationInProgress = errors.New("salary generation for this period is already running")
)

// TimingGateError is returned when a batch is requested before MinDate.
type TimingGateError struct {
	Period  Period
	MinDate time.Time
}

func (e *TimingGateError) Error() string {
	return fmt.Sprintf("salary for %s can only be generated on or after %s",
		e.Period, e.MinDate.Format("2006-01-02"))
}

func (e *TimingGateError) Is(target error) bool {
	return target == ErrTimingGate
}

// AlreadyApprovedError carries the status that blocked approval.
type AlreadyApprovedError struct {
	Current Status
}

func (e *AlreadyApprovedError) Error() string {
	return fmt.Sprintf("salary is already %s", e.Current)
}

func (e *AlreadyApprovedError) Is(target error) bool {
	return target == ErrAlreadyApproved
}

// NotApprovedError carries the status that blocked payment.
type NotApprovedError struct {
	Current Status
}

func (e *NotApprovedError) Error() string {
	return fmt.Sprintf("salary is %s; only Approved salaries can be marked as paid", e.Current)
}

func (e *NotApprovedError) Is(target error) bool {
	return target == ErrNotApproved
}

// Batch error codes
const (
	GenerationErrAlreadyGenerated  = "ALREADY_GENERATED"
	GenerationErrCalculationFailed = "CALCULATION_FAILED"
)

// GenerationError is one employee's failure inside a batch run.
type GenerationError struct {
	EmployeeID string `json:"employeeId"`
	Code       string `json:"code"`
	Message    string `json:"message"`
}

func (e GenerationError) Error() string {
	return e.Message
}
