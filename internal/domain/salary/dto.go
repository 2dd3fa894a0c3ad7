package salary

import (
	"time"

	"github.com/cmlabs-hris/hris-payroll-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

// ========== GENERATION DTOs ==========

// Month is 0-indexed (0 = January); pointers keep 0 distinguishable from absent.
type GenerateBatchRequest struct {
	Month           *int `json:"month" validate:"required,gte=0,lte=11"`
	Year            *int `json:"year" validate:"required,gte=2000,lte=9999"`
	BypassDateCheck bool `json:"bypassDateCheck,omitempty"`
}

func (r *GenerateBatchRequest) Validate() error {
	return validator.Struct(r).Err()
}

// Period returns the requested month. Call after Validate.
func (r *GenerateBatchRequest) Period() Period {
	return Period{Month: *r.Month, Year: *r.Year}
}

type GenerateBatchResponse struct {
	Month          int               `json:"month"`
	Year           int               `json:"year"`
	GeneratedCount int               `json:"generatedCount"`
	Errors         []GenerationError `json:"errors"`
}

type ListPeriodRequest struct {
	Month *int `json:"month" validate:"required,gte=0,lte=11"`
	Year  *int `json:"year" validate:"required,gte=2000,lte=9999"`
}

func (r *ListPeriodRequest) Validate() error {
	return validator.Struct(r).Err()
}

func (r *ListPeriodRequest) Period() Period {
	return Period{Month: *r.Month, Year: *r.Year}
}

type GenerateIndividualRequest struct {
	EmployeeID string `json:"employeeId" validate:"required,uuid"`
	Month      *int   `json:"month" validate:"required,gte=0,lte=11"`
	Year       *int   `json:"year" validate:"required,gte=2000,lte=9999"`
	Preview    bool   `json:"preview"`
}

func (r *GenerateIndividualRequest) Validate() error {
	return validator.Struct(r).Err()
}

func (r *GenerateIndividualRequest) Period() Period {
	return Period{Month: *r.Month, Year: *r.Year}
}

// ========== LIFECYCLE DTOs ==========

type ApproveRequest struct {
	SalaryID string `json:"salaryId" validate:"required,uuid"`
}

func (r *ApproveRequest) Validate() error {
	return validator.Struct(r).Err()
}

type PayRequest struct {
	SalaryID             string  `json:"salaryId" validate:"required,uuid"`
	PaymentDate          *string `json:"paymentDate,omitempty"`
	PaymentMethod        *string `json:"paymentMethod,omitempty" validate:"omitempty,max=50"`
	TransactionReference *string `json:"transactionReference,omitempty" validate:"omitempty,max=100"`
}

func (r *PayRequest) Validate() error {
	errs := validator.Struct(r)

	if r.PaymentDate != nil {
		if _, ok := parsePaymentDate(*r.PaymentDate); !ok {
			errs.Add("paymentDate", "must be YYYY-MM-DD or an RFC3339 timestamp")
		}
	}

	return errs.Err()
}

// PaidAt returns the payment date, or now when none was given. Call after Validate.
func (r *PayRequest) PaidAt(now time.Time) time.Time {
	if r.PaymentDate == nil {
		return now
	}
	t, _ := parsePaymentDate(*r.PaymentDate)
	return t
}

func parsePaymentDate(s string) (time.Time, bool) {
	if t, ok := validator.IsValidDate(s); ok {
		return t, true
	}
	return validator.IsValidDateTime(s)
}

// ========== PROFILE DTOs ==========

type UpsertProfileRequest struct {
	EmployeeID    string          `json:"-" validate:"required,uuid"`
	MonthlySalary decimal.Decimal `json:"monthlySalary"`
	EffectiveFrom string          `json:"effectiveFrom" validate:"omitempty,datetime=2006-01-02"`
}

func (r *UpsertProfileRequest) Validate() error {
	errs := validator.Struct(r)

	if !r.MonthlySalary.IsPositive() {
		errs.Add("monthlySalary", "must be greater than 0")
	}
	if !r.MonthlySalary.Equal(r.MonthlySalary.Round(2)) {
		errs.Add("monthlySalary", "must have at most 2 decimal places")
	}

	return errs.Err()
}

type ProfileResponse struct {
	EmployeeID    string          `json:"employeeId"`
	MonthlySalary decimal.Decimal `json:"monthlySalary"`
	EffectiveFrom string          `json:"effectiveFrom"`
	UpdatedAt     time.Time       `json:"updatedAt"`
}

func NewProfileResponse(p Profile) ProfileResponse {
	return ProfileResponse{
		EmployeeID:    p.EmployeeID,
		MonthlySalary: p.MonthlySalary,
		EffectiveFrom: p.EffectiveFrom.Format(validator.DateLayout),
		UpdatedAt:     p.UpdatedAt,
	}
}

// ========== RECORD DTOs ==========

type MonthlySalaryResponse struct {
	ID                   string          `json:"id,omitempty"`
	EmployeeID           string          `json:"employeeId"`
	EmployeeName         *string         `json:"employeeName,omitempty"`
	EmployeeCode         *string         `json:"employeeCode,omitempty"`
	Month                int             `json:"month"`
	Year                 int             `json:"year"`
	MonthlySalary        decimal.Decimal `json:"monthlySalary"`
	WorkingDays          int             `json:"workingDays"`
	FullDays             int             `json:"fullDays"`
	PresentDays          decimal.Decimal `json:"presentDays"`
	HalfDays             int             `json:"halfDays"`
	PaidLeaveDays        int             `json:"paidLeaveDays"`
	UnpaidLeaveDays      decimal.Decimal `json:"unpaidLeaveDays"`
	PayableDays          decimal.Decimal `json:"payableDays"`
	PerDayRate           decimal.Decimal `json:"perDayRate"`
	CalculatedSalary     decimal.Decimal `json:"calculatedSalary"`
	Status               string          `json:"status,omitempty"`
	Preview              bool            `json:"preview"`
	ApprovedAt           *time.Time      `json:"approvedAt,omitempty"`
	PaidAt               *time.Time      `json:"paidAt,omitempty"`
	PaymentMethod        *string         `json:"paymentMethod,omitempty"`
	TransactionReference *string         `json:"transactionReference,omitempty"`
}

func NewMonthlySalaryResponse(m MonthlySalary) MonthlySalaryResponse {
	b := m.Breakdown
	return MonthlySalaryResponse{
		ID:                   m.ID,
		EmployeeID:           m.EmployeeID,
		EmployeeName:         m.EmployeeName,
		EmployeeCode:         m.EmployeeCode,
		Month:                m.Month,
		Year:                 m.Year,
		MonthlySalary:        m.MonthlyBase,
		WorkingDays:          b.WorkingDays,
		FullDays:             b.FullDayCount,
		PresentDays:          b.PresentDays(),
		HalfDays:             b.HalfDayCount,
		PaidLeaveDays:        b.PaidLeaveDays,
		UnpaidLeaveDays:      b.UnpaidLeaveDays,
		PayableDays:          b.PayableDays,
		PerDayRate:           b.PerDayRate,
		CalculatedSalary:     b.CalculatedSalary,
		Status:               string(m.Status),
		ApprovedAt:           m.ApprovedAt,
		PaidAt:               m.PaidAt,
		PaymentMethod:        m.PaymentMethod,
		TransactionReference: m.TransactionReference,
	}
}
