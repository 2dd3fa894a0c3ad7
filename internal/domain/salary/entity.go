package salary

import (
	"time"

	"github.com/shopspring/decimal"
)

// Status of a monthly salary record. Transitions only move forward:
// Draft -> Approved -> Paid.
type Status string

const (
	StatusDraft    Status = "Draft"
	StatusApproved Status = "Approved"
	StatusPaid     Status = "Paid"
)

// Profile - per-employee compensation. One per employee, upserted.
type Profile struct {
	ID            string
	CompanyID     string
	EmployeeID    string
	MonthlySalary decimal.Decimal
	EffectiveFrom time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Breakdown - result of the salary calculation for one employee and month
type Breakdown struct {
	WorkingDays      int
	FullDayCount     int
	HalfDayCount     int
	PaidLeaveDays    int
	UnpaidLeaveDays  decimal.Decimal
	PayableDays      decimal.Decimal
	PerDayRate       decimal.Decimal
	CalculatedSalary decimal.Decimal
}

// PresentDays is the full-day equivalent of attendance (half days count 0.5).
func (b Breakdown) PresentDays() decimal.Decimal {
	return decimal.NewFromInt(int64(b.FullDayCount)).
		Add(decimal.NewFromInt(int64(b.HalfDayCount)).Mul(decimal.NewFromFloat(0.5)))
}

// MonthlySalary - persisted salary for (employee, month, year). Month is 0-indexed.
type MonthlySalary struct {
	ID                   string
	CompanyID            string
	EmployeeID           string
	Month                int
	Year                 int
	MonthlyBase          decimal.Decimal
	Breakdown            Breakdown
	Status               Status
	ApprovedAt           *time.Time
	ApprovedBy           *string
	PaidAt               *time.Time
	PaymentMethod        *string
	TransactionReference *string
	CreatedAt            time.Time
	UpdatedAt            time.Time

	// Joined fields
	EmployeeName *string
	EmployeeCode *string
}

func (m MonthlySalary) Period() Period {
	return Period{Month: m.Month, Year: m.Year}
}

// Payment - data recorded by the Approved -> Paid transition
type Payment struct {
	PaidAt               time.Time
	PaymentMethod        *string
	TransactionReference *string
}
