package salary

import (
	"context"
	"time"
)

type ProfileRepository interface {
	// Upsert creates or overwrites the employee's profile.
	Upsert(ctx context.Context, profile Profile) (Profile, error)
	GetByEmployeeID(ctx context.Context, employeeID string, companyID string) (Profile, error)
	ListByCompany(ctx context.Context, companyID string) ([]Profile, error)
	// ListCompanyIDs returns every company with at least one profile.
	ListCompanyIDs(ctx context.Context) ([]string, error)
}

type MonthlySalaryRepository interface {
	// Create returns ErrDuplicateGeneration when (employee, month, year) exists.
	Create(ctx context.Context, record MonthlySalary) (MonthlySalary, error)
	GetByID(ctx context.Context, id string, companyID string) (MonthlySalary, error)
	GetByEmployeePeriod(ctx context.Context, employeeID string, period Period, companyID string) (MonthlySalary, error)
	ListByPeriod(ctx context.Context, companyID string, period Period) ([]MonthlySalary, error)

	// Approve moves a Draft record to Approved in one conditional write.
	// Returns ErrSalaryNotFound or *AlreadyApprovedError when nothing was written.
	Approve(ctx context.Context, id string, companyID string, approvedBy string, at time.Time) (MonthlySalary, error)

	// MarkPaid moves an Approved record to Paid in one conditional write.
	// Returns ErrSalaryNotFound or *NotApprovedError when nothing was written.
	MarkPaid(ctx context.Context, id string, companyID string, payment Payment) (MonthlySalary, error)
}
