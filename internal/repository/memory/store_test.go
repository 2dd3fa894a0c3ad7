package memory

import (
	"context"
	"testing"

	"github.com/cmlabs-hris/hris-payroll-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hris-payroll-go/internal/domain/employee"
	"github.com/cmlabs-hris/hris-payroll-go/internal/domain/holiday"
	"github.com/cmlabs-hris/hris-payroll-go/internal/domain/leave"
	"github.com/cmlabs-hris/hris-payroll-go/internal/domain/salary"
	"github.com/cmlabs-hris/hris-payroll-go/internal/domain/worksettings"
	"github.com/cmlabs-hris/hris-payroll-go/internal/pkg/database"
)

// The in-memory repositories must stay drop-in replacements.
var (
	_ database.Transactor                 = (*Transactor)(nil)
	_ employee.EmployeeRepository         = (*EmployeeRepository)(nil)
	_ worksettings.WorkSettingsRepository = (*WorkSettingsRepository)(nil)
	_ holiday.HolidayRepository           = (*HolidayRepository)(nil)
	_ attendance.AttendanceRepository     = (*AttendanceRepository)(nil)
	_ leave.LeaveRequestRepository        = (*LeaveRequestRepository)(nil)
	_ salary.ProfileRepository            = (*ProfileRepository)(nil)
	_ salary.MonthlySalaryRepository      = (*MonthlySalaryRepository)(nil)
)

func TestTransactor_NestedCallsShareLocks(t *testing.T) {
	store := NewStore()
	tx := NewTransactor()

	err := tx.WithinTransaction(context.Background(), func(ctx context.Context) error {
		if err := store.lockEmployee(ctx, "emp-1"); err != nil {
			return err
		}
		return tx.WithinTransaction(ctx, func(ctx context.Context) error {
			return nil
		})
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// released at the end of the outer transaction
	err = tx.WithinTransaction(context.Background(), func(ctx context.Context) error {
		return store.lockEmployee(ctx, "emp-1")
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
