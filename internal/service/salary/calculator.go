package salary

import (
	"context"
	"fmt"

	"github.com/cmlabs-hris/hris-payroll-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hris-payroll-go/internal/domain/leave"
	"github.com/cmlabs-hris/hris-payroll-go/internal/domain/salary"
	"github.com/shopspring/decimal"
)

var half = decimal.NewFromFloat(0.5)

// roundMoney rounds half-up to 2 decimals. Amounts here are never negative,
// so decimal's half-away-from-zero rounding is the same thing.
func roundMoney(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

// PerDayRate is monthlySalary / workingDays rounded to 2 decimals; 0 when there are no working days.
func PerDayRate(monthlySalary decimal.Decimal, workingDays int) decimal.Decimal {
	if workingDays <= 0 {
		return decimal.Zero
	}
	return roundMoney(monthlySalary.Div(decimal.NewFromInt(int64(workingDays))))
}

// Compute derives the salary breakdown for one employee and month from the
// ledgers already read for that month. It performs no I/O.
//
// Absence is never recorded: any part of a working day not covered by
// attendance or paid leave is counted as unpaid.
func Compute(
	monthlySalary decimal.Decimal,
	period salary.Period,
	cal Calendar,
	attendances []attendance.Attendance,
	leaves []leave.LeaveRequest,
) salary.Breakdown {
	start, end := period.Start(), period.End()

	var b salary.Breakdown
	b.WorkingDays = cal.WorkingDays(period)
	b.PerDayRate = PerDayRate(monthlySalary, b.WorkingDays)

	for _, a := range attendances {
		d := dateOnly(a.Date)
		if d.Before(start) || d.After(end) {
			continue
		}
		switch {
		case a.CountsAsHalfDay():
			b.HalfDayCount++
		case a.CountsAsFullDay():
			b.FullDayCount++
		}
	}

	for _, l := range leaves {
		if l.Status != leave.StatusApproved || !l.IsPaid || !l.Overlaps(start, end) {
			continue
		}
		from, to := dateOnly(l.FromDate), dateOnly(l.ToDate)
		if from.Before(start) {
			from = start
		}
		if to.After(end) {
			to = end
		}
		b.PaidLeaveDays += cal.WorkingDaysBetween(from, to)
	}

	b.PayableDays = decimal.NewFromInt(int64(b.FullDayCount)).
		Add(decimal.NewFromInt(int64(b.HalfDayCount)).Mul(half)).
		Add(decimal.NewFromInt(int64(b.PaidLeaveDays)))
	b.CalculatedSalary = roundMoney(b.PerDayRate.Mul(b.PayableDays))
	// an exactly covered month pays the salary itself, not the rounded rate times days
	if b.WorkingDays > 0 && b.PayableDays.Equal(decimal.NewFromInt(int64(b.WorkingDays))) {
		b.CalculatedSalary = roundMoney(monthlySalary)
	}

	// the uncovered half of a half day is unpaid
	b.UnpaidLeaveDays = decimal.Max(decimal.Zero, decimal.NewFromInt(int64(b.WorkingDays)).Sub(b.PayableDays))

	return b
}

// Engine reads the attendance and leave ledgers and runs Compute.
type Engine struct {
	attendanceRepo attendance.AttendanceRepository
	leaveRepo      leave.LeaveRequestRepository
}

func NewEngine(attendanceRepo attendance.AttendanceRepository, leaveRepo leave.LeaveRequestRepository) *Engine {
	return &Engine{
		attendanceRepo: attendanceRepo,
		leaveRepo:      leaveRepo,
	}
}

func (e *Engine) Calculate(
	ctx context.Context,
	companyID string,
	employeeID string,
	monthlySalary decimal.Decimal,
	period salary.Period,
	cal Calendar,
) (salary.Breakdown, error) {
	start, end := period.Start(), period.End()

	attendances, err := e.attendanceRepo.ListApprovedBetween(ctx, employeeID, companyID, start, end)
	if err != nil {
		return salary.Breakdown{}, fmt.Errorf("failed to read attendance: %w", err)
	}

	leaves, err := e.leaveRepo.ListApprovedPaidOverlapping(ctx, employeeID, companyID, start, end)
	if err != nil {
		return salary.Breakdown{}, fmt.Errorf("failed to read leave requests: %w", err)
	}

	return Compute(monthlySalary, period, cal, attendances, leaves), nil
}
