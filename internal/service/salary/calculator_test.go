package salary

import (
	"testing"
	"time"

	"github.com/cmlabs-hris/hris-payroll-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hris-payroll-go/internal/domain/holiday"
	"github.com/cmlabs-hris/hris-payroll-go/internal/domain/leave"
	"github.com/cmlabs-hris/hris-payroll-go/internal/domain/salary"
	"github.com/cmlabs-hris/hris-payroll-go/internal/domain/worksettings"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// April 2024 starts on a Monday; with Saturday and Sunday off it has 22 working days.
var april2024 = salary.Period{Month: 3, Year: 2024}

func day(year int, month time.Month, d int) time.Time {
	return time.Date(year, month, d, 0, 0, 0, 0, time.UTC)
}

func weekdaysOff(offs ...int) worksettings.WorkSettings {
	return worksettings.WorkSettings{WeeklyOffs: offs}
}

func approved(date time.Time, t attendance.AttendanceType) attendance.Attendance {
	return attendance.Attendance{
		Date:    date,
		Type:    t,
		HalfDay: attendance.IsHalfDay(t, nil),
		Status:  attendance.StatusApproved,
	}
}

// workingDates lists the working days of the period in order.
func workingDates(cal Calendar, p salary.Period) []time.Time {
	var dates []time.Time
	for d := p.Start(); !d.After(p.End()); d = d.AddDate(0, 0, 1) {
		if cal.IsWorkingDay(d) {
			dates = append(dates, d)
		}
	}
	return dates
}

func TestCalendar_WorkingDays(t *testing.T) {
	jan2024 := salary.Period{Month: 0, Year: 2024}

	tests := []struct {
		name     string
		settings worksettings.WorkSettings
		holidays []holiday.Holiday
		period   salary.Period
		want     int
	}{
		{
			name:     "sundays off by default",
			settings: worksettings.WorkSettings{},
			period:   jan2024,
			want:     27,
		},
		{
			name:     "holiday on a working day",
			settings: weekdaysOff(0),
			holidays: []holiday.Holiday{{Date: day(2024, time.January, 1)}},
			period:   jan2024,
			want:     26,
		},
		{
			name:     "holiday on a weekly off is not subtracted twice",
			settings: weekdaysOff(0),
			holidays: []holiday.Holiday{{Date: day(2024, time.January, 7)}},
			period:   jan2024,
			want:     27,
		},
		{
			name:     "holiday outside the month is ignored",
			settings: weekdaysOff(0),
			holidays: []holiday.Holiday{{Date: day(2023, time.December, 31)}, {Date: day(2024, time.February, 1)}},
			period:   jan2024,
			want:     27,
		},
		{
			name:     "duplicate holiday rows count once",
			settings: weekdaysOff(0),
			holidays: []holiday.Holiday{{Date: day(2024, time.January, 1)}, {Date: day(2024, time.January, 1)}},
			period:   jan2024,
			want:     26,
		},
		{
			name:     "saturday and sunday off",
			settings: weekdaysOff(0, 6),
			period:   april2024,
			want:     22,
		},
		{
			name:     "leap february",
			settings: weekdaysOff(0),
			period:   salary.Period{Month: 1, Year: 2024},
			want:     25,
		},
		{
			name:     "empty weekly offs is a seven-day week",
			settings: worksettings.WorkSettings{WeeklyOffs: []int{}},
			period:   jan2024,
			want:     31,
		},
		{
			name:     "every day off",
			settings: weekdaysOff(0, 1, 2, 3, 4, 5, 6),
			period:   jan2024,
			want:     0,
		},
		{
			name:     "out of range weekday is ignored",
			settings: weekdaysOff(0, 9),
			period:   jan2024,
			want:     27,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cal := NewCalendar(tt.settings, tt.holidays)
			got := cal.WorkingDays(tt.period)
			assert.Equal(t, tt.want, got)
			assert.GreaterOrEqual(t, got, 0)
			assert.LessOrEqual(t, got, tt.period.DaysInMonth())
		})
	}
}

func TestCalendar_IgnoresTimeOfDay(t *testing.T) {
	cal := NewCalendar(weekdaysOff(0), []holiday.Holiday{
		{Date: time.Date(2024, time.January, 1, 17, 30, 0, 0, time.UTC)},
	})

	assert.Equal(t, 26, cal.WorkingDays(salary.Period{Month: 0, Year: 2024}))
	assert.Equal(t, 4, cal.WorkingDaysBetween(
		time.Date(2024, time.January, 1, 23, 0, 0, 0, time.UTC),
		time.Date(2024, time.January, 5, 1, 0, 0, 0, time.UTC),
	))
}

func TestPerDayRate(t *testing.T) {
	tests := []struct {
		salary      string
		workingDays int
		want        string
	}{
		{"50000", 25, "2000.00"},
		{"50000", 26, "1923.08"},
		{"30000", 22, "1363.64"},
		{"10000", 3, "3333.33"},
		{"0.05", 10, "0.01"},
		{"50000", 0, "0.00"},
	}

	for _, tt := range tests {
		got := PerDayRate(decimal.RequireFromString(tt.salary), tt.workingDays)
		assert.Equal(t, tt.want, got.StringFixed(2), "%s / %d", tt.salary, tt.workingDays)
	}
}

func TestCompute_FullMonth(t *testing.T) {
	cal := NewCalendar(weekdaysOff(0, 6), nil)

	var records []attendance.Attendance
	for _, d := range workingDates(cal, april2024) {
		records = append(records, approved(d, attendance.TypePresent))
	}
	require.Len(t, records, 22)

	b := Compute(decimal.RequireFromString("30000"), april2024, cal, records, nil)

	assert.Equal(t, 22, b.WorkingDays)
	assert.Equal(t, 22, b.FullDayCount)
	assert.Equal(t, "1363.64", b.PerDayRate.StringFixed(2))
	assert.Equal(t, "30000.00", b.CalculatedSalary.StringFixed(2))
	assert.True(t, b.UnpaidLeaveDays.IsZero())
}

func TestCompute_HalfDays(t *testing.T) {
	cal := NewCalendar(weekdaysOff(0, 6), nil)
	dates := workingDates(cal, april2024)

	var records []attendance.Attendance
	for _, d := range dates[:20] {
		records = append(records, approved(d, attendance.TypeWFH))
	}
	records = append(records,
		approved(dates[20], attendance.TypeHalfDay),
		// legacy rows flag the half day on a Present record
		attendance.Attendance{Date: dates[21], Type: attendance.TypePresent, HalfDay: true, Status: attendance.StatusApproved},
	)

	b := Compute(decimal.RequireFromString("30000"), april2024, cal, records, nil)

	assert.Equal(t, 20, b.FullDayCount)
	assert.Equal(t, 2, b.HalfDayCount)
	assert.Equal(t, "21", b.PayableDays.String())
	assert.Equal(t, "1", b.UnpaidLeaveDays.String())
	assert.Equal(t, "28636.44", b.CalculatedSalary.StringFixed(2))
}

func TestCompute_IgnoresUnapprovedAndOutOfMonthAttendance(t *testing.T) {
	cal := NewCalendar(weekdaysOff(0, 6), nil)

	records := []attendance.Attendance{
		approved(day(2024, time.April, 1), attendance.TypePresent),
		{Date: day(2024, time.April, 2), Type: attendance.TypePresent, Status: attendance.StatusPending},
		{Date: day(2024, time.April, 3), Type: attendance.TypePresent, Status: attendance.StatusRejected},
		{Date: day(2024, time.April, 4), Type: attendance.TypeLeave, Status: attendance.StatusApproved},
		approved(day(2024, time.March, 29), attendance.TypePresent),
		approved(day(2024, time.May, 1), attendance.TypePresent),
	}

	b := Compute(decimal.RequireFromString("22000"), april2024, cal, records, nil)

	assert.Equal(t, 1, b.FullDayCount)
	assert.Equal(t, 0, b.HalfDayCount)
	assert.Equal(t, "1000.00", b.CalculatedSalary.StringFixed(2))
	assert.Equal(t, "21", b.UnpaidLeaveDays.String())
}

func TestCompute_PaidLeave(t *testing.T) {
	cal := NewCalendar(weekdaysOff(0, 6), []holiday.Holiday{{Date: day(2024, time.April, 10)}})

	leaves := []leave.LeaveRequest{
		// clipped to April 1..3
		{FromDate: day(2024, time.March, 28), ToDate: day(2024, time.April, 3), IsPaid: true, Status: leave.StatusApproved},
		// April 8..12 minus the holiday on the 10th
		{FromDate: day(2024, time.April, 8), ToDate: day(2024, time.April, 12), IsPaid: true, Status: leave.StatusApproved},
		// weekend only
		{FromDate: day(2024, time.April, 13), ToDate: day(2024, time.April, 14), IsPaid: true, Status: leave.StatusApproved},
		{FromDate: day(2024, time.April, 15), ToDate: day(2024, time.April, 16), IsPaid: false, Status: leave.StatusApproved},
		{FromDate: day(2024, time.April, 17), ToDate: day(2024, time.April, 17), IsPaid: true, Status: leave.StatusPending},
		// clipped to April 29..30
		{FromDate: day(2024, time.April, 29), ToDate: day(2024, time.May, 3), IsPaid: true, Status: leave.StatusApproved},
	}

	b := Compute(decimal.RequireFromString("42000"), april2024, cal, nil, leaves)

	assert.Equal(t, 21, b.WorkingDays)
	assert.Equal(t, 9, b.PaidLeaveDays)
	assert.Equal(t, "2000.00", b.PerDayRate.StringFixed(2))
	assert.Equal(t, "18000.00", b.CalculatedSalary.StringFixed(2))
	assert.Equal(t, "12", b.UnpaidLeaveDays.String())
}

func TestCompute_ClampsUnpaidDays(t *testing.T) {
	cal := NewCalendar(weekdaysOff(0, 6), nil)

	var records []attendance.Attendance
	for _, d := range workingDates(cal, april2024) {
		records = append(records, approved(d, attendance.TypePresent))
	}
	// contradictory legacy data: paid leave over attended days
	leaves := []leave.LeaveRequest{
		{FromDate: day(2024, time.April, 1), ToDate: day(2024, time.April, 2), IsPaid: true, Status: leave.StatusApproved},
	}

	b := Compute(decimal.RequireFromString("30000"), april2024, cal, records, leaves)

	assert.Equal(t, "24", b.PayableDays.String())
	assert.True(t, b.UnpaidLeaveDays.IsZero())
	// over-covered months are paid per day, the monthly salary only caps exact coverage
	assert.Equal(t, "1363.64", b.PerDayRate.StringFixed(2))
	assert.Equal(t, "32727.36", b.CalculatedSalary.StringFixed(2))
}

func TestCompute_NoWorkingDays(t *testing.T) {
	cal := NewCalendar(weekdaysOff(0, 1, 2, 3, 4, 5, 6), nil)

	b := Compute(decimal.RequireFromString("30000"), april2024, cal,
		[]attendance.Attendance{approved(day(2024, time.April, 1), attendance.TypePresent)}, nil)

	assert.Equal(t, 0, b.WorkingDays)
	assert.True(t, b.PerDayRate.IsZero())
	assert.True(t, b.CalculatedSalary.IsZero())
	assert.True(t, b.UnpaidLeaveDays.IsZero())
}

func TestCompute_PayableDaysConservation(t *testing.T) {
	cal := NewCalendar(weekdaysOff(0, 6), nil)
	dates := workingDates(cal, april2024)

	for full := 0; full <= 12; full += 3 {
		for halves := 0; halves <= 4; halves++ {
			for paid := 0; paid <= 5; paid += 5 {
				var records []attendance.Attendance
				for _, d := range dates[:full] {
					records = append(records, approved(d, attendance.TypePresent))
				}
				for _, d := range dates[full : full+halves] {
					records = append(records, approved(d, attendance.TypeHalfDay))
				}
				var leaves []leave.LeaveRequest
				if paid > 0 {
					leaves = append(leaves, leave.LeaveRequest{
						FromDate: dates[17], ToDate: dates[21], IsPaid: true, Status: leave.StatusApproved,
					})
				}

				b := Compute(decimal.RequireFromString("50000"), april2024, cal, records, leaves)

				covered := b.PayableDays.Add(b.UnpaidLeaveDays)
				assert.True(t, covered.Equal(decimal.NewFromInt(int64(b.WorkingDays))),
					"full=%d half=%d paid=%d: payable %s + unpaid %s != %d",
					full, halves, paid, b.PayableDays, b.UnpaidLeaveDays, b.WorkingDays)
			}
		}
	}
}
