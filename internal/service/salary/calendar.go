package salary

import (
	"time"

	"github.com/cmlabs-hris/hris-payroll-go/internal/domain/holiday"
	"github.com/cmlabs-hris/hris-payroll-go/internal/domain/salary"
	"github.com/cmlabs-hris/hris-payroll-go/internal/domain/worksettings"
)

const dateKeyLayout = "2006-01-02"

// Calendar answers "is this a working day" from one snapshot of work settings
// and holidays. It is built once per calculation and passed down explicitly.
type Calendar struct {
	weeklyOffs map[time.Weekday]bool
	holidays   map[string]struct{}
}

func NewCalendar(settings worksettings.WorkSettings, holidays []holiday.Holiday) Calendar {
	c := Calendar{
		weeklyOffs: make(map[time.Weekday]bool, 7),
		holidays:   make(map[string]struct{}, len(holidays)),
	}
	for _, off := range settings.EffectiveWeeklyOffs() {
		if off >= 0 && off <= 6 {
			c.weeklyOffs[time.Weekday(off)] = true
		}
	}
	for _, h := range holidays {
		c.holidays[h.DateKey()] = struct{}{}
	}
	return c
}

func (c Calendar) IsWorkingDay(date time.Time) bool {
	if c.weeklyOffs[date.Weekday()] {
		return false
	}
	_, isHoliday := c.holidays[date.Format(dateKeyLayout)]
	return !isHoliday
}

// WorkingDays counts the working days of the month.
func (c Calendar) WorkingDays(period salary.Period) int {
	return c.WorkingDaysBetween(period.Start(), period.End())
}

// WorkingDaysBetween counts working days in [from, to] by calendar date.
func (c Calendar) WorkingDaysBetween(from, to time.Time) int {
	from = dateOnly(from)
	to = dateOnly(to)

	count := 0
	for d := from; !d.After(to); d = d.AddDate(0, 0, 1) {
		if c.IsWorkingDay(d) {
			count++
		}
	}
	return count
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
