package salary

import (
	"fmt"
	"time"
)

// Period is a calendar month. Month is 0-indexed (0 = January).
type Period struct {
	Month int
	Year  int
}

func (p Period) Valid() bool {
	return p.Month >= 0 && p.Month <= 11 && p.Year >= 2000 && p.Year <= 9999
}

// Start is the first day of the month at 00:00 UTC.
func (p Period) Start() time.Time {
	return time.Date(p.Year, time.Month(p.Month+1), 1, 0, 0, 0, 0, time.UTC)
}

// End is the last day of the month at 00:00 UTC (day 0 of the next month).
func (p Period) End() time.Time {
	return time.Date(p.Year, time.Month(p.Month+2), 0, 0, 0, 0, 0, time.UTC)
}

func (p Period) DaysInMonth() int {
	return p.End().Day()
}

// GenerationOpensAt is 00:00 on the given day of the following month in loc.
func (p Period) GenerationOpensAt(day int, loc *time.Location) time.Time {
	return time.Date(p.Year, time.Month(p.Month+2), day, 0, 0, 0, 0, loc)
}

// Previous returns the month before p.
func (p Period) Previous() Period {
	start := p.Start().AddDate(0, -1, 0)
	return Period{Month: int(start.Month()) - 1, Year: start.Year()}
}

// PeriodOf returns the period containing t.
func PeriodOf(t time.Time) Period {
	return Period{Month: int(t.Month()) - 1, Year: t.Year()}
}

func (p Period) String() string {
	return fmt.Sprintf("%s %d", time.Month(p.Month+1), p.Year)
}
