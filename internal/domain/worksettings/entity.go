package worksettings

import (
	"time"
)

const (
	DefaultShiftStartTime = "09:00"
)

// DefaultWeeklyOffs is Sunday only.
var DefaultWeeklyOffs = []int{0}

type WorkSettings struct {
	ID                 string
	CompanyID          string
	ShiftStartTime     string
	GracePeriodMinutes int
	WeeklyOffs         []int
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// Default returns the settings used when a company has none stored.
func Default(companyID string) WorkSettings {
	return WorkSettings{
		CompanyID:          companyID,
		ShiftStartTime:     DefaultShiftStartTime,
		GracePeriodMinutes: 0,
		WeeklyOffs:         append([]int(nil), DefaultWeeklyOffs...),
	}
}

// EffectiveWeeklyOffs falls back to DefaultWeeklyOffs only when the value was
// never set. An empty, non-nil slice is a seven-day work week.
func (s WorkSettings) EffectiveWeeklyOffs() []int {
	if s.WeeklyOffs == nil {
		return append([]int(nil), DefaultWeeklyOffs...)
	}
	return s.WeeklyOffs
}
