package holiday

import "time"

type HolidayType string

const (
	HolidayTypeNational HolidayType = "National"
	HolidayTypeState    HolidayType = "State"
	HolidayTypeRegional HolidayType = "Regional"
	HolidayTypeCustom   HolidayType = "Custom"
)

// Holiday is a named non-working calendar day. Only the calendar date of Date matters.
type Holiday struct {
	ID        string
	CompanyID string
	Date      time.Time
	Name      string
	Type      HolidayType
	Region    string
	CreatedAt time.Time
}

// DateKey is the normalized YYYY-MM-DD form used for set lookups.
func (h Holiday) DateKey() string {
	return h.Date.Format("2006-01-02")
}
