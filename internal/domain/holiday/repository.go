package holiday

import (
	"context"
	"time"
)

type HolidayRepository interface {
	Create(ctx context.Context, h Holiday) (Holiday, error)
	Delete(ctx context.Context, id string, companyID string) error
	// ListBetween returns holidays whose date falls in [from, to], both inclusive.
	ListBetween(ctx context.Context, companyID string, from, to time.Time) ([]Holiday, error)
	// ExistsOnDate is the import duplicate pre-check for a date and region.
	ExistsOnDate(ctx context.Context, companyID string, date time.Time, region string) (bool, error)
}
