package holiday

import (
	"context"
	"time"
)

type HolidayService interface {
	List(ctx context.Context, year int) ([]HolidayResponse, error)
	Create(ctx context.Context, req CreateHolidayRequest) (HolidayResponse, error)
	Import(ctx context.Context, req ImportHolidaysRequest) (ImportHolidaysResponse, error)
	Delete(ctx context.Context, id string) error

	// ListForMonth feeds the working-day calendar. month is 0-indexed.
	ListForMonth(ctx context.Context, companyID string, month, year int) ([]Holiday, error)
	ListBetween(ctx context.Context, companyID string, from, to time.Time) ([]Holiday, error)
}
