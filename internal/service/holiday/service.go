package holiday

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/cmlabs-hris/hris-payroll-go/internal/domain/auth"
	"github.com/cmlabs-hris/hris-payroll-go/internal/domain/holiday"
	"github.com/cmlabs-hris/hris-payroll-go/internal/pkg/database"
	"github.com/cmlabs-hris/hris-payroll-go/internal/pkg/validator"
)

type HolidayServiceImpl struct {
	tx          database.Transactor
	holidayRepo holiday.HolidayRepository
}

func NewHolidayService(tx database.Transactor, holidayRepo holiday.HolidayRepository) holiday.HolidayService {
	return &HolidayServiceImpl{
		tx:          tx,
		holidayRepo: holidayRepo,
	}
}

func (s *HolidayServiceImpl) List(ctx context.Context, year int) ([]holiday.HolidayResponse, error) {
	claims, err := auth.FromContext(ctx)
	if err != nil {
		return nil, err
	}
	if year < 2000 || year > 9999 {
		return nil, validator.ValidationErrors{{Field: "year", Message: "must be between 2000 and 9999"}}
	}

	from := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(year, time.December, 31, 0, 0, 0, 0, time.UTC)
	holidays, err := s.holidayRepo.ListBetween(ctx, claims.CompanyID, from, to)
	if err != nil {
		return nil, err
	}

	result := make([]holiday.HolidayResponse, 0, len(holidays))
	for _, h := range holidays {
		result = append(result, toResponse(h))
	}
	return result, nil
}

func (s *HolidayServiceImpl) Create(ctx context.Context, req holiday.CreateHolidayRequest) (holiday.HolidayResponse, error) {
	if err := req.Validate(); err != nil {
		return holiday.HolidayResponse{}, err
	}

	claims, err := auth.FromContext(ctx)
	if err != nil {
		return holiday.HolidayResponse{}, err
	}

	date, _ := validator.IsValidDate(req.Date)
	created, err := s.holidayRepo.Create(ctx, holiday.Holiday{
		CompanyID: claims.CompanyID,
		Date:      date,
		Name:      strings.TrimSpace(req.Name),
		Type:      req.HolidayType(),
		Region:    strings.TrimSpace(req.Region),
	})
	if err != nil {
		return holiday.HolidayResponse{}, err
	}

	return toResponse(created), nil
}

// Import adds the given holidays in one transaction, skipping any whose
// date and region already exist (in storage or earlier in the same payload).
func (s *HolidayServiceImpl) Import(ctx context.Context, req holiday.ImportHolidaysRequest) (holiday.ImportHolidaysResponse, error) {
	if err := req.Validate(); err != nil {
		return holiday.ImportHolidaysResponse{}, err
	}

	claims, err := auth.FromContext(ctx)
	if err != nil {
		return holiday.ImportHolidaysResponse{}, err
	}

	result := holiday.ImportHolidaysResponse{Holidays: []holiday.HolidayResponse{}}
	err = s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		seen := make(map[string]bool, len(req.Holidays))
		for _, item := range req.Holidays {
			date, _ := validator.IsValidDate(item.Date)
			region := strings.TrimSpace(item.Region)
			key := date.Format(validator.DateLayout) + "|" + region

			if seen[key] {
				result.Skipped++
				continue
			}
			seen[key] = true

			exists, err := s.holidayRepo.ExistsOnDate(ctx, claims.CompanyID, date, region)
			if err != nil {
				return fmt.Errorf("failed to check holiday on %s: %w", item.Date, err)
			}
			if exists {
				result.Skipped++
				continue
			}

			created, err := s.holidayRepo.Create(ctx, holiday.Holiday{
				CompanyID: claims.CompanyID,
				Date:      date,
				Name:      strings.TrimSpace(item.Name),
				Type:      item.HolidayType(),
				Region:    region,
			})
			if err != nil {
				return err
			}
			result.Imported++
			result.Holidays = append(result.Holidays, toResponse(created))
		}
		return nil
	})
	if err != nil {
		return holiday.ImportHolidaysResponse{}, err
	}

	slog.Info("Holidays imported",
		"company_id", claims.CompanyID,
		"imported", result.Imported,
		"skipped", result.Skipped,
	)

	return result, nil
}

func (s *HolidayServiceImpl) Delete(ctx context.Context, id string) error {
	claims, err := auth.FromContext(ctx)
	if err != nil {
		return err
	}
	return s.holidayRepo.Delete(ctx, id, claims.CompanyID)
}

func (s *HolidayServiceImpl) ListForMonth(ctx context.Context, companyID string, month, year int) ([]holiday.Holiday, error) {
	from := time.Date(year, time.Month(month+1), 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 1, -1)
	return s.holidayRepo.ListBetween(ctx, companyID, from, to)
}

func (s *HolidayServiceImpl) ListBetween(ctx context.Context, companyID string, from, to time.Time) ([]holiday.Holiday, error) {
	return s.holidayRepo.ListBetween(ctx, companyID, from, to)
}

func toResponse(h holiday.Holiday) holiday.HolidayResponse {
	return holiday.HolidayResponse{
		ID:     h.ID,
		Date:   h.DateKey(),
		Name:   h.Name,
		Type:   string(h.Type),
		Region: h.Region,
	}
}
