package memory

import (
	"context"
	"slices"
	"sort"
	"time"

	"github.com/cmlabs-hris/hris-payroll-go/internal/domain/holiday"
	"github.com/cmlabs-hris/hris-payroll-go/internal/domain/worksettings"
)

type WorkSettingsRepository struct {
	store    *Store
	settings map[string]worksettings.WorkSettings
}

func NewWorkSettingsRepository(store *Store) *WorkSettingsRepository {
	return &WorkSettingsRepository{store: store, settings: make(map[string]worksettings.WorkSettings)}
}

func (r *WorkSettingsRepository) GetByCompanyID(_ context.Context, companyID string) (worksettings.WorkSettings, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	s, ok := r.settings[companyID]
	if !ok {
		return worksettings.WorkSettings{}, worksettings.ErrWorkSettingsNotFound
	}
	s.WeeklyOffs = slices.Clone(s.WeeklyOffs)
	return s, nil
}

func (r *WorkSettingsRepository) Upsert(_ context.Context, s worksettings.WorkSettings) (worksettings.WorkSettings, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	now := r.store.now()
	if existing, ok := r.settings[s.CompanyID]; ok {
		s.ID = existing.ID
		s.CreatedAt = existing.CreatedAt
	} else {
		s.ID = newID()
		s.CreatedAt = now
	}
	s.UpdatedAt = now
	s.WeeklyOffs = slices.Clone(s.WeeklyOffs)
	r.settings[s.CompanyID] = s
	return s, nil
}

type HolidayRepository struct {
	store    *Store
	holidays map[string]holiday.Holiday
}

func NewHolidayRepository(store *Store) *HolidayRepository {
	return &HolidayRepository{store: store, holidays: make(map[string]holiday.Holiday)}
}

func (r *HolidayRepository) Create(_ context.Context, h holiday.Holiday) (holiday.Holiday, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	h.ID = newID()
	h.Date = dateOnly(h.Date)
	h.CreatedAt = r.store.now()
	r.holidays[h.ID] = h
	return h, nil
}

func (r *HolidayRepository) Delete(_ context.Context, id string, companyID string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	h, ok := r.holidays[id]
	if !ok || h.CompanyID != companyID {
		return holiday.ErrHolidayNotFound
	}
	delete(r.holidays, id)
	return nil
}

func (r *HolidayRepository) ListBetween(_ context.Context, companyID string, from, to time.Time) ([]holiday.Holiday, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	from, to = dateOnly(from), dateOnly(to)

	var result []holiday.Holiday
	for _, h := range r.holidays {
		if h.CompanyID == companyID && !h.Date.Before(from) && !h.Date.After(to) {
			result = append(result, h)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Date.Before(result[j].Date) })
	return result, nil
}

func (r *HolidayRepository) ExistsOnDate(_ context.Context, companyID string, date time.Time, region string) (bool, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	date = dateOnly(date)
	for _, h := range r.holidays {
		if h.CompanyID == companyID && h.Date.Equal(date) && h.Region == region {
			return true, nil
		}
	}
	return false, nil
}
