package postgresql

import (
	"context"
	"errors"

	"github.com/cmlabs-hris/hris-payroll-go/internal/domain/worksettings"
	"github.com/cmlabs-hris/hris-payroll-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type workSettingsRepositoryImpl struct {
	db *database.DB
}

func NewWorkSettingsRepository(db *database.DB) worksettings.WorkSettingsRepository {
	return &workSettingsRepositoryImpl{db: db}
}

func (r *workSettingsRepositoryImpl) GetByCompanyID(ctx context.Context, companyID string) (worksettings.WorkSettings, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, company_id, shift_start_time, grace_period_minutes, weekly_offs, created_at, updated_at
		FROM work_settings
		WHERE company_id = $1
	`

	var s worksettings.WorkSettings
	err := q.QueryRow(ctx, query, companyID).Scan(
		&s.ID,
		&s.CompanyID,
		&s.ShiftStartTime,
		&s.GracePeriodMinutes,
		&s.WeeklyOffs,
		&s.CreatedAt,
		&s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return worksettings.WorkSettings{}, worksettings.ErrWorkSettingsNotFound
		}
		return worksettings.WorkSettings{}, err
	}
	// weekly_offs is NOT NULL; '{}' is a stored empty set, not "unset"
	if s.WeeklyOffs == nil {
		s.WeeklyOffs = []int{}
	}

	return s, nil
}

func (r *workSettingsRepositoryImpl) Upsert(ctx context.Context, s worksettings.WorkSettings) (worksettings.WorkSettings, error) {
	q := GetQuerier(ctx, r.db)

	weeklyOffs := s.WeeklyOffs
	if weeklyOffs == nil {
		weeklyOffs = []int{}
	}

	query := `
		INSERT INTO work_settings (company_id, shift_start_time, grace_period_minutes, weekly_offs)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (company_id) DO UPDATE SET
			shift_start_time = EXCLUDED.shift_start_time,
			grace_period_minutes = EXCLUDED.grace_period_minutes,
			weekly_offs = EXCLUDED.weekly_offs,
			updated_at = NOW()
		RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query, s.CompanyID, s.ShiftStartTime, s.GracePeriodMinutes, weeklyOffs).
		Scan(&s.ID, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return worksettings.WorkSettings{}, err
	}

	s.WeeklyOffs = weeklyOffs
	return s, nil
}
