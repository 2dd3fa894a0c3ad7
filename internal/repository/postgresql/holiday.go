package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/cmlabs-hris/hris-payroll-go/internal/domain/holiday"
	"github.com/cmlabs-hris/hris-payroll-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type holidayRepositoryImpl struct {
	db *database.DB
}

func NewHolidayRepository(db *database.DB) holiday.HolidayRepository {
	return &holidayRepositoryImpl{db: db}
}

func (r *holidayRepositoryImpl) Create(ctx context.Context, h holiday.Holiday) (holiday.Holiday, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO holidays (company_id, date, name, type, region)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at
	`

	err := q.QueryRow(ctx, query, h.CompanyID, h.Date, h.Name, h.Type, h.Region).
		Scan(&h.ID, &h.CreatedAt)
	if err != nil {
		return holiday.Holiday{}, fmt.Errorf("failed to create holiday: %w", err)
	}

	return h, nil
}

func (r *holidayRepositoryImpl) Delete(ctx context.Context, id string, companyID string) error {
	q := GetQuerier(ctx, r.db)

	commandTag, err := q.Exec(ctx, `DELETE FROM holidays WHERE id = $1 AND company_id = $2`, id, companyID)
	if err != nil {
		return err
	}
	if commandTag.RowsAffected() != 1 {
		return holiday.ErrHolidayNotFound
	}
	return nil
}

func (r *holidayRepositoryImpl) ListBetween(ctx context.Context, companyID string, from, to time.Time) ([]holiday.Holiday, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, company_id, date, name, type, region, created_at
		FROM holidays
		WHERE company_id = $1 AND date BETWEEN $2 AND $3
		ORDER BY date, name
	`

	rows, err := q.Query(ctx, query, companyID, from, to)
	if err != nil {
		return nil, err
	}

	holidays, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (holiday.Holiday, error) {
		var h holiday.Holiday
		err := row.Scan(&h.ID, &h.CompanyID, &h.Date, &h.Name, &h.Type, &h.Region, &h.CreatedAt)
		return h, err
	})
	if err != nil {
		return nil, err
	}

	return holidays, nil
}

func (r *holidayRepositoryImpl) ExistsOnDate(ctx context.Context, companyID string, date time.Time, region string) (bool, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT EXISTS (
			SELECT 1 FROM holidays
			WHERE company_id = $1 AND date = $2 AND region = $3
		)
	`

	var exists bool
	if err := q.QueryRow(ctx, query, companyID, date, region).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}
