package postgresql

import (
	"context"
	"errors"
	"time"

	"github.com/cmlabs-hris/hris-payroll-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hris-payroll-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

const attendanceColumns = `
	id, company_id, employee_id, date, check_in, check_out, type, is_half_day,
	status, resolved_at, resolved_by, created_at, updated_at
`

type attendanceRepositoryImpl struct {
	db *database.DB
}

func NewAttendanceRepository(db *database.DB) attendance.AttendanceRepository {
	return &attendanceRepositoryImpl{db: db}
}

// scanAttendance normalizes the nullable legacy is_half_day column into HalfDay.
func scanAttendance(row pgx.Row) (attendance.Attendance, error) {
	var (
		a          attendance.Attendance
		legacyHalf *bool
	)
	err := row.Scan(
		&a.ID,
		&a.CompanyID,
		&a.EmployeeID,
		&a.Date,
		&a.CheckIn,
		&a.CheckOut,
		&a.Type,
		&legacyHalf,
		&a.Status,
		&a.ResolvedAt,
		&a.ResolvedBy,
		&a.CreatedAt,
		&a.UpdatedAt,
	)
	if err != nil {
		return attendance.Attendance{}, err
	}
	a.HalfDay = attendance.IsHalfDay(a.Type, legacyHalf)
	return a, nil
}

func (r *attendanceRepositoryImpl) Create(ctx context.Context, a attendance.Attendance) (attendance.Attendance, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO attendances (company_id, employee_id, date, check_in, type, is_half_day, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING ` + attendanceColumns

	created, err := scanAttendance(q.QueryRow(ctx, query,
		a.CompanyID, a.EmployeeID, a.Date, a.CheckIn, a.Type, a.HalfDay, a.Status,
	))
	if err != nil {
		if isUniqueViolation(err, "uk_attendance_employee_date") {
			return attendance.Attendance{}, attendance.ErrAlreadyCheckedIn
		}
		return attendance.Attendance{}, err
	}

	return created, nil
}

func (r *attendanceRepositoryImpl) GetByID(ctx context.Context, id string, companyID string) (attendance.Attendance, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + attendanceColumns + ` FROM attendances WHERE id = $1 AND company_id = $2`

	a, err := scanAttendance(q.QueryRow(ctx, query, id, companyID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.Attendance{}, attendance.ErrAttendanceNotFound
		}
		return attendance.Attendance{}, err
	}
	return a, nil
}

func (r *attendanceRepositoryImpl) GetByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time, companyID string) (attendance.Attendance, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + attendanceColumns + `
		FROM attendances
		WHERE employee_id = $1 AND date = $2 AND company_id = $3`

	a, err := scanAttendance(q.QueryRow(ctx, query, employeeID, date, companyID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.Attendance{}, attendance.ErrAttendanceNotFound
		}
		return attendance.Attendance{}, err
	}
	return a, nil
}

func (r *attendanceRepositoryImpl) SetCheckOut(ctx context.Context, id string, companyID string, checkOut time.Time) (attendance.Attendance, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE attendances
		SET check_out = $3, updated_at = NOW()
		WHERE id = $1 AND company_id = $2 AND check_out IS NULL
		RETURNING ` + attendanceColumns

	a, err := scanAttendance(q.QueryRow(ctx, query, id, companyID, checkOut))
	if err == nil {
		return a, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return attendance.Attendance{}, err
	}

	if _, err := r.GetByID(ctx, id, companyID); err != nil {
		return attendance.Attendance{}, err
	}
	return attendance.Attendance{}, attendance.ErrAlreadyCheckedOut
}

func (r *attendanceRepositoryImpl) LockEmployee(ctx context.Context, employeeID string) error {
	return lockEmployee(ctx, GetQuerier(ctx, r.db), employeeID)
}

func (r *attendanceRepositoryImpl) Resolve(ctx context.Context, id string, companyID string, status attendance.Status, resolvedBy string) (attendance.Attendance, error) {
	q := GetQuerier(ctx, r.db)

	// Mirrors the leave approval check: callers hold the employee lock.
	query := `
		UPDATE attendances a
		SET status = $3, resolved_at = NOW(), resolved_by = NULLIF($4, '')::uuid, updated_at = NOW()
		WHERE a.id = $1 AND a.company_id = $2 AND a.status = 'Pending'
			AND (
				$3 <> 'Approved' OR NOT EXISTS (
					SELECT 1 FROM leave_requests lr
					WHERE lr.employee_id = a.employee_id
						AND lr.status = 'Approved'
						AND a.date BETWEEN lr.from_date AND lr.to_date
				)
			)
		RETURNING ` + attendanceColumns

	a, err := scanAttendance(q.QueryRow(ctx, query, id, companyID, string(status), resolvedBy))
	if err == nil {
		return a, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return attendance.Attendance{}, err
	}

	// Nothing written: the record is missing, another approver got there first,
	// or approved leave covers the date.
	current, err := r.GetByID(ctx, id, companyID)
	if err != nil {
		return attendance.Attendance{}, err
	}
	if current.Status == attendance.StatusPending {
		return attendance.Attendance{}, attendance.ErrLeaveConflict
	}
	return attendance.Attendance{}, &attendance.AlreadyResolvedError{Current: current.Status}
}

func (r *attendanceRepositoryImpl) ListApprovedBetween(ctx context.Context, employeeID string, companyID string, from, to time.Time) ([]attendance.Attendance, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + attendanceColumns + `
		FROM attendances
		WHERE employee_id = $1 AND company_id = $2
			AND status = 'Approved'
			AND date BETWEEN $3 AND $4
		ORDER BY date`

	rows, err := q.Query(ctx, query, employeeID, companyID, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []attendance.Attendance
	for rows.Next() {
		a, err := scanAttendance(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return records, nil
}

func (r *attendanceRepositoryImpl) ExistsNonRejectedBetween(ctx context.Context, employeeID string, companyID string, from, to time.Time) (bool, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT EXISTS (
			SELECT 1 FROM attendances
			WHERE employee_id = $1 AND company_id = $2
				AND status <> 'Rejected'
				AND date BETWEEN $3 AND $4
		)
	`

	var exists bool
	if err := q.QueryRow(ctx, query, employeeID, companyID, from, to).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}
