package postgresql

import (
	"context"
	"errors"
	"time"

	"github.com/cmlabs-hris/hris-payroll-go/internal/domain/leave"
	"github.com/cmlabs-hris/hris-payroll-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

const leaveRequestColumns = `
	id, company_id, employee_id, from_date, to_date, reason, leave_type, is_paid,
	status, resolved_at, resolved_by, created_at, updated_at
`

type leaveRequestRepositoryImpl struct {
	db *database.DB
}

func NewLeaveRequestRepository(db *database.DB) leave.LeaveRequestRepository {
	return &leaveRequestRepositoryImpl{db: db}
}

func scanLeaveRequest(row pgx.Row) (leave.LeaveRequest, error) {
	var lr leave.LeaveRequest
	err := row.Scan(
		&lr.ID,
		&lr.CompanyID,
		&lr.EmployeeID,
		&lr.FromDate,
		&lr.ToDate,
		&lr.Reason,
		&lr.LeaveType,
		&lr.IsPaid,
		&lr.Status,
		&lr.ResolvedAt,
		&lr.ResolvedBy,
		&lr.CreatedAt,
		&lr.UpdatedAt,
	)
	return lr, err
}

func (r *leaveRequestRepositoryImpl) Create(ctx context.Context, request leave.LeaveRequest) (leave.LeaveRequest, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO leave_requests (company_id, employee_id, from_date, to_date, reason, leave_type, is_paid, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING ` + leaveRequestColumns

	return scanLeaveRequest(q.QueryRow(ctx, query,
		request.CompanyID, request.EmployeeID,
		request.FromDate, request.ToDate,
		request.Reason, request.LeaveType, request.IsPaid,
		request.Status,
	))
}

func (r *leaveRequestRepositoryImpl) GetByID(ctx context.Context, id string, companyID string) (leave.LeaveRequest, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + leaveRequestColumns + ` FROM leave_requests WHERE id = $1 AND company_id = $2`

	lr, err := scanLeaveRequest(q.QueryRow(ctx, query, id, companyID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return leave.LeaveRequest{}, leave.ErrLeaveRequestNotFound
		}
		return leave.LeaveRequest{}, err
	}
	return lr, nil
}

func (r *leaveRequestRepositoryImpl) LockEmployee(ctx context.Context, employeeID string) error {
	return lockEmployee(ctx, GetQuerier(ctx, r.db), employeeID)
}

func (r *leaveRequestRepositoryImpl) ExistsNonRejectedOverlapping(ctx context.Context, employeeID string, companyID string, from, to time.Time) (bool, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT EXISTS (
			SELECT 1 FROM leave_requests
			WHERE employee_id = $1 AND company_id = $2
				AND status <> 'Rejected'
				AND from_date <= $4 AND to_date >= $3
		)
	`

	var exists bool
	if err := q.QueryRow(ctx, query, employeeID, companyID, from, to).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

func (r *leaveRequestRepositoryImpl) Resolve(ctx context.Context, id string, companyID string, status leave.Status, resolvedBy string) (leave.LeaveRequest, error) {
	q := GetQuerier(ctx, r.db)

	// Approval and the attendance check are one statement. Callers hold the
	// employee lock so a concurrent attendance approval is already visible.
	query := `
		UPDATE leave_requests lr
		SET status = $3, resolved_at = NOW(), resolved_by = NULLIF($4, '')::uuid, updated_at = NOW()
		WHERE lr.id = $1 AND lr.company_id = $2 AND lr.status = 'Pending'
			AND (
				$3 <> 'Approved' OR NOT EXISTS (
					SELECT 1 FROM attendances a
					WHERE a.employee_id = lr.employee_id
						AND a.status = 'Approved'
						AND a.date BETWEEN lr.from_date AND lr.to_date
				)
			)
		RETURNING ` + leaveRequestColumns

	lr, err := scanLeaveRequest(q.QueryRow(ctx, query, id, companyID, string(status), resolvedBy))
	if err == nil {
		return lr, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return leave.LeaveRequest{}, err
	}

	current, err := r.GetByID(ctx, id, companyID)
	if err != nil {
		return leave.LeaveRequest{}, err
	}
	if current.Status == leave.StatusPending {
		return leave.LeaveRequest{}, leave.ErrAttendanceConflict
	}
	return leave.LeaveRequest{}, &leave.AlreadyResolvedError{Current: current.Status}
}

func (r *leaveRequestRepositoryImpl) ListApprovedPaidOverlapping(ctx context.Context, employeeID string, companyID string, from, to time.Time) ([]leave.LeaveRequest, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + leaveRequestColumns + `
		FROM leave_requests
		WHERE employee_id = $1 AND company_id = $2
			AND status = 'Approved' AND is_paid = TRUE
			AND from_date <= $4 AND to_date >= $3
		ORDER BY from_date`

	rows, err := q.Query(ctx, query, employeeID, companyID, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var requests []leave.LeaveRequest
	for rows.Next() {
		lr, err := scanLeaveRequest(rows)
		if err != nil {
			return nil, err
		}
		requests = append(requests, lr)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return requests, nil
}
