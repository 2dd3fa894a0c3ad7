package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cmlabs-hris/hris-payroll-go/internal/domain/salary"
	"github.com/cmlabs-hris/hris-payroll-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

// ========== PROFILES ==========

type salaryProfileRepositoryImpl struct {
	db *database.DB
}

func NewSalaryProfileRepository(db *database.DB) salary.ProfileRepository {
	return &salaryProfileRepositoryImpl{db: db}
}

func scanProfile(row pgx.Row) (salary.Profile, error) {
	var p salary.Profile
	err := row.Scan(
		&p.ID,
		&p.CompanyID,
		&p.EmployeeID,
		&p.MonthlySalary,
		&p.EffectiveFrom,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	return p, err
}

func (r *salaryProfileRepositoryImpl) Upsert(ctx context.Context, profile salary.Profile) (salary.Profile, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO salary_profiles (company_id, employee_id, monthly_salary, effective_from)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (employee_id) DO UPDATE SET
			monthly_salary = EXCLUDED.monthly_salary,
			effective_from = EXCLUDED.effective_from,
			updated_at = NOW()
		RETURNING id, company_id, employee_id, monthly_salary, effective_from, created_at, updated_at
	`

	p, err := scanProfile(q.QueryRow(ctx, query,
		profile.CompanyID, profile.EmployeeID, profile.MonthlySalary, profile.EffectiveFrom,
	))
	if err != nil {
		return salary.Profile{}, fmt.Errorf("failed to upsert salary profile: %w", err)
	}
	return p, nil
}

func (r *salaryProfileRepositoryImpl) GetByEmployeeID(ctx context.Context, employeeID string, companyID string) (salary.Profile, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, company_id, employee_id, monthly_salary, effective_from, created_at, updated_at
		FROM salary_profiles
		WHERE employee_id = $1 AND company_id = $2
	`

	p, err := scanProfile(q.QueryRow(ctx, query, employeeID, companyID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return salary.Profile{}, salary.ErrProfileNotFound
		}
		return salary.Profile{}, err
	}
	return p, nil
}

// ListByCompany returns the profiles of active employees.
func (r *salaryProfileRepositoryImpl) ListByCompany(ctx context.Context, companyID string) ([]salary.Profile, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT sp.id, sp.company_id, sp.employee_id, sp.monthly_salary, sp.effective_from, sp.created_at, sp.updated_at
		FROM salary_profiles sp
		INNER JOIN employees e ON e.id = sp.employee_id
		WHERE sp.company_id = $1 AND e.is_active = TRUE
		ORDER BY e.full_name
	`

	rows, err := q.Query(ctx, query, companyID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var profiles []salary.Profile
	for rows.Next() {
		p, err := scanProfile(rows)
		if err != nil {
			return nil, err
		}
		profiles = append(profiles, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return profiles, nil
}

func (r *salaryProfileRepositoryImpl) ListCompanyIDs(ctx context.Context) ([]string, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, `SELECT DISTINCT company_id::text FROM salary_profiles ORDER BY 1`)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, pgx.RowTo[string])
}

// ========== MONTHLY SALARIES ==========

const monthlySalaryColumns = `
	ms.id, ms.company_id, ms.employee_id, ms.month, ms.year, ms.monthly_salary,
	ms.working_days, ms.full_days, ms.half_days, ms.paid_leave_days, ms.unpaid_leave_days,
	ms.payable_days, ms.per_day_rate, ms.calculated_salary,
	ms.status, ms.approved_at, ms.approved_by, ms.paid_at, ms.payment_method, ms.transaction_reference,
	ms.created_at, ms.updated_at,
	e.full_name, e.employee_code
`

type monthlySalaryRepositoryImpl struct {
	db *database.DB
}

func NewMonthlySalaryRepository(db *database.DB) salary.MonthlySalaryRepository {
	return &monthlySalaryRepositoryImpl{db: db}
}

func scanMonthlySalary(row pgx.Row) (salary.MonthlySalary, error) {
	var m salary.MonthlySalary
	err := row.Scan(
		&m.ID,
		&m.CompanyID,
		&m.EmployeeID,
		&m.Month,
		&m.Year,
		&m.MonthlyBase,
		&m.Breakdown.WorkingDays,
		&m.Breakdown.FullDayCount,
		&m.Breakdown.HalfDayCount,
		&m.Breakdown.PaidLeaveDays,
		&m.Breakdown.UnpaidLeaveDays,
		&m.Breakdown.PayableDays,
		&m.Breakdown.PerDayRate,
		&m.Breakdown.CalculatedSalary,
		&m.Status,
		&m.ApprovedAt,
		&m.ApprovedBy,
		&m.PaidAt,
		&m.PaymentMethod,
		&m.TransactionReference,
		&m.CreatedAt,
		&m.UpdatedAt,
		&m.EmployeeName,
		&m.EmployeeCode,
	)
	return m, err
}

// Create relies on uk_salary_employee_period: of two concurrent inserts for
// one period exactly one succeeds and the other gets ErrDuplicateGeneration.
func (r *monthlySalaryRepositoryImpl) Create(ctx context.Context, record salary.MonthlySalary) (salary.MonthlySalary, error) {
	q := GetQuerier(ctx, r.db)
	b := record.Breakdown

	query := `
		WITH ms AS (
			INSERT INTO monthly_salaries (
				company_id, employee_id, month, year, monthly_salary,
				working_days, full_days, half_days, present_days, paid_leave_days, unpaid_leave_days,
				payable_days, per_day_rate, calculated_salary, status
			) VALUES (
				$1, $2, $3, $4, $5,
				$6, $7, $8, $9, $10, $11,
				$12, $13, $14, $15
			)
			RETURNING *
		)
		SELECT ` + monthlySalaryColumns + `
		FROM ms
		LEFT JOIN employees e ON e.id = ms.employee_id
	`

	created, err := scanMonthlySalary(q.QueryRow(ctx, query,
		record.CompanyID, record.EmployeeID, record.Month, record.Year, record.MonthlyBase,
		b.WorkingDays, b.FullDayCount, b.HalfDayCount, b.PresentDays(), b.PaidLeaveDays, b.UnpaidLeaveDays,
		b.PayableDays, b.PerDayRate, b.CalculatedSalary, record.Status,
	))
	if err != nil {
		if isUniqueViolation(err, "uk_salary_employee_period") {
			return salary.MonthlySalary{}, salary.ErrDuplicateGeneration
		}
		return salary.MonthlySalary{}, fmt.Errorf("failed to create monthly salary: %w", err)
	}

	return created, nil
}

func (r *monthlySalaryRepositoryImpl) GetByID(ctx context.Context, id string, companyID string) (salary.MonthlySalary, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + monthlySalaryColumns + `
		FROM monthly_salaries ms
		LEFT JOIN employees e ON e.id = ms.employee_id
		WHERE ms.id = $1 AND ms.company_id = $2`

	m, err := scanMonthlySalary(q.QueryRow(ctx, query, id, companyID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return salary.MonthlySalary{}, salary.ErrSalaryNotFound
		}
		return salary.MonthlySalary{}, err
	}
	return m, nil
}

func (r *monthlySalaryRepositoryImpl) GetByEmployeePeriod(ctx context.Context, employeeID string, period salary.Period, companyID string) (salary.MonthlySalary, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + monthlySalaryColumns + `
		FROM monthly_salaries ms
		LEFT JOIN employees e ON e.id = ms.employee_id
		WHERE ms.employee_id = $1 AND ms.month = $2 AND ms.year = $3 AND ms.company_id = $4`

	m, err := scanMonthlySalary(q.QueryRow(ctx, query, employeeID, period.Month, period.Year, companyID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return salary.MonthlySalary{}, salary.ErrSalaryNotFound
		}
		return salary.MonthlySalary{}, err
	}
	return m, nil
}

func (r *monthlySalaryRepositoryImpl) ListByPeriod(ctx context.Context, companyID string, period salary.Period) ([]salary.MonthlySalary, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + monthlySalaryColumns + `
		FROM monthly_salaries ms
		LEFT JOIN employees e ON e.id = ms.employee_id
		WHERE ms.company_id = $1 AND ms.month = $2 AND ms.year = $3
		ORDER BY e.full_name`

	rows, err := q.Query(ctx, query, companyID, period.Month, period.Year)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []salary.MonthlySalary
	for rows.Next() {
		m, err := scanMonthlySalary(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return records, nil
}

func (r *monthlySalaryRepositoryImpl) Approve(ctx context.Context, id string, companyID string, approvedBy string, at time.Time) (salary.MonthlySalary, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		WITH ms AS (
			UPDATE monthly_salaries
			SET status = 'Approved', approved_at = $3, approved_by = NULLIF($4, '')::uuid, updated_at = NOW()
			WHERE id = $1 AND company_id = $2 AND status = 'Draft'
			RETURNING *
		)
		SELECT ` + monthlySalaryColumns + `
		FROM ms
		LEFT JOIN employees e ON e.id = ms.employee_id
	`

	m, err := scanMonthlySalary(q.QueryRow(ctx, query, id, companyID, at, approvedBy))
	if err == nil {
		return m, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return salary.MonthlySalary{}, err
	}

	current, err := r.GetByID(ctx, id, companyID)
	if err != nil {
		return salary.MonthlySalary{}, err
	}
	return salary.MonthlySalary{}, &salary.AlreadyApprovedError{Current: current.Status}
}

func (r *monthlySalaryRepositoryImpl) MarkPaid(ctx context.Context, id string, companyID string, payment salary.Payment) (salary.MonthlySalary, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		WITH ms AS (
			UPDATE monthly_salaries
			SET status = 'Paid', paid_at = $3, payment_method = $4, transaction_reference = $5, updated_at = NOW()
			WHERE id = $1 AND company_id = $2 AND status = 'Approved'
			RETURNING *
		)
		SELECT ` + monthlySalaryColumns + `
		FROM ms
		LEFT JOIN employees e ON e.id = ms.employee_id
	`

	m, err := scanMonthlySalary(q.QueryRow(ctx, query,
		id, companyID, payment.PaidAt, payment.PaymentMethod, payment.TransactionReference,
	))
	if err == nil {
		return m, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return salary.MonthlySalary{}, err
	}

	current, err := r.GetByID(ctx, id, companyID)
	if err != nil {
		return salary.MonthlySalary{}, err
	}
	return salary.MonthlySalary{}, &salary.NotApprovedError{Current: current.Status}
}
