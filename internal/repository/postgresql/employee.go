package postgresql

import (
	"context"
	"errors"

	"github.com/cmlabs-hris/hris-payroll-go/internal/domain/employee"
	"github.com/cmlabs-hris/hris-payroll-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type employeeRepositoryImpl struct {
	db *database.DB
}

func NewEmployeeRepository(db *database.DB) employee.EmployeeRepository {
	return &employeeRepositoryImpl{db: db}
}

// GetByID only returns active employees of the company.
func (r *employeeRepositoryImpl) GetByID(ctx context.Context, id string, companyID string) (employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, company_id, full_name, employee_code, is_active
		FROM employees
		WHERE id = $1 AND company_id = $2 AND is_active = TRUE
	`

	var e employee.Employee
	err := q.QueryRow(ctx, query, id, companyID).Scan(
		&e.ID,
		&e.CompanyID,
		&e.FullName,
		&e.EmployeeCode,
		&e.IsActive,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return employee.Employee{}, employee.ErrEmployeeNotFound
		}
		return employee.Employee{}, err
	}

	return e, nil
}
