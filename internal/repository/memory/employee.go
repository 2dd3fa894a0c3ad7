package memory

import (
	"context"

	"github.com/cmlabs-hris/hris-payroll-go/internal/domain/employee"
)

type EmployeeRepository struct {
	store *Store
}

func NewEmployeeRepository(store *Store) *EmployeeRepository {
	return &EmployeeRepository{store: store}
}

// Add registers an employee and returns its id.
func (r *EmployeeRepository) Add(e employee.Employee) string {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if e.ID == "" {
		e.ID = newID()
	}
	r.store.employees[e.ID] = e
	return e.ID
}

func (r *EmployeeRepository) GetByID(_ context.Context, id string, companyID string) (employee.Employee, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	e, ok := r.store.employees[id]
	if !ok || e.CompanyID != companyID || !e.IsActive {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	return e, nil
}
