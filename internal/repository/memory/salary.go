package memory

import (
	"context"
	"sort"
	"time"

	"github.com/cmlabs-hris/hris-payroll-go/internal/domain/salary"
)

type ProfileRepository struct {
	store    *Store
	profiles map[string]salary.Profile // by employee id
}

func NewProfileRepository(store *Store) *ProfileRepository {
	return &ProfileRepository{store: store, profiles: make(map[string]salary.Profile)}
}

func (r *ProfileRepository) Upsert(_ context.Context, p salary.Profile) (salary.Profile, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	now := r.store.now()
	if existing, ok := r.profiles[p.EmployeeID]; ok {
		p.ID = existing.ID
		p.CreatedAt = existing.CreatedAt
	} else {
		p.ID = newID()
		p.CreatedAt = now
	}
	p.EffectiveFrom = dateOnly(p.EffectiveFrom)
	p.UpdatedAt = now
	r.profiles[p.EmployeeID] = p
	return p, nil
}

func (r *ProfileRepository) GetByEmployeeID(_ context.Context, employeeID string, companyID string) (salary.Profile, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	p, ok := r.profiles[employeeID]
	if !ok || p.CompanyID != companyID {
		return salary.Profile{}, salary.ErrProfileNotFound
	}
	return p, nil
}

func (r *ProfileRepository) ListByCompany(_ context.Context, companyID string) ([]salary.Profile, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var result []salary.Profile
	for _, p := range r.profiles {
		if p.CompanyID == companyID {
			result = append(result, p)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].EmployeeID < result[j].EmployeeID })
	return result, nil
}

func (r *ProfileRepository) ListCompanyIDs(_ context.Context) ([]string, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	seen := make(map[string]bool)
	var result []string
	for _, p := range r.profiles {
		if !seen[p.CompanyID] {
			seen[p.CompanyID] = true
			result = append(result, p.CompanyID)
		}
	}
	sort.Strings(result)
	return result, nil
}

type periodKey struct {
	employeeID string
	month      int
	year       int
}

type MonthlySalaryRepository struct {
	store    *Store
	records  map[string]salary.MonthlySalary
	byPeriod map[periodKey]string
}

func NewMonthlySalaryRepository(store *Store) *MonthlySalaryRepository {
	return &MonthlySalaryRepository{
		store:    store,
		records:  make(map[string]salary.MonthlySalary),
		byPeriod: make(map[periodKey]string),
	}
}

// Create enforces the (employee, month, year) unique key.
func (r *MonthlySalaryRepository) Create(_ context.Context, m salary.MonthlySalary) (salary.MonthlySalary, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	key := periodKey{employeeID: m.EmployeeID, month: m.Month, year: m.Year}
	if _, exists := r.byPeriod[key]; exists {
		return salary.MonthlySalary{}, salary.ErrDuplicateGeneration
	}

	now := r.store.now()
	m.ID = newID()
	m.CreatedAt = now
	m.UpdatedAt = now
	r.records[m.ID] = m
	r.byPeriod[key] = m.ID
	return m, nil
}

func (r *MonthlySalaryRepository) GetByID(_ context.Context, id string, companyID string) (salary.MonthlySalary, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	m, err := r.get(id, companyID)
	if err != nil {
		return salary.MonthlySalary{}, err
	}
	return r.withEmployee(m), nil
}

// withEmployee fills the employee name and code the way the SQL join does.
func (r *MonthlySalaryRepository) withEmployee(m salary.MonthlySalary) salary.MonthlySalary {
	if e, ok := r.store.employees[m.EmployeeID]; ok {
		m.EmployeeName = ptr(e.FullName)
		m.EmployeeCode = ptr(e.EmployeeCode)
	}
	return m
}

func (r *MonthlySalaryRepository) get(id string, companyID string) (salary.MonthlySalary, error) {
	m, ok := r.records[id]
	if !ok || m.CompanyID != companyID {
		return salary.MonthlySalary{}, salary.ErrSalaryNotFound
	}
	return m, nil
}

func (r *MonthlySalaryRepository) GetByEmployeePeriod(_ context.Context, employeeID string, period salary.Period, companyID string) (salary.MonthlySalary, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	id, ok := r.byPeriod[periodKey{employeeID: employeeID, month: period.Month, year: period.Year}]
	if !ok {
		return salary.MonthlySalary{}, salary.ErrSalaryNotFound
	}
	return r.get(id, companyID)
}

func (r *MonthlySalaryRepository) ListByPeriod(_ context.Context, companyID string, period salary.Period) ([]salary.MonthlySalary, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var result []salary.MonthlySalary
	for _, m := range r.records {
		if m.CompanyID == companyID && m.Month == period.Month && m.Year == period.Year {
			result = append(result, r.withEmployee(m))
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].EmployeeID < result[j].EmployeeID })
	return result, nil
}

// Count returns the number of stored records.
func (r *MonthlySalaryRepository) Count() int {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	return len(r.records)
}

func (r *MonthlySalaryRepository) Approve(_ context.Context, id string, companyID string, approvedBy string, at time.Time) (salary.MonthlySalary, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	m, err := r.get(id, companyID)
	if err != nil {
		return salary.MonthlySalary{}, err
	}
	if m.Status != salary.StatusDraft {
		return salary.MonthlySalary{}, &salary.AlreadyApprovedError{Current: m.Status}
	}

	m.Status = salary.StatusApproved
	m.ApprovedAt = ptr(at)
	if approvedBy != "" {
		m.ApprovedBy = ptr(approvedBy)
	}
	m.UpdatedAt = r.store.now()
	r.records[id] = m
	return m, nil
}

func (r *MonthlySalaryRepository) MarkPaid(_ context.Context, id string, companyID string, payment salary.Payment) (salary.MonthlySalary, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	m, err := r.get(id, companyID)
	if err != nil {
		return salary.MonthlySalary{}, err
	}
	if m.Status != salary.StatusApproved {
		return salary.MonthlySalary{}, &salary.NotApprovedError{Current: m.Status}
	}

	m.Status = salary.StatusPaid
	m.PaidAt = ptr(payment.PaidAt)
	m.PaymentMethod = payment.PaymentMethod
	m.TransactionReference = payment.TransactionReference
	m.UpdatedAt = r.store.now()
	r.records[id] = m
	return m, nil
}
