package salary

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/hris-payroll-go/internal/domain/auth"
	"github.com/cmlabs-hris/hris-payroll-go/internal/domain/employee"
	"github.com/cmlabs-hris/hris-payroll-go/internal/domain/holiday"
	"github.com/cmlabs-hris/hris-payroll-go/internal/domain/salary"
	"github.com/cmlabs-hris/hris-payroll-go/internal/domain/worksettings"
	"github.com/cmlabs-hris/hris-payroll-go/internal/pkg/lock"
	"github.com/cmlabs-hris/hris-payroll-go/internal/pkg/validator"
)

// Config holds the generation rules of the salary service.
type Config struct {
	// GenerationDay is the day of the following month on which batch generation opens.
	GenerationDay int
	// Location is the company timezone used for the generation gate.
	Location *time.Location
	// LockTTL bounds how long one batch run holds the period lock.
	LockTTL time.Duration
	// Now defaults to time.Now.
	Now func() time.Time
}

type SalaryServiceImpl struct {
	profileRepo  salary.ProfileRepository
	salaryRepo   salary.MonthlySalaryRepository
	employeeRepo employee.EmployeeRepository
	settingsSvc  worksettings.WorkSettingsService
	holidaySvc   holiday.HolidayService
	engine       *Engine
	locker       lock.Locker
	cfg          Config
}

func NewSalaryService(
	profileRepo salary.ProfileRepository,
	salaryRepo salary.MonthlySalaryRepository,
	employeeRepo employee.EmployeeRepository,
	settingsSvc worksettings.WorkSettingsService,
	holidaySvc holiday.HolidayService,
	engine *Engine,
	locker lock.Locker,
	cfg Config,
) salary.SalaryService {
	if cfg.GenerationDay <= 0 {
		cfg.GenerationDay = 5
	}
	if cfg.Location == nil {
		cfg.Location = time.UTC
	}
	if cfg.LockTTL <= 0 {
		cfg.LockTTL = 5 * time.Minute
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	if locker == nil {
		locker = lock.NewLocalLocker()
	}

	return &SalaryServiceImpl{
		profileRepo:  profileRepo,
		salaryRepo:   salaryRepo,
		employeeRepo: employeeRepo,
		settingsSvc:  settingsSvc,
		holidaySvc:   holidaySvc,
		engine:       engine,
		locker:       locker,
		cfg:          cfg,
	}
}

// loadCalendar snapshots work settings and the month's holidays once.
func (s *SalaryServiceImpl) loadCalendar(ctx context.Context, companyID string, period salary.Period) (Calendar, error) {
	settings, err := s.settingsSvc.Load(ctx, companyID)
	if err != nil {
		return Calendar{}, fmt.Errorf("failed to load work settings: %w", err)
	}

	holidays, err := s.holidaySvc.ListForMonth(ctx, companyID, period.Month, period.Year)
	if err != nil {
		return Calendar{}, fmt.Errorf("failed to load holidays: %w", err)
	}

	return NewCalendar(settings, holidays), nil
}

func (s *SalaryServiceImpl) newRecord(companyID string, profile salary.Profile, period salary.Period, b salary.Breakdown) salary.MonthlySalary {
	return salary.MonthlySalary{
		CompanyID:   companyID,
		EmployeeID:  profile.EmployeeID,
		Month:       period.Month,
		Year:        period.Year,
		MonthlyBase: profile.MonthlySalary,
		Breakdown:   b,
		Status:      salary.StatusDraft,
	}
}

// ========== INDIVIDUAL ==========

func (s *SalaryServiceImpl) GenerateIndividual(ctx context.Context, req salary.GenerateIndividualRequest) (salary.MonthlySalaryResponse, error) {
	if err := req.Validate(); err != nil {
		return salary.MonthlySalaryResponse{}, err
	}

	claims, err := auth.FromContext(ctx)
	if err != nil {
		return salary.MonthlySalaryResponse{}, err
	}
	period := req.Period()

	emp, err := s.employeeRepo.GetByID(ctx, req.EmployeeID, claims.CompanyID)
	if err != nil {
		return salary.MonthlySalaryResponse{}, err
	}

	profile, err := s.profileRepo.GetByEmployeeID(ctx, emp.ID, claims.CompanyID)
	if err != nil {
		return salary.MonthlySalaryResponse{}, err
	}

	if !req.Preview {
		_, err := s.salaryRepo.GetByEmployeePeriod(ctx, emp.ID, period, claims.CompanyID)
		if err == nil {
			return salary.MonthlySalaryResponse{}, salary.ErrDuplicateGeneration
		}
		if !errors.Is(err, salary.ErrSalaryNotFound) {
			return salary.MonthlySalaryResponse{}, fmt.Errorf("failed to check existing salary: %w", err)
		}
	}

	cal, err := s.loadCalendar(ctx, claims.CompanyID, period)
	if err != nil {
		return salary.MonthlySalaryResponse{}, err
	}

	breakdown, err := s.engine.Calculate(ctx, claims.CompanyID, emp.ID, profile.MonthlySalary, period, cal)
	if err != nil {
		return salary.MonthlySalaryResponse{}, err
	}

	record := s.newRecord(claims.CompanyID, profile, period, breakdown)
	record.EmployeeName = &emp.FullName
	record.EmployeeCode = &emp.EmployeeCode

	if req.Preview {
		resp := salary.NewMonthlySalaryResponse(record)
		resp.Status = ""
		resp.Preview = true
		return resp, nil
	}

	created, err := s.salaryRepo.Create(ctx, record)
	if err != nil {
		return salary.MonthlySalaryResponse{}, err
	}
	created.EmployeeName = record.EmployeeName
	created.EmployeeCode = record.EmployeeCode

	slog.Info("Salary generated",
		"company_id", claims.CompanyID,
		"employee_id", emp.ID,
		"period", period.String(),
		"calculated_salary", created.Breakdown.CalculatedSalary.StringFixed(2),
	)

	return salary.NewMonthlySalaryResponse(created), nil
}

func (s *SalaryServiceImpl) Get(ctx context.Context, id string) (salary.MonthlySalaryResponse, error) {
	claims, err := auth.FromContext(ctx)
	if err != nil {
		return salary.MonthlySalaryResponse{}, err
	}

	record, err := s.salaryRepo.GetByID(ctx, id, claims.CompanyID)
	if err != nil {
		return salary.MonthlySalaryResponse{}, err
	}

	return salary.NewMonthlySalaryResponse(record), nil
}

func (s *SalaryServiceImpl) ListByPeriod(ctx context.Context, req salary.ListPeriodRequest) ([]salary.MonthlySalaryResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	claims, err := auth.FromContext(ctx)
	if err != nil {
		return nil, err
	}

	records, err := s.salaryRepo.ListByPeriod(ctx, claims.CompanyID, req.Period())
	if err != nil {
		return nil, err
	}

	result := make([]salary.MonthlySalaryResponse, 0, len(records))
	for _, r := range records {
		result = append(result, salary.NewMonthlySalaryResponse(r))
	}
	return result, nil
}

// ========== LIFECYCLE ==========

func (s *SalaryServiceImpl) Approve(ctx context.Context, req salary.ApproveRequest) (salary.MonthlySalaryResponse, error) {
	if err := req.Validate(); err != nil {
		return salary.MonthlySalaryResponse{}, err
	}

	claims, err := auth.FromContext(ctx)
	if err != nil {
		return salary.MonthlySalaryResponse{}, err
	}

	approved, err := s.salaryRepo.Approve(ctx, req.SalaryID, claims.CompanyID, claims.UserID, s.cfg.Now())
	if err != nil {
		return salary.MonthlySalaryResponse{}, err
	}

	slog.Info("Salary approved",
		"salary_id", approved.ID,
		"employee_id", approved.EmployeeID,
		"approved_by", claims.UserID,
	)

	return salary.NewMonthlySalaryResponse(approved), nil
}

func (s *SalaryServiceImpl) MarkPaid(ctx context.Context, req salary.PayRequest) (salary.MonthlySalaryResponse, error) {
	if err := req.Validate(); err != nil {
		return salary.MonthlySalaryResponse{}, err
	}

	claims, err := auth.FromContext(ctx)
	if err != nil {
		return salary.MonthlySalaryResponse{}, err
	}

	paid, err := s.salaryRepo.MarkPaid(ctx, req.SalaryID, claims.CompanyID, salary.Payment{
		PaidAt:               req.PaidAt(s.cfg.Now()),
		PaymentMethod:        req.PaymentMethod,
		TransactionReference: req.TransactionReference,
	})
	if err != nil {
		return salary.MonthlySalaryResponse{}, err
	}

	slog.Info("Salary marked as paid",
		"salary_id", paid.ID,
		"employee_id", paid.EmployeeID,
		"paid_by", claims.UserID,
	)

	return salary.NewMonthlySalaryResponse(paid), nil
}

// ========== PROFILES ==========

func (s *SalaryServiceImpl) UpsertProfile(ctx context.Context, req salary.UpsertProfileRequest) (salary.ProfileResponse, error) {
	if err := req.Validate(); err != nil {
		return salary.ProfileResponse{}, err
	}

	claims, err := auth.FromContext(ctx)
	if err != nil {
		return salary.ProfileResponse{}, err
	}

	if _, err := s.employeeRepo.GetByID(ctx, req.EmployeeID, claims.CompanyID); err != nil {
		return salary.ProfileResponse{}, err
	}

	effectiveFrom := dateOnly(s.cfg.Now().In(s.cfg.Location))
	if req.EffectiveFrom != "" {
		effectiveFrom, _ = validator.IsValidDate(req.EffectiveFrom)
	}

	profile, err := s.profileRepo.Upsert(ctx, salary.Profile{
		CompanyID:     claims.CompanyID,
		EmployeeID:    req.EmployeeID,
		MonthlySalary: req.MonthlySalary,
		EffectiveFrom: effectiveFrom,
	})
	if err != nil {
		return salary.ProfileResponse{}, err
	}

	return salary.NewProfileResponse(profile), nil
}

func (s *SalaryServiceImpl) GetProfile(ctx context.Context, employeeID string) (salary.ProfileResponse, error) {
	claims, err := auth.FromContext(ctx)
	if err != nil {
		return salary.ProfileResponse{}, err
	}

	profile, err := s.profileRepo.GetByEmployeeID(ctx, employeeID, claims.CompanyID)
	if err != nil {
		return salary.ProfileResponse{}, err
	}

	return salary.NewProfileResponse(profile), nil
}
