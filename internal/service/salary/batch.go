package salary

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/hris-payroll-go/internal/domain/auth"
	"github.com/cmlabs-hris/hris-payroll-go/internal/domain/salary"
	"github.com/cmlabs-hris/hris-payroll-go/internal/pkg/lock"
)

func (s *SalaryServiceImpl) GenerateBatch(ctx context.Context, req salary.GenerateBatchRequest) (salary.GenerateBatchResponse, error) {
	if err := req.Validate(); err != nil {
		return salary.GenerateBatchResponse{}, err
	}

	claims, err := auth.FromContext(ctx)
	if err != nil {
		return salary.GenerateBatchResponse{}, err
	}

	return s.GenerateForCompany(ctx, claims.CompanyID, req.Period(), req.BypassDateCheck)
}

// checkGenerationGate blocks a period until GenerationDay of the following month.
func (s *SalaryServiceImpl) checkGenerationGate(period salary.Period) error {
	opensAt := period.GenerationOpensAt(s.cfg.GenerationDay, s.cfg.Location)
	if s.cfg.Now().Before(opensAt) {
		return &salary.TimingGateError{Period: period, MinDate: opensAt}
	}
	return nil
}

func generationLockKey(companyID string, period salary.Period) string {
	return fmt.Sprintf("salary:generate:%s:%d:%d", companyID, period.Year, period.Month)
}

// GenerateForCompany creates Draft records for every employee with a salary
// profile. Employees are processed one at a time; a failure is recorded and
// the run continues. Records already written stay written.
func (s *SalaryServiceImpl) GenerateForCompany(ctx context.Context, companyID string, period salary.Period, bypassDateCheck bool) (salary.GenerateBatchResponse, error) {
	if !bypassDateCheck {
		if err := s.checkGenerationGate(period); err != nil {
			return salary.GenerateBatchResponse{}, err
		}
	}

	lk, err := s.locker.Obtain(ctx, generationLockKey(companyID, period), s.cfg.LockTTL)
	if err != nil {
		if errors.Is(err, lock.ErrNotObtained) {
			return salary.GenerateBatchResponse{}, salary.ErrGenerationInProgress
		}
		return salary.GenerateBatchResponse{}, err
	}
	defer func() {
		if err := lk.Release(context.WithoutCancel(ctx)); err != nil {
			slog.Warn("Failed to release salary generation lock", "company_id", companyID, "error", err)
		}
	}()

	start := time.Now()
	result := salary.GenerateBatchResponse{
		Month:  period.Month,
		Year:   period.Year,
		Errors: []salary.GenerationError{},
	}

	cal, err := s.loadCalendar(ctx, companyID, period)
	if err != nil {
		return salary.GenerateBatchResponse{}, err
	}

	profiles, err := s.profileRepo.ListByCompany(ctx, companyID)
	if err != nil {
		return salary.GenerateBatchResponse{}, fmt.Errorf("failed to list salary profiles: %w", err)
	}

	existing, err := s.salaryRepo.ListByPeriod(ctx, companyID, period)
	if err != nil {
		return salary.GenerateBatchResponse{}, fmt.Errorf("failed to list existing salaries: %w", err)
	}
	generated := make(map[string]bool, len(existing))
	for _, r := range existing {
		generated[r.EmployeeID] = true
	}

	for _, profile := range profiles {
		if generated[profile.EmployeeID] {
			result.Errors = append(result.Errors, alreadyGenerated(profile.EmployeeID, period))
			continue
		}

		breakdown, err := s.engine.Calculate(ctx, companyID, profile.EmployeeID, profile.MonthlySalary, period, cal)
		if err != nil {
			result.Errors = append(result.Errors, calculationFailed(profile.EmployeeID, err))
			continue
		}

		if _, err := s.salaryRepo.Create(ctx, s.newRecord(companyID, profile, period, breakdown)); err != nil {
			if errors.Is(err, salary.ErrDuplicateGeneration) {
				result.Errors = append(result.Errors, alreadyGenerated(profile.EmployeeID, period))
				continue
			}
			result.Errors = append(result.Errors, calculationFailed(profile.EmployeeID, err))
			continue
		}
		result.GeneratedCount++
	}

	slog.Info("Salary batch generated",
		"company_id", companyID,
		"period", period.String(),
		"generated", result.GeneratedCount,
		"errors", len(result.Errors),
		"duration", time.Since(start),
	)

	return result, nil
}

func alreadyGenerated(employeeID string, period salary.Period) salary.GenerationError {
	return salary.GenerationError{
		EmployeeID: employeeID,
		Code:       salary.GenerationErrAlreadyGenerated,
		Message:    fmt.Sprintf("salary already generated for employee %s for %s", employeeID, period),
	}
}

func calculationFailed(employeeID string, err error) salary.GenerationError {
	return salary.GenerationError{
		EmployeeID: employeeID,
		Code:       salary.GenerationErrCalculationFailed,
		Message:    fmt.Sprintf("failed to generate salary for employee %s: %v", employeeID, err),
	}
}
