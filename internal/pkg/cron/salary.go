package cron

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/hris-payroll-go/internal/domain/salary"
)

// SalaryJobs generates last month's salaries once generation opens.
type SalaryJobs struct {
	salaryService salary.SalaryService
	profileRepo   salary.ProfileRepository
	location      *time.Location
	now           func() time.Time
}

func NewSalaryJobs(salaryService salary.SalaryService, profileRepo salary.ProfileRepository, location *time.Location) *SalaryJobs {
	if location == nil {
		location = time.UTC
	}
	return &SalaryJobs{
		salaryService: salaryService,
		profileRepo:   profileRepo,
		location:      location,
		now:           time.Now,
	}
}

func (j *SalaryJobs) RegisterJobs(scheduler *Scheduler, schedule string) error {
	return scheduler.AddJob("generate_previous_month_salaries", schedule, j.GeneratePreviousMonth)
}

// GeneratePreviousMonth runs the batch for every company with salary profiles.
// A company whose period is not open yet or is already being generated is skipped.
func (j *SalaryJobs) GeneratePreviousMonth(ctx context.Context) error {
	period := salary.PeriodOf(j.now().In(j.location)).Previous()

	companyIDs, err := j.profileRepo.ListCompanyIDs(ctx)
	if err != nil {
		return fmt.Errorf("failed to list companies: %w", err)
	}

	slog.Info("Cron: generating salaries", "period", period.String(), "companies", len(companyIDs))

	var failed int
	for _, companyID := range companyIDs {
		if ctx.Err() != nil {
			return ctx.Err()
		}

		result, err := j.salaryService.GenerateForCompany(ctx, companyID, period, false)
		switch {
		case err == nil:
			slog.Info("Cron: salaries generated",
				"company_id", companyID,
				"generated", result.GeneratedCount,
				"skipped", len(result.Errors),
			)
		case errors.Is(err, salary.ErrTimingGate), errors.Is(err, salary.ErrGenerationInProgress):
			slog.Info("Cron: salary generation skipped", "company_id", companyID, "reason", err.Error())
		default:
			failed++
			slog.Error("Cron: salary generation failed", "company_id", companyID, "error", err)
		}
	}

	if failed > 0 {
		return fmt.Errorf("salary generation failed for %d of %d companies", failed, len(companyIDs))
	}
	return nil
}
