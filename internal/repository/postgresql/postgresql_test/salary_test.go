package postgresql_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/cmlabs-hris/hris-payroll-go/internal/domain/salary"
	"github.com/cmlabs-hris/hris-payroll-go/internal/repository/postgresql"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func draftRecord(companyID, employeeID string) salary.MonthlySalary {
	return salary.MonthlySalary{
		CompanyID:   companyID,
		EmployeeID:  employeeID,
		Month:       0,
		Year:        2025,
		MonthlyBase: decimal.RequireFromString("50000"),
		Breakdown: salary.Breakdown{
			WorkingDays:      26,
			FullDayCount:     24,
			HalfDayCount:     2,
			UnpaidLeaveDays:  decimal.RequireFromString("1"),
			PayableDays:      decimal.RequireFromString("25"),
			PerDayRate:       decimal.RequireFromString("1923.08"),
			CalculatedSalary: decimal.RequireFromString("48077.00"),
		},
		Status: salary.StatusDraft,
	}
}

func TestMonthlySalaryRepository_CreateDuplicate(t *testing.T) {
	setupTestData(t)
	ctx := context.Background()
	companyID := uuid.NewString()
	employeeID := seedEmployee(t, companyID, "Budi Santoso", "EMP-001")
	repo := postgresql.NewMonthlySalaryRepository(testSetup.DB)

	created, err := repo.Create(ctx, draftRecord(companyID, employeeID))
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, salary.StatusDraft, created.Status)
	assert.True(t, created.Breakdown.PerDayRate.Equal(decimal.RequireFromString("1923.08")))
	require.NotNil(t, created.EmployeeName)
	assert.Equal(t, "Budi Santoso", *created.EmployeeName)

	_, err = repo.Create(ctx, draftRecord(companyID, employeeID))
	assert.ErrorIs(t, err, salary.ErrDuplicateGeneration)
}

func TestMonthlySalaryRepository_ConcurrentCreate(t *testing.T) {
	setupTestData(t)
	ctx := context.Background()
	companyID := uuid.NewString()
	employeeID := seedEmployee(t, companyID, "Siti Aminah", "EMP-002")
	repo := postgresql.NewMonthlySalaryRepository(testSetup.DB)

	const workers = 8
	var (
		wg         sync.WaitGroup
		mu         sync.Mutex
		successes  int
		duplicates int
	)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := repo.Create(ctx, draftRecord(companyID, employeeID))
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				successes++
			case errors.Is(err, salary.ErrDuplicateGeneration):
				duplicates++
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, successes)
	assert.Equal(t, workers-1, duplicates)
}

func TestMonthlySalaryRepository_Lifecycle(t *testing.T) {
	setupTestData(t)
	ctx := context.Background()
	companyID := uuid.NewString()
	employeeID := seedEmployee(t, companyID, "Andi", "EMP-003")
	approver := uuid.NewString()
	repo := postgresql.NewMonthlySalaryRepository(testSetup.DB)

	created, err := repo.Create(ctx, draftRecord(companyID, employeeID))
	require.NoError(t, err)

	t.Run("pay before approve", func(t *testing.T) {
		_, err := repo.MarkPaid(ctx, created.ID, companyID, salary.Payment{PaidAt: time.Now()})
		var notApproved *salary.NotApprovedError
		require.ErrorAs(t, err, &notApproved)
		assert.Equal(t, salary.StatusDraft, notApproved.Current)
	})

	t.Run("approve", func(t *testing.T) {
		approved, err := repo.Approve(ctx, created.ID, companyID, approver, time.Now())
		require.NoError(t, err)
		assert.Equal(t, salary.StatusApproved, approved.Status)
		require.NotNil(t, approved.ApprovedBy)
		assert.Equal(t, approver, *approved.ApprovedBy)
	})

	t.Run("approve twice", func(t *testing.T) {
		_, err := repo.Approve(ctx, created.ID, companyID, approver, time.Now())
		assert.ErrorIs(t, err, salary.ErrAlreadyApproved)
	})

	t.Run("pay", func(t *testing.T) {
		method := "Bank Transfer"
		paid, err := repo.MarkPaid(ctx, created.ID, companyID, salary.Payment{PaidAt: time.Now(), PaymentMethod: &method})
		require.NoError(t, err)
		assert.Equal(t, salary.StatusPaid, paid.Status)
		require.NotNil(t, paid.PaymentMethod)
		assert.Equal(t, method, *paid.PaymentMethod)
	})

	t.Run("approve after paid", func(t *testing.T) {
		_, err := repo.Approve(ctx, created.ID, companyID, approver, time.Now())
		var already *salary.AlreadyApprovedError
		require.ErrorAs(t, err, &already)
		assert.Equal(t, salary.StatusPaid, already.Current)
	})

	t.Run("unknown id", func(t *testing.T) {
		_, err := repo.Approve(ctx, uuid.NewString(), companyID, approver, time.Now())
		assert.ErrorIs(t, err, salary.ErrSalaryNotFound)
	})
}

func TestMonthlySalaryRepository_ConcurrentApprove(t *testing.T) {
	setupTestData(t)
	ctx := context.Background()
	companyID := uuid.NewString()
	employeeID := seedEmployee(t, companyID, "Rina", "EMP-004")
	repo := postgresql.NewMonthlySalaryRepository(testSetup.DB)

	created, err := repo.Create(ctx, draftRecord(companyID, employeeID))
	require.NoError(t, err)

	const workers = 6
	results := make(chan error, workers)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := repo.Approve(ctx, created.ID, companyID, uuid.NewString(), time.Now())
			results <- err
		}()
	}
	wg.Wait()
	close(results)

	var successes int
	for err := range results {
		if err == nil {
			successes++
			continue
		}
		assert.ErrorIs(t, err, salary.ErrAlreadyApproved)
	}
	assert.Equal(t, 1, successes)
}

func TestSalaryProfileRepository_Upsert(t *testing.T) {
	setupTestData(t)
	ctx := context.Background()
	companyID := uuid.NewString()
	employeeID := seedEmployee(t, companyID, "Dewi", "EMP-005")
	repo := postgresql.NewSalaryProfileRepository(testSetup.DB)

	_, err := repo.GetByEmployeeID(ctx, employeeID, companyID)
	assert.ErrorIs(t, err, salary.ErrProfileNotFound)

	effective := time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC)
	first, err := repo.Upsert(ctx, salary.Profile{
		CompanyID:     companyID,
		EmployeeID:    employeeID,
		MonthlySalary: decimal.RequireFromString("30000"),
		EffectiveFrom: effective,
	})
	require.NoError(t, err)

	second, err := repo.Upsert(ctx, salary.Profile{
		CompanyID:     companyID,
		EmployeeID:    employeeID,
		MonthlySalary: decimal.RequireFromString("32500.50"),
		EffectiveFrom: effective.AddDate(0, 3, 0),
	})
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
	assert.True(t, second.MonthlySalary.Equal(decimal.RequireFromString("32500.50")))

	profiles, err := repo.ListByCompany(ctx, companyID)
	require.NoError(t, err)
	assert.Len(t, profiles, 1)

	companies, err := repo.ListCompanyIDs(ctx)
	require.NoError(t, err)
	assert.Contains(t, companies, companyID)
}
