package postgresql_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/cmlabs-hris/hris-payroll-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hris-payroll-go/internal/domain/leave"
	"github.com/cmlabs-hris/hris-payroll-go/internal/repository/postgresql"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestAttendanceRepository_CreateOncePerDay(t *testing.T) {
	setupTestData(t)
	ctx := context.Background()
	companyID := uuid.NewString()
	employeeID := seedEmployee(t, companyID, "Budi", "EMP-010")
	repo := postgresql.NewAttendanceRepository(testSetup.DB)

	record := attendance.Attendance{
		CompanyID:  companyID,
		EmployeeID: employeeID,
		Date:       day(2025, time.March, 3),
		CheckIn:    time.Date(2025, time.March, 3, 9, 0, 0, 0, time.UTC),
		Type:       attendance.TypePresent,
		Status:     attendance.StatusPending,
	}

	created, err := repo.Create(ctx, record)
	require.NoError(t, err)
	assert.Equal(t, day(2025, time.March, 3), created.Date.UTC())

	_, err = repo.Create(ctx, record)
	assert.ErrorIs(t, err, attendance.ErrAlreadyCheckedIn)

	_, err = repo.SetCheckOut(ctx, created.ID, companyID, time.Date(2025, time.March, 3, 17, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	_, err = repo.SetCheckOut(ctx, created.ID, companyID, time.Now())
	assert.ErrorIs(t, err, attendance.ErrAlreadyCheckedOut)
}

func TestAttendanceRepository_LegacyHalfDayFlag(t *testing.T) {
	setupTestData(t)
	ctx := context.Background()
	companyID := uuid.NewString()
	employeeID := seedEmployee(t, companyID, "Legacy", "EMP-011")
	repo := postgresql.NewAttendanceRepository(testSetup.DB)

	// Rows written before the Half Day type existed carry the flag, or NULL.
	_, err := testSetup.DB.Exec(ctx, `
		INSERT INTO attendances (company_id, employee_id, date, check_in, type, is_half_day, status)
		VALUES
			($1, $2, '2025-03-03', NOW(), 'Present', TRUE, 'Approved'),
			($1, $2, '2025-03-04', NOW(), 'Present', NULL, 'Approved'),
			($1, $2, '2025-03-05', NOW(), 'Half Day', NULL, 'Approved')
	`, companyID, employeeID)
	require.NoError(t, err)

	records, err := repo.ListApprovedBetween(ctx, employeeID, companyID, day(2025, time.March, 1), day(2025, time.March, 31))
	require.NoError(t, err)
	require.Len(t, records, 3)

	assert.True(t, records[0].HalfDay)
	assert.False(t, records[1].HalfDay)
	assert.True(t, records[2].HalfDay)
}

func TestAttendanceRepository_ResolveIsFinal(t *testing.T) {
	setupTestData(t)
	ctx := context.Background()
	companyID := uuid.NewString()
	employeeID := seedEmployee(t, companyID, "Final", "EMP-012")
	repo := postgresql.NewAttendanceRepository(testSetup.DB)

	created, err := repo.Create(ctx, attendance.Attendance{
		CompanyID:  companyID,
		EmployeeID: employeeID,
		Date:       day(2025, time.March, 3),
		CheckIn:    time.Now(),
		Type:       attendance.TypeWFH,
		Status:     attendance.StatusPending,
	})
	require.NoError(t, err)

	const workers = 5
	errs := make([]error, workers)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			status := attendance.StatusApproved
			if i%2 == 1 {
				status = attendance.StatusRejected
			}
			_, errs[i] = repo.Resolve(ctx, created.ID, companyID, status, uuid.NewString())
		}(i)
	}
	wg.Wait()

	var successes int
	for _, err := range errs {
		if err == nil {
			successes++
			continue
		}
		assert.ErrorIs(t, err, attendance.ErrAlreadyResolved)
	}
	assert.Equal(t, 1, successes)

	_, err = repo.Resolve(ctx, uuid.NewString(), companyID, attendance.StatusApproved, "")
	assert.ErrorIs(t, err, attendance.ErrAttendanceNotFound)
}

func TestLeaveRequestRepository_ApprovalConflict(t *testing.T) {
	setupTestData(t)
	ctx := context.Background()
	companyID := uuid.NewString()
	employeeID := seedEmployee(t, companyID, "Conflict", "EMP-013")
	leaveRepo := postgresql.NewLeaveRequestRepository(testSetup.DB)
	attendanceRepo := postgresql.NewAttendanceRepository(testSetup.DB)

	request, err := leaveRepo.Create(ctx, leave.LeaveRequest{
		CompanyID:  companyID,
		EmployeeID: employeeID,
		FromDate:   day(2025, time.March, 10),
		ToDate:     day(2025, time.March, 12),
		Reason:     "family",
		LeaveType:  "Annual",
		IsPaid:     true,
		Status:     leave.StatusPending,
	})
	require.NoError(t, err)

	att, err := attendanceRepo.Create(ctx, attendance.Attendance{
		CompanyID:  companyID,
		EmployeeID: employeeID,
		Date:       day(2025, time.March, 11),
		CheckIn:    time.Now(),
		Type:       attendance.TypePresent,
		Status:     attendance.StatusPending,
	})
	require.NoError(t, err)
	_, err = attendanceRepo.Resolve(ctx, att.ID, companyID, attendance.StatusApproved, "")
	require.NoError(t, err)

	_, err = leaveRepo.Resolve(ctx, request.ID, companyID, leave.StatusApproved, "")
	assert.ErrorIs(t, err, leave.ErrAttendanceConflict)

	unchanged, err := leaveRepo.GetByID(ctx, request.ID, companyID)
	require.NoError(t, err)
	assert.Equal(t, leave.StatusPending, unchanged.Status)

	rejected, err := leaveRepo.Resolve(ctx, request.ID, companyID, leave.StatusRejected, "")
	require.NoError(t, err)
	assert.Equal(t, leave.StatusRejected, rejected.Status)

	_, err = leaveRepo.Resolve(ctx, request.ID, companyID, leave.StatusApproved, "")
	var already *leave.AlreadyResolvedError
	require.True(t, errors.As(err, &already))
	assert.Equal(t, leave.StatusRejected, already.Current)
}

func TestAttendanceRepository_ApprovalLeaveConflict(t *testing.T) {
	setupTestData(t)
	ctx := context.Background()
	companyID := uuid.NewString()
	employeeID := seedEmployee(t, companyID, "Reverse", "EMP-015")
	leaveRepo := postgresql.NewLeaveRequestRepository(testSetup.DB)
	attendanceRepo := postgresql.NewAttendanceRepository(testSetup.DB)

	request, err := leaveRepo.Create(ctx, leave.LeaveRequest{
		CompanyID:  companyID,
		EmployeeID: employeeID,
		FromDate:   day(2025, time.March, 17),
		ToDate:     day(2025, time.March, 19),
		LeaveType:  "Annual",
		IsPaid:     true,
		Status:     leave.StatusPending,
	})
	require.NoError(t, err)
	_, err = leaveRepo.Resolve(ctx, request.ID, companyID, leave.StatusApproved, "")
	require.NoError(t, err)

	att, err := attendanceRepo.Create(ctx, attendance.Attendance{
		CompanyID:  companyID,
		EmployeeID: employeeID,
		Date:       day(2025, time.March, 18),
		CheckIn:    time.Now(),
		Type:       attendance.TypePresent,
		Status:     attendance.StatusPending,
	})
	require.NoError(t, err)

	_, err = attendanceRepo.Resolve(ctx, att.ID, companyID, attendance.StatusApproved, "")
	assert.ErrorIs(t, err, attendance.ErrLeaveConflict)

	unchanged, err := attendanceRepo.GetByID(ctx, att.ID, companyID)
	require.NoError(t, err)
	assert.Equal(t, attendance.StatusPending, unchanged.Status)

	rejected, err := attendanceRepo.Resolve(ctx, att.ID, companyID, attendance.StatusRejected, "")
	require.NoError(t, err)
	assert.Equal(t, attendance.StatusRejected, rejected.Status)
}

func TestLeaveRequestRepository_OverlapQueries(t *testing.T) {
	setupTestData(t)
	ctx := context.Background()
	companyID := uuid.NewString()
	employeeID := seedEmployee(t, companyID, "Overlap", "EMP-014")
	repo := postgresql.NewLeaveRequestRepository(testSetup.DB)

	request, err := repo.Create(ctx, leave.LeaveRequest{
		CompanyID:  companyID,
		EmployeeID: employeeID,
		FromDate:   day(2025, time.January, 30),
		ToDate:     day(2025, time.February, 4),
		Reason:     "trip",
		LeaveType:  "Annual",
		IsPaid:     true,
		Status:     leave.StatusPending,
	})
	require.NoError(t, err)

	overlapping, err := repo.ExistsNonRejectedOverlapping(ctx, employeeID, companyID, day(2025, time.February, 4), day(2025, time.February, 6))
	require.NoError(t, err)
	assert.True(t, overlapping)

	overlapping, err = repo.ExistsNonRejectedOverlapping(ctx, employeeID, companyID, day(2025, time.February, 5), day(2025, time.February, 6))
	require.NoError(t, err)
	assert.False(t, overlapping)

	_, err = repo.Resolve(ctx, request.ID, companyID, leave.StatusApproved, "")
	require.NoError(t, err)

	february, err := repo.ListApprovedPaidOverlapping(ctx, employeeID, companyID, day(2025, time.February, 1), day(2025, time.February, 28))
	require.NoError(t, err)
	require.Len(t, february, 1)
	assert.Equal(t, request.ID, february[0].ID)
}
