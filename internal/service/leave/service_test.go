package leave

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/cmlabs-hris/hris-payroll-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hris-payroll-go/internal/domain/auth"
	"github.com/cmlabs-hris/hris-payroll-go/internal/domain/auth/authtest"
	"github.com/cmlabs-hris/hris-payroll-go/internal/domain/leave"
	"github.com/cmlabs-hris/hris-payroll-go/internal/pkg/validator"
	"github.com/cmlabs-hris/hris-payroll-go/internal/repository/memory"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type leaveFixture struct {
	companyID   string
	employeeID  string
	employee    context.Context
	manager     context.Context
	leaves      *memory.LeaveRequestRepository
	attendances *memory.AttendanceRepository
	service     leave.LeaveService
}

func newLeaveFixture(t *testing.T) *leaveFixture {
	t.Helper()

	store := memory.NewStore()
	f := &leaveFixture{
		companyID:   uuid.NewString(),
		employeeID:  uuid.NewString(),
		leaves:      memory.NewLeaveRequestRepository(store),
		attendances: memory.NewAttendanceRepository(store),
	}
	f.employee = authtest.Employee(t, f.companyID, f.employeeID)
	f.manager = authtest.Manager(t, f.companyID, uuid.NewString())
	f.service = NewLeaveService(memory.NewTransactor(), f.leaves, f.attendances)
	return f
}

func (f *leaveFixture) attendance(date string, status attendance.Status) attendance.Attendance {
	d, _ := validator.IsValidDate(date)
	return f.attendances.Seed(attendance.Attendance{
		CompanyID:  f.companyID,
		EmployeeID: f.employeeID,
		Date:       d,
		CheckIn:    d.Add(9 * time.Hour),
		Type:       attendance.TypePresent,
		Status:     status,
	})
}

func annual(from, to string) leave.CreateLeaveRequest {
	return leave.CreateLeaveRequest{FromDate: from, ToDate: to, LeaveType: "Annual", Reason: "family trip"}
}

func TestLeaveService_CreateRequest(t *testing.T) {
	f := newLeaveFixture(t)

	got, err := f.service.CreateRequest(f.employee, annual("2024-04-08", "2024-04-10"))
	require.NoError(t, err)
	assert.Equal(t, "2024-04-08", got.FromDate)
	assert.Equal(t, "2024-04-10", got.ToDate)
	assert.Equal(t, string(leave.StatusPending), got.Status)
	assert.True(t, got.IsPaid)
	assert.Equal(t, f.employeeID, got.EmployeeID)

	unpaid, err := f.service.CreateRequest(f.employee, leave.CreateLeaveRequest{
		FromDate: "2024-04-15", ToDate: "2024-04-15", LeaveType: "Unpaid",
	})
	require.NoError(t, err)
	assert.False(t, unpaid.IsPaid)
}

func TestLeaveService_CreateRequest_Validation(t *testing.T) {
	f := newLeaveFixture(t)

	tests := []struct {
		name  string
		req   leave.CreateLeaveRequest
		field string
	}{
		{"missing from", leave.CreateLeaveRequest{ToDate: "2024-04-10", LeaveType: "Annual"}, "fromDate"},
		{"bad date", annual("2024-04-31", "2024-05-01"), "fromDate"},
		{"to before from", annual("2024-04-10", "2024-04-08"), "toDate"},
		{"missing type", leave.CreateLeaveRequest{FromDate: "2024-04-08", ToDate: "2024-04-10"}, "leaveType"},
		{"longer than a year", annual("2024-01-01", "2025-06-01"), "toDate"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.service.CreateRequest(f.employee, tt.req)
			var verrs validator.ValidationErrors
			require.ErrorAs(t, err, &verrs)
			assert.Contains(t, verrs.ToMap(), tt.field)
		})
	}

	_, err := f.service.CreateRequest(f.manager, annual("2024-04-08", "2024-04-10"))
	assert.ErrorIs(t, err, auth.ErrEmployeeIDRequired)
}

func TestLeaveService_CreateRequest_Overlap(t *testing.T) {
	f := newLeaveFixture(t)

	first, err := f.service.CreateRequest(f.employee, annual("2024-04-08", "2024-04-10"))
	require.NoError(t, err)

	_, err = f.service.CreateRequest(f.employee, annual("2024-04-10", "2024-04-12"))
	assert.ErrorIs(t, err, leave.ErrOverlappingLeave)

	// adjacent ranges do not overlap
	_, err = f.service.CreateRequest(f.employee, annual("2024-04-11", "2024-04-12"))
	require.NoError(t, err)

	// a rejected request frees its dates
	_, err = f.service.UpdateStatus(f.manager, leave.UpdateStatusRequest{ID: first.ID, Status: "Rejected"})
	require.NoError(t, err)
	_, err = f.service.CreateRequest(f.employee, annual("2024-04-09", "2024-04-09"))
	assert.NoError(t, err)
}

func TestLeaveService_CreateRequest_AttendanceOnDates(t *testing.T) {
	f := newLeaveFixture(t)
	f.attendance("2024-04-09", attendance.StatusPending)
	f.attendance("2024-04-16", attendance.StatusRejected)

	_, err := f.service.CreateRequest(f.employee, annual("2024-04-08", "2024-04-10"))
	assert.ErrorIs(t, err, leave.ErrAttendanceOnDates)

	_, err = f.service.CreateRequest(f.employee, annual("2024-04-15", "2024-04-17"))
	assert.NoError(t, err)
}

func TestLeaveService_CreateRequest_ConcurrentOverlapping(t *testing.T) {
	f := newLeaveFixture(t)

	ranges := [][2]string{
		{"2024-04-08", "2024-04-10"},
		{"2024-04-09", "2024-04-12"},
		{"2024-04-10", "2024-04-10"},
		{"2024-04-05", "2024-04-10"},
	}

	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		successes int
	)
	for range 3 {
		for _, r := range ranges {
			wg.Add(1)
			go func() {
				defer wg.Done()
				_, err := f.service.CreateRequest(f.employee, annual(r[0], r[1]))
				if err != nil {
					assert.ErrorIs(t, err, leave.ErrOverlappingLeave)
					return
				}
				mu.Lock()
				successes++
				mu.Unlock()
			}()
		}
	}
	wg.Wait()

	assert.Equal(t, 1, successes)
}

func TestLeaveService_UpdateStatus(t *testing.T) {
	f := newLeaveFixture(t)
	created, err := f.service.CreateRequest(f.employee, annual("2024-04-08", "2024-04-10"))
	require.NoError(t, err)

	got, err := f.service.UpdateStatus(f.manager, leave.UpdateStatusRequest{ID: created.ID, Status: "Approved"})
	require.NoError(t, err)
	assert.Equal(t, string(leave.StatusApproved), got.Status)
	assert.NotNil(t, got.ResolvedAt)

	_, err = f.service.UpdateStatus(f.manager, leave.UpdateStatusRequest{ID: created.ID, Status: "Rejected"})
	var resolved *leave.AlreadyResolvedError
	require.ErrorAs(t, err, &resolved)
	assert.Equal(t, leave.StatusApproved, resolved.Current)

	_, err = f.service.UpdateStatus(f.manager, leave.UpdateStatusRequest{ID: uuid.NewString(), Status: "Approved"})
	assert.ErrorIs(t, err, leave.ErrLeaveRequestNotFound)

	_, err = f.service.UpdateStatus(f.manager, leave.UpdateStatusRequest{ID: created.ID, Status: "Cancelled"})
	var verrs validator.ValidationErrors
	assert.ErrorAs(t, err, &verrs)
}

func TestLeaveService_UpdateStatus_AttendanceConflict(t *testing.T) {
	f := newLeaveFixture(t)
	created, err := f.service.CreateRequest(f.employee, annual("2024-04-08", "2024-04-10"))
	require.NoError(t, err)

	// attendance approved after the request was filed
	f.attendance("2024-04-09", attendance.StatusApproved)

	_, err = f.service.UpdateStatus(f.manager, leave.UpdateStatusRequest{ID: created.ID, Status: "Approved"})
	assert.ErrorIs(t, err, leave.ErrAttendanceConflict)

	current, err := f.service.GetRequest(f.manager, created.ID)
	require.NoError(t, err)
	assert.Equal(t, string(leave.StatusPending), current.Status)

	// rejecting is always possible
	got, err := f.service.UpdateStatus(f.manager, leave.UpdateStatusRequest{ID: created.ID, Status: "Rejected"})
	require.NoError(t, err)
	assert.Equal(t, string(leave.StatusRejected), got.Status)
}

func TestLeaveService_UpdateStatus_IgnoresUnapprovedAttendance(t *testing.T) {
	f := newLeaveFixture(t)
	created, err := f.service.CreateRequest(f.employee, annual("2024-04-08", "2024-04-10"))
	require.NoError(t, err)

	f.attendance("2024-04-08", attendance.StatusRejected)
	f.attendance("2024-04-11", attendance.StatusApproved)

	got, err := f.service.UpdateStatus(f.manager, leave.UpdateStatusRequest{ID: created.ID, Status: "Approved"})
	require.NoError(t, err)
	assert.Equal(t, string(leave.StatusApproved), got.Status)
}

func TestLeaveService_UpdateStatus_ConcurrentSingleWinner(t *testing.T) {
	f := newLeaveFixture(t)
	created, err := f.service.CreateRequest(f.employee, annual("2024-04-08", "2024-04-10"))
	require.NoError(t, err)

	const workers = 10
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		successes int
	)
	for i := range workers {
		status := "Approved"
		if i%3 == 0 {
			status = "Rejected"
		}
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := f.service.UpdateStatus(f.manager, leave.UpdateStatusRequest{ID: created.ID, Status: status})
			if err != nil {
				assert.ErrorIs(t, err, leave.ErrAlreadyResolved)
				return
			}
			mu.Lock()
			successes++
			mu.Unlock()
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, successes)
}
