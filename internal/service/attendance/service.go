package attendance

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/hris-payroll-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hris-payroll-go/internal/domain/auth"
	"github.com/cmlabs-hris/hris-payroll-go/internal/pkg/database"
)

type AttendanceServiceImpl struct {
	tx             database.Transactor
	attendanceRepo attendance.AttendanceRepository
	location       *time.Location
	now            func() time.Time
}

func NewAttendanceService(tx database.Transactor, attendanceRepo attendance.AttendanceRepository, location *time.Location) attendance.AttendanceService {
	if location == nil {
		location = time.UTC
	}
	return &AttendanceServiceImpl{
		tx:             tx,
		attendanceRepo: attendanceRepo,
		location:       location,
		now:            time.Now,
	}
}

// today is the calendar day in the company timezone, as a UTC midnight value.
func (s *AttendanceServiceImpl) today() (time.Time, time.Time) {
	now := s.now().In(s.location)
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC), now
}

func (s *AttendanceServiceImpl) CheckIn(ctx context.Context, req attendance.CheckInRequest) (attendance.AttendanceResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	claims, err := auth.FromContext(ctx)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}
	if claims.EmployeeID == "" {
		return attendance.AttendanceResponse{}, auth.ErrEmployeeIDRequired
	}

	date, now := s.today()
	attType := req.AttendanceType()

	created, err := s.attendanceRepo.Create(ctx, attendance.Attendance{
		CompanyID:  claims.CompanyID,
		EmployeeID: claims.EmployeeID,
		Date:       date,
		CheckIn:    now,
		Type:       attType,
		HalfDay:    attendance.IsHalfDay(attType, nil),
		Status:     attendance.StatusPending,
	})
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	return attendance.NewAttendanceResponse(created), nil
}

func (s *AttendanceServiceImpl) CheckOut(ctx context.Context) (attendance.AttendanceResponse, error) {
	claims, err := auth.FromContext(ctx)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}
	if claims.EmployeeID == "" {
		return attendance.AttendanceResponse{}, auth.ErrEmployeeIDRequired
	}

	date, now := s.today()
	current, err := s.attendanceRepo.GetByEmployeeAndDate(ctx, claims.EmployeeID, date, claims.CompanyID)
	if err != nil {
		if errors.Is(err, attendance.ErrAttendanceNotFound) {
			return attendance.AttendanceResponse{}, attendance.ErrNotCheckedIn
		}
		return attendance.AttendanceResponse{}, err
	}

	updated, err := s.attendanceRepo.SetCheckOut(ctx, current.ID, claims.CompanyID, now)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	return attendance.NewAttendanceResponse(updated), nil
}

func (s *AttendanceServiceImpl) GetAttendance(ctx context.Context, id string) (attendance.AttendanceResponse, error) {
	claims, err := auth.FromContext(ctx)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	record, err := s.attendanceRepo.GetByID(ctx, id, claims.CompanyID)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	return attendance.NewAttendanceResponse(record), nil
}

func (s *AttendanceServiceImpl) UpdateStatus(ctx context.Context, req attendance.UpdateStatusRequest) (attendance.AttendanceResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	claims, err := auth.FromContext(ctx)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	var resolved attendance.Attendance
	err = s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		current, err := s.attendanceRepo.GetByID(ctx, req.ID, claims.CompanyID)
		if err != nil {
			return err
		}
		if err := s.attendanceRepo.LockEmployee(ctx, current.EmployeeID); err != nil {
			return err
		}

		resolved, err = s.attendanceRepo.Resolve(ctx, req.ID, claims.CompanyID, attendance.Status(req.Status), claims.UserID)
		return err
	})
	if err != nil {
		if errors.Is(err, attendance.ErrAlreadyResolved) ||
			errors.Is(err, attendance.ErrAttendanceNotFound) ||
			errors.Is(err, attendance.ErrLeaveConflict) {
			return attendance.AttendanceResponse{}, err
		}
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to resolve attendance: %w", err)
	}

	slog.Info("Attendance resolved",
		"attendance_id", resolved.ID,
		"employee_id", resolved.EmployeeID,
		"status", resolved.Status,
		"resolved_by", claims.UserID,
	)

	return attendance.NewAttendanceResponse(resolved), nil
}
