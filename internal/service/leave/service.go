package leave

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/cmlabs-hris/hris-payroll-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hris-payroll-go/internal/domain/auth"
	"github.com/cmlabs-hris/hris-payroll-go/internal/domain/leave"
	"github.com/cmlabs-hris/hris-payroll-go/internal/pkg/database"
)

type LeaveServiceImpl struct {
	tx             database.Transactor
	leaveRepo      leave.LeaveRequestRepository
	attendanceRepo attendance.AttendanceRepository
}

func NewLeaveService(
	tx database.Transactor,
	leaveRepo leave.LeaveRequestRepository,
	attendanceRepo attendance.AttendanceRepository,
) leave.LeaveService {
	return &LeaveServiceImpl{
		tx:             tx,
		leaveRepo:      leaveRepo,
		attendanceRepo: attendanceRepo,
	}
}

func (s *LeaveServiceImpl) CreateRequest(ctx context.Context, req leave.CreateLeaveRequest) (leave.LeaveRequestResponse, error) {
	if err := req.Validate(); err != nil {
		return leave.LeaveRequestResponse{}, err
	}

	claims, err := auth.FromContext(ctx)
	if err != nil {
		return leave.LeaveRequestResponse{}, err
	}
	if claims.EmployeeID == "" {
		return leave.LeaveRequestResponse{}, auth.ErrEmployeeIDRequired
	}

	from, to := req.Dates()
	leaveType := strings.TrimSpace(req.LeaveType)

	var created leave.LeaveRequest
	err = s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		if err := s.leaveRepo.LockEmployee(ctx, claims.EmployeeID); err != nil {
			return err
		}

		overlapping, err := s.leaveRepo.ExistsNonRejectedOverlapping(ctx, claims.EmployeeID, claims.CompanyID, from, to)
		if err != nil {
			return fmt.Errorf("failed to check overlapping leave: %w", err)
		}
		if overlapping {
			return leave.ErrOverlappingLeave
		}

		attended, err := s.attendanceRepo.ExistsNonRejectedBetween(ctx, claims.EmployeeID, claims.CompanyID, from, to)
		if err != nil {
			return fmt.Errorf("failed to check attendance: %w", err)
		}
		if attended {
			return leave.ErrAttendanceOnDates
		}

		created, err = s.leaveRepo.Create(ctx, leave.LeaveRequest{
			CompanyID:  claims.CompanyID,
			EmployeeID: claims.EmployeeID,
			FromDate:   from,
			ToDate:     to,
			Reason:     strings.TrimSpace(req.Reason),
			LeaveType:  leaveType,
			IsPaid:     leave.IsPaidLeaveType(leaveType),
			Status:     leave.StatusPending,
		})
		return err
	})
	if err != nil {
		return leave.LeaveRequestResponse{}, err
	}

	return leave.NewLeaveRequestResponse(created), nil
}

func (s *LeaveServiceImpl) GetRequest(ctx context.Context, id string) (leave.LeaveRequestResponse, error) {
	claims, err := auth.FromContext(ctx)
	if err != nil {
		return leave.LeaveRequestResponse{}, err
	}

	request, err := s.leaveRepo.GetByID(ctx, id, claims.CompanyID)
	if err != nil {
		return leave.LeaveRequestResponse{}, err
	}

	return leave.NewLeaveRequestResponse(request), nil
}

func (s *LeaveServiceImpl) UpdateStatus(ctx context.Context, req leave.UpdateStatusRequest) (leave.LeaveRequestResponse, error) {
	if err := req.Validate(); err != nil {
		return leave.LeaveRequestResponse{}, err
	}

	claims, err := auth.FromContext(ctx)
	if err != nil {
		return leave.LeaveRequestResponse{}, err
	}

	var resolved leave.LeaveRequest
	err = s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		current, err := s.leaveRepo.GetByID(ctx, req.ID, claims.CompanyID)
		if err != nil {
			return err
		}
		if err := s.leaveRepo.LockEmployee(ctx, current.EmployeeID); err != nil {
			return err
		}

		resolved, err = s.leaveRepo.Resolve(ctx, req.ID, claims.CompanyID, leave.Status(req.Status), claims.UserID)
		return err
	})
	if err != nil {
		switch {
		case errors.Is(err, leave.ErrAlreadyResolved),
			errors.Is(err, leave.ErrLeaveRequestNotFound),
			errors.Is(err, leave.ErrAttendanceConflict):
			return leave.LeaveRequestResponse{}, err
		}
		return leave.LeaveRequestResponse{}, fmt.Errorf("failed to resolve leave request: %w", err)
	}

	slog.Info("Leave request resolved",
		"leave_request_id", resolved.ID,
		"employee_id", resolved.EmployeeID,
		"status", resolved.Status,
		"resolved_by", claims.UserID,
	)

	return leave.NewLeaveRequestResponse(resolved), nil
}
