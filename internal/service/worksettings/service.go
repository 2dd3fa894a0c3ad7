package worksettings

import (
	"context"
	"errors"
	"log/slog"

	"github.com/cmlabs-hris/hris-payroll-go/internal/domain/auth"
	"github.com/cmlabs-hris/hris-payroll-go/internal/domain/worksettings"
)

type WorkSettingsServiceImpl struct {
	repo worksettings.WorkSettingsRepository
}

func NewWorkSettingsService(repo worksettings.WorkSettingsRepository) worksettings.WorkSettingsService {
	return &WorkSettingsServiceImpl{repo: repo}
}

func (s *WorkSettingsServiceImpl) Load(ctx context.Context, companyID string) (worksettings.WorkSettings, error) {
	settings, err := s.repo.GetByCompanyID(ctx, companyID)
	if err != nil {
		if errors.Is(err, worksettings.ErrWorkSettingsNotFound) {
			return worksettings.Default(companyID), nil
		}
		return worksettings.WorkSettings{}, err
	}
	settings.WeeklyOffs = settings.EffectiveWeeklyOffs()
	return settings, nil
}

func (s *WorkSettingsServiceImpl) Get(ctx context.Context) (worksettings.WorkSettingsResponse, error) {
	claims, err := auth.FromContext(ctx)
	if err != nil {
		return worksettings.WorkSettingsResponse{}, err
	}

	settings, err := s.Load(ctx, claims.CompanyID)
	if err != nil {
		return worksettings.WorkSettingsResponse{}, err
	}

	return toResponse(settings), nil
}

func (s *WorkSettingsServiceImpl) Update(ctx context.Context, req worksettings.UpdateWorkSettingsRequest) (worksettings.WorkSettingsResponse, error) {
	if err := req.Validate(); err != nil {
		return worksettings.WorkSettingsResponse{}, err
	}

	claims, err := auth.FromContext(ctx)
	if err != nil {
		return worksettings.WorkSettingsResponse{}, err
	}

	current, err := s.Load(ctx, claims.CompanyID)
	if err != nil {
		return worksettings.WorkSettingsResponse{}, err
	}

	if req.ShiftStartTime != nil {
		current.ShiftStartTime = *req.ShiftStartTime
	}
	if req.GracePeriodMinutes != nil {
		current.GracePeriodMinutes = *req.GracePeriodMinutes
	}
	if req.WeeklyOffs != nil {
		current.WeeklyOffs = req.WeeklyOffs
	}

	updated, err := s.repo.Upsert(ctx, current)
	if err != nil {
		return worksettings.WorkSettingsResponse{}, err
	}

	slog.Info("Work settings updated",
		"company_id", claims.CompanyID,
		"weekly_offs", updated.WeeklyOffs,
		"updated_by", claims.UserID,
	)

	return toResponse(updated), nil
}

func toResponse(s worksettings.WorkSettings) worksettings.WorkSettingsResponse {
	return worksettings.WorkSettingsResponse{
		ShiftStartTime:     s.ShiftStartTime,
		GracePeriodMinutes: s.GracePeriodMinutes,
		WeeklyOffs:         s.EffectiveWeeklyOffs(),
		IsDefault:          s.ID == "",
	}
}
