package worksettings

import (
	"github.com/cmlabs-hris/hris-payroll-go/internal/pkg/validator"
)

type UpdateWorkSettingsRequest struct {
	ShiftStartTime     *string `json:"shiftStartTime,omitempty"`
	GracePeriodMinutes *int    `json:"gracePeriodMinutes,omitempty" validate:"omitempty,gte=0,lte=720"`
	WeeklyOffs         []int   `json:"weeklyOffs,omitempty" validate:"omitempty,max=7,unique,dive,gte=0,lte=6"`
}

func (r *UpdateWorkSettingsRequest) Validate() error {
	errs := validator.Struct(r)

	if r.ShiftStartTime != nil && !validator.IsValidClock(*r.ShiftStartTime) {
		errs.Add("shiftStartTime", "must be in HH:MM format")
	}

	return errs.Err()
}

type WorkSettingsResponse struct {
	ShiftStartTime     string `json:"shiftStartTime"`
	GracePeriodMinutes int    `json:"gracePeriodMinutes"`
	WeeklyOffs         []int  `json:"weeklyOffs"`
	IsDefault          bool   `json:"isDefault"`
}
