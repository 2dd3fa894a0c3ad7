package holiday

import (
	"fmt"

	"github.com/cmlabs-hris/hris-payroll-go/internal/pkg/validator"
)

type CreateHolidayRequest struct {
	Date   string `json:"date" validate:"required,datetime=2006-01-02"`
	Name   string `json:"name" validate:"required,max=150"`
	Type   string `json:"type" validate:"omitempty,oneof=National State Regional Custom"`
	Region string `json:"region,omitempty" validate:"max=100"`
}

func (r *CreateHolidayRequest) Validate() error {
	errs := validator.Struct(r)
	if validator.IsEmpty(r.Name) && r.Name != "" {
		errs.Add("name", "is required")
	}
	return errs.Err()
}

// HolidayType returns the requested type, Custom when omitted.
func (r *CreateHolidayRequest) HolidayType() HolidayType {
	if r.Type == "" {
		return HolidayTypeCustom
	}
	return HolidayType(r.Type)
}

type ImportHolidaysRequest struct {
	Holidays []CreateHolidayRequest `json:"holidays" validate:"required,min=1,max=500"`
}

func (r *ImportHolidaysRequest) Validate() error {
	errs := validator.Struct(r)
	for i := range r.Holidays {
		itemErr := r.Holidays[i].Validate()
		if itemErr == nil {
			continue
		}
		for _, fe := range itemErr.(validator.ValidationErrors) {
			errs.Add(fmt.Sprintf("holidays[%d].%s", i, fe.Field), fe.Message)
		}
	}
	return errs.Err()
}

type ImportHolidaysResponse struct {
	Imported int               `json:"imported"`
	Skipped  int               `json:"skipped"`
	Holidays []HolidayResponse `json:"holidays"`
}

type HolidayResponse struct {
	ID     string `json:"id"`
	Date   string `json:"date"`
	Name   string `json:"name"`
	Type   string `json:"type"`
	Region string `json:"region,omitempty"`
}
