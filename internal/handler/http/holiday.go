package http

import (
	"net/http"
	"time"

	"github.com/cmlabs-hris/hris-payroll-go/internal/domain/holiday"
	"github.com/cmlabs-hris/hris-payroll-go/internal/handler/http/response"
	"github.com/cmlabs-hris/hris-payroll-go/internal/pkg/validator"
)

type HolidayHandler interface {
	List(w http.ResponseWriter, r *http.Request)
	Create(w http.ResponseWriter, r *http.Request)
	Import(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
}

type holidayHandlerImpl struct {
	holidayService holiday.HolidayService
}

func NewHolidayHandler(holidayService holiday.HolidayService) HolidayHandler {
	return &holidayHandlerImpl{holidayService: holidayService}
}

// List returns the holidays of ?year, the current year when omitted.
func (h *holidayHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	var errs validator.ValidationErrors
	year := queryInt(r, "year", &errs)
	if err := errs.Err(); err != nil {
		response.HandleError(w, err)
		return
	}
	if year == nil {
		current := time.Now().Year()
		year = &current
	}

	result, err := h.holidayService.List(r.Context(), *year)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *holidayHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	var req holiday.CreateHolidayRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	result, err := h.holidayService.Create(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Holiday created", result)
}

// Import skips entries whose date and region already exist.
func (h *holidayHandlerImpl) Import(w http.ResponseWriter, r *http.Request) {
	var req holiday.ImportHolidaysRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	result, err := h.holidayService.Import(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Holidays imported", result)
}

func (h *holidayHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := uuidParam(w, r, "id")
	if !ok {
		return
	}

	if err := h.holidayService.Delete(r.Context(), id); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Holiday deleted", nil)
}
