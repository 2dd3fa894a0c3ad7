package http

import (
	"net/http"

	"github.com/cmlabs-hris/hris-payroll-go/internal/domain/worksettings"
	"github.com/cmlabs-hris/hris-payroll-go/internal/handler/http/response"
)

type WorkSettingsHandler interface {
	Get(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
}

type workSettingsHandlerImpl struct {
	workSettingsService worksettings.WorkSettingsService
}

func NewWorkSettingsHandler(workSettingsService worksettings.WorkSettingsService) WorkSettingsHandler {
	return &workSettingsHandlerImpl{workSettingsService: workSettingsService}
}

func (h *workSettingsHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	result, err := h.workSettingsService.Get(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *workSettingsHandlerImpl) Update(w http.ResponseWriter, r *http.Request) {
	var req worksettings.UpdateWorkSettingsRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	result, err := h.workSettingsService.Update(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Work settings updated", result)
}
