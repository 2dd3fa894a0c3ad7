package http

import (
	"net/http"

	"github.com/cmlabs-hris/hris-payroll-go/internal/domain/salary"
	"github.com/cmlabs-hris/hris-payroll-go/internal/handler/http/response"
	"github.com/cmlabs-hris/hris-payroll-go/internal/pkg/validator"
)

type SalaryHandler interface {
	// Generation
	GenerateBatch(w http.ResponseWriter, r *http.Request)
	ListByPeriod(w http.ResponseWriter, r *http.Request)
	GenerateIndividual(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)

	// Lifecycle
	Approve(w http.ResponseWriter, r *http.Request)
	MarkPaid(w http.ResponseWriter, r *http.Request)

	// Profiles
	UpsertProfile(w http.ResponseWriter, r *http.Request)
	GetProfile(w http.ResponseWriter, r *http.Request)
}

type salaryHandlerImpl struct {
	salaryService salary.SalaryService
}

func NewSalaryHandler(salaryService salary.SalaryService) SalaryHandler {
	return &salaryHandlerImpl{salaryService: salaryService}
}

// ========== GENERATION ==========

func (h *salaryHandlerImpl) GenerateBatch(w http.ResponseWriter, r *http.Request) {
	var req salary.GenerateBatchRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	result, err := h.salaryService.GenerateBatch(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Salary generation completed", result)
}

func (h *salaryHandlerImpl) ListByPeriod(w http.ResponseWriter, r *http.Request) {
	var errs validator.ValidationErrors
	req := salary.ListPeriodRequest{
		Month: queryInt(r, "month", &errs),
		Year:  queryInt(r, "year", &errs),
	}
	if err := errs.Err(); err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.salaryService.ListByPeriod(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *salaryHandlerImpl) GenerateIndividual(w http.ResponseWriter, r *http.Request) {
	var req salary.GenerateIndividualRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	result, err := h.salaryService.GenerateIndividual(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	if req.Preview {
		response.SuccessWithMessage(w, "Salary preview calculated", result)
		return
	}
	response.Created(w, "Salary generated", result)
}

func (h *salaryHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := uuidParam(w, r, "id")
	if !ok {
		return
	}

	result, err := h.salaryService.Get(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// ========== LIFECYCLE ==========

func (h *salaryHandlerImpl) Approve(w http.ResponseWriter, r *http.Request) {
	var req salary.ApproveRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	result, err := h.salaryService.Approve(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Salary approved", result)
}

func (h *salaryHandlerImpl) MarkPaid(w http.ResponseWriter, r *http.Request) {
	var req salary.PayRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	result, err := h.salaryService.MarkPaid(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Salary marked as paid", result)
}

// ========== PROFILES ==========

func (h *salaryHandlerImpl) UpsertProfile(w http.ResponseWriter, r *http.Request) {
	employeeID, ok := uuidParam(w, r, "employeeId")
	if !ok {
		return
	}

	var req salary.UpsertProfileRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	req.EmployeeID = employeeID

	result, err := h.salaryService.UpsertProfile(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Salary profile saved", result)
}

func (h *salaryHandlerImpl) GetProfile(w http.ResponseWriter, r *http.Request) {
	employeeID, ok := uuidParam(w, r, "employeeId")
	if !ok {
		return
	}

	result, err := h.salaryService.GetProfile(r.Context(), employeeID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
