package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/sweldox/payroll-backend-go/internal/domain/payrollconfig"
	"github.com/sweldox/payroll-backend-go/internal/handler/http/response"
	configservice "github.com/sweldox/payroll-backend-go/internal/service/payrollconfig"
)

// PayrollConfigHandler administers the four date-versioned configuration
// tables: create a new version, list versions, soft-retire a row.
type PayrollConfigHandler interface {
	CreateSocialInsurance(w http.ResponseWriter, r *http.Request)
	ListSocialInsurance(w http.ResponseWriter, r *http.Request)
	CreateHealthInsurance(w http.ResponseWriter, r *http.Request)
	ListHealthInsurance(w http.ResponseWriter, r *http.Request)
	CreateHousingFund(w http.ResponseWriter, r *http.Request)
	ListHousingFund(w http.ResponseWriter, r *http.Request)
	CreateTaxBrackets(w http.ResponseWriter, r *http.Request)
	ListTaxBrackets(w http.ResponseWriter, r *http.Request)
	RetireConfig(kind payrollconfig.Kind) http.HandlerFunc
}

type payrollConfigHandlerImpl struct {
	configService *configservice.Service
}

func NewPayrollConfigHandler(configService *configservice.Service) PayrollConfigHandler {
	return &payrollConfigHandlerImpl{configService: configService}
}

func (h *payrollConfigHandlerImpl) CreateSocialInsurance(w http.ResponseWriter, r *http.Request) {
	var req payrollconfig.CreateSocialInsuranceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	result, err := h.configService.CreateSocialInsurance(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Social insurance configuration created", result)
}

func (h *payrollConfigHandlerImpl) ListSocialInsurance(w http.ResponseWriter, r *http.Request) {
	result, err := h.configService.ListSocialInsurance(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *payrollConfigHandlerImpl) CreateHealthInsurance(w http.ResponseWriter, r *http.Request) {
	var req payrollconfig.CreateHealthInsuranceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	result, err := h.configService.CreateHealthInsurance(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Health insurance configuration created", result)
}

func (h *payrollConfigHandlerImpl) ListHealthInsurance(w http.ResponseWriter, r *http.Request) {
	result, err := h.configService.ListHealthInsurance(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *payrollConfigHandlerImpl) CreateHousingFund(w http.ResponseWriter, r *http.Request) {
	var req payrollconfig.CreateHousingFundRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	result, err := h.configService.CreateHousingFund(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Housing fund configuration created", result)
}

func (h *payrollConfigHandlerImpl) ListHousingFund(w http.ResponseWriter, r *http.Request) {
	result, err := h.configService.ListHousingFund(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *payrollConfigHandlerImpl) CreateTaxBrackets(w http.ResponseWriter, r *http.Request) {
	var req payrollconfig.CreateTaxBracketsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	result, err := h.configService.CreateTaxBrackets(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Tax brackets created", result)
}

func (h *payrollConfigHandlerImpl) ListTaxBrackets(w http.ResponseWriter, r *http.Request) {
	result, err := h.configService.ListTaxBrackets(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// RetireConfig soft-retires one configuration row of the given kind.
func (h *payrollConfigHandlerImpl) RetireConfig(kind payrollconfig.Kind) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")

		if err := h.configService.RetireConfig(r.Context(), kind, id); err != nil {
			response.HandleError(w, err)
			return
		}

		response.Success(w, map[string]string{"id": id, "status": "retired"})
	}
}
