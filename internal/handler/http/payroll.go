package http

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/jwtauth/v5"
	"github.com/sweldox/payroll-backend-go/internal/domain/payroll"
	"github.com/sweldox/payroll-backend-go/internal/domain/user"
	"github.com/sweldox/payroll-backend-go/internal/handler/http/response"
	"github.com/sweldox/payroll-backend-go/internal/pkg/jwt"
	payrollservice "github.com/sweldox/payroll-backend-go/internal/service/payroll"
)

type PayrollHandler interface {
	CreatePayroll(w http.ResponseWriter, r *http.Request)
	GetPayroll(w http.ResponseWriter, r *http.Request)
	ListPayrolls(w http.ResponseWriter, r *http.Request)
	ListMyPayrolls(w http.ResponseWriter, r *http.Request)
	ListEmployeePayrolls(w http.ResponseWriter, r *http.Request)
}

type payrollHandlerImpl struct {
	payrollService *payrollservice.Service
}

func NewPayrollHandler(payrollService *payrollservice.Service) PayrollHandler {
	return &payrollHandlerImpl{payrollService: payrollService}
}

// viewerFromRequest extracts the authenticated caller from the verified
// token claims.
func viewerFromRequest(r *http.Request) user.Viewer {
	_, claims, _ := jwtauth.FromContext(r.Context())
	return jwt.ViewerFromClaims(claims)
}

// parseFilter reads pagination and period query parameters. Page is
// zero-based; limit defaults to 10.
func parseFilter(r *http.Request) payroll.Filter {
	filter := payroll.Filter{Limit: 10}

	if page, err := strconv.Atoi(r.URL.Query().Get("page")); err == nil && page >= 0 {
		filter.Page = page
	}
	if limit, err := strconv.Atoi(r.URL.Query().Get("limit")); err == nil && limit > 0 {
		filter.Limit = limit
	}
	if start, err := time.Parse("2006-01-02", r.URL.Query().Get("period_start_date")); err == nil {
		filter.PeriodStart = &start
	}
	if end, err := time.Parse("2006-01-02", r.URL.Query().Get("period_end_date")); err == nil {
		filter.PeriodEnd = &end
	}

	return filter
}

// CreatePayroll creates a single payroll when employee_id is present in
// the body, or a batch across all active employees when it is absent.
func (h *payrollHandlerImpl) CreatePayroll(w http.ResponseWriter, r *http.Request) {
	var req payroll.CreatePayrollRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	if req.EmployeeID == nil {
		result, err := h.payrollService.CreatePayrollBatch(r.Context(), req)
		if err != nil {
			response.HandleError(w, err)
			return
		}
		response.Created(w, "Payroll batch processed", result)
		return
	}

	result, err := h.payrollService.CreatePayroll(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Payroll created", result)
}

func (h *payrollHandlerImpl) GetPayroll(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	result, err := h.payrollService.GetPayrollByID(r.Context(), viewerFromRequest(r), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *payrollHandlerImpl) ListPayrolls(w http.ResponseWriter, r *http.Request) {
	filter := parseFilter(r)

	result, err := h.payrollService.GetAllPayroll(r.Context(), viewerFromRequest(r), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMeta(w, result.Data, &response.Meta{
		Page:       result.Page,
		Limit:      result.Limit,
		TotalItems: result.TotalCount,
	})
}

// ListMyPayrolls lists the caller's own payrolls via the employee_id
// claim.
func (h *payrollHandlerImpl) ListMyPayrolls(w http.ResponseWriter, r *http.Request) {
	viewer := viewerFromRequest(r)
	if viewer.EmployeeID == "" {
		response.HandleError(w, payroll.ErrForbidden)
		return
	}

	result, err := h.payrollService.GetAllEmployeePayroll(r.Context(), viewer, viewer.EmployeeID, parseFilter(r))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMeta(w, result.Data, &response.Meta{
		Page:       result.Page,
		Limit:      result.Limit,
		TotalItems: result.TotalCount,
	})
}

func (h *payrollHandlerImpl) ListEmployeePayrolls(w http.ResponseWriter, r *http.Request) {
	employeeID := chi.URLParam(r, "employeeID")

	result, err := h.payrollService.GetAllEmployeePayroll(r.Context(), viewerFromRequest(r), employeeID, parseFilter(r))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMeta(w, result.Data, &response.Meta{
		Page:       result.Page,
		Limit:      result.Limit,
		TotalItems: result.TotalCount,
	})
}
