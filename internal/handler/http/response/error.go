package response

import (
	"errors"
	"net/http"

	"github.com/sweldox/payroll-backend-go/internal/domain/employee"
	"github.com/sweldox/payroll-backend-go/internal/domain/payroll"
	"github.com/sweldox/payroll-backend-go/internal/domain/payrollconfig"
	"github.com/sweldox/payroll-backend-go/internal/domain/user"
	"github.com/sweldox/payroll-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	// Configuration errors carry the kind and offending value
	var configNotFound *payrollconfig.ConfigNotFoundError
	if errors.As(err, &configNotFound) {
		NotFound(w, configNotFound.Error())
		return
	}
	var bracketNotFound *payrollconfig.BracketNotFoundError
	if errors.As(err, &bracketNotFound) {
		NotFound(w, bracketNotFound.Error())
		return
	}

	switch {
	// Payroll domain errors
	case errors.Is(err, payroll.ErrPayrollNotFound):
		NotFound(w, "Payroll not found")
	case errors.Is(err, payroll.ErrPayrollAlreadyExists):
		Conflict(w, "Payroll already exists for this employee and period")
	case errors.Is(err, payroll.ErrForbidden):
		Forbidden(w, "Access to this payroll is not allowed")
	case errors.Is(err, payroll.ErrNoEmployeesProcessed):
		BadRequest(w, "No payroll records created", nil)

	// Employee domain errors
	case errors.Is(err, employee.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")

	// Configuration administration errors
	case errors.Is(err, payrollconfig.ErrConfigRowNotFound):
		NotFound(w, "Configuration row not found")

	// User domain errors
	case errors.Is(err, user.ErrUnauthorized):
		Unauthorized(w, "Authentication required")
	case errors.Is(err, user.ErrPayrollAccessRequired):
		Forbidden(w, "Payroll role required")

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
