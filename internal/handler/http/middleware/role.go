package middleware

import (
	"net/http"

	"github.com/go-chi/jwtauth/v5"
	"github.com/sweldox/payroll-backend-go/internal/domain/user"
	"github.com/sweldox/payroll-backend-go/internal/handler/http/response"
)

// RequirePayrollRole guards routes that expose records across all
// employees. Self-scoped reads are authorized per record in the service
// instead.
func RequirePayrollRole(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, claims, err := jwtauth.FromContext(r.Context())
		if err != nil {
			response.HandleError(w, user.ErrPayrollAccessRequired)
			return
		}

		role, ok := claims["role"].(string)
		if !ok {
			response.HandleError(w, user.ErrPayrollAccessRequired)
			return
		}

		if role != string(user.RolePayroll) {
			response.HandleError(w, user.ErrPayrollAccessRequired)
			return
		}

		next.ServeHTTP(w, r)
	})
}
