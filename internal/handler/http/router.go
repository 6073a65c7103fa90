package http

import (
	"log/slog"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
	"github.com/sweldox/payroll-backend-go/internal/config"
	"github.com/sweldox/payroll-backend-go/internal/domain/payrollconfig"
	"github.com/sweldox/payroll-backend-go/internal/handler/http/middleware"
	"github.com/sweldox/payroll-backend-go/internal/pkg/jwt"
)

func NewRouter(
	cfg *config.Config,
	logger *slog.Logger,
	jwtService jwt.Service,
	payrollHandler PayrollHandler,
	configHandler PayrollConfigHandler,
) *chi.Mux {
	r := chi.NewRouter()

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.App.AllowedOrigins,
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelDebug,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.AllowContentEncoding("application/json"))
	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	r.Route("/api/v1", func(r chi.Router) {
		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(jwtService.JWTAuth()))
			r.Use(middleware.AuthRequired(jwtService.JWTAuth()))

			r.Route("/payroll", func(r chi.Router) {
				// Self-scoped reads; per-record ownership is checked in
				// the service.
				r.Get("/me", payrollHandler.ListMyPayrolls)
				r.Get("/{id}", payrollHandler.GetPayroll)
				r.Get("/employee/{employeeID}", payrollHandler.ListEmployeePayrolls)

				// Payroll role only
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequirePayrollRole)
					r.Post("/", payrollHandler.CreatePayroll)
					r.Get("/", payrollHandler.ListPayrolls)
				})
			})

			r.Route("/config", func(r chi.Router) {
				r.Use(middleware.RequirePayrollRole)

				r.Route("/social-insurance", func(r chi.Router) {
					r.Post("/", configHandler.CreateSocialInsurance)
					r.Get("/", configHandler.ListSocialInsurance)
					r.Delete("/{id}", configHandler.RetireConfig(payrollconfig.KindSocialInsurance))
				})
				r.Route("/health-insurance", func(r chi.Router) {
					r.Post("/", configHandler.CreateHealthInsurance)
					r.Get("/", configHandler.ListHealthInsurance)
					r.Delete("/{id}", configHandler.RetireConfig(payrollconfig.KindHealthInsurance))
				})
				r.Route("/housing-fund", func(r chi.Router) {
					r.Post("/", configHandler.CreateHousingFund)
					r.Get("/", configHandler.ListHousingFund)
					r.Delete("/{id}", configHandler.RetireConfig(payrollconfig.KindHousingFund))
				})
				r.Route("/tax-brackets", func(r chi.Router) {
					r.Post("/", configHandler.CreateTaxBrackets)
					r.Get("/", configHandler.ListTaxBrackets)
					r.Delete("/{id}", configHandler.RetireConfig(payrollconfig.KindTaxBracket))
				})
			})
		})
	})

	return r
}
