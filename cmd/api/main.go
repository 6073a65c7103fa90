package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/go-chi/httplog/v3"

	"github.com/sweldox/payroll-backend-go/internal/config"
	"github.com/sweldox/payroll-backend-go/internal/domain/user"
	appHTTP "github.com/sweldox/payroll-backend-go/internal/handler/http"
	"github.com/sweldox/payroll-backend-go/internal/pkg/database"
	"github.com/sweldox/payroll-backend-go/internal/pkg/jwt"
	"github.com/sweldox/payroll-backend-go/internal/repository/postgresql"
	payrollService "github.com/sweldox/payroll-backend-go/internal/service/payroll"
	configService "github.com/sweldox/payroll-backend-go/internal/service/payrollconfig"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level:       logLevel(cfg.App.LogLevel),
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "payroll-backend"),
		slog.String("env", cfg.App.Env),
	)

	db, err := database.NewPostgreSQLDB(cfg.DatabaseURL())
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		return
	}

	payrollRepo := postgresql.NewPayrollRepository(db)
	configRepo := postgresql.NewPayrollConfigRepository(db)
	employeeRepo := postgresql.NewEmployeeRepository(db)
	attendanceRepo := postgresql.NewAttendanceRepository(db)

	jwtService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration)

	resolver := configService.NewResolver(configRepo)
	configSvc := configService.NewService(configRepo)
	builder := payrollService.NewBuilder(employeeRepo, attendanceRepo)
	payrollSvc := payrollService.NewService(
		postgresql.NewTxManager(db),
		payrollRepo,
		employeeRepo,
		builder,
		resolver,
		user.NewRoleAuthorizer(),
		logger,
		cfg.App.BatchWorkers,
	)

	payrollHandler := appHTTP.NewPayrollHandler(payrollSvc)
	configHandler := appHTTP.NewPayrollConfigHandler(configSvc)

	router := appHTTP.NewRouter(cfg, logger, jwtService, payrollHandler, configHandler)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	fmt.Printf("Server running at http://localhost%s\n", port)
	if err := http.ListenAndServe(port, router); err != nil {
		fmt.Println("Server error:", err)
	}
}

func logLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
