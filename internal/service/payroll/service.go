package payroll

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/sweldox/payroll-backend-go/internal/domain/employee"
	"github.com/sweldox/payroll-backend-go/internal/domain/payroll"
	"github.com/sweldox/payroll-backend-go/internal/domain/payrollconfig"
	"github.com/sweldox/payroll-backend-go/internal/domain/user"
	"github.com/sweldox/payroll-backend-go/internal/pkg/validator"
	configservice "github.com/sweldox/payroll-backend-go/internal/service/payrollconfig"
)

// Transactor runs a function inside one database transaction.
type Transactor interface {
	WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// Service creates and reads payroll records. Creation resolves a
// configuration snapshot for the pay date, computes the payroll through
// the Builder, and persists header and lines in one transaction.
type Service struct {
	tx               Transactor
	payrollRepo      payroll.Repository
	employeeProvider employee.Provider
	builder          *Builder
	resolver         *configservice.Resolver
	authorizer       user.Authorizer
	logger           *slog.Logger
	batchWorkers     int
}

func NewService(
	tx Transactor,
	payrollRepo payroll.Repository,
	employeeProvider employee.Provider,
	builder *Builder,
	resolver *configservice.Resolver,
	authorizer user.Authorizer,
	logger *slog.Logger,
	batchWorkers int,
) *Service {
	if batchWorkers < 1 {
		batchWorkers = 1
	}
	return &Service{
		tx:               tx,
		payrollRepo:      payrollRepo,
		employeeProvider: employeeProvider,
		builder:          builder,
		resolver:         resolver,
		authorizer:       authorizer,
		logger:           logger,
		batchWorkers:     batchWorkers,
	}
}

// CreatePayroll creates one employee's payroll for the requested period.
// A payroll that already exists for (employee, period) fails with
// ErrPayrollAlreadyExists; exactly one row ever persists.
func (s *Service) CreatePayroll(ctx context.Context, req payroll.CreatePayrollRequest) (payroll.PayrollResponse, error) {
	if err := req.Validate(); err != nil {
		return payroll.PayrollResponse{}, err
	}
	if req.EmployeeID == nil {
		return payroll.PayrollResponse{}, validator.ValidationErrors{
			{Field: "employee_id", Message: "is required"},
		}
	}

	periodStart, _ := time.Parse("2006-01-02", req.PeriodStartDate)
	periodEnd, _ := time.Parse("2006-01-02", req.PeriodEndDate)
	payDate, _ := time.Parse("2006-01-02", req.PayDate)

	exists, err := s.payrollRepo.ExistsForPeriod(ctx, *req.EmployeeID, periodStart, periodEnd)
	if err != nil {
		return payroll.PayrollResponse{}, fmt.Errorf("failed to check for existing payroll: %w", err)
	}
	if exists {
		return payroll.PayrollResponse{}, payroll.ErrPayrollAlreadyExists
	}

	snapshot, err := s.resolver.Resolve(ctx, payDate)
	if err != nil {
		return payroll.PayrollResponse{}, err
	}

	created, err := s.createForEmployee(ctx, *req.EmployeeID, periodStart, periodEnd, payDate, snapshot)
	if err != nil {
		return payroll.PayrollResponse{}, err
	}

	return payroll.ToResponse(created), nil
}

// createForEmployee is the unit of work shared by single and batch
// creation: duplicate pre-check, build, then persist in its own
// transaction. The unique constraint on (employee_id, period_start,
// period_end) remains the final arbiter between concurrent runs.
func (s *Service) createForEmployee(ctx context.Context, employeeID string, periodStart, periodEnd, payDate time.Time, snapshot payrollconfig.Snapshot) (payroll.Payroll, error) {
	exists, err := s.payrollRepo.ExistsForPeriod(ctx, employeeID, periodStart, periodEnd)
	if err != nil {
		return payroll.Payroll{}, fmt.Errorf("failed to check for existing payroll: %w", err)
	}
	if exists {
		return payroll.Payroll{}, payroll.ErrPayrollAlreadyExists
	}

	built, err := s.builder.Build(ctx, employeeID, periodStart, periodEnd, payDate, snapshot)
	if err != nil {
		return payroll.Payroll{}, err
	}

	var created payroll.Payroll
	err = s.tx.WithinTransaction(ctx, func(txCtx context.Context) error {
		created, err = s.payrollRepo.Create(txCtx, *built)
		return err
	})
	if err != nil {
		return payroll.Payroll{}, err
	}

	return created, nil
}

// CreatePayrollBatch creates payrolls for every active employee. The
// configuration snapshot is resolved once and shared read-only across a
// bounded pool of workers; each employee commits in its own transaction,
// so one employee's failure never rolls back another's payroll. Failures
// are counted and reported, not fatal, unless no employee succeeds.
func (s *Service) CreatePayrollBatch(ctx context.Context, req payroll.CreatePayrollRequest) (payroll.BatchResponse, error) {
	if err := req.Validate(); err != nil {
		return payroll.BatchResponse{}, err
	}

	periodStart, _ := time.Parse("2006-01-02", req.PeriodStartDate)
	periodEnd, _ := time.Parse("2006-01-02", req.PeriodEndDate)
	payDate, _ := time.Parse("2006-01-02", req.PayDate)

	snapshot, err := s.resolver.Resolve(ctx, payDate)
	if err != nil {
		return payroll.BatchResponse{}, err
	}

	employeeIDs, err := s.employeeProvider.GetActiveIDs(ctx)
	if err != nil {
		return payroll.BatchResponse{}, fmt.Errorf("failed to list active employees: %w", err)
	}

	runID := uuid.NewString()
	logger := s.logger.With(slog.String("batch_run_id", runID))
	logger.Info("payroll batch started",
		slog.String("pay_date", req.PayDate),
		slog.Int("employees", len(employeeIDs)),
	)

	var (
		mu       sync.Mutex
		created  int
		failures []payroll.BatchFailure
	)

	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(s.batchWorkers)

	for _, employeeID := range employeeIDs {
		employeeID := employeeID
		g.Go(func() error {
			if err := gCtx.Err(); err != nil {
				return err
			}

			_, err := s.createForEmployee(gCtx, employeeID, periodStart, periodEnd, payDate, snapshot)

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				failures = append(failures, payroll.BatchFailure{EmployeeID: employeeID, Reason: err.Error()})
				return nil
			}
			created++
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		// Cancellation: already-committed payrolls stay committed.
		return payroll.BatchResponse{}, err
	}

	for _, f := range failures {
		logger.Warn("payroll batch: employee skipped",
			slog.String("employee_id", f.EmployeeID),
			slog.String("reason", f.Reason),
		)
	}
	logger.Info("payroll batch finished",
		slog.Int("created", created),
		slog.Int("failed", len(failures)),
	)

	if created == 0 && len(failures) > 0 {
		return payroll.BatchResponse{}, payroll.ErrNoEmployeesProcessed
	}

	return payroll.BatchResponse{
		RecordsCreated: created,
		RecordsFailed:  len(failures),
		Failures:       failures,
	}, nil
}

// GetPayrollByID returns one payroll. The viewer must hold the payroll
// role or be the employee the record belongs to.
func (s *Service) GetPayrollByID(ctx context.Context, viewer user.Viewer, id string) (payroll.PayrollResponse, error) {
	p, err := s.payrollRepo.GetByID(ctx, id)
	if err != nil {
		return payroll.PayrollResponse{}, err
	}

	if !s.authorizer.IsPayrollRole(viewer) && !s.authorizer.OwnsPayroll(viewer, p.EmployeeID) {
		return payroll.PayrollResponse{}, payroll.ErrForbidden
	}

	return payroll.ToResponse(p), nil
}

// GetAllPayroll lists payrolls across all employees; payroll role only.
func (s *Service) GetAllPayroll(ctx context.Context, viewer user.Viewer, filter payroll.Filter) (payroll.ListPayrollResponse, error) {
	if !s.authorizer.IsPayrollRole(viewer) {
		return payroll.ListPayrollResponse{}, user.ErrPayrollAccessRequired
	}

	payrolls, total, err := s.payrollRepo.List(ctx, filter)
	if err != nil {
		return payroll.ListPayrollResponse{}, fmt.Errorf("failed to list payrolls: %w", err)
	}

	return payroll.ListPayrollResponse{
		Data:       payroll.ToResponses(payrolls),
		TotalCount: total,
		Page:       filter.Page,
		Limit:      filter.Limit,
	}, nil
}

// GetAllEmployeePayroll lists one employee's payrolls. The viewer must
// hold the payroll role or be that employee.
func (s *Service) GetAllEmployeePayroll(ctx context.Context, viewer user.Viewer, employeeID string, filter payroll.Filter) (payroll.ListPayrollResponse, error) {
	if !s.authorizer.IsPayrollRole(viewer) && !s.authorizer.OwnsPayroll(viewer, employeeID) {
		return payroll.ListPayrollResponse{}, payroll.ErrForbidden
	}

	payrolls, total, err := s.payrollRepo.ListByEmployee(ctx, employeeID, filter)
	if err != nil {
		return payroll.ListPayrollResponse{}, fmt.Errorf("failed to list employee payrolls: %w", err)
	}

	return payroll.ListPayrollResponse{
		Data:       payroll.ToResponses(payrolls),
		TotalCount: total,
		Page:       filter.Page,
		Limit:      filter.Limit,
	}, nil
}
