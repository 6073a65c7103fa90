package payroll

import (
	"context"
	"time"
)

// Filter narrows list queries to a period window. Page is zero-based.
type Filter struct {
	Page        int
	Limit       int
	PeriodStart *time.Time
	PeriodEnd   *time.Time
}

// Repository defines data access for payroll records. Create persists the
// header together with its deduction and benefit lines in one transaction;
// the (employee_id, period_start, period_end) unique constraint is the
// arbiter between concurrent creations and surfaces as
// ErrPayrollAlreadyExists.
type Repository interface {
	Create(ctx context.Context, p Payroll) (Payroll, error)
	GetByID(ctx context.Context, id string) (Payroll, error)
	ExistsForPeriod(ctx context.Context, employeeID string, periodStart, periodEnd time.Time) (bool, error)
	List(ctx context.Context, filter Filter) ([]Payroll, int64, error)
	ListByEmployee(ctx context.Context, employeeID string, filter Filter) ([]Payroll, int64, error)
}
