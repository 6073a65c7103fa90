package employee

import "context"

// Provider is the read-only employee contract consumed by payroll.
// GetByID includes the employee's benefit assignments; GetActiveIDs
// returns ids of employees neither terminated nor resigned.
type Provider interface {
	GetByID(ctx context.Context, id string) (Employee, error)
	GetActiveIDs(ctx context.Context) ([]string, error)
}
