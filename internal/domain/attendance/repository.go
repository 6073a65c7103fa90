package attendance

import (
	"context"
	"time"
)

// Provider is the read-only attendance contract consumed by payroll.
// Results are ordered by date ascending.
type Provider interface {
	GetForPeriod(ctx context.Context, employeeID string, start, end time.Time) ([]Attendance, error)
}
