package employee

import (
	"time"

	"github.com/shopspring/decimal"
)

type EmploymentStatus string

const (
	EmploymentStatusActive     EmploymentStatus = "active"
	EmploymentStatusResigned   EmploymentStatus = "resigned"
	EmploymentStatusTerminated EmploymentStatus = "terminated"
)

// Benefit - a recurring benefit assigned to an employee, carried onto
// each payroll as one benefit line per type.
type Benefit struct {
	ID       string
	TypeCode string
	Amount   decimal.Decimal
}

// Employee - the slice of employee data payroll computation needs.
// Employee administration lives elsewhere; this package only reads.
type Employee struct {
	ID               string
	FullName         string
	BasicSalary      decimal.Decimal
	HourlyRate       decimal.Decimal
	EmploymentStatus EmploymentStatus
	HireDate         time.Time
	Benefits         []Benefit
}
