package attendance

import (
	"time"

	"github.com/shopspring/decimal"
)

// Attendance - one day's worked hours for one employee. OvertimeHours is
// included in TotalHours.
type Attendance struct {
	ID            string
	EmployeeID    string
	Date          time.Time
	TotalHours    decimal.Decimal
	OvertimeHours decimal.Decimal
}
