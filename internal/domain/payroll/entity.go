package payroll

import (
	"time"

	"github.com/shopspring/decimal"
)

// DeductionTypeCode enum - the four statutory deduction line codes.
type DeductionTypeCode string

const (
	DeductionSocialInsurance DeductionTypeCode = "SSS"
	DeductionHealthInsurance DeductionTypeCode = "PHIC"
	DeductionHousingFund     DeductionTypeCode = "HDMF"
	DeductionWithholdingTax  DeductionTypeCode = "TAX"
)

// Payroll - one employee's computed pay for one semi-monthly period.
// Unique on (employee_id, period_start, period_end) and immutable once
// created: there is no update or void operation.
//
// PeriodStart and PeriodEnd are derived from the attendance actually
// found inside the requested range; both are nil when the employee has
// no attendance, in which case DaysWorked is 0.
type Payroll struct {
	ID              string
	EmployeeID      string
	PeriodStart     *time.Time
	PeriodEnd       *time.Time
	PayDate         time.Time
	DaysWorked      int
	OvertimeHours   decimal.Decimal
	MonthlyRate     decimal.Decimal
	DailyRate       decimal.Decimal
	GrossPay        decimal.Decimal
	TotalBenefits   decimal.Decimal
	TotalDeductions decimal.Decimal
	NetPay          decimal.Decimal
	Deductions      []DeductionLine
	Benefits        []BenefitLine
	CreatedAt       time.Time

	// Joined fields
	EmployeeName *string
}

// DeductionLine - one statutory deduction row, owned by exactly one Payroll.
type DeductionLine struct {
	ID        string
	PayrollID string
	TypeCode  DeductionTypeCode
	Amount    decimal.Decimal
}

// BenefitLine - one benefit row, owned by exactly one Payroll.
type BenefitLine struct {
	ID        string
	PayrollID string
	TypeCode  string
	Amount    decimal.Decimal
}
