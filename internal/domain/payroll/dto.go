package payroll

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/sweldox/payroll-backend-go/internal/pkg/validator"
)

// CreatePayrollRequest - POST /payroll body. When EmployeeID is nil the
// request is a batch creation across all active employees.
type CreatePayrollRequest struct {
	EmployeeID      *string `json:"employee_id,omitempty"`
	PeriodStartDate string  `json:"period_start_date"`
	PeriodEndDate   string  `json:"period_end_date"`
	PayDate         string  `json:"pay_date"`
}

func (r *CreatePayrollRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.EmployeeID != nil && validator.IsEmpty(*r.EmployeeID) {
		errs = append(errs, validator.ValidationError{Field: "employee_id", Message: "must not be empty when present"})
	}

	start, okStart := validator.IsValidDate(r.PeriodStartDate)
	if !okStart {
		errs = append(errs, validator.ValidationError{Field: "period_start_date", Message: "must be a valid date (YYYY-MM-DD)"})
	}
	end, okEnd := validator.IsValidDate(r.PeriodEndDate)
	if !okEnd {
		errs = append(errs, validator.ValidationError{Field: "period_end_date", Message: "must be a valid date (YYYY-MM-DD)"})
	}
	if _, ok := validator.IsValidDate(r.PayDate); !ok {
		errs = append(errs, validator.ValidationError{Field: "pay_date", Message: "must be a valid date (YYYY-MM-DD)"})
	}
	if okStart && okEnd && end.Before(start) {
		errs = append(errs, validator.ValidationError{Field: "period_end_date", Message: "must not be before period_start_date"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type DeductionLineResponse struct {
	TypeCode string          `json:"type_code"`
	Amount   decimal.Decimal `json:"amount"`
}

type BenefitLineResponse struct {
	TypeCode string          `json:"type_code"`
	Amount   decimal.Decimal `json:"amount"`
}

type PayrollResponse struct {
	ID              string                  `json:"id"`
	EmployeeID      string                  `json:"employee_id"`
	EmployeeName    *string                 `json:"employee_name,omitempty"`
	PeriodStart     *string                 `json:"period_start"`
	PeriodEnd       *string                 `json:"period_end"`
	PayDate         string                  `json:"pay_date"`
	DaysWorked      int                     `json:"days_worked"`
	OvertimeHours   decimal.Decimal         `json:"overtime_hours"`
	MonthlyRate     decimal.Decimal         `json:"monthly_rate"`
	DailyRate       decimal.Decimal         `json:"daily_rate"`
	GrossPay        decimal.Decimal         `json:"gross_pay"`
	TotalBenefits   decimal.Decimal         `json:"total_benefits"`
	TotalDeductions decimal.Decimal         `json:"total_deductions"`
	NetPay          decimal.Decimal         `json:"net_pay"`
	Deductions      []DeductionLineResponse `json:"deductions"`
	Benefits        []BenefitLineResponse   `json:"benefits"`
}

type ListPayrollResponse struct {
	Data       []PayrollResponse `json:"data"`
	TotalCount int64             `json:"total_count"`
	Page       int               `json:"page"`
	Limit      int               `json:"limit"`
}

// BatchFailure - one skipped employee in a batch run.
type BatchFailure struct {
	EmployeeID string `json:"employee_id"`
	Reason     string `json:"reason"`
}

// BatchResponse - summary of a batch creation. Failures never abort the
// batch; they are reported here.
type BatchResponse struct {
	RecordsCreated int            `json:"records_created"`
	RecordsFailed  int            `json:"records_failed"`
	Failures       []BatchFailure `json:"failures,omitempty"`
}

// ToResponse maps a Payroll aggregate to its transport shape.
func ToResponse(p Payroll) PayrollResponse {
	formatDate := func(t *time.Time) *string {
		if t == nil {
			return nil
		}
		s := t.Format("2006-01-02")
		return &s
	}

	deductions := make([]DeductionLineResponse, 0, len(p.Deductions))
	for _, d := range p.Deductions {
		deductions = append(deductions, DeductionLineResponse{TypeCode: string(d.TypeCode), Amount: d.Amount})
	}
	benefits := make([]BenefitLineResponse, 0, len(p.Benefits))
	for _, b := range p.Benefits {
		benefits = append(benefits, BenefitLineResponse{TypeCode: b.TypeCode, Amount: b.Amount})
	}

	return PayrollResponse{
		ID:              p.ID,
		EmployeeID:      p.EmployeeID,
		EmployeeName:    p.EmployeeName,
		PeriodStart:     formatDate(p.PeriodStart),
		PeriodEnd:       formatDate(p.PeriodEnd),
		PayDate:         p.PayDate.Format("2006-01-02"),
		DaysWorked:      p.DaysWorked,
		OvertimeHours:   p.OvertimeHours,
		MonthlyRate:     p.MonthlyRate,
		DailyRate:       p.DailyRate,
		GrossPay:        p.GrossPay,
		TotalBenefits:   p.TotalBenefits,
		TotalDeductions: p.TotalDeductions,
		NetPay:          p.NetPay,
		Deductions:      deductions,
		Benefits:        benefits,
	}
}

// ToResponses maps a page of payrolls.
func ToResponses(payrolls []Payroll) []PayrollResponse {
	result := make([]PayrollResponse, 0, len(payrolls))
	for _, p := range payrolls {
		result = append(result, ToResponse(p))
	}
	return result
}
