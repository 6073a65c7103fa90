package payroll

import (
	"context"
	"fmt"
	"time"

	"github.com/sweldox/payroll-backend-go/internal/domain/attendance"
	"github.com/sweldox/payroll-backend-go/internal/domain/employee"
	"github.com/sweldox/payroll-backend-go/internal/domain/payroll"
	"github.com/sweldox/payroll-backend-go/internal/domain/payrollconfig"
)

// Builder assembles one employee's Payroll for a pay period: it loads the
// employee and their attendance, runs the Calculator over a resolved
// configuration snapshot, and attaches the deduction and benefit lines.
type Builder struct {
	employeeProvider   employee.Provider
	attendanceProvider attendance.Provider
	calculator         Calculator
}

func NewBuilder(employeeProvider employee.Provider, attendanceProvider attendance.Provider) *Builder {
	return &Builder{
		employeeProvider:   employeeProvider,
		attendanceProvider: attendanceProvider,
		calculator:         NewCalculator(),
	}
}

// Build computes the payroll without persisting it. The persisted period
// is derived from the attendance actually found inside the requested
// range, not the request itself; with no attendance both period bounds
// stay nil and gross pay is zero.
func (b *Builder) Build(ctx context.Context, employeeID string, periodStart, periodEnd, payDate time.Time, snapshot payrollconfig.Snapshot) (*payroll.Payroll, error) {
	emp, err := b.employeeProvider.GetByID(ctx, employeeID)
	if err != nil {
		return nil, fmt.Errorf("failed to load employee: %w", err)
	}

	attendances, err := b.attendanceProvider.GetForPeriod(ctx, employeeID, periodStart, periodEnd)
	if err != nil {
		return nil, fmt.Errorf("failed to load attendance: %w", err)
	}

	calc := b.calculator

	totalHours := calc.TotalHours(attendances)
	overtimeHours := calc.OvertimeHours(attendances)
	regularHours := totalHours.Sub(overtimeHours)

	regularPay := calc.RegularPay(emp.HourlyRate, regularHours)
	overtimePay := calc.OvertimePay(emp.HourlyRate, overtimeHours)
	grossPay := calc.GrossPay(regularPay, overtimePay)
	totalBenefits := calc.TotalBenefits(emp.Benefits)

	social, err := calc.SocialInsuranceDeduction(emp.BasicSalary, snapshot.SocialInsurance)
	if err != nil {
		return nil, err
	}
	health := calc.HealthInsuranceDeduction(emp.BasicSalary, snapshot.HealthInsurance)
	housing := calc.HousingFundDeduction(emp.BasicSalary, snapshot.HousingFund)
	statutory := calc.TotalStatutoryDeductions(social, health, housing)

	taxableIncome := calc.TaxableIncome(grossPay, statutory)
	tax, err := calc.WithholdingTax(taxableIncome, snapshot)
	if err != nil {
		return nil, err
	}

	p := &payroll.Payroll{
		EmployeeID:      employeeID,
		PayDate:         payDate,
		DaysWorked:      len(attendances),
		OvertimeHours:   overtimeHours,
		MonthlyRate:     emp.BasicSalary,
		DailyRate:       calc.DailyRate(emp.HourlyRate),
		GrossPay:        grossPay,
		TotalBenefits:   totalBenefits,
		TotalDeductions: calc.TotalDeductions(tax, statutory),
		NetPay:          calc.NetPay(grossPay, totalBenefits, statutory, tax),
	}

	if len(attendances) > 0 {
		first := attendances[0].Date
		last := attendances[len(attendances)-1].Date
		p.PeriodStart = &first
		p.PeriodEnd = &last
	}

	p.Deductions = []payroll.DeductionLine{
		{TypeCode: payroll.DeductionSocialInsurance, Amount: social},
		{TypeCode: payroll.DeductionHealthInsurance, Amount: health},
		{TypeCode: payroll.DeductionHousingFund, Amount: housing},
		{TypeCode: payroll.DeductionWithholdingTax, Amount: tax},
	}

	for _, benefit := range emp.Benefits {
		p.Benefits = append(p.Benefits, payroll.BenefitLine{
			TypeCode: benefit.TypeCode,
			Amount:   benefit.Amount,
		})
	}

	return p, nil
}
