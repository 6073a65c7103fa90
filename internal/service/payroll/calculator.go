package payroll

import (
	"github.com/shopspring/decimal"
	"github.com/sweldox/payroll-backend-go/internal/domain/attendance"
	"github.com/sweldox/payroll-backend-go/internal/domain/employee"
	"github.com/sweldox/payroll-backend-go/internal/domain/payrollconfig"
)

var (
	two                = decimal.NewFromInt(2)
	standardWorkHours  = decimal.NewFromInt(8)
	overtimeMultiplier = decimal.NewFromFloat(1.25)
)

// Calculator computes every monetary figure of a semi-monthly payroll
// from primitive inputs plus a configuration snapshot. It is stateless
// and performs no I/O.
//
// Monetary results are rounded to 2 decimal places, half-up, at each
// intermediate step rather than once at the end. The stage-wise rounding
// is load-bearing: payrolls must reproduce the historical figures
// bit-exactly, so no step may carry extra precision forward.
type Calculator struct{}

func NewCalculator() Calculator { return Calculator{} }

func round2(d decimal.Decimal) decimal.Decimal { return d.Round(2) }

// halve divides a monthly figure down to its semi-monthly share, rounded
// to 2 decimal places half-up.
func halve(monthly decimal.Decimal) decimal.Decimal {
	return monthly.DivRound(two, 2)
}

func (Calculator) TotalHours(attendances []attendance.Attendance) decimal.Decimal {
	total := decimal.Zero
	for _, a := range attendances {
		total = total.Add(a.TotalHours)
	}
	return total
}

func (Calculator) OvertimeHours(attendances []attendance.Attendance) decimal.Decimal {
	total := decimal.Zero
	for _, a := range attendances {
		total = total.Add(a.OvertimeHours)
	}
	return total
}

func (Calculator) DailyRate(hourlyRate decimal.Decimal) decimal.Decimal {
	return hourlyRate.Mul(standardWorkHours)
}

func (Calculator) RegularPay(hourlyRate, regularHours decimal.Decimal) decimal.Decimal {
	return hourlyRate.Mul(regularHours)
}

func (Calculator) OvertimePay(hourlyRate, overtimeHours decimal.Decimal) decimal.Decimal {
	return hourlyRate.Mul(overtimeHours).Mul(overtimeMultiplier)
}

func (Calculator) GrossPay(regularPay, overtimePay decimal.Decimal) decimal.Decimal {
	return round2(regularPay.Add(overtimePay))
}

func (Calculator) TotalBenefits(benefits []employee.Benefit) decimal.Decimal {
	total := decimal.Zero
	for _, b := range benefits {
		total = total.Add(b.Amount)
	}
	return total
}

// SocialInsuranceDeduction selects the bracket containing basicSalary and
// contributes half the bracket's monthly reference amount at the employee
// rate. Salaries outside every bracket are a configuration gap and fail
// with BracketNotFoundError on every path, single and batch alike.
func (Calculator) SocialInsuranceDeduction(basicSalary decimal.Decimal, config payrollconfig.SocialInsuranceConfig) (decimal.Decimal, error) {
	bracket, err := config.FindBracket(basicSalary)
	if err != nil {
		return decimal.Zero, err
	}

	monthly := bracket.ReferenceAmount.Mul(config.EmployeeRate)
	return halve(monthly), nil
}

// HealthInsuranceDeduction computes the employee's semi-monthly premium
// share. Salaries at or below the floor pay half the fixed contribution;
// everyone else pays the premium rate on the capped salary. The employee
// share is itself halved for the semi-monthly period.
func (Calculator) HealthInsuranceDeduction(basicSalary decimal.Decimal, config payrollconfig.HealthInsuranceConfig) decimal.Decimal {
	if basicSalary.LessThanOrEqual(config.MinSalaryFloor) {
		employeeShare := halve(config.FixedContribution)
		return halve(employeeShare)
	}

	capped := decimal.Min(basicSalary, config.MaxSalaryCap)
	monthly := capped.Mul(config.PremiumRate)
	employeeShare := halve(monthly)
	return halve(employeeShare)
}

// HousingFundDeduction applies the low-income rate when the capped salary
// sits at or below the threshold, the standard rate otherwise.
func (Calculator) HousingFundDeduction(basicSalary decimal.Decimal, config payrollconfig.HousingFundConfig) decimal.Decimal {
	capped := decimal.Min(basicSalary, config.MaxSalaryCap)

	rate := config.EmployeeRate
	if capped.LessThanOrEqual(config.LowIncomeThreshold) {
		rate = config.LowIncomeEmployeeRate
	}

	monthly := capped.Mul(rate)
	return halve(monthly)
}

func (Calculator) TotalStatutoryDeductions(social, health, housing decimal.Decimal) decimal.Decimal {
	return round2(social.Add(health).Add(housing))
}

func (Calculator) TaxableIncome(grossPay, statutoryDeductions decimal.Decimal) decimal.Decimal {
	return round2(grossPay.Sub(statutoryDeductions))
}

// WithholdingTax looks up the bracket containing the semi-monthly taxable
// income and halves the resulting monthly tax. The bracket constants are
// monthly-scale, so the lookup-then-halve sequence discounts twice; that
// matches the system of record and is kept deliberately.
func (Calculator) WithholdingTax(taxableIncome decimal.Decimal, snapshot payrollconfig.Snapshot) (decimal.Decimal, error) {
	bracket, err := snapshot.FindTaxBracket(taxableIncome)
	if err != nil {
		return decimal.Zero, err
	}

	excess := decimal.Max(decimal.Zero, taxableIncome.Sub(bracket.Threshold))
	monthlyTax := bracket.BaseTax.Add(excess.Mul(bracket.MarginalRate))
	return halve(monthlyTax), nil
}

func (Calculator) TotalDeductions(withholdingTax, statutoryDeductions decimal.Decimal) decimal.Decimal {
	return round2(withholdingTax.Add(statutoryDeductions))
}

func (Calculator) NetPay(grossPay, totalBenefits, statutoryDeductions, withholdingTax decimal.Decimal) decimal.Decimal {
	return round2(grossPay.Add(totalBenefits).Sub(statutoryDeductions).Sub(withholdingTax))
}
