package payroll

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/sweldox/payroll-backend-go/internal/domain/attendance"
	"github.com/sweldox/payroll-backend-go/internal/domain/employee"
	"github.com/sweldox/payroll-backend-go/internal/domain/payroll"
	"github.com/sweldox/payroll-backend-go/internal/domain/payrollconfig"
)

type fakeEmployeeProvider struct {
	employees map[string]employee.Employee
	activeIDs []string
}

func (f *fakeEmployeeProvider) GetByID(_ context.Context, id string) (employee.Employee, error) {
	emp, ok := f.employees[id]
	if !ok {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	return emp, nil
}

func (f *fakeEmployeeProvider) GetActiveIDs(_ context.Context) ([]string, error) {
	return f.activeIDs, nil
}

type fakeAttendanceProvider struct {
	records map[string][]attendance.Attendance
}

func (f *fakeAttendanceProvider) GetForPeriod(_ context.Context, employeeID string, _, _ time.Time) ([]attendance.Attendance, error) {
	return f.records[employeeID], nil
}

func date(s string) time.Time {
	d, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return d
}

// testSnapshot returns a snapshot under which every salary resolves and
// the arithmetic stays simple.
func testSnapshot() payrollconfig.Snapshot {
	return payrollconfig.Snapshot{
		SocialInsurance: payrollconfig.SocialInsuranceConfig{
			EmployeeRate: dec("0.05"),
			Brackets: []payrollconfig.SalaryBracket{
				{MinIncome: dec("0"), MaxIncome: nil, ReferenceAmount: dec("10000")},
			},
		},
		HealthInsurance: payrollconfig.HealthInsuranceConfig{
			PremiumRate:       dec("0.04"),
			MaxSalaryCap:      dec("100000"),
			MinSalaryFloor:    dec("0"),
			FixedContribution: dec("0"),
		},
		HousingFund: payrollconfig.HousingFundConfig{
			EmployeeRate:          dec("0.02"),
			LowIncomeThreshold:    dec("1500"),
			LowIncomeEmployeeRate: dec("0.01"),
			MaxSalaryCap:          dec("5000"),
		},
		TaxBrackets: []payrollconfig.TaxBracket{
			{MinIncome: dec("-1000000"), MaxIncome: nil, BaseTax: dec("0"), MarginalRate: dec("0"), Threshold: dec("0")},
		},
	}
}

func TestBuilderDerivesPeriodFromAttendance(t *testing.T) {
	employees := &fakeEmployeeProvider{employees: map[string]employee.Employee{
		"emp-1": {ID: "emp-1", BasicSalary: dec("20000"), HourlyRate: dec("125")},
	}}
	attendances := &fakeAttendanceProvider{records: map[string][]attendance.Attendance{
		"emp-1": {
			{Date: date("2024-06-03"), TotalHours: dec("8"), OvertimeHours: dec("0")},
			{Date: date("2024-06-04"), TotalHours: dec("8"), OvertimeHours: dec("0")},
			{Date: date("2024-06-10"), TotalHours: dec("9"), OvertimeHours: dec("1")},
		},
	}}

	builder := NewBuilder(employees, attendances)
	p, err := builder.Build(context.Background(), "emp-1", date("2024-06-01"), date("2024-06-15"), date("2024-06-15"), testSnapshot())
	require.NoError(t, err)

	// Persisted bounds come from the attendance found, not the request.
	require.NotNil(t, p.PeriodStart)
	require.NotNil(t, p.PeriodEnd)
	assert.Equal(t, date("2024-06-03"), *p.PeriodStart)
	assert.Equal(t, date("2024-06-10"), *p.PeriodEnd)
	assert.Equal(t, 3, p.DaysWorked)
	assert.Equal(t, "1.00", p.OvertimeHours.StringFixed(2))

	// 24 regular hours * 125 + 1 overtime hour * 125 * 1.25
	assert.Equal(t, "3156.25", p.GrossPay.StringFixed(2))
	assert.Equal(t, "20000.00", p.MonthlyRate.StringFixed(2))
	assert.Equal(t, "1000.00", p.DailyRate.StringFixed(2))
}

func TestBuilderWithoutAttendance(t *testing.T) {
	employees := &fakeEmployeeProvider{employees: map[string]employee.Employee{
		"emp-1": {ID: "emp-1", BasicSalary: dec("20000"), HourlyRate: dec("125")},
	}}
	attendances := &fakeAttendanceProvider{records: map[string][]attendance.Attendance{}}

	builder := NewBuilder(employees, attendances)
	p, err := builder.Build(context.Background(), "emp-1", date("2024-06-01"), date("2024-06-15"), date("2024-06-15"), testSnapshot())
	require.NoError(t, err)

	assert.Nil(t, p.PeriodStart)
	assert.Nil(t, p.PeriodEnd)
	assert.Equal(t, 0, p.DaysWorked)
	assert.Equal(t, "0.00", p.GrossPay.StringFixed(2))

	// Statutory deductions follow the basic salary, not the hours.
	assert.Len(t, p.Deductions, 4)
}

func TestBuilderAssemblesLines(t *testing.T) {
	employees := &fakeEmployeeProvider{employees: map[string]employee.Employee{
		"emp-1": {
			ID:          "emp-1",
			BasicSalary: dec("20000"),
			HourlyRate:  dec("125"),
			Benefits: []employee.Benefit{
				{TypeCode: "RICE_SUBSIDY", Amount: dec("1500")},
				{TypeCode: "PHONE_ALLOWANCE", Amount: dec("1000")},
			},
		},
	}}
	attendances := &fakeAttendanceProvider{records: map[string][]attendance.Attendance{
		"emp-1": {{Date: date("2024-06-03"), TotalHours: dec("8"), OvertimeHours: dec("0")}},
	}}

	builder := NewBuilder(employees, attendances)
	p, err := builder.Build(context.Background(), "emp-1", date("2024-06-01"), date("2024-06-15"), date("2024-06-15"), testSnapshot())
	require.NoError(t, err)

	require.Len(t, p.Deductions, 4)
	codes := make([]payroll.DeductionTypeCode, 0, 4)
	for _, d := range p.Deductions {
		codes = append(codes, d.TypeCode)
	}
	assert.Equal(t, []payroll.DeductionTypeCode{
		payroll.DeductionSocialInsurance,
		payroll.DeductionHealthInsurance,
		payroll.DeductionHousingFund,
		payroll.DeductionWithholdingTax,
	}, codes)

	require.Len(t, p.Benefits, 2)
	assert.Equal(t, "2500.00", p.TotalBenefits.StringFixed(2))
}

func TestBuilderUnknownEmployee(t *testing.T) {
	builder := NewBuilder(
		&fakeEmployeeProvider{employees: map[string]employee.Employee{}},
		&fakeAttendanceProvider{},
	)

	_, err := builder.Build(context.Background(), "missing", date("2024-06-01"), date("2024-06-15"), date("2024-06-15"), testSnapshot())
	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)
}
