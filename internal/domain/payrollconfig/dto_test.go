package payrollconfig

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/sweldox/payroll-backend-go/internal/pkg/validator"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func fieldErrors(t *testing.T, err error) map[string]string {
	t.Helper()
	var errs validator.ValidationErrors
	require.True(t, errors.As(err, &errs))
	return errs.ToMap()
}

func TestCreateSocialInsuranceRequestValidate(t *testing.T) {
	valid := CreateSocialInsuranceRequest{
		EmployeeRate: dec("0.045"),
		EmployerRate: dec("0.095"),
		Brackets: []SalaryBracketRequest{
			{MinIncome: dec("0"), ReferenceAmount: dec("4000")},
			{MinIncome: dec("4250"), ReferenceAmount: dec("4500")},
		},
		EffectiveDate: "2024-01-01",
	}

	t.Run("valid request", func(t *testing.T) {
		req := valid
		assert.NoError(t, req.Validate())
	})

	t.Run("empty bracket list", func(t *testing.T) {
		req := valid
		req.Brackets = nil
		assert.Contains(t, fieldErrors(t, req.Validate()), "brackets")
	})

	t.Run("unordered brackets", func(t *testing.T) {
		req := valid
		req.Brackets = []SalaryBracketRequest{
			{MinIncome: dec("4250"), ReferenceAmount: dec("4500")},
			{MinIncome: dec("0"), ReferenceAmount: dec("4000")},
		}
		assert.Contains(t, fieldErrors(t, req.Validate()), "brackets")
	})

	t.Run("inverted bracket bounds", func(t *testing.T) {
		maxIncome := dec("100")
		req := valid
		req.Brackets = []SalaryBracketRequest{
			{MinIncome: dec("4250"), MaxIncome: &maxIncome, ReferenceAmount: dec("4500")},
		}
		assert.Contains(t, fieldErrors(t, req.Validate()), "brackets")
	})

	t.Run("negative rate", func(t *testing.T) {
		req := valid
		req.EmployeeRate = dec("-0.01")
		assert.Contains(t, fieldErrors(t, req.Validate()), "employee_rate")
	})

	t.Run("bad effective date", func(t *testing.T) {
		req := valid
		req.EffectiveDate = "January 1st"
		assert.Contains(t, fieldErrors(t, req.Validate()), "effective_date")
	})
}

func TestCreateHealthInsuranceRequestValidate(t *testing.T) {
	valid := CreateHealthInsuranceRequest{
		PremiumRate:       dec("0.05"),
		MaxSalaryCap:      dec("100000"),
		MinSalaryFloor:    dec("10000"),
		FixedContribution: dec("500"),
		EffectiveDate:     "2024-01-01",
	}

	t.Run("valid request", func(t *testing.T) {
		req := valid
		assert.NoError(t, req.Validate())
	})

	t.Run("cap below floor", func(t *testing.T) {
		req := valid
		req.MaxSalaryCap = dec("5000")
		assert.Contains(t, fieldErrors(t, req.Validate()), "max_salary_cap")
	})
}

func TestCreateTaxBracketsRequestValidate(t *testing.T) {
	valid := CreateTaxBracketsRequest{
		Brackets: []TaxBracketRequest{
			{MinIncome: dec("0"), BaseTax: dec("0"), MarginalRate: dec("0"), Threshold: dec("0")},
			{MinIncome: dec("20833"), BaseTax: dec("0"), MarginalRate: dec("0.15"), Threshold: dec("20833")},
		},
		EffectiveDate: "2024-01-01",
	}

	t.Run("valid request", func(t *testing.T) {
		req := valid
		assert.NoError(t, req.Validate())
	})

	t.Run("negative marginal rate", func(t *testing.T) {
		req := valid
		req.Brackets = []TaxBracketRequest{
			{MinIncome: dec("0"), MarginalRate: dec("-0.15")},
		}
		assert.Contains(t, fieldErrors(t, req.Validate()), "brackets")
	})
}

func TestSalaryBracketContains(t *testing.T) {
	maxIncome := dec("4749.99")
	bounded := SalaryBracket{MinIncome: dec("4250"), MaxIncome: &maxIncome}
	open := SalaryBracket{MinIncome: dec("5250")}

	assert.True(t, bounded.Contains(dec("4250")))
	assert.True(t, bounded.Contains(dec("4749.99")))
	assert.False(t, bounded.Contains(dec("4249.99")))
	assert.False(t, bounded.Contains(dec("4750")))

	assert.True(t, open.Contains(dec("5250")))
	assert.True(t, open.Contains(dec("9999999")))
	assert.False(t, open.Contains(dec("5249.99")))
}
