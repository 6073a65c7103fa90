package payrollconfig

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/sweldox/payroll-backend-go/internal/pkg/validator"
)

type SalaryBracketRequest struct {
	MinIncome       decimal.Decimal  `json:"min_income"`
	MaxIncome       *decimal.Decimal `json:"max_income,omitempty"`
	ReferenceAmount decimal.Decimal  `json:"reference_amount"`
}

type CreateSocialInsuranceRequest struct {
	EmployeeRate  decimal.Decimal        `json:"employee_rate"`
	EmployerRate  decimal.Decimal        `json:"employer_rate"`
	Brackets      []SalaryBracketRequest `json:"brackets"`
	EffectiveDate string                 `json:"effective_date"`
}

func (r *CreateSocialInsuranceRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.EmployeeRate.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "employee_rate", Message: "must be non-negative"})
	}
	if r.EmployerRate.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "employer_rate", Message: "must be non-negative"})
	}
	if len(r.Brackets) == 0 {
		errs = append(errs, validator.ValidationError{Field: "brackets", Message: "at least one bracket is required"})
	}
	for i, b := range r.Brackets {
		if b.MaxIncome != nil && b.MaxIncome.LessThan(b.MinIncome) {
			errs = append(errs, validator.ValidationError{Field: "brackets", Message: "max_income must not be less than min_income"})
			break
		}
		if i > 0 && !r.Brackets[i-1].MinIncome.LessThan(b.MinIncome) {
			errs = append(errs, validator.ValidationError{Field: "brackets", Message: "brackets must be ordered by min_income"})
			break
		}
	}
	if _, ok := validator.IsValidDate(r.EffectiveDate); !ok {
		errs = append(errs, validator.ValidationError{Field: "effective_date", Message: "must be a valid date (YYYY-MM-DD)"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type CreateHealthInsuranceRequest struct {
	PremiumRate       decimal.Decimal `json:"premium_rate"`
	MaxSalaryCap      decimal.Decimal `json:"max_salary_cap"`
	MinSalaryFloor    decimal.Decimal `json:"min_salary_floor"`
	FixedContribution decimal.Decimal `json:"fixed_contribution"`
	EffectiveDate     string          `json:"effective_date"`
}

func (r *CreateHealthInsuranceRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.PremiumRate.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "premium_rate", Message: "must be non-negative"})
	}
	if r.MaxSalaryCap.LessThan(r.MinSalaryFloor) {
		errs = append(errs, validator.ValidationError{Field: "max_salary_cap", Message: "must not be less than min_salary_floor"})
	}
	if r.FixedContribution.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "fixed_contribution", Message: "must be non-negative"})
	}
	if _, ok := validator.IsValidDate(r.EffectiveDate); !ok {
		errs = append(errs, validator.ValidationError{Field: "effective_date", Message: "must be a valid date (YYYY-MM-DD)"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type CreateHousingFundRequest struct {
	EmployeeRate          decimal.Decimal `json:"employee_rate"`
	EmployerRate          decimal.Decimal `json:"employer_rate"`
	LowIncomeThreshold    decimal.Decimal `json:"low_income_threshold"`
	LowIncomeEmployeeRate decimal.Decimal `json:"low_income_employee_rate"`
	MaxSalaryCap          decimal.Decimal `json:"max_salary_cap"`
	EffectiveDate         string          `json:"effective_date"`
}

func (r *CreateHousingFundRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.EmployeeRate.IsNegative() || r.LowIncomeEmployeeRate.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "employee_rate", Message: "rates must be non-negative"})
	}
	if r.MaxSalaryCap.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "max_salary_cap", Message: "must be non-negative"})
	}
	if _, ok := validator.IsValidDate(r.EffectiveDate); !ok {
		errs = append(errs, validator.ValidationError{Field: "effective_date", Message: "must be a valid date (YYYY-MM-DD)"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type TaxBracketRequest struct {
	MinIncome    decimal.Decimal  `json:"min_income"`
	MaxIncome    *decimal.Decimal `json:"max_income,omitempty"`
	BaseTax      decimal.Decimal  `json:"base_tax"`
	MarginalRate decimal.Decimal  `json:"marginal_rate"`
	Threshold    decimal.Decimal  `json:"threshold"`
}

// CreateTaxBracketsRequest installs a full bracket set sharing one
// effective date.
type CreateTaxBracketsRequest struct {
	Brackets      []TaxBracketRequest `json:"brackets"`
	EffectiveDate string              `json:"effective_date"`
}

func (r *CreateTaxBracketsRequest) Validate() error {
	var errs validator.ValidationErrors

	if len(r.Brackets) == 0 {
		errs = append(errs, validator.ValidationError{Field: "brackets", Message: "at least one bracket is required"})
	}
	for i, b := range r.Brackets {
		if b.MarginalRate.IsNegative() || b.BaseTax.IsNegative() {
			errs = append(errs, validator.ValidationError{Field: "brackets", Message: "base_tax and marginal_rate must be non-negative"})
			break
		}
		if i > 0 && !r.Brackets[i-1].MinIncome.LessThan(b.MinIncome) {
			errs = append(errs, validator.ValidationError{Field: "brackets", Message: "brackets must be ordered by min_income"})
			break
		}
	}
	if _, ok := validator.IsValidDate(r.EffectiveDate); !ok {
		errs = append(errs, validator.ValidationError{Field: "effective_date", Message: "must be a valid date (YYYY-MM-DD)"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type SocialInsuranceResponse struct {
	ID            string          `json:"id"`
	EmployeeRate  decimal.Decimal `json:"employee_rate"`
	EmployerRate  decimal.Decimal `json:"employer_rate"`
	Brackets      []SalaryBracket `json:"brackets"`
	EffectiveDate string          `json:"effective_date"`
	RetiredAt     *string         `json:"retired_at,omitempty"`
}

type HealthInsuranceResponse struct {
	ID                string          `json:"id"`
	PremiumRate       decimal.Decimal `json:"premium_rate"`
	MaxSalaryCap      decimal.Decimal `json:"max_salary_cap"`
	MinSalaryFloor    decimal.Decimal `json:"min_salary_floor"`
	FixedContribution decimal.Decimal `json:"fixed_contribution"`
	EffectiveDate     string          `json:"effective_date"`
	RetiredAt         *string         `json:"retired_at,omitempty"`
}

type HousingFundResponse struct {
	ID                    string          `json:"id"`
	EmployeeRate          decimal.Decimal `json:"employee_rate"`
	EmployerRate          decimal.Decimal `json:"employer_rate"`
	LowIncomeThreshold    decimal.Decimal `json:"low_income_threshold"`
	LowIncomeEmployeeRate decimal.Decimal `json:"low_income_employee_rate"`
	MaxSalaryCap          decimal.Decimal `json:"max_salary_cap"`
	EffectiveDate         string          `json:"effective_date"`
	RetiredAt             *string         `json:"retired_at,omitempty"`
}

type TaxBracketResponse struct {
	ID            string           `json:"id"`
	MinIncome     decimal.Decimal  `json:"min_income"`
	MaxIncome     *decimal.Decimal `json:"max_income,omitempty"`
	BaseTax       decimal.Decimal  `json:"base_tax"`
	MarginalRate  decimal.Decimal  `json:"marginal_rate"`
	Threshold     decimal.Decimal  `json:"threshold"`
	EffectiveDate string           `json:"effective_date"`
	RetiredAt     *string          `json:"retired_at,omitempty"`
}

func formatRetiredAt(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(time.RFC3339)
	return &s
}

func ToSocialInsuranceResponse(c SocialInsuranceConfig) SocialInsuranceResponse {
	return SocialInsuranceResponse{
		ID:            c.ID,
		EmployeeRate:  c.EmployeeRate,
		EmployerRate:  c.EmployerRate,
		Brackets:      c.Brackets,
		EffectiveDate: c.EffectiveDate.Format("2006-01-02"),
		RetiredAt:     formatRetiredAt(c.RetiredAt),
	}
}

func ToHealthInsuranceResponse(c HealthInsuranceConfig) HealthInsuranceResponse {
	return HealthInsuranceResponse{
		ID:                c.ID,
		PremiumRate:       c.PremiumRate,
		MaxSalaryCap:      c.MaxSalaryCap,
		MinSalaryFloor:    c.MinSalaryFloor,
		FixedContribution: c.FixedContribution,
		EffectiveDate:     c.EffectiveDate.Format("2006-01-02"),
		RetiredAt:         formatRetiredAt(c.RetiredAt),
	}
}

func ToHousingFundResponse(c HousingFundConfig) HousingFundResponse {
	return HousingFundResponse{
		ID:                    c.ID,
		EmployeeRate:          c.EmployeeRate,
		EmployerRate:          c.EmployerRate,
		LowIncomeThreshold:    c.LowIncomeThreshold,
		LowIncomeEmployeeRate: c.LowIncomeEmployeeRate,
		MaxSalaryCap:          c.MaxSalaryCap,
		EffectiveDate:         c.EffectiveDate.Format("2006-01-02"),
		RetiredAt:             formatRetiredAt(c.RetiredAt),
	}
}

func ToTaxBracketResponse(b TaxBracket) TaxBracketResponse {
	return TaxBracketResponse{
		ID:            b.ID,
		MinIncome:     b.MinIncome,
		MaxIncome:     b.MaxIncome,
		BaseTax:       b.BaseTax,
		MarginalRate:  b.MarginalRate,
		Threshold:     b.Threshold,
		EffectiveDate: b.EffectiveDate.Format("2006-01-02"),
		RetiredAt:     formatRetiredAt(b.RetiredAt),
	}
}
