package payrollconfig

import (
	"time"

	"github.com/shopspring/decimal"
)

// Kind identifies one of the four configuration tables.
type Kind string

const (
	KindSocialInsurance Kind = "social_insurance"
	KindHealthInsurance Kind = "health_insurance"
	KindHousingFund     Kind = "housing_fund"
	KindTaxBracket      Kind = "tax_bracket"
)

// SalaryBracket - one social-insurance bracket row. Brackets are ordered
// by MinIncome, non-overlapping, min inclusive. A nil MaxIncome means the
// bracket is open-ended.
type SalaryBracket struct {
	MinIncome       decimal.Decimal  `json:"min_income"`
	MaxIncome       *decimal.Decimal `json:"max_income,omitempty"`
	ReferenceAmount decimal.Decimal  `json:"reference_amount"`
}

// Contains reports whether salary falls inside the bracket.
func (b SalaryBracket) Contains(salary decimal.Decimal) bool {
	if salary.LessThan(b.MinIncome) {
		return false
	}
	if b.MaxIncome == nil {
		return true
	}
	return salary.LessThanOrEqual(*b.MaxIncome)
}

// SocialInsuranceConfig - bracket table plus employee/employer rates.
type SocialInsuranceConfig struct {
	ID            string
	EmployeeRate  decimal.Decimal
	EmployerRate  decimal.Decimal
	Brackets      []SalaryBracket
	EffectiveDate time.Time
	RetiredAt     *time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// FindBracket returns the bracket containing salary.
func (c SocialInsuranceConfig) FindBracket(salary decimal.Decimal) (SalaryBracket, error) {
	for _, b := range c.Brackets {
		if b.Contains(salary) {
			return b, nil
		}
	}
	return SalaryBracket{}, &BracketNotFoundError{Kind: KindSocialInsurance, Amount: salary}
}

// HealthInsuranceConfig - premium formula with floor and cap.
type HealthInsuranceConfig struct {
	ID                string
	PremiumRate       decimal.Decimal
	MaxSalaryCap      decimal.Decimal
	MinSalaryFloor    decimal.Decimal
	FixedContribution decimal.Decimal
	EffectiveDate     time.Time
	RetiredAt         *time.Time
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// HousingFundConfig - rate formula with low-income rate and cap.
type HousingFundConfig struct {
	ID                    string
	EmployeeRate          decimal.Decimal
	EmployerRate          decimal.Decimal
	LowIncomeThreshold    decimal.Decimal
	LowIncomeEmployeeRate decimal.Decimal
	MaxSalaryCap          decimal.Decimal
	EffectiveDate         time.Time
	RetiredAt             *time.Time
	CreatedAt             time.Time
	UpdatedAt             time.Time
}

// TaxBracket - one row of the progressive withholding table. A full
// bracket set shares a single effective date.
type TaxBracket struct {
	ID            string
	MinIncome     decimal.Decimal
	MaxIncome     *decimal.Decimal
	BaseTax       decimal.Decimal
	MarginalRate  decimal.Decimal
	Threshold     decimal.Decimal
	EffectiveDate time.Time
	RetiredAt     *time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Contains reports whether income falls inside the bracket.
func (b TaxBracket) Contains(income decimal.Decimal) bool {
	if income.LessThan(b.MinIncome) {
		return false
	}
	if b.MaxIncome == nil {
		return true
	}
	return income.LessThanOrEqual(*b.MaxIncome)
}

// Snapshot holds the four configurations resolved for one target date.
// It is never persisted and never mutated after construction, so a single
// snapshot can be shared read-only across concurrent payroll computations.
type Snapshot struct {
	SocialInsurance SocialInsuranceConfig
	HealthInsurance HealthInsuranceConfig
	HousingFund     HousingFundConfig
	TaxBrackets     []TaxBracket
}

// FindTaxBracket returns the bracket containing the taxable income.
func (s Snapshot) FindTaxBracket(income decimal.Decimal) (TaxBracket, error) {
	for _, b := range s.TaxBrackets {
		if b.Contains(income) {
			return b, nil
		}
	}
	return TaxBracket{}, &BracketNotFoundError{Kind: KindTaxBracket, Amount: income}
}
