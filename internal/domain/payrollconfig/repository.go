package payrollconfig

import (
	"context"
	"time"
)

// Repository defines data access for the four date-versioned configuration
// tables. Reads always select the latest effective_date <= date among rows
// that have not been retired. Writes are the administration side: new
// versions are appended, old versions soft-retired, never edited in place.
type Repository interface {
	// Effective-date lookups
	GetSocialInsuranceByDate(ctx context.Context, date time.Time) (SocialInsuranceConfig, error)
	GetHealthInsuranceByDate(ctx context.Context, date time.Time) (HealthInsuranceConfig, error)
	GetHousingFundByDate(ctx context.Context, date time.Time) (HousingFundConfig, error)
	GetTaxBracketsByDate(ctx context.Context, date time.Time) ([]TaxBracket, error)

	// Administration
	CreateSocialInsurance(ctx context.Context, config SocialInsuranceConfig) (SocialInsuranceConfig, error)
	CreateHealthInsurance(ctx context.Context, config HealthInsuranceConfig) (HealthInsuranceConfig, error)
	CreateHousingFund(ctx context.Context, config HousingFundConfig) (HousingFundConfig, error)
	CreateTaxBrackets(ctx context.Context, brackets []TaxBracket) ([]TaxBracket, error)

	ListSocialInsurance(ctx context.Context) ([]SocialInsuranceConfig, error)
	ListHealthInsurance(ctx context.Context) ([]HealthInsuranceConfig, error)
	ListHousingFund(ctx context.Context) ([]HousingFundConfig, error)
	ListTaxBrackets(ctx context.Context) ([]TaxBracket, error)

	RetireConfig(ctx context.Context, kind Kind, id string) error
}
