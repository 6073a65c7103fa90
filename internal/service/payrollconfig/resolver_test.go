package payrollconfig

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/sweldox/payroll-backend-go/internal/domain/payrollconfig"
)

// fakeRepo serves canned per-kind results; unimplemented administration
// methods come from the embedded interface and are never called.
type fakeRepo struct {
	payrollconfig.Repository

	social    payrollconfig.SocialInsuranceConfig
	socialErr error

	health    payrollconfig.HealthInsuranceConfig
	healthErr error

	housing    payrollconfig.HousingFundConfig
	housingErr error

	brackets    []payrollconfig.TaxBracket
	bracketsErr error
}

func (f *fakeRepo) GetSocialInsuranceByDate(_ context.Context, _ time.Time) (payrollconfig.SocialInsuranceConfig, error) {
	return f.social, f.socialErr
}

func (f *fakeRepo) GetHealthInsuranceByDate(_ context.Context, _ time.Time) (payrollconfig.HealthInsuranceConfig, error) {
	return f.health, f.healthErr
}

func (f *fakeRepo) GetHousingFundByDate(_ context.Context, _ time.Time) (payrollconfig.HousingFundConfig, error) {
	return f.housing, f.housingErr
}

func (f *fakeRepo) GetTaxBracketsByDate(_ context.Context, _ time.Time) ([]payrollconfig.TaxBracket, error) {
	return f.brackets, f.bracketsErr
}

func validRepo() *fakeRepo {
	return &fakeRepo{
		social:  payrollconfig.SocialInsuranceConfig{ID: "si-1", EmployeeRate: decimal.NewFromFloat(0.045)},
		health:  payrollconfig.HealthInsuranceConfig{ID: "hi-1", PremiumRate: decimal.NewFromFloat(0.05)},
		housing: payrollconfig.HousingFundConfig{ID: "hf-1", EmployeeRate: decimal.NewFromFloat(0.02)},
		brackets: []payrollconfig.TaxBracket{
			{ID: "tb-1", MinIncome: decimal.Zero},
		},
	}
}

func TestResolverBuildsSnapshot(t *testing.T) {
	resolver := NewResolver(validRepo())

	snapshot, err := resolver.Resolve(context.Background(), time.Now())
	require.NoError(t, err)

	assert.Equal(t, "si-1", snapshot.SocialInsurance.ID)
	assert.Equal(t, "hi-1", snapshot.HealthInsurance.ID)
	assert.Equal(t, "hf-1", snapshot.HousingFund.ID)
	require.Len(t, snapshot.TaxBrackets, 1)
	assert.Equal(t, "tb-1", snapshot.TaxBrackets[0].ID)
}

func TestResolverPropagatesMissingKind(t *testing.T) {
	date := time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC)

	cases := []struct {
		name string
		prep func(*fakeRepo)
		kind payrollconfig.Kind
	}{
		{
			name: "social insurance missing",
			prep: func(r *fakeRepo) {
				r.socialErr = &payrollconfig.ConfigNotFoundError{Kind: payrollconfig.KindSocialInsurance, Date: date}
			},
			kind: payrollconfig.KindSocialInsurance,
		},
		{
			name: "health insurance missing",
			prep: func(r *fakeRepo) {
				r.healthErr = &payrollconfig.ConfigNotFoundError{Kind: payrollconfig.KindHealthInsurance, Date: date}
			},
			kind: payrollconfig.KindHealthInsurance,
		},
		{
			name: "housing fund missing",
			prep: func(r *fakeRepo) {
				r.housingErr = &payrollconfig.ConfigNotFoundError{Kind: payrollconfig.KindHousingFund, Date: date}
			},
			kind: payrollconfig.KindHousingFund,
		},
		{
			name: "tax brackets missing",
			prep: func(r *fakeRepo) {
				r.bracketsErr = &payrollconfig.ConfigNotFoundError{Kind: payrollconfig.KindTaxBracket, Date: date}
			},
			kind: payrollconfig.KindTaxBracket,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			repo := validRepo()
			tc.prep(repo)

			_, err := NewResolver(repo).Resolve(context.Background(), date)

			var configErr *payrollconfig.ConfigNotFoundError
			require.True(t, errors.As(err, &configErr))
			assert.Equal(t, tc.kind, configErr.Kind)
		})
	}
}
