package payrollconfig

import (
	"context"
	"time"

	"github.com/sweldox/payroll-backend-go/internal/domain/payrollconfig"
)

// Resolver freezes the four date-versioned configuration tables into one
// immutable snapshot for a target date. A snapshot resolved once can be
// reused across an entire batch run; concurrent readers need no locking.
type Resolver struct {
	repo payrollconfig.Repository
}

func NewResolver(repo payrollconfig.Repository) *Resolver {
	return &Resolver{repo: repo}
}

// Resolve selects, for each configuration kind, the row set with the
// latest effective date on or before the target date among non-retired
// rows. Any missing kind aborts with ConfigNotFoundError: no payroll can
// be created for that date until an administrator supplies configuration.
func (r *Resolver) Resolve(ctx context.Context, date time.Time) (payrollconfig.Snapshot, error) {
	social, err := r.repo.GetSocialInsuranceByDate(ctx, date)
	if err != nil {
		return payrollconfig.Snapshot{}, err
	}

	health, err := r.repo.GetHealthInsuranceByDate(ctx, date)
	if err != nil {
		return payrollconfig.Snapshot{}, err
	}

	housing, err := r.repo.GetHousingFundByDate(ctx, date)
	if err != nil {
		return payrollconfig.Snapshot{}, err
	}

	taxBrackets, err := r.repo.GetTaxBracketsByDate(ctx, date)
	if err != nil {
		return payrollconfig.Snapshot{}, err
	}

	return payrollconfig.Snapshot{
		SocialInsurance: social,
		HealthInsurance: health,
		HousingFund:     housing,
		TaxBrackets:     taxBrackets,
	}, nil
}
