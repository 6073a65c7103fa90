package payrollconfig

import (
	"context"
	"time"

	"github.com/sweldox/payroll-backend-go/internal/domain/payrollconfig"
)

// Service is the administration side of the configuration store: new
// versions are appended with an effective date, old versions soft-retired.
// Rows are never edited in place, so historical payrolls stay explainable.
type Service struct {
	repo payrollconfig.Repository
}

func NewService(repo payrollconfig.Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) CreateSocialInsurance(ctx context.Context, req payrollconfig.CreateSocialInsuranceRequest) (payrollconfig.SocialInsuranceResponse, error) {
	if err := req.Validate(); err != nil {
		return payrollconfig.SocialInsuranceResponse{}, err
	}

	effectiveDate, _ := time.Parse("2006-01-02", req.EffectiveDate)
	brackets := make([]payrollconfig.SalaryBracket, 0, len(req.Brackets))
	for _, b := range req.Brackets {
		brackets = append(brackets, payrollconfig.SalaryBracket{
			MinIncome:       b.MinIncome,
			MaxIncome:       b.MaxIncome,
			ReferenceAmount: b.ReferenceAmount,
		})
	}

	created, err := s.repo.CreateSocialInsurance(ctx, payrollconfig.SocialInsuranceConfig{
		EmployeeRate:  req.EmployeeRate,
		EmployerRate:  req.EmployerRate,
		Brackets:      brackets,
		EffectiveDate: effectiveDate,
	})
	if err != nil {
		return payrollconfig.SocialInsuranceResponse{}, err
	}

	return payrollconfig.ToSocialInsuranceResponse(created), nil
}

func (s *Service) CreateHealthInsurance(ctx context.Context, req payrollconfig.CreateHealthInsuranceRequest) (payrollconfig.HealthInsuranceResponse, error) {
	if err := req.Validate(); err != nil {
		return payrollconfig.HealthInsuranceResponse{}, err
	}

	effectiveDate, _ := time.Parse("2006-01-02", req.EffectiveDate)
	created, err := s.repo.CreateHealthInsurance(ctx, payrollconfig.HealthInsuranceConfig{
		PremiumRate:       req.PremiumRate,
		MaxSalaryCap:      req.MaxSalaryCap,
		MinSalaryFloor:    req.MinSalaryFloor,
		FixedContribution: req.FixedContribution,
		EffectiveDate:     effectiveDate,
	})
	if err != nil {
		return payrollconfig.HealthInsuranceResponse{}, err
	}

	return payrollconfig.ToHealthInsuranceResponse(created), nil
}

func (s *Service) CreateHousingFund(ctx context.Context, req payrollconfig.CreateHousingFundRequest) (payrollconfig.HousingFundResponse, error) {
	if err := req.Validate(); err != nil {
		return payrollconfig.HousingFundResponse{}, err
	}

	effectiveDate, _ := time.Parse("2006-01-02", req.EffectiveDate)
	created, err := s.repo.CreateHousingFund(ctx, payrollconfig.HousingFundConfig{
		EmployeeRate:          req.EmployeeRate,
		EmployerRate:          req.EmployerRate,
		LowIncomeThreshold:    req.LowIncomeThreshold,
		LowIncomeEmployeeRate: req.LowIncomeEmployeeRate,
		MaxSalaryCap:          req.MaxSalaryCap,
		EffectiveDate:         effectiveDate,
	})
	if err != nil {
		return payrollconfig.HousingFundResponse{}, err
	}

	return payrollconfig.ToHousingFundResponse(created), nil
}

func (s *Service) CreateTaxBrackets(ctx context.Context, req payrollconfig.CreateTaxBracketsRequest) ([]payrollconfig.TaxBracketResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	effectiveDate, _ := time.Parse("2006-01-02", req.EffectiveDate)
	brackets := make([]payrollconfig.TaxBracket, 0, len(req.Brackets))
	for _, b := range req.Brackets {
		brackets = append(brackets, payrollconfig.TaxBracket{
			MinIncome:     b.MinIncome,
			MaxIncome:     b.MaxIncome,
			BaseTax:       b.BaseTax,
			MarginalRate:  b.MarginalRate,
			Threshold:     b.Threshold,
			EffectiveDate: effectiveDate,
		})
	}

	created, err := s.repo.CreateTaxBrackets(ctx, brackets)
	if err != nil {
		return nil, err
	}

	result := make([]payrollconfig.TaxBracketResponse, 0, len(created))
	for _, b := range created {
		result = append(result, payrollconfig.ToTaxBracketResponse(b))
	}
	return result, nil
}

func (s *Service) ListSocialInsurance(ctx context.Context) ([]payrollconfig.SocialInsuranceResponse, error) {
	configs, err := s.repo.ListSocialInsurance(ctx)
	if err != nil {
		return nil, err
	}
	result := make([]payrollconfig.SocialInsuranceResponse, 0, len(configs))
	for _, c := range configs {
		result = append(result, payrollconfig.ToSocialInsuranceResponse(c))
	}
	return result, nil
}

func (s *Service) ListHealthInsurance(ctx context.Context) ([]payrollconfig.HealthInsuranceResponse, error) {
	configs, err := s.repo.ListHealthInsurance(ctx)
	if err != nil {
		return nil, err
	}
	result := make([]payrollconfig.HealthInsuranceResponse, 0, len(configs))
	for _, c := range configs {
		result = append(result, payrollconfig.ToHealthInsuranceResponse(c))
	}
	return result, nil
}

func (s *Service) ListHousingFund(ctx context.Context) ([]payrollconfig.HousingFundResponse, error) {
	configs, err := s.repo.ListHousingFund(ctx)
	if err != nil {
		return nil, err
	}
	result := make([]payrollconfig.HousingFundResponse, 0, len(configs))
	for _, c := range configs {
		result = append(result, payrollconfig.ToHousingFundResponse(c))
	}
	return result, nil
}

func (s *Service) ListTaxBrackets(ctx context.Context) ([]payrollconfig.TaxBracketResponse, error) {
	brackets, err := s.repo.ListTaxBrackets(ctx)
	if err != nil {
		return nil, err
	}
	result := make([]payrollconfig.TaxBracketResponse, 0, len(brackets))
	for _, b := range brackets {
		result = append(result, payrollconfig.ToTaxBracketResponse(b))
	}
	return result, nil
}

func (s *Service) RetireConfig(ctx context.Context, kind payrollconfig.Kind, id string) error {
	return s.repo.RetireConfig(ctx, kind, id)
}
