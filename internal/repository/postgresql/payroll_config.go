package postgresql

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/sweldox/payroll-backend-go/internal/domain/payrollconfig"
	"github.com/sweldox/payroll-backend-go/internal/pkg/database"
)

type payrollConfigRepository struct {
	db *database.DB
}

func NewPayrollConfigRepository(db *database.DB) payrollconfig.Repository {
	return &payrollConfigRepository{db: db}
}

// ========== EFFECTIVE-DATE LOOKUPS ==========

func (r *payrollConfigRepository) GetSocialInsuranceByDate(ctx context.Context, date time.Time) (payrollconfig.SocialInsuranceConfig, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, employee_rate, employer_rate, brackets, effective_date,
			   retired_at, created_at, updated_at
		FROM social_insurance_configs
		WHERE effective_date <= $1 AND retired_at IS NULL
		ORDER BY effective_date DESC
		LIMIT 1
	`

	var c payrollconfig.SocialInsuranceConfig
	var bracketsJSON []byte
	err := q.QueryRow(ctx, query, date).Scan(
		&c.ID, &c.EmployeeRate, &c.EmployerRate, &bracketsJSON,
		&c.EffectiveDate, &c.RetiredAt, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return payrollconfig.SocialInsuranceConfig{}, &payrollconfig.ConfigNotFoundError{Kind: payrollconfig.KindSocialInsurance, Date: date}
		}
		return payrollconfig.SocialInsuranceConfig{}, fmt.Errorf("failed to get social insurance config: %w", err)
	}

	if err := json.Unmarshal(bracketsJSON, &c.Brackets); err != nil {
		return payrollconfig.SocialInsuranceConfig{}, fmt.Errorf("failed to decode salary brackets: %w", err)
	}

	return c, nil
}

func (r *payrollConfigRepository) GetHealthInsuranceByDate(ctx context.Context, date time.Time) (payrollconfig.HealthInsuranceConfig, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, premium_rate, max_salary_cap, min_salary_floor,
			   fixed_contribution, effective_date, retired_at, created_at, updated_at
		FROM health_insurance_configs
		WHERE effective_date <= $1 AND retired_at IS NULL
		ORDER BY effective_date DESC
		LIMIT 1
	`

	var c payrollconfig.HealthInsuranceConfig
	err := q.QueryRow(ctx, query, date).Scan(
		&c.ID, &c.PremiumRate, &c.MaxSalaryCap, &c.MinSalaryFloor,
		&c.FixedContribution, &c.EffectiveDate, &c.RetiredAt, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return payrollconfig.HealthInsuranceConfig{}, &payrollconfig.ConfigNotFoundError{Kind: payrollconfig.KindHealthInsurance, Date: date}
		}
		return payrollconfig.HealthInsuranceConfig{}, fmt.Errorf("failed to get health insurance config: %w", err)
	}

	return c, nil
}

func (r *payrollConfigRepository) GetHousingFundByDate(ctx context.Context, date time.Time) (payrollconfig.HousingFundConfig, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, employee_rate, employer_rate, low_income_threshold,
			   low_income_employee_rate, max_salary_cap, effective_date,
			   retired_at, created_at, updated_at
		FROM housing_fund_configs
		WHERE effective_date <= $1 AND retired_at IS NULL
		ORDER BY effective_date DESC
		LIMIT 1
	`

	var c payrollconfig.HousingFundConfig
	err := q.QueryRow(ctx, query, date).Scan(
		&c.ID, &c.EmployeeRate, &c.EmployerRate, &c.LowIncomeThreshold,
		&c.LowIncomeEmployeeRate, &c.MaxSalaryCap, &c.EffectiveDate,
		&c.RetiredAt, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return payrollconfig.HousingFundConfig{}, &payrollconfig.ConfigNotFoundError{Kind: payrollconfig.KindHousingFund, Date: date}
		}
		return payrollconfig.HousingFundConfig{}, fmt.Errorf("failed to get housing fund config: %w", err)
	}

	return c, nil
}

func (r *payrollConfigRepository) GetTaxBracketsByDate(ctx context.Context, date time.Time) ([]payrollconfig.TaxBracket, error) {
	q := GetQuerier(ctx, r.db)

	// The full bracket set of the latest effective date on or before the
	// target date.
	query := `
		SELECT id, min_income, max_income, base_tax, marginal_rate, threshold,
			   effective_date, retired_at, created_at, updated_at
		FROM tax_brackets
		WHERE retired_at IS NULL AND effective_date = (
			SELECT MAX(effective_date) FROM tax_brackets
			WHERE effective_date <= $1 AND retired_at IS NULL
		)
		ORDER BY min_income
	`

	rows, err := q.Query(ctx, query, date)
	if err != nil {
		return nil, fmt.Errorf("failed to get tax brackets: %w", err)
	}
	defer rows.Close()

	brackets, err := scanTaxBrackets(rows)
	if err != nil {
		return nil, err
	}
	if len(brackets) == 0 {
		return nil, &payrollconfig.ConfigNotFoundError{Kind: payrollconfig.KindTaxBracket, Date: date}
	}

	return brackets, nil
}

// ========== ADMINISTRATION ==========

func (r *payrollConfigRepository) CreateSocialInsurance(ctx context.Context, config payrollconfig.SocialInsuranceConfig) (payrollconfig.SocialInsuranceConfig, error) {
	q := GetQuerier(ctx, r.db)

	bracketsJSON, err := json.Marshal(config.Brackets)
	if err != nil {
		return payrollconfig.SocialInsuranceConfig{}, fmt.Errorf("failed to encode salary brackets: %w", err)
	}

	created := config
	err = q.QueryRow(ctx, `
		INSERT INTO social_insurance_configs (employee_rate, employer_rate, brackets, effective_date)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, updated_at
	`, config.EmployeeRate, config.EmployerRate, bracketsJSON, config.EffectiveDate).
		Scan(&created.ID, &created.CreatedAt, &created.UpdatedAt)
	if err != nil {
		return payrollconfig.SocialInsuranceConfig{}, fmt.Errorf("failed to create social insurance config: %w", err)
	}

	return created, nil
}

func (r *payrollConfigRepository) CreateHealthInsurance(ctx context.Context, config payrollconfig.HealthInsuranceConfig) (payrollconfig.HealthInsuranceConfig, error) {
	q := GetQuerier(ctx, r.db)

	created := config
	err := q.QueryRow(ctx, `
		INSERT INTO health_insurance_configs (
			premium_rate, max_salary_cap, min_salary_floor, fixed_contribution, effective_date
		) VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at
	`, config.PremiumRate, config.MaxSalaryCap, config.MinSalaryFloor, config.FixedContribution, config.EffectiveDate).
		Scan(&created.ID, &created.CreatedAt, &created.UpdatedAt)
	if err != nil {
		return payrollconfig.HealthInsuranceConfig{}, fmt.Errorf("failed to create health insurance config: %w", err)
	}

	return created, nil
}

func (r *payrollConfigRepository) CreateHousingFund(ctx context.Context, config payrollconfig.HousingFundConfig) (payrollconfig.HousingFundConfig, error) {
	q := GetQuerier(ctx, r.db)

	created := config
	err := q.QueryRow(ctx, `
		INSERT INTO housing_fund_configs (
			employee_rate, employer_rate, low_income_threshold,
			low_income_employee_rate, max_salary_cap, effective_date
		) VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, updated_at
	`, config.EmployeeRate, config.EmployerRate, config.LowIncomeThreshold,
		config.LowIncomeEmployeeRate, config.MaxSalaryCap, config.EffectiveDate).
		Scan(&created.ID, &created.CreatedAt, &created.UpdatedAt)
	if err != nil {
		return payrollconfig.HousingFundConfig{}, fmt.Errorf("failed to create housing fund config: %w", err)
	}

	return created, nil
}

func (r *payrollConfigRepository) CreateTaxBrackets(ctx context.Context, brackets []payrollconfig.TaxBracket) ([]payrollconfig.TaxBracket, error) {
	q := GetQuerier(ctx, r.db)

	created := make([]payrollconfig.TaxBracket, 0, len(brackets))
	for _, b := range brackets {
		row := b
		err := q.QueryRow(ctx, `
			INSERT INTO tax_brackets (
				min_income, max_income, base_tax, marginal_rate, threshold, effective_date
			) VALUES ($1, $2, $3, $4, $5, $6)
			RETURNING id, created_at, updated_at
		`, b.MinIncome, b.MaxIncome, b.BaseTax, b.MarginalRate, b.Threshold, b.EffectiveDate).
			Scan(&row.ID, &row.CreatedAt, &row.UpdatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to create tax bracket: %w", err)
		}
		created = append(created, row)
	}

	return created, nil
}

func (r *payrollConfigRepository) ListSocialInsurance(ctx context.Context) ([]payrollconfig.SocialInsuranceConfig, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, `
		SELECT id, employee_rate, employer_rate, brackets, effective_date,
			   retired_at, created_at, updated_at
		FROM social_insurance_configs
		ORDER BY effective_date DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list social insurance configs: %w", err)
	}
	defer rows.Close()

	var configs []payrollconfig.SocialInsuranceConfig
	for rows.Next() {
		var c payrollconfig.SocialInsuranceConfig
		var bracketsJSON []byte
		err := rows.Scan(&c.ID, &c.EmployeeRate, &c.EmployerRate, &bracketsJSON,
			&c.EffectiveDate, &c.RetiredAt, &c.CreatedAt, &c.UpdatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan social insurance config: %w", err)
		}
		if err := json.Unmarshal(bracketsJSON, &c.Brackets); err != nil {
			return nil, fmt.Errorf("failed to decode salary brackets: %w", err)
		}
		configs = append(configs, c)
	}
	return configs, rows.Err()
}

func (r *payrollConfigRepository) ListHealthInsurance(ctx context.Context) ([]payrollconfig.HealthInsuranceConfig, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, `
		SELECT id, premium_rate, max_salary_cap, min_salary_floor,
			   fixed_contribution, effective_date, retired_at, created_at, updated_at
		FROM health_insurance_configs
		ORDER BY effective_date DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list health insurance configs: %w", err)
	}
	defer rows.Close()

	var configs []payrollconfig.HealthInsuranceConfig
	for rows.Next() {
		var c payrollconfig.HealthInsuranceConfig
		err := rows.Scan(&c.ID, &c.PremiumRate, &c.MaxSalaryCap, &c.MinSalaryFloor,
			&c.FixedContribution, &c.EffectiveDate, &c.RetiredAt, &c.CreatedAt, &c.UpdatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan health insurance config: %w", err)
		}
		configs = append(configs, c)
	}
	return configs, rows.Err()
}

func (r *payrollConfigRepository) ListHousingFund(ctx context.Context) ([]payrollconfig.HousingFundConfig, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, `
		SELECT id, employee_rate, employer_rate, low_income_threshold,
			   low_income_employee_rate, max_salary_cap, effective_date,
			   retired_at, created_at, updated_at
		FROM housing_fund_configs
		ORDER BY effective_date DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list housing fund configs: %w", err)
	}
	defer rows.Close()

	var configs []payrollconfig.HousingFundConfig
	for rows.Next() {
		var c payrollconfig.HousingFundConfig
		err := rows.Scan(&c.ID, &c.EmployeeRate, &c.EmployerRate, &c.LowIncomeThreshold,
			&c.LowIncomeEmployeeRate, &c.MaxSalaryCap, &c.EffectiveDate,
			&c.RetiredAt, &c.CreatedAt, &c.UpdatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan housing fund config: %w", err)
		}
		configs = append(configs, c)
	}
	return configs, rows.Err()
}

func (r *payrollConfigRepository) ListTaxBrackets(ctx context.Context) ([]payrollconfig.TaxBracket, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, `
		SELECT id, min_income, max_income, base_tax, marginal_rate, threshold,
			   effective_date, retired_at, created_at, updated_at
		FROM tax_brackets
		ORDER BY effective_date DESC, min_income
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list tax brackets: %w", err)
	}
	defer rows.Close()

	return scanTaxBrackets(rows)
}

func (r *payrollConfigRepository) RetireConfig(ctx context.Context, kind payrollconfig.Kind, id string) error {
	q := GetQuerier(ctx, r.db)

	tables := map[payrollconfig.Kind]string{
		payrollconfig.KindSocialInsurance: "social_insurance_configs",
		payrollconfig.KindHealthInsurance: "health_insurance_configs",
		payrollconfig.KindHousingFund:     "housing_fund_configs",
		payrollconfig.KindTaxBracket:      "tax_brackets",
	}
	table, ok := tables[kind]
	if !ok {
		return fmt.Errorf("unknown configuration kind: %s", kind)
	}

	tag, err := q.Exec(ctx, fmt.Sprintf(`
		UPDATE %s SET retired_at = NOW(), updated_at = NOW()
		WHERE id = $1 AND retired_at IS NULL
	`, table), id)
	if err != nil {
		return fmt.Errorf("failed to retire %s config: %w", kind, err)
	}
	if tag.RowsAffected() == 0 {
		return payrollconfig.ErrConfigRowNotFound
	}

	return nil
}

func scanTaxBrackets(rows pgx.Rows) ([]payrollconfig.TaxBracket, error) {
	var brackets []payrollconfig.TaxBracket
	for rows.Next() {
		var b payrollconfig.TaxBracket
		err := rows.Scan(&b.ID, &b.MinIncome, &b.MaxIncome, &b.BaseTax, &b.MarginalRate,
			&b.Threshold, &b.EffectiveDate, &b.RetiredAt, &b.CreatedAt, &b.UpdatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan tax bracket: %w", err)
		}
		brackets = append(brackets, b)
	}
	return brackets, rows.Err()
}
