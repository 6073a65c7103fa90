package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/sweldox/payroll-backend-go/internal/domain/payroll"
	"github.com/sweldox/payroll-backend-go/internal/pkg/database"
)

const uniqueViolationCode = "23505"

type payrollRepository struct {
	db *database.DB
}

func NewPayrollRepository(db *database.DB) payroll.Repository {
	return &payrollRepository{db: db}
}

func (r *payrollRepository) Create(ctx context.Context, p payroll.Payroll) (payroll.Payroll, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO payrolls (
			employee_id, period_start, period_end, pay_date, days_worked,
			overtime_hours, monthly_rate, daily_rate, gross_pay,
			total_benefits, total_deductions, net_pay
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING id, created_at
	`

	created := p
	err := q.QueryRow(ctx, query,
		p.EmployeeID, p.PeriodStart, p.PeriodEnd, p.PayDate, p.DaysWorked,
		p.OvertimeHours, p.MonthlyRate, p.DailyRate, p.GrossPay,
		p.TotalBenefits, p.TotalDeductions, p.NetPay,
	).Scan(&created.ID, &created.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
			return payroll.Payroll{}, payroll.ErrPayrollAlreadyExists
		}
		return payroll.Payroll{}, fmt.Errorf("failed to create payroll: %w", err)
	}

	for i, d := range p.Deductions {
		err := q.QueryRow(ctx, `
			INSERT INTO payroll_deductions (payroll_id, type_code, amount)
			VALUES ($1, $2, $3)
			RETURNING id
		`, created.ID, d.TypeCode, d.Amount).Scan(&created.Deductions[i].ID)
		if err != nil {
			return payroll.Payroll{}, fmt.Errorf("failed to create deduction line: %w", err)
		}
		created.Deductions[i].PayrollID = created.ID
	}

	for i, b := range p.Benefits {
		err := q.QueryRow(ctx, `
			INSERT INTO payroll_benefits (payroll_id, type_code, amount)
			VALUES ($1, $2, $3)
			RETURNING id
		`, created.ID, b.TypeCode, b.Amount).Scan(&created.Benefits[i].ID)
		if err != nil {
			return payroll.Payroll{}, fmt.Errorf("failed to create benefit line: %w", err)
		}
		created.Benefits[i].PayrollID = created.ID
	}

	return created, nil
}

func (r *payrollRepository) GetByID(ctx context.Context, id string) (payroll.Payroll, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT p.id, p.employee_id, p.period_start, p.period_end, p.pay_date,
			   p.days_worked, p.overtime_hours, p.monthly_rate, p.daily_rate,
			   p.gross_pay, p.total_benefits, p.total_deductions, p.net_pay,
			   p.created_at, e.full_name
		FROM payrolls p
		JOIN employees e ON e.id = p.employee_id
		WHERE p.id = $1
	`

	var p payroll.Payroll
	err := q.QueryRow(ctx, query, id).Scan(
		&p.ID, &p.EmployeeID, &p.PeriodStart, &p.PeriodEnd, &p.PayDate,
		&p.DaysWorked, &p.OvertimeHours, &p.MonthlyRate, &p.DailyRate,
		&p.GrossPay, &p.TotalBenefits, &p.TotalDeductions, &p.NetPay,
		&p.CreatedAt, &p.EmployeeName,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return payroll.Payroll{}, payroll.ErrPayrollNotFound
		}
		return payroll.Payroll{}, fmt.Errorf("failed to get payroll: %w", err)
	}

	if err := r.loadLines(ctx, q, &p); err != nil {
		return payroll.Payroll{}, err
	}

	return p, nil
}

func (r *payrollRepository) ExistsForPeriod(ctx context.Context, employeeID string, periodStart, periodEnd time.Time) (bool, error) {
	q := GetQuerier(ctx, r.db)

	var exists bool
	err := q.QueryRow(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM payrolls
			WHERE employee_id = $1 AND period_start = $2 AND period_end = $3
		)
	`, employeeID, periodStart, periodEnd).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check payroll existence: %w", err)
	}

	return exists, nil
}

func (r *payrollRepository) List(ctx context.Context, filter payroll.Filter) ([]payroll.Payroll, int64, error) {
	return r.list(ctx, nil, filter)
}

func (r *payrollRepository) ListByEmployee(ctx context.Context, employeeID string, filter payroll.Filter) ([]payroll.Payroll, int64, error) {
	return r.list(ctx, &employeeID, filter)
}

func (r *payrollRepository) list(ctx context.Context, employeeID *string, filter payroll.Filter) ([]payroll.Payroll, int64, error) {
	q := GetQuerier(ctx, r.db)

	where := "WHERE ($1::uuid IS NULL OR p.employee_id = $1)"
	args := []interface{}{employeeID}

	if filter.PeriodStart != nil {
		args = append(args, *filter.PeriodStart)
		where += fmt.Sprintf(" AND p.period_start >= $%d", len(args))
	}
	if filter.PeriodEnd != nil {
		args = append(args, *filter.PeriodEnd)
		where += fmt.Sprintf(" AND p.period_end <= $%d", len(args))
	}

	var total int64
	countQuery := "SELECT COUNT(*) FROM payrolls p " + where
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count payrolls: %w", err)
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = 10
	}
	offset := filter.Page * limit

	args = append(args, limit, offset)
	query := fmt.Sprintf(`
		SELECT p.id, p.employee_id, p.period_start, p.period_end, p.pay_date,
			   p.days_worked, p.overtime_hours, p.monthly_rate, p.daily_rate,
			   p.gross_pay, p.total_benefits, p.total_deductions, p.net_pay,
			   p.created_at, e.full_name
		FROM payrolls p
		JOIN employees e ON e.id = p.employee_id
		%s
		ORDER BY p.pay_date DESC, p.created_at DESC
		LIMIT $%d OFFSET $%d
	`, where, len(args)-1, len(args))

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list payrolls: %w", err)
	}
	defer rows.Close()

	var payrolls []payroll.Payroll
	for rows.Next() {
		var p payroll.Payroll
		err := rows.Scan(
			&p.ID, &p.EmployeeID, &p.PeriodStart, &p.PeriodEnd, &p.PayDate,
			&p.DaysWorked, &p.OvertimeHours, &p.MonthlyRate, &p.DailyRate,
			&p.GrossPay, &p.TotalBenefits, &p.TotalDeductions, &p.NetPay,
			&p.CreatedAt, &p.EmployeeName,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan payroll: %w", err)
		}
		payrolls = append(payrolls, p)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to iterate payrolls: %w", err)
	}

	for i := range payrolls {
		if err := r.loadLines(ctx, q, &payrolls[i]); err != nil {
			return nil, 0, err
		}
	}

	return payrolls, total, nil
}

func (r *payrollRepository) loadLines(ctx context.Context, q database.Querier, p *payroll.Payroll) error {
	rows, err := q.Query(ctx, `
		SELECT id, payroll_id, type_code, amount
		FROM payroll_deductions
		WHERE payroll_id = $1
		ORDER BY type_code
	`, p.ID)
	if err != nil {
		return fmt.Errorf("failed to load deduction lines: %w", err)
	}
	defer rows.Close()

	p.Deductions = nil
	for rows.Next() {
		var d payroll.DeductionLine
		if err := rows.Scan(&d.ID, &d.PayrollID, &d.TypeCode, &d.Amount); err != nil {
			return fmt.Errorf("failed to scan deduction line: %w", err)
		}
		p.Deductions = append(p.Deductions, d)
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("failed to iterate deduction lines: %w", err)
	}

	benefitRows, err := q.Query(ctx, `
		SELECT id, payroll_id, type_code, amount
		FROM payroll_benefits
		WHERE payroll_id = $1
		ORDER BY type_code
	`, p.ID)
	if err != nil {
		return fmt.Errorf("failed to load benefit lines: %w", err)
	}
	defer benefitRows.Close()

	p.Benefits = nil
	for benefitRows.Next() {
		var b payroll.BenefitLine
		if err := benefitRows.Scan(&b.ID, &b.PayrollID, &b.TypeCode, &b.Amount); err != nil {
			return fmt.Errorf("failed to scan benefit line: %w", err)
		}
		p.Benefits = append(p.Benefits, b)
	}
	return benefitRows.Err()
}
