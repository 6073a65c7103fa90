package postgresql

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/sweldox/payroll-backend-go/internal/domain/employee"
	"github.com/sweldox/payroll-backend-go/internal/pkg/database"
)

type employeeRepository struct {
	db *database.DB
}

// NewEmployeeRepository returns the read-only employee provider backed by
// PostgreSQL. Employee administration is owned by another system; payroll
// only reads.
func NewEmployeeRepository(db *database.DB) employee.Provider {
	return &employeeRepository{db: db}
}

func (r *employeeRepository) GetByID(ctx context.Context, id string) (employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, full_name, basic_salary, hourly_rate, employment_status, hire_date
		FROM employees
		WHERE id = $1
	`

	var e employee.Employee
	err := q.QueryRow(ctx, query, id).Scan(
		&e.ID, &e.FullName, &e.BasicSalary, &e.HourlyRate, &e.EmploymentStatus, &e.HireDate,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return employee.Employee{}, employee.ErrEmployeeNotFound
		}
		return employee.Employee{}, fmt.Errorf("failed to get employee: %w", err)
	}

	rows, err := q.Query(ctx, `
		SELECT id, type_code, amount
		FROM employee_benefits
		WHERE employee_id = $1
		ORDER BY type_code
	`, id)
	if err != nil {
		return employee.Employee{}, fmt.Errorf("failed to load employee benefits: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var b employee.Benefit
		if err := rows.Scan(&b.ID, &b.TypeCode, &b.Amount); err != nil {
			return employee.Employee{}, fmt.Errorf("failed to scan employee benefit: %w", err)
		}
		e.Benefits = append(e.Benefits, b)
	}
	if err := rows.Err(); err != nil {
		return employee.Employee{}, fmt.Errorf("failed to iterate employee benefits: %w", err)
	}

	return e, nil
}

func (r *employeeRepository) GetActiveIDs(ctx context.Context) ([]string, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, `
		SELECT id FROM employees
		WHERE employment_status NOT IN ('terminated', 'resigned')
		ORDER BY id
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list active employees: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan employee id: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}
