package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/sweldox/payroll-backend-go/internal/domain/attendance"
	"github.com/sweldox/payroll-backend-go/internal/pkg/database"
)

type attendanceRepository struct {
	db *database.DB
}

// NewAttendanceRepository returns the read-only attendance provider backed
// by PostgreSQL.
func NewAttendanceRepository(db *database.DB) attendance.Provider {
	return &attendanceRepository{db: db}
}

func (r *attendanceRepository) GetForPeriod(ctx context.Context, employeeID string, start, end time.Time) ([]attendance.Attendance, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, employee_id, date, total_hours, overtime_hours
		FROM attendances
		WHERE employee_id = $1 AND date BETWEEN $2 AND $3
		ORDER BY date
	`

	rows, err := q.Query(ctx, query, employeeID, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to get attendances: %w", err)
	}
	defer rows.Close()

	var attendances []attendance.Attendance
	for rows.Next() {
		var a attendance.Attendance
		if err := rows.Scan(&a.ID, &a.EmployeeID, &a.Date, &a.TotalHours, &a.OvertimeHours); err != nil {
			return nil, fmt.Errorf("failed to scan attendance: %w", err)
		}
		attendances = append(attendances, a)
	}
	return attendances, rows.Err()
}
