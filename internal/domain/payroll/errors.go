package payroll

import "errors"

var (
	ErrPayrollNotFound      = errors.New("payroll not found")
	ErrPayrollAlreadyExists = errors.New("payroll already exists for this employee and period")
	ErrForbidden            = errors.New("not allowed to view this payroll")
	ErrNoEmployeesProcessed = errors.New("payroll batch created no records")
)
