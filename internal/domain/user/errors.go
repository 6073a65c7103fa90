package user

import "errors"

var (
	ErrUnauthorized          = errors.New("authentication required")
	ErrPayrollAccessRequired = errors.New("payroll role required")
)
