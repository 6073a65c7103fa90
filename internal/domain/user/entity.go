package user

type Role string

const (
	RolePayroll  Role = "PAYROLL"
	RoleHR       Role = "HR"
	RoleEmployee Role = "EMPLOYEE"
)

// Viewer - the authenticated caller. Extracted from token claims at the
// transport edge and passed explicitly into service calls; services never
// read ambient security state.
type Viewer struct {
	UserID     string
	EmployeeID string
	Role       Role
}

// Authorizer decides payroll read access: payroll role sees everything,
// everyone else only their own records.
type Authorizer interface {
	IsPayrollRole(v Viewer) bool
	OwnsPayroll(v Viewer, employeeID string) bool
}

// RoleAuthorizer is the claims-based Authorizer used in production.
type RoleAuthorizer struct{}

func NewRoleAuthorizer() RoleAuthorizer { return RoleAuthorizer{} }

func (RoleAuthorizer) IsPayrollRole(v Viewer) bool {
	return v.Role == RolePayroll
}

func (RoleAuthorizer) OwnsPayroll(v Viewer, employeeID string) bool {
	return v.EmployeeID != "" && v.EmployeeID == employeeID
}
