package auth

import (
	"context"
	"fmt"

	"github.com/go-chi/jwtauth/v5"
)

type Role string

const (
	RoleOwner    Role = "owner"    // Company owner - full access
	RoleManager  Role = "manager"  // Can approve leave/attendance and run payroll
	RoleEmployee Role = "employee" // Regular employee
)

// Claims is the subset of the access token the payroll core relies on.
type Claims struct {
	UserID     string
	EmployeeID string
	CompanyID  string
	Role       Role
}

func (c Claims) IsManager() bool {
	return c.Role == RoleManager || c.Role == RoleOwner
}

// FromContext reads the verified token claims placed in ctx by jwtauth.Verifier.
// A company_id claim is mandatory.
func FromContext(ctx context.Context) (Claims, error) {
	_, raw, err := jwtauth.FromContext(ctx)
	if err != nil {
		return Claims{}, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	var c Claims
	c.CompanyID, _ = raw["company_id"].(string)
	if c.CompanyID == "" {
		return Claims{}, ErrCompanyIDRequired
	}
	c.UserID, _ = raw["user_id"].(string)
	c.EmployeeID, _ = raw["employee_id"].(string)
	role, _ := raw["role"].(string)
	c.Role = Role(role)

	return c, nil
}
