// Package authtest builds request contexts carrying verified claims.
package authtest

import (
	"context"
	"testing"

	"github.com/cmlabs-hris/hris-payroll-go/internal/domain/auth"
	"github.com/go-chi/jwtauth/v5"
	"github.com/lestrrat-go/jwx/v2/jwt"
)

// Context returns ctx as jwtauth.Verifier would leave it for claims.
func Context(t testing.TB, ctx context.Context, claims auth.Claims) context.Context {
	t.Helper()

	token := jwt.New()
	set := func(key string, value string) {
		if value == "" {
			return
		}
		if err := token.Set(key, value); err != nil {
			t.Fatalf("set claim %s: %v", key, err)
		}
	}
	set("user_id", claims.UserID)
	set("employee_id", claims.EmployeeID)
	set("company_id", claims.CompanyID)
	set("role", string(claims.Role))

	return jwtauth.NewContext(ctx, token, nil)
}

// Manager is Context for a manager of companyID.
func Manager(t testing.TB, companyID, userID string) context.Context {
	return Context(t, context.Background(), auth.Claims{
		UserID:    userID,
		CompanyID: companyID,
		Role:      auth.RoleManager,
	})
}

// Employee is Context for an employee of companyID.
func Employee(t testing.TB, companyID, employeeID string) context.Context {
	return Context(t, context.Background(), auth.Claims{
		UserID:     employeeID,
		EmployeeID: employeeID,
		CompanyID:  companyID,
		Role:       auth.RoleEmployee,
	})
}
