package auth

import "errors"

var (
	ErrInvalidToken          = errors.New("invalid or expired token")
	ErrCompanyIDRequired     = errors.New("company ID is required")
	ErrEmployeeIDRequired    = errors.New("employee profile is required for this action")
	ErrManagerAccessRequired = errors.New("manager access required")
)
