package services

import "errors"

var (
	ErrMissingToken       = errors.New("authorization token missing")
	ErrInvalidToken       = errors.New("invalid token")
	ErrSessionNotFound    = errors.New("session not found")
	ErrInactiveAccount    = errors.New("account is inactive")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrForbidden          = errors.New("insufficient permissions")
	ErrInvalidArgument    = errors.New("invalid argument")
	ErrTokenExpired       = errors.New("token expired")
	ErrNotFound           = errors.New("not found")
	ErrEmployeeExists     = errors.New("employee with this login or email already exists")
	ErrEmployeeReferenced = errors.New("employee is referenced by other records")
	ErrSimilarExists      = errors.New("a record with a similar name already exists")
	ErrProjectReferenced  = errors.New("project has tasks attached")
)
