package user

import "errors"

var (
	ErrUserNotFound = errors.New("user not found")
	ErrEmptyRoles   = errors.New("at least one role is required")
	ErrUnauthorized = errors.New("unauthorized")

	ErrInvalidCredential = errors.New("invalid credential")
)
