package auth

import "errors"

var (
	ErrInvalidCredentials  = errors.New("invalid username or password")
	ErrInvalidEmployeeCode = errors.New("invalid employee code")
	ErrInvalidToken        = errors.New("invalid or expired token")
)
