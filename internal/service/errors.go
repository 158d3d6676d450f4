package service

import "errors"

// Service-level business rule errors.
var (
	// ErrUsernameTaken is returned by Register when the username already
	// has an account.
	ErrUsernameTaken = errors.New("username already exists")

	// ErrInvalidCredentials is returned by Login for both an unknown
	// username and a wrong password. The two cases are deliberately
	// collapsed so a caller cannot tell which check failed.
	ErrInvalidCredentials = errors.New("username or password wrong")
)
