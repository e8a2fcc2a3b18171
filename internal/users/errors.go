package users

import "errors"

var (
	ErrMissingFullName = errors.New("full name is required")
	ErrMissingUsername = errors.New("username is required")
	ErrMissingEmail    = errors.New("email is required")
	ErrMissingPassword = errors.New("password is required")
	ErrUserNotFound    = errors.New("user not found")
	ErrNotPending      = errors.New("only pending accounts can be approved")
	ErrLoginFailed     = errors.New("invalid username or password")
)
