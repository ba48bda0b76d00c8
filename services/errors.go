package services

import "errors"

// Sentinel errors surfaced to handlers, which map them onto HTTP status codes
// and machine-readable code strings.
var (
	ErrUnauthenticated    = errors.New("not authenticated")
	ErrTokenInvalid       = errors.New("invalid token")
	ErrUserNotFound       = errors.New("user not found")
	ErrForbidden          = errors.New("insufficient permissions")
	ErrDuplicateEmail     = errors.New("email already registered")
	ErrInvalidRole        = errors.New("unrecognized role")
	ErrInvalidCredentials = errors.New("incorrect username or password")
	ErrOperationNotFound  = errors.New("operation not found")
	ErrOperationClosed    = errors.New("operation is closed")
	ErrInvalidAmount      = errors.New("amount must be greater than zero")
	ErrUserReferenced     = errors.New("user still referenced by operations or bids")
)
