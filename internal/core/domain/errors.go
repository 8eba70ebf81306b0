package domain

import "errors"

// Guard failures. These never reach the client; the guard collapses them
// into ErrUnauthorized and keeps the specific value for the audit trail.
var (
	ErrMissingToken      = errors.New("missing bearer token")
	ErrMalformedToken    = errors.New("malformed authorization header")
	ErrInvalidToken      = errors.New("invalid or expired token")
	ErrRoleNotAuthorized = errors.New("role not authorized for route")
	ErrUnauthorized      = errors.New("unauthorized")
)

// Account errors.
var (
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailTaken         = errors.New("email already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUnknownRole        = errors.New("unknown role")
	ErrProductKeyRequired = errors.New("product key is required")
	ErrInvalidProductKey  = errors.New("invalid product key")
	ErrTooManyAttempts    = errors.New("too many login attempts")
)

// Listing errors.
var (
	ErrHomeNotFound = errors.New("home not found")
	ErrNotOwner     = errors.New("not authorized for this resource")
	ErrInvalidInput = errors.New("invalid input")
)
