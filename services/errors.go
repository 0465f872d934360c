package services

import "errors"

// Expected, recoverable conditions reported to callers. Storage failures are
// wrapped separately and are not matched by any of these.
var (
	ErrDuplicateUsername  = errors.New("username already exists")
	ErrDuplicateEmail     = errors.New("email already registered")
	ErrDuplicateSlug      = errors.New("course slug already exists")
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrUnauthenticated    = errors.New("authentication required")
	ErrForbidden          = errors.New("admin privileges required")
	ErrNotFound           = errors.New("not found")
)
