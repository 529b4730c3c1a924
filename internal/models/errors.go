package models

import "errors"

// Sentinel errors shared by the services and the HTTP layer. Services wrap
// them with context via fmt.Errorf("%w: ...") and handlers match with errors.Is.
var (
	ErrValidation     = errors.New("validation error")
	ErrNotFound       = errors.New("not found")
	ErrAuthentication = errors.New("authentication failed")
	ErrPersistence    = errors.New("persistence error")
	ErrNotification   = errors.New("notification error")
	ErrRateLimited    = errors.New("rate limit exceeded")
)
