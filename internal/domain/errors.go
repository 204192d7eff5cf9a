package domain

import "errors"

// Sentinel errors shared across services and repositories. Repositories map
// store-level conditions (sql.ErrNoRows, unique violations) onto these;
// controllers map them onto HTTP statuses.
var (
	ErrNotFound           = errors.New("not found")
	ErrAlreadyRegistered  = errors.New("already registered for this event")
	ErrEventFull          = errors.New("event is at capacity")
	ErrForbidden          = errors.New("forbidden")
	ErrInvalidInput       = errors.New("invalid input")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrDuplicateTitle     = errors.New("title already in use")
	ErrDuplicateEmail     = errors.New("email already in use")
	ErrInternal           = errors.New("internal error")
)
