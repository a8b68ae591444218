package domain

import "errors"

// Sentinel errors shared across services and handlers. Handlers map these
// to HTTP statuses with errors.Is.
var (
	ErrNotFound          = errors.New("not found")
	ErrUnauthorized      = errors.New("unauthorized")
	ErrInvalidRequest    = errors.New("invalid request")
	ErrUploadFailed      = errors.New("upload failed")
	ErrPersistenceFailed = errors.New("persistence failed")
	ErrProviderFailed    = errors.New("model provider failed")
)
