package domain

import "errors"

// Sentinel errors for the document core - use with errors.Is().
// Services wrap these with %w and a human-readable detail; the handler
// layer maps them to HTTP status codes.
var (
	ErrNotFound     = errors.New("not found")
	ErrValidation   = errors.New("validation failed")
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
	ErrUpstream     = errors.New("storage service error")
)
