package domain

import "errors"

// Error classes. Every layer wraps one of these so the API maps errors to status codes with errors.Is.
var (
	ErrValidation = errors.New("validation error")
	ErrNotFound   = errors.New("not found")
	ErrConflict   = errors.New("scheduling conflict")
)
