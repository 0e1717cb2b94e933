// internal/apperrors/errors.go
package apperrors

import "errors"

// Sentinel errors for the failure taxonomy. Components wrap these with
// fmt.Errorf("...: %w", ...) and handlers map them to HTTP statuses.
var (
	ErrUnauthenticated     = errors.New("unauthenticated")
	ErrForbidden           = errors.New("forbidden")
	ErrNotFound            = errors.New("not found")
	ErrValidation          = errors.New("validation failed")
	ErrInvalidFileType     = errors.New("invalid file type")
	ErrFileTooLarge        = errors.New("file too large")
	ErrGenerationFailed    = errors.New("generation failed")
	ErrUpstreamUnavailable = errors.New("upstream unavailable")
)
