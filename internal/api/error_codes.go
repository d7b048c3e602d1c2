// internal/api/error_codes.go
package api

// API error code constants
const (
	ErrorBadRequest    = "BAD_REQUEST"
	ErrorNotFound      = "NOT_FOUND"
	ErrorConflict      = "CONFLICT"
	ErrorInternalError = "INTERNAL_ERROR"

	// Store-specific errors
	ErrorValidation      = "VALIDATION_ERROR"
	ErrorCorruptDocument = "CORRUPT_DOCUMENT"
	ErrorIOFailure       = "IO_FAILURE"
)
