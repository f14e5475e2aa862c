package apperror

import "net/http"

const (
	// Client errors (4xx)
	CodeInvalidInput = "INVALID_INPUT"
	CodeUnauthorized = "UNAUTHORIZED"
	CodeForbidden    = "FORBIDDEN"
	CodeNotFound     = "NOT_FOUND"
	CodeConflict     = "CONFLICT"
	CodeInvalidState = "INVALID_STATE"

	// Server errors (5xx)
	CodeInternalError      = "INTERNAL_ERROR"
	CodeServiceUnavailable = "SERVICE_UNAVAILABLE"
	CodeDependencyFailed   = "DEPENDENCY_FAILED"
)

var (
	ErrNotFound = New(
		CodeNotFound,
		"Resource not found",
		http.StatusNotFound,
	)

	ErrForbidden = New(
		CodeForbidden,
		"You do not have permission to perform this action",
		http.StatusForbidden,
	)

	ErrInternal = New(
		CodeInternalError,
		"An unexpected error occurred",
		http.StatusInternalServerError,
	)

	ErrUnauthorized = New(
		CodeUnauthorized,
		"Authentication is required",
		http.StatusUnauthorized,
	)

	ErrInvalidInput = New(
		CodeInvalidInput,
		"The provided input is invalid",
		http.StatusBadRequest,
	)
)

// Validation returns a 400 INVALID_INPUT error with a custom message.
func Validation(message string) *AppError {
	return New(CodeInvalidInput, message, http.StatusBadRequest)
}

// StateGuard returns a 400 INVALID_STATE error for a transition attempted from the wrong state.
func StateGuard(message string) *AppError {
	return New(CodeInvalidState, message, http.StatusBadRequest)
}

// Conflict returns a 400 CONFLICT error. Uniqueness violations are reported as bad requests.
func Conflict(message string) *AppError {
	return New(CodeConflict, message, http.StatusBadRequest)
}

// NotFound returns a 404 NOT_FOUND error.
func NotFound(message string) *AppError {
	return New(CodeNotFound, message, http.StatusNotFound)
}

func RequiredField(field string) *AppError {
	return New(CodeInvalidInput, field+" is required", http.StatusBadRequest)
}

func InvalidField(field string) *AppError {
	return New(CodeInvalidInput, field+" is invalid", http.StatusBadRequest)
}
