package apperrors

import "errors"

// Sentinel errors grouped by the HTTP class they map to. Services wrap these
// with context; the error middleware switches on them with errors.Is.
var (
	// Validation errors (400)
	ErrValidationFailed = errors.New("validation failed")

	// Conflict errors (409)
	ErrConflict           = errors.New("conflict")
	ErrEmailAlreadyExists = errors.New("email already exists")
	ErrRollNumberExists   = errors.New("roll number already in use")
	ErrAlreadyRegistered  = errors.New("head identifier already registered")
	ErrDepartmentMismatch = errors.New("head identifier and department do not match")

	// Authentication errors (401)
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrTokenExpired       = errors.New("token expired")
	ErrTokenInvalid       = errors.New("invalid token")
	ErrUnauthorized       = errors.New("authentication required")

	// Authorization errors (403)
	ErrPermissionDenied = errors.New("permission denied")

	// Resource errors (404)
	ErrResourceNotFound = errors.New("resource not found")
	ErrUserNotFound     = errors.New("user not found")

	// Internal invariant violations (500, logged)
	ErrIntegrity = errors.New("data integrity fault")
)

// CustomError carries a stable error kind plus a human-readable message.
type CustomError struct {
	Err     error
	Message string
}

// Error implements the error interface
func (e *CustomError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "unknown error"
}

// Unwrap implements errors.Unwrap
func (e *CustomError) Unwrap() error {
	return e.Err
}

// NewValidationError creates a validation error with a message
func NewValidationError(message string) error {
	return &CustomError{Err: ErrValidationFailed, Message: message}
}

// NewConflictError creates a conflict error with a message
func NewConflictError(message string) error {
	return &CustomError{Err: ErrConflict, Message: message}
}

// NewForbiddenError creates a permission-denied error with a message
func NewForbiddenError(message string) error {
	return &CustomError{Err: ErrPermissionDenied, Message: message}
}

// NewNotFoundError creates a resource-not-found error with a message
func NewNotFoundError(message string) error {
	return &CustomError{Err: ErrResourceNotFound, Message: message}
}

// NewIntegrityError creates an internal invariant-violation error with a message
func NewIntegrityError(message string) error {
	return &CustomError{Err: ErrIntegrity, Message: message}
}
