package apperrors

import "errors"

// Common errors
var (
	// Resource errors
	ErrResourceNotFound = errors.New("resource not found")
	ErrConflict         = errors.New("conflict")

	// Authentication errors
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrTokenExpired       = errors.New("token expired")
	ErrTokenInvalid       = errors.New("invalid token")

	// Validation errors
	ErrValidationFailed = errors.New("validation failed")
	ErrBadRequest       = errors.New("bad request")
)

// Adoption workflow errors
var (
	ErrAdoptionNotFound     = errors.New("adoption not found")
	ErrInvalidState         = errors.New("operation not allowed in the current status")
	ErrDuplicateApplication = errors.New("team already has a pending or approved adoption for this area")
	ErrTeamInvalid          = errors.New("team does not exist or is inactive")
)

// Area errors
var (
	ErrAreaNotFound      = errors.New("area not found")
	ErrAreaInvalid       = errors.New("area does not exist or is inactive")
	ErrAreaNotAvailable  = errors.New("area is not available for adoption")
	ErrCommunityNotFound = errors.New("community not found")
)

// Adoption event ledger errors
var (
	ErrLinkNotFound  = errors.New("adoption event link not found")
	ErrEventInvalid  = errors.New("event does not exist")
	ErrDuplicateLink = errors.New("event is already linked to this adoption")
)

// NewConflictError creates a new custom error for conflict situations with a message
func NewConflictError(message string) error {
	return &CustomError{
		Err:     ErrConflict,
		Message: message,
	}
}

// NewInvalidStateError creates a new custom error for illegal status transitions with a message
func NewInvalidStateError(message string) error {
	return &CustomError{
		Err:     ErrInvalidState,
		Message: message,
	}
}

// NewBadRequestError creates a new custom error for bad request with a message
func NewBadRequestError(message string) error {
	return &CustomError{
		Err:     ErrBadRequest,
		Message: message,
	}
}

// CustomError pairs a sentinel error with a caller-facing message.
type CustomError struct {
	Err     error
	Message string
}

// Error implements error interface
func (e *CustomError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "unknown error"
}

// Unwrap implements errors.Unwrap interface
func (e *CustomError) Unwrap() error {
	return e.Err
}

// NewCustomError creates a CustomError with underlying error
func NewCustomError(err error, message string) *CustomError {
	return &CustomError{
		Err:     err,
		Message: message,
	}
}
