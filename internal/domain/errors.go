package domain

import "errors"

// Sentinel errors for common error conditions.
var (
	// ErrNotFound indicates that a requested entity was not found.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates that the input data is invalid.
	ErrInvalidInput = errors.New("invalid input")

	// ErrInternal indicates an internal server error.
	ErrInternal = errors.New("internal error")
)

// NotFoundError reports an absent entity. Msg is the client-facing message
// emitted verbatim by the HTTP layer.
type NotFoundError struct {
	Entity string
	Msg    string
}

// Error implements the error interface.
func (e *NotFoundError) Error() string {
	return e.Msg
}

// Unwrap returns the underlying sentinel error for use with errors.Is.
func (e *NotFoundError) Unwrap() error {
	return ErrNotFound
}

// ValidationError reports malformed or missing input. Msg is the
// client-facing message emitted verbatim by the HTTP layer.
type ValidationError struct {
	Msg string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return e.Msg
}

// Unwrap returns the underlying sentinel error for use with errors.Is.
func (e *ValidationError) Unwrap() error {
	return ErrInvalidInput
}

// NewNotFoundError creates a NotFoundError with the conventional
// "<entity> not found" message.
func NewNotFoundError(entity string) *NotFoundError {
	return &NotFoundError{
		Entity: entity,
		Msg:    entity + " not found",
	}
}

// NewFilterNotFoundError creates a NotFoundError for a list filter whose
// referenced entity does not exist ("<entity> does not exist").
func NewFilterNotFoundError(entity string) *NotFoundError {
	return &NotFoundError{
		Entity: entity,
		Msg:    entity + " does not exist",
	}
}

// NewValidationError creates a ValidationError with the given message.
func NewValidationError(msg string) *ValidationError {
	return &ValidationError{Msg: msg}
}
