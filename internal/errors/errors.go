package errors

import "fmt"

// ErrorCode represents a clipmesh error code.
type ErrorCode string

const (
	ErrInvalidRequest ErrorCode = "INVALID_REQUEST" // 400
	ErrNotFound       ErrorCode = "NOT_FOUND"       // 404
	ErrConflict       ErrorCode = "CONFLICT"        // 409
	ErrCorruptHistory ErrorCode = "CORRUPT_HISTORY" // 500
	ErrClipboard      ErrorCode = "CLIPBOARD"       // 503
	ErrCancelled      ErrorCode = "CANCELLED"       // 499
	ErrInternal       ErrorCode = "INTERNAL"        // 500
)

// ClipError represents a structured error with code, status, and details.
type ClipError struct {
	Code    ErrorCode
	Status  int
	Message string
	Details map[string]any
	cause   error
}

// Error implements the error interface.
func (e *ClipError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause, if any.
func (e *ClipError) Unwrap() error {
	return e.cause
}

// NewInvalidRequest creates a 400 error for invalid request parameters.
func NewInvalidRequest(msg string) *ClipError {
	return &ClipError{
		Code:    ErrInvalidRequest,
		Status:  400,
		Message: msg,
	}
}

// NewNotFound creates a 404 error for when a clip item cannot be found.
func NewNotFound(id string) *ClipError {
	return &ClipError{
		Code:    ErrNotFound,
		Status:  404,
		Message: fmt.Sprintf("item not found: %s", id),
		Details: map[string]any{"id": id},
	}
}

// NewConflict creates a 409 error, used when an item id is already present.
func NewConflict(msg string) *ClipError {
	return &ClipError{
		Code:    ErrConflict,
		Status:  409,
		Message: msg,
	}
}

// NewCorruptHistory creates an error for a history file that exists but cannot be parsed.
// There is no recovery path; callers treat it as fatal at startup.
func NewCorruptHistory(path string, err error) *ClipError {
	return &ClipError{
		Code:    ErrCorruptHistory,
		Status:  500,
		Message: fmt.Sprintf("history file %s is unreadable: %v", path, err),
		Details: map[string]any{"path": path},
		cause:   err,
	}
}

// NewClipboardUnavailable creates an error for a clipboard that cannot be opened at all.
func NewClipboardUnavailable(msg string) *ClipError {
	return &ClipError{
		Code:    ErrClipboard,
		Status:  503,
		Message: msg,
	}
}

// NewCancelled creates a 499 error for an operation stopped by its context.
func NewCancelled(op string) *ClipError {
	return &ClipError{
		Code:    ErrCancelled,
		Status:  499,
		Message: fmt.Sprintf("%s cancelled", op),
	}
}

// NewInternal creates a 500 error for unexpected internal errors.
func NewInternal(err error) *ClipError {
	msg := "internal error"
	if err != nil {
		msg = err.Error()
	}
	return &ClipError{
		Code:    ErrInternal,
		Status:  500,
		Message: msg,
		cause:   err,
	}
}

// Is checks if an error is a ClipError with the given code.
func Is(err error, code ErrorCode) bool {
	if cErr, ok := err.(*ClipError); ok {
		return cErr.Code == code
	}
	return false
}
