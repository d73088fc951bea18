package apperrors

import (
	"errors"
	"fmt"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrInsufficientStock indicates that a sale requested more units than the product
// currently holds. The owning transaction is aborted without any partial stock change.
var ErrInsufficientStock = errors.New("insufficient stock")

// ErrOverpayment indicates that paid amount exceeds the transaction total.
var ErrOverpayment = errors.New("paid amount exceeds total")

// ErrConflict indicates that an operation lost a race against a concurrent write,
// or that a state transition is not allowed from the current state.
var ErrConflict = errors.New("conflicting state")

// ErrForbidden indicates that the acting user lacks the required role for an operation.
var ErrForbidden = errors.New("forbidden")

// ErrInternal indicates an unexpected internal failure that should not be surfaced verbatim.
var ErrInternal = errors.New("internal error")

// AppError wraps a lower-level error with a status code and a message safe to log.
// Repositories use it so storage failures carry context upward without leaking
// driver details into handler responses.
type AppError struct {
	Code    int
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NewAppError creates a new AppError wrapping err.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}
