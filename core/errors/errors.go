package errors

import (
	stderrors "errors"
	"fmt"
)

type ErrorCode string

const (
	// Generic
	ErrInvalidInput       ErrorCode = "INVALID_INPUT"
	ErrInvalidRequestData ErrorCode = "INVALID_REQUEST_DATA"
	ErrNotFound           ErrorCode = "NOT_FOUND"
	ErrAlreadyExists      ErrorCode = "ALREADY_EXISTS"
	ErrInternalServer     ErrorCode = "INTERNAL_SERVER_ERROR"
	ErrCreateFailed       ErrorCode = "CREATE_FAILED"
	ErrGetFailed          ErrorCode = "GET_FAILED"
	ErrUpdateFailed       ErrorCode = "UPDATE_FAILED"
	ErrDeleteFailed       ErrorCode = "DELETE_FAILED"
	ErrUploadFailed       ErrorCode = "UPLOAD_FAILED"
	ErrTooManyRequests    ErrorCode = "TOO_MANY_REQUESTS"

	// Auth
	ErrUnauthorized               ErrorCode = "UNAUTHORIZED"
	ErrForbidden                  ErrorCode = "FORBIDDEN"
	ErrTokenExpired               ErrorCode = "TOKEN_EXPIRED"
	ErrInvalidTokenFormat         ErrorCode = "INVALID_TOKEN_FORMAT"
	ErrMissingAuthorizationHeader ErrorCode = "MISSING_AUTHORIZATION_HEADER"

	// Opportunity lifecycle
	ErrInvalidTransition       ErrorCode = "INVALID_TRANSITION"
	ErrMissingReason           ErrorCode = "MISSING_REASON"
	ErrOpportunityNotAccepting ErrorCode = "OPPORTUNITY_NOT_ACCEPTING"
	ErrOpportunityNotEditable  ErrorCode = "OPPORTUNITY_NOT_EDITABLE"

	// Application intake
	ErrValidation           ErrorCode = "VALIDATION_ERROR"
	ErrSlotClosed           ErrorCode = "SLOT_CLOSED"
	ErrOutOfRange           ErrorCode = "OUT_OF_RANGE"
	ErrDuplicateApplication ErrorCode = "DUPLICATE_APPLICATION"
)

// AppError is the error type returned by services. Field is set when the
// failure can be pinned to one input field so clients can render it inline.
type AppError struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
	Field   string    `json:"field,omitempty"`
	Err     error     `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func NewAppError(code ErrorCode, message string, err error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// NewFieldError builds a validation failure naming the offending field.
func NewFieldError(code ErrorCode, field, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Field:   field,
	}
}

func New(message string) error {
	return stderrors.New(message)
}

func Is(err, target error) bool {
	return stderrors.Is(err, target)
}

func As(err error, target any) bool {
	return stderrors.As(err, target)
}
