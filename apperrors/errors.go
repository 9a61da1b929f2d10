package apperrors

import (
	"errors"
	"fmt"
)

// ServiceError carries an ErrorCode that handlers turn into a response
type ServiceError struct {
	Code    ErrorCode
	Message string
	Fields  map[string]string // field level messages for ErrValidation
	Err     error
}

type ErrorCode int

const (
	ErrDatabase ErrorCode = iota + 1000
	ErrNotFound
	ErrAccessDenied // not authenticated
	ErrForbidden    // authenticated, but not the owner
	ErrValidation
	ErrInternal
)

func (c ErrorCode) String() string {
	switch c {
	case ErrDatabase:
		return "database error"
	case ErrNotFound:
		return "not found"
	case ErrAccessDenied:
		return "access denied"
	case ErrForbidden:
		return "forbidden"
	case ErrValidation:
		return "validation failed"
	}
	return "internal error"
}

func (e *ServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *ServiceError) Unwrap() error {
	return e.Err
}

func New(code ErrorCode, message string) error {
	return &ServiceError{
		Code:    code,
		Message: message,
	}
}

func Wrap(code ErrorCode, message string, err error) error {
	return &ServiceError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// Validation builds an ErrValidation error with per field messages
func Validation(fields map[string]string) error {
	return &ServiceError{
		Code:    ErrValidation,
		Message: ErrValidation.String(),
		Fields:  fields,
	}
}

// GetErrorCode returns ErrInternal for anything that isn't a ServiceError
func GetErrorCode(err error) ErrorCode {
	var se *ServiceError
	if errors.As(err, &se) {
		return se.Code
	}
	return ErrInternal
}

func Is(err error, code ErrorCode) bool {
	return err != nil && GetErrorCode(err) == code
}

func FieldErrors(err error) map[string]string {
	var se *ServiceError
	if errors.As(err, &se) {
		return se.Fields
	}
	return nil
}
