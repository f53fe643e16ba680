package service

import "errors"

var (
	ErrValidation   = errors.New("validation failed")
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("conflict")
	ErrUnauthorized = errors.New("unauthorized")
)

// ServiceError is an expected failure with a message safe to show to clients.
// errors.Is matches it against its Kind.
type ServiceError struct {
	Kind    error
	Message string
}

func (e *ServiceError) Error() string {
	return e.Message
}

func (e *ServiceError) Is(target error) bool {
	return target == e.Kind
}

func validationError(message string) error {
	return &ServiceError{Kind: ErrValidation, Message: message}
}

func notFoundError(message string) error {
	return &ServiceError{Kind: ErrNotFound, Message: message}
}
