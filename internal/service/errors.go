package service

import (
	"errors"

	"ticketboard/internal/repository"
)

var (
	// ErrValidation marks input rejected before any read or write happened.
	ErrValidation = errors.New("validation failed")

	ErrTicketNotFound = repository.ErrTicketNotFound
	ErrParentNotFound = errors.New("parent ticket not found")
)

// ValidationError describes rejected input. It matches ErrValidation with errors.Is.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Message
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

func invalid(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}
