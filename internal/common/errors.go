// Package common provides shared utilities and types used across the application.
package common

import (
	"errors"
	"fmt"
)

// Common application errors.
var (
	// Resolution errors. A resolver returning one of these means the field
	// is unresolved; the record is excluded and reported, never crashed on.
	ErrEmptyValue        = errors.New("empty value")
	ErrUnparseableDate   = errors.New("unparseable date")
	ErrYearOutOfRange    = errors.New("year outside sanity window")
	ErrUnparseableAmount = errors.New("unparseable amount")

	// Batch errors.
	ErrNoRecords = errors.New("no records to process")

	// Configuration errors.
	ErrMissingConfig = errors.New("missing configuration")
	ErrInvalidConfig = errors.New("invalid configuration")
)

// UserError represents an error that should be shown to the user. Only the
// user message and failure kind ever reach output channels; raw values stay
// in logs.
type UserError struct {
	Err         error
	UserMessage string
}

func (e *UserError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.UserMessage, e.Err)
	}
	return e.UserMessage
}

func (e *UserError) Unwrap() error {
	return e.Err
}

// NewUserError creates a new user-friendly error.
func NewUserError(userMessage string, err error) error {
	return &UserError{
		UserMessage: userMessage,
		Err:         err,
	}
}

// IsUnresolved reports whether err is one of the field-resolution failures
// that exclude a record without aborting the batch.
func IsUnresolved(err error) bool {
	return errors.Is(err, ErrEmptyValue) ||
		errors.Is(err, ErrUnparseableDate) ||
		errors.Is(err, ErrYearOutOfRange) ||
		errors.Is(err, ErrUnparseableAmount)
}
