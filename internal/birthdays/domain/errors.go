package domain

import (
	"errors"
	"fmt"
)

var (
	ErrBirthdayNotFound = errors.New("birthday not found")
	ErrNameRequired     = errors.New("name is required")
	ErrDateRequired     = errors.New("date is required")
	ErrInvalidDate      = errors.New("invalid date")
	ErrDateInFuture     = errors.New("date must not be in the future")
)

// StorageParseError reports persisted data that could not be decoded.
// The store treats it as an empty collection.
type StorageParseError struct {
	Key string
	Err error
}

func (e *StorageParseError) Error() string {
	return fmt.Sprintf("parse stored birthdays (key %q): %v", e.Key, e.Err)
}

func (e *StorageParseError) Unwrap() error { return e.Err }

// IsValidationError reports whether err was caused by bad user input
func IsValidationError(err error) bool {
	return errors.Is(err, ErrNameRequired) ||
		errors.Is(err, ErrDateRequired) ||
		errors.Is(err, ErrInvalidDate) ||
		errors.Is(err, ErrDateInFuture)
}
