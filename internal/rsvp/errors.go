package rsvp

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidGuestCount = errors.New("please specify the number of guests")
	ErrGuestListMismatch = errors.New("please provide details for all guests in your party")
)

// MissingFieldError marks a required field that was empty after trimming.
type MissingFieldError struct {
	Field string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("missing required field: %s", e.Field)
}

// MissingGuestNameError marks the first guest entry with an empty name.
// Index is zero-based; messages report it one-based.
type MissingGuestNameError struct {
	Index int
}

func (e *MissingGuestNameError) Error() string {
	return fmt.Sprintf("please provide a name for Guest %d", e.Index+1)
}
