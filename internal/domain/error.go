package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyDuration indicates that the query holds no duration text.
	ErrEmptyDuration = errors.New("duration is empty")

	// ErrMalformedDuration indicates that the numeric part could not be read.
	ErrMalformedDuration = errors.New("duration is not a number with a known unit")

	// ErrDurationOutOfRange indicates that the number does not fit in 32 bits.
	ErrDurationOutOfRange = errors.New("duration is out of range")

	// ErrNonPositiveDuration indicates a zero or negative duration.
	ErrNonPositiveDuration = errors.New("duration must be greater than zero")
)

// ParseError reports a duration expression that could not be turned into
// a shutdown delay. Input is the text as the user typed it.
type ParseError struct {
	Input string
	Err   error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse duration %q: %v", e.Input, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
