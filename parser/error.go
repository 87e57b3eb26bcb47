package parser

import (
	"errors"
	"fmt"
)

// Error represents a parser error with optional metadata.
type Error struct {
	Err        error
	Pos        Position
	Incomplete bool
}

func (e *Error) Error() string {
	if e == nil || e.Err == nil {
		return ""
	}
	return fmt.Sprintf("%s: %v", e.Pos, e.Err)
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

func newError(pos Position, err error) error {
	if err == nil {
		return nil
	}
	return &Error{Err: err, Pos: pos}
}

func newIncompleteError(pos Position, err error) error {
	if err == nil {
		return nil
	}
	return &Error{
		Err:        err,
		Pos:        pos,
		Incomplete: true,
	}
}

// IsIncomplete reports whether the supplied error represents incomplete input.
func IsIncomplete(err error) bool {
	var perr *Error
	if errors.As(err, &perr) {
		return perr.Incomplete
	}
	return false
}
