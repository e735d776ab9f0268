package expr

import (
	"errors"
	"fmt"
)

// Common errors.
var (
	ErrUnknownVariable = errors.New("unknown variable")
	ErrUnknownFunction = errors.New("unknown function")
)

// SyntaxError reports a malformed expression.
type SyntaxError struct {
	Pos int    // byte offset in the source
	Msg string // what went wrong
	Err error  // underlying sentinel, if any
}

// Error implements the error interface.
func (e *SyntaxError) Error() string {
	return fmt.Sprintf("syntax error at offset %d: %s", e.Pos, e.Msg)
}

// Unwrap returns the underlying sentinel error.
func (e *SyntaxError) Unwrap() error {
	return e.Err
}
