package i2cdecode

import (
	"errors"
	"fmt"
)

var (
	ErrNilAdapter     = errors.New("adapter is nil")
	ErrDroppedEvent   = errors.New("adapter incoming channel full")
	ErrUnknownAdapter = errors.New("unknown adapter")
	ErrClosed         = errors.New("adapter closed")
)

// ParseError is returned for a capture line that does not describe a bus event.
type ParseError struct {
	Line int
	Text string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("line %d: %q: %v", e.Line, e.Text, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
