package trace

import (
	"errors"
	"fmt"
)

var ErrNegativeStart = errors.New("trace: negative start index")

// A MalformedLineError is returned when a line is too short for its dialect
// or when one of its fields isn't made of hex digits.
type MalformedLineError struct {
	Dialect string
	Line    string

	Field string // empty if the line is too short
	Need  int    // minimum line length
}

func (e *MalformedLineError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("malformed %s line: got %d bytes, need at least %d", e.Dialect, len(e.Line), e.Need)
	}
	return fmt.Sprintf("malformed %s line: field %s is not hexadecimal", e.Dialect, e.Field)
}

// An InvalidFlagEncodingError is returned when the status flags field isn't
// a valid 2 digits hex value.
type InvalidFlagEncodingError struct {
	Dialect string
	Text    string
	Err     error
}

func (e *InvalidFlagEncodingError) Error() string {
	return fmt.Sprintf("invalid %s flags encoding %q: %v", e.Dialect, e.Text, e.Err)
}

func (e *InvalidFlagEncodingError) Unwrap() error { return e.Err }

// A LineError reports the step index and trace side at which the comparison
// was aborted.
type LineError struct {
	Index int
	Side  string
	Err   error
}

func (e *LineError) Error() string {
	return fmt.Sprintf("%s trace, step %d: %v", e.Side, e.Index, e.Err)
}

func (e *LineError) Unwrap() error { return e.Err }
