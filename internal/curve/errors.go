// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package curve

import (
	"errors"
	"fmt"
)

// ErrNoMatchingData indicates a log without a single candidate line.
var ErrNoMatchingData = errors.New("no matching lines")

// ErrMalformedLine indicates a candidate line that did not yield two numbers.
var ErrMalformedLine = errors.New("malformed candidate line")

// NoMatchingDataError reports a source with zero candidate lines. The
// message names the expected pattern so the user can check the log format.
type NoMatchingDataError struct {
	Source string
}

func (e *NoMatchingDataError) Error() string {
	return fmt.Sprintf("no matching lines in %q: expected lines containing %q ... %q followed by <cycle> <utility>",
		e.Source, Preamble, Postamble)
}

func (e *NoMatchingDataError) Unwrap() error {
	return ErrNoMatchingData
}

// MalformedLineError reports the first candidate line that failed to parse.
type MalformedLineError struct {
	Source string
	Line   int
	Text   string
	Err    error
}

func (e *MalformedLineError) Error() string {
	return fmt.Sprintf("%s:%d: malformed candidate line %q: %v", e.Source, e.Line, e.Text, e.Err)
}

func (e *MalformedLineError) Unwrap() error {
	return e.Err
}

// Is lets errors.Is match ErrMalformedLine while Unwrap exposes the cause.
func (e *MalformedLineError) Is(target error) bool {
	return target == ErrMalformedLine
}
