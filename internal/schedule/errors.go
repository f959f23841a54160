package schedule

import (
	"errors"
	"fmt"
)

// Error kinds for schedule input. Analysis findings are never errors.
var (
	// ErrFormat marks malformed input: missing columns, bad dates or times,
	// or team names that cannot be split into division and manager.
	ErrFormat = errors.New("format error")
	// ErrResource marks failures reaching the schedule itself.
	ErrResource = errors.New("resource error")
)

// FormatError locates malformed input. Row is the 1-based row in the source
// (the header is row 1); zero when unknown.
type FormatError struct {
	Row    int
	Column string
	Value  string
	Err    error
}

func (e *FormatError) Error() string {
	msg := "format error"
	if e.Row > 0 {
		msg += fmt.Sprintf(" in row %d", e.Row)
	}
	if e.Column != "" {
		msg += fmt.Sprintf(", column %q", e.Column)
	}
	if e.Value != "" {
		msg += fmt.Sprintf(", value %q", e.Value)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *FormatError) Unwrap() error { return e.Err }

func (e *FormatError) Is(target error) bool { return target == ErrFormat }
