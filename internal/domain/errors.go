package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for the two fatal remote classifications. Either one
// aborts the entire run; neither is retryable.
var (
	ErrAccessDenied = errors.New("access denied, user authentication required")
	ErrServerError  = errors.New("portal returned internal server error")
)

// TooManyError signals that a request exceeded the portal's datapoint cap.
// It is a recoverable condition consumed by the range splitter, not a
// failure in itself.
type TooManyError struct {
	Detail string
}

func (e *TooManyError) Error() string {
	return fmt.Sprintf("too many datapoints requested: %s", e.Detail)
}

// CountMismatchError reports a dataset whose parallel sequences diverged in
// length. It indicates an internal construction bug rather than bad input,
// so it gets its own kind.
type CountMismatchError struct {
	Times        int
	Observations int
	Tests        int
}

func (e *CountMismatchError) Error() string {
	return fmt.Sprintf("dataset count mismatch: %d timestamps, %d observations, %d test flags",
		e.Times, e.Observations, e.Tests)
}

// ColumnError reports a user-requested column that cannot be honored.
type ColumnError struct {
	Column     string
	Reason     string
	Discovered []string
}

func (e *ColumnError) Error() string {
	if len(e.Discovered) == 0 {
		return fmt.Sprintf("invalid column %q: %s", e.Column, e.Reason)
	}
	return fmt.Sprintf("invalid column %q: %s (columns identified in data stream: %s)",
		e.Column, e.Reason, strings.Join(e.Discovered, ", "))
}

// BearingTypeError reports a directional measurement whose value is not an
// integer bearing.
type BearingTypeError struct {
	Field string
	Value any
}

func (e *BearingTypeError) Error() string {
	return fmt.Sprintf("directional field %q holds non-integer bearing %v (%T)", e.Field, e.Value, e.Value)
}
