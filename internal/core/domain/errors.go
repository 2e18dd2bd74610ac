package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for input validation
var (
	// ErrEmptyInput indicates the record collection has zero rows
	ErrEmptyInput = errors.New("input table contains no records")

	// ErrUnknownProfile indicates the requested profile is not registered
	ErrUnknownProfile = errors.New("unknown profile")
)

// MissingFieldError reports required columns absent from the input schema.
// Raised before any record is processed.
type MissingFieldError struct {
	Fields []string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("missing required columns: %s", strings.Join(e.Fields, ", "))
}

// SourceError wraps loader failures with the file that caused them
type SourceError struct {
	Path string
	Err  error
}

func (e *SourceError) Error() string {
	return fmt.Sprintf("reading %s: %v", e.Path, e.Err)
}

func (e *SourceError) Unwrap() error {
	return e.Err
}
