package batch

import (
	"errors"
	"fmt"
	"strings"
)

// Batch processing errors
var (
	// ErrEmptyInput is returned when the input has no header row
	ErrEmptyInput = errors.New("batch input is empty")

	// ErrMalformedCSV is returned when the input cannot be parsed as CSV
	ErrMalformedCSV = errors.New("malformed batch CSV")

	// ErrMissingColumns is returned when required columns are absent
	ErrMissingColumns = errors.New("batch input is missing required columns")

	// ErrInvalidRow is returned when a row cannot be scored
	ErrInvalidRow = errors.New("invalid batch row")
)

// MissingColumnsError lists every required column absent from the header.
type MissingColumnsError struct {
	Columns []string
}

// Error implements the error interface
func (e *MissingColumnsError) Error() string {
	return fmt.Sprintf("%v: %s (CSV must contain: %s)",
		ErrMissingColumns, strings.Join(e.Columns, ", "), strings.Join(RequiredColumns, ", "))
}

// Unwrap returns ErrMissingColumns
func (e *MissingColumnsError) Unwrap() error {
	return ErrMissingColumns
}

// RowError identifies the data row (1-based, header excluded) that failed.
type RowError struct {
	Row int
	Err error
}

// Error implements the error interface
func (e *RowError) Error() string {
	return fmt.Sprintf("%v %d: %v", ErrInvalidRow, e.Row, e.Err)
}

// Unwrap returns both the row sentinel and the underlying cause
func (e *RowError) Unwrap() []error {
	return []error{ErrInvalidRow, e.Err}
}
