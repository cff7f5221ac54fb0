package logging

import (
	"fmt"
	"io"
	"log/slog"
	"strings"
)

// ErrorType classifies failures reported by the command line
type ErrorType string

const (
	// ErrorTypeInvalidArguments represents bad flags or positional arguments
	ErrorTypeInvalidArguments ErrorType = "invalid_arguments"
	// ErrorTypeConfigParsing represents configuration parsing failures
	ErrorTypeConfigParsing ErrorType = "config_parsing_failed"
	// ErrorTypeLogSetup represents log initialization failures
	ErrorTypeLogSetup ErrorType = "log_setup_failed"
	// ErrorTypeValidation represents rejected assessment input
	ErrorTypeValidation ErrorType = "validation_failed"
	// ErrorTypeBatchRejected represents a rejected batch file
	ErrorTypeBatchRejected ErrorType = "batch_rejected"
	// ErrorTypeFileAccess represents file access failures
	ErrorTypeFileAccess ErrorType = "file_access_failed"
	// ErrorTypeSystemError represents any other failure
	ErrorTypeSystemError ErrorType = "system_error"
)

// CommandError is a user-facing failure of one command
type CommandError struct {
	Type      ErrorType
	Message   string
	Component string
	Err       error
}

// Error implements the error interface
func (e *CommandError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v (component: %s)", e.Type, e.Message, e.Err, e.Component)
	}
	return fmt.Sprintf("%s: %s (component: %s)", e.Type, e.Message, e.Component)
}

// Unwrap returns the wrapped error
func (e *CommandError) Unwrap() error {
	return e.Err
}

// HandleCommandError writes a readable error block to w and records the
// failure through slog.
func HandleCommandError(w io.Writer, e *CommandError, runID string) {
	// Build the block first so it is written in one call.
	var sb strings.Builder
	fmt.Fprintf(&sb, "Error: %s\n", e.Type)
	if e.Component != "" {
		fmt.Fprintf(&sb, "  Component: %s\n", e.Component)
	}
	fmt.Fprintf(&sb, "  Details: %s\n", e.Message)
	if e.Err != nil {
		fmt.Fprintf(&sb, "  Cause: %v\n", e.Err)
	}
	if runID != "" {
		fmt.Fprintf(&sb, "  Run ID: %s\n", runID)
	}
	fmt.Fprint(w, sb.String())

	slog.Error("Command failed",
		"error_type", string(e.Type),
		"error_message", e.Message,
		"component", e.Component,
		"error", e.Err,
		"run_id", runID)
}
