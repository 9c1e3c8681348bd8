// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// errors.go - Unified error handling for the onboard commands.
//
// STANDARDIZED PATTERN:
//   - Handlers always return errors, never print and return nil
//   - main displays the error and exits with GetExitCode
//   - Backend failures keep their api.ClientError so the exit code can
//     tell a dead backend from a bad request

package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/jeranaias/onboard-tui/internal/api"
	"github.com/jeranaias/onboard-tui/internal/config"
	"github.com/jeranaias/onboard-tui/internal/extract"
)

// =============================================================================
// EXIT CODES
// =============================================================================

const (
	// ExitSuccess indicates successful execution
	ExitSuccess = 0
	// ExitGeneralError indicates a general/unknown error
	ExitGeneralError = 1
	// ExitUsageError indicates invalid command usage or arguments
	ExitUsageError = 2
	// ExitConfigError indicates configuration file or settings error
	ExitConfigError = 3
	// ExitBackendError indicates the backend answered with an error status
	ExitBackendError = 4
	// ExitNetworkError indicates the backend could not be reached
	ExitNetworkError = 5
	// ExitNotFoundError indicates a file or resource was not found
	ExitNotFoundError = 7
	// ExitTimeoutError indicates an operation timed out
	ExitTimeoutError = 8
)

// =============================================================================
// ERROR TYPES
// =============================================================================

// CommandError represents a CLI command error with context.
type CommandError struct {
	Command string // Command that failed (e.g., "extract", "content")
	Action  string // Action being performed (e.g., "upload", "email")
	Reason  string // Human-readable reason
	Err     error  // Underlying error (if any)
}

func (e *CommandError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s %s failed: %s: %v", e.Command, e.Action, e.Reason, e.Err)
	}
	return fmt.Sprintf("%s %s failed: %s", e.Command, e.Action, e.Reason)
}

func (e *CommandError) Unwrap() error {
	return e.Err
}

// ValidationError represents a validation failure for user input.
type ValidationError struct {
	Field   string // Field that failed validation
	Value   string // Value that was provided
	Reason  string // Why validation failed
	Example string // Example of valid value (optional)
}

func (e *ValidationError) Error() string {
	msg := fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
	if e.Value != "" {
		msg += fmt.Sprintf(" (got: %s)", e.Value)
	}
	if e.Example != "" {
		msg += fmt.Sprintf("\nExample: %s", e.Example)
	}
	return msg
}

// UsageError is a malformed command line.
type UsageError struct {
	Message string
}

func (e *UsageError) Error() string {
	return e.Message + " (run 'onboard help' for usage)"
}

// NotFoundError represents a resource not found error.
type NotFoundError struct {
	Resource string // Type of resource (e.g., "file", "config key")
	ID       string // Identifier that was not found
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Resource, e.ID)
}

// NewCommandError creates a new command error.
func NewCommandError(command, action, reason string, err error) error {
	return &CommandError{Command: command, Action: action, Reason: reason, Err: err}
}

// NewValidationError creates a new validation error.
func NewValidationError(field, value, reason string) error {
	return &ValidationError{Field: field, Value: value, Reason: reason}
}

// NewValidationErrorWithExample creates a validation error with an example.
func NewValidationErrorWithExample(field, value, reason, example string) error {
	return &ValidationError{Field: field, Value: value, Reason: reason, Example: example}
}

// ErrMissingArgument reports a required argument that was not given.
func ErrMissingArgument(argName, usage string) error {
	return &ValidationError{
		Field:   argName,
		Reason:  "required argument missing",
		Example: usage,
	}
}

// =============================================================================
// ERROR DISPLAY
// =============================================================================

// DisplayError displays an error in a consistent format.
//
// In JSON mode, outputs a structured JSON error on stdout.
// In normal mode, displays a formatted message on stderr.
func DisplayError(err error, command string, jsonMode bool) {
	if err == nil {
		return
	}

	if jsonMode {
		DisplayErrorJSON(err, command)
		return
	}

	fmt.Fprintf(stderr, "%s %s\n", ErrorStyle.Render("[ERROR]"), err.Error())
}

// DisplayErrorJSON outputs an error as JSON.
func DisplayErrorJSON(err error, command string) {
	resp := NewJSONErrorResponse(command, err)
	resp.ErrorType = errorType(err)

	encoder := json.NewEncoder(stdout)
	encoder.SetIndent("", "  ")
	_ = encoder.Encode(resp)
}

func errorType(err error) string {
	var (
		validationErr *ValidationError
		usageErr      *UsageError
		notFoundErr   *NotFoundError
		clientErr     *api.ClientError
		cmdErr        *CommandError
	)
	switch {
	case errors.As(err, &validationErr), errors.As(err, &usageErr):
		return "validation_error"
	case errors.As(err, &notFoundErr):
		return "not_found_error"
	case errors.As(err, &clientErr):
		return "backend_" + clientErr.Type.String()
	case errors.As(err, &cmdErr):
		return "command_error"
	}
	return "generic_error"
}

// GetExitCode determines the appropriate exit code for an error.
func GetExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}

	var (
		validationErr *ValidationError
		usageErr      *UsageError
		notFoundErr   *NotFoundError
		configErr     config.ValidateErrors
		configField   config.ValidationError
	)
	switch {
	case errors.As(err, &validationErr), errors.As(err, &usageErr):
		return ExitUsageError
	case errors.As(err, &notFoundErr):
		return ExitNotFoundError
	case errors.Is(err, extract.ErrUnsupportedType):
		return ExitUsageError
	case errors.As(err, &configErr), errors.As(err, &configField):
		return ExitConfigError
	case api.IsTimeout(err):
		return ExitTimeoutError
	case api.IsUnreachable(err):
		return ExitNetworkError
	case api.IsStatus(err, http.StatusBadRequest):
		return ExitUsageError
	}

	var clientErr *api.ClientError
	if errors.As(err, &clientErr) {
		return ExitBackendError
	}

	return ExitGeneralError
}
