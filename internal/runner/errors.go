package runner

import (
	"errors"
	"fmt"
	"strings"
)

// ExitError reports a command that ran to completion but exited with a
// non-zero code. It carries the original argv and both captured streams so
// the caller can surface full diagnostics.
type ExitError struct {
	StepName string
	Argv     []string
	ExitCode int
	Stdout   string
	Stderr   string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return fmt.Sprintf("%s failed with exit code %d: %s",
		e.StepName, e.ExitCode, strings.Join(e.Argv, " "))
}

// NotFoundError reports that the executable named by the first command
// token could not be located or is not executable.
type NotFoundError struct {
	StepName   string
	Executable string
	Err        error
}

// Error implements the error interface for NotFoundError.
func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s: executable not found: %s", e.StepName, e.Executable)
}

// Unwrap returns the underlying lookup error.
func (e *NotFoundError) Unwrap() error {
	return e.Err
}

// RunError is the fallback error kind wrapping any other spawn or capture
// failure. It is a single wrapper, not a suppressor: the underlying error
// stays reachable via Unwrap.
type RunError struct {
	StepName string
	Err      error
}

// Error implements the error interface for RunError.
func (e *RunError) Error() string {
	return fmt.Sprintf("%s: %v", e.StepName, e.Err)
}

// Unwrap returns the underlying error for error wrapping support.
func (e *RunError) Unwrap() error {
	return e.Err
}

// IsExitError checks if the error is or wraps an ExitError.
func IsExitError(err error) bool {
	if err == nil {
		return false
	}
	var e *ExitError
	return errors.As(err, &e)
}

// IsNotFoundError checks if the error is or wraps a NotFoundError.
func IsNotFoundError(err error) bool {
	if err == nil {
		return false
	}
	var e *NotFoundError
	return errors.As(err, &e)
}
