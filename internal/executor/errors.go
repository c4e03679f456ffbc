package executor

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
)

// Error types for probe tool execution
var (
	// ErrCommandNotFound indicates the tool was not found in PATH
	ErrCommandNotFound = errors.New("command not found")

	// ErrPermissionDenied indicates the tool cannot be executed due to permissions
	ErrPermissionDenied = errors.New("permission denied")

	// ErrTimeout indicates the tool timed out
	ErrTimeout = errors.New("command timed out")
)

// ErrorType represents the type of execution error
type ErrorType int

const (
	// ErrorTypeUnknown indicates an unknown error
	ErrorTypeUnknown ErrorType = iota
	// ErrorTypeCommandNotFound indicates the tool was not found
	ErrorTypeCommandNotFound
	// ErrorTypePermissionDenied indicates permission was denied
	ErrorTypePermissionDenied
	// ErrorTypeTimeout indicates the tool timed out
	ErrorTypeTimeout
)

// ExecError represents a detailed execution error
type ExecError struct {
	Type    ErrorType
	Command string
	Args    []string
	Err     error
}

// Error implements the error interface
func (e *ExecError) Error() string {
	cmd := e.Command
	if len(e.Args) > 0 {
		cmd = fmt.Sprintf("%s %s", e.Command, strings.Join(e.Args, " "))
	}

	switch e.Type {
	case ErrorTypeCommandNotFound:
		return fmt.Sprintf("command not found: %s", e.Command)
	case ErrorTypePermissionDenied:
		return fmt.Sprintf("permission denied: %s", cmd)
	case ErrorTypeTimeout:
		return fmt.Sprintf("command timed out: %s", cmd)
	default:
		return fmt.Sprintf("execution error for %s: %v", cmd, e.Err)
	}
}

// Unwrap returns the underlying error
func (e *ExecError) Unwrap() error {
	return e.Err
}

// Is implements errors.Is support
func (e *ExecError) Is(target error) bool {
	switch target {
	case ErrCommandNotFound:
		return e.Type == ErrorTypeCommandNotFound
	case ErrPermissionDenied:
		return e.Type == ErrorTypePermissionDenied
	case ErrTimeout:
		return e.Type == ErrorTypeTimeout
	}
	return false
}

// ClassifyError analyzes an error and returns a typed ExecError
func ClassifyError(err error, command string, args []string) *ExecError {
	if err == nil {
		return nil
	}

	execErr := &ExecError{
		Type:    ErrorTypeUnknown,
		Command: command,
		Args:    args,
		Err:     err,
	}

	if errors.Is(err, context.DeadlineExceeded) {
		execErr.Type = ErrorTypeTimeout
		return execErr
	}

	var ee *exec.Error
	if errors.As(err, &ee) {
		if errors.Is(ee.Err, exec.ErrNotFound) {
			execErr.Type = ErrorTypeCommandNotFound
			return execErr
		}
		if errors.Is(ee.Err, os.ErrPermission) {
			execErr.Type = ErrorTypePermissionDenied
			return execErr
		}
	}
	if errors.Is(err, os.ErrPermission) {
		execErr.Type = ErrorTypePermissionDenied
	}

	return execErr
}
