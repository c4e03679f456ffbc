// Package executor runs the external media probe tools for genrss.
package executor

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"time"

	"github.com/amsehili/genrss/internal/debug"
)

// ExecOptions defines options for command execution
type ExecOptions struct {
	// Timeout for command execution
	Timeout time.Duration
}

// ExecResult contains the result of command execution
type ExecResult struct {
	// Standard output from the command
	Stdout string
	// Standard error from the command
	Stderr string
	// Exit code of the command
	ExitCode int
	// Whether the command timed out
	TimedOut bool
	// Error if command failed to start
	Error error
}

// CommandExecutor executes external probe tools safely
type CommandExecutor struct {
	// Default timeout for commands if not specified
	defaultTimeout time.Duration
}

// NewCommandExecutor creates a new command executor
func NewCommandExecutor(defaultTimeout time.Duration) *CommandExecutor {
	if defaultTimeout <= 0 {
		defaultTimeout = 30 * time.Second
	}
	return &CommandExecutor{
		defaultTimeout: defaultTimeout,
	}
}

// Execute runs a command with the given options
func (e *CommandExecutor) Execute(command string, args []string, options ExecOptions) (*ExecResult, error) {
	if command == "" {
		return nil, fmt.Errorf("command cannot be empty")
	}

	timeout := options.Timeout
	if timeout <= 0 {
		timeout = e.defaultTimeout
	}

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	debug.LogCommand(command, args)

	cmd := exec.CommandContext(ctx, command, args...)

	var stdoutBuf, stderrBuf bytes.Buffer
	cmd.Stdout = &stdoutBuf
	cmd.Stderr = &stderrBuf

	err := cmd.Start()
	if err != nil {
		execErr := ClassifyError(err, command, args)
		return &ExecResult{
			ExitCode: -1,
			Error:    execErr,
		}, nil
	}

	waitErr := cmd.Wait()

	// Check if context was cancelled (timeout)
	timedOut := ctx.Err() == context.DeadlineExceeded

	exitCode := 0
	if waitErr != nil {
		if exitErr, ok := waitErr.(*exec.ExitError); ok {
			exitCode = exitErr.ExitCode()
		} else {
			// Command failed to run properly
			return &ExecResult{
				Stdout:   stdoutBuf.String(),
				Stderr:   stderrBuf.String(),
				ExitCode: -1,
				TimedOut: timedOut,
				Error:    ClassifyError(waitErr, command, args),
			}, nil
		}
	}

	return &ExecResult{
		Stdout:   stdoutBuf.String(),
		Stderr:   stderrBuf.String(),
		ExitCode: exitCode,
		TimedOut: timedOut,
	}, nil
}
