package smcl

import (
	"errors"
	"fmt"
	"strings"
)

// ErrToolNotFound indicates the client binary could not be executed
var ErrToolNotFound = errors.New("smcl: client binary not found")

// ExitError reports a non-zero exit of the client binary
type ExitError struct {
	// Command is the -c value of the failed call
	Command Command
	// Code is the exit status of the client binary
	Code int
	// Stdout and Stderr hold whatever the client printed
	Stdout string
	Stderr string
}

// Error returns a formatted error message
func (e *ExitError) Error() string {
	return fmt.Sprintf("smcl %s: exit status %d", e.Command, e.Code)
}

// Output returns the captured diagnostics, stdout first
func (e *ExitError) Output() string {
	var parts []string
	if s := strings.TrimSpace(e.Stdout); s != "" {
		parts = append(parts, s)
	}
	if s := strings.TrimSpace(e.Stderr); s != "" {
		parts = append(parts, s)
	}
	return strings.Join(parts, "\n")
}

// ExitCode returns the status the dialog should exit with after err
func ExitCode(err error) int {
	var exitErr *ExitError
	if errors.As(err, &exitErr) && exitErr.Code > 0 {
		return exitErr.Code
	}
	return 1
}
