package main

import "fmt"

// Exit codes for the wsinfo CLI.
const (
	ExitOK           = 0 // Workspace resolved.
	ExitError        = 1 // Invalid arguments, bad config or I/O failure.
	ExitNotWorkspace = 2 // No workspace root above the start directory.
)

// exitCodeError carries a non-zero exit code through cobra's error handling.
type exitCodeError struct {
	code int
	msg  string
}

func (e *exitCodeError) Error() string { return e.msg }

// ExitCode returns the exit code for this error.
func (e *exitCodeError) ExitCode() int { return e.code }

// exitError creates an exitCodeError. ExitError with an empty message gets a
// generic one; ExitNotWorkspace stays silent because the resolver has
// already logged why.
func exitError(code int, format string, args ...any) *exitCodeError {
	msg := fmt.Sprintf(format, args...)
	if msg == "" && code == ExitError {
		msg = "wsinfo: error"
	}
	return &exitCodeError{code: code, msg: msg}
}
