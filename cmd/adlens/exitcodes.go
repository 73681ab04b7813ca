package main

import "fmt"

// Exit codes for the adlens CLI.
const (
	ExitOK              = 0 // Analysis succeeded.
	ExitInvalidArgs     = 1 // Invalid arguments, bad path, or bad config.
	ExitAnalysisFailure = 2 // Export could not be analyzed.
)

// exitCodeError carries a non-zero exit code through cobra's error handling.
type exitCodeError struct {
	code int
	msg  string
}

func (e *exitCodeError) Error() string { return e.msg }

// ExitCode returns the exit code for this error.
func (e *exitCodeError) ExitCode() int { return e.code }

// exitError creates an exitCodeError with a formatted message.
func exitError(code int, format string, args ...any) *exitCodeError {
	return &exitCodeError{code: code, msg: "adlens: " + fmt.Sprintf(format, args...)}
}
