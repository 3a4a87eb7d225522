package main

import (
	"errors"
	"fmt"
)

// Exit codes.
const (
	exitSuccess     = 0
	exitEnvironment = 1 // clock, seek, temp file or codec stream failure
	exitUsage       = 2 // bad flags, paths or codec names
)

type failureKind int

const (
	failureUsage failureKind = iota
	failureEnvironment
)

// runError aborts the run. It is never retried.
type runError struct {
	kind failureKind
	msg  string
	err  error
}

func (e *runError) Error() string {
	if e.err == nil {
		return e.msg
	}
	if e.msg == "" {
		return e.err.Error()
	}
	return e.msg + ": " + e.err.Error()
}

func (e *runError) Unwrap() error { return e.err }

// ExitCode maps the failure kind to a process exit status.
func (e *runError) ExitCode() int {
	if e.kind == failureUsage {
		return exitUsage
	}
	return exitEnvironment
}

func usageError(format string, args ...interface{}) error {
	return &runError{kind: failureUsage, msg: fmt.Sprintf(format, args...)}
}

func usageErrorWrap(err error, msg string) error {
	return &runError{kind: failureUsage, msg: msg, err: err}
}

func environmentError(err error, msg string) error {
	return &runError{kind: failureEnvironment, msg: msg, err: err}
}

// exitCode returns the status the process should exit with for err.
func exitCode(err error) int {
	if err == nil {
		return exitSuccess
	}
	var re *runError
	if errors.As(err, &re) {
		return re.ExitCode()
	}
	return exitEnvironment
}
