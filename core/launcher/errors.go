package launcher

import (
	"errors"
	"fmt"
)

// Exit codes reported by the CLI.
const (
	ExitOK                = 0
	ExitFailure           = 1
	ExitConfiguration     = 2
	ExitContextActivation = 3
	ExitServerStart       = 4
)

// ErrAlreadyStarted is returned when Launch is called on a used Launcher.
var ErrAlreadyStarted = errors.New("launcher already used")

// ConfigurationError reports missing or invalid configuration. Field names the
// environment variable at fault, when there is one.
type ConfigurationError struct {
	Field  string
	Reason string
	Err    error
}

func (e *ConfigurationError) Error() string {
	msg := "configuration error"
	if e.Field != "" {
		msg += ": " + e.Field
	}
	if e.Reason != "" {
		msg += " " + e.Reason
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *ConfigurationError) Unwrap() error { return e.Err }

// ExitCode returns the process exit code for this error kind.
func (e *ConfigurationError) ExitCode() int { return ExitConfiguration }

// ContextActivationError reports that the execution context could not be
// located or activated.
type ContextActivationError struct {
	Dir string
	Err error
}

func (e *ContextActivationError) Error() string {
	return fmt.Sprintf("context activation failed for %q: %v", e.Dir, e.Err)
}

func (e *ContextActivationError) Unwrap() error { return e.Err }

// ExitCode returns the process exit code for this error kind.
func (e *ContextActivationError) ExitCode() int { return ExitContextActivation }

// ServerStartError reports that the delegated server failed to bind, start or
// keep running.
type ServerStartError struct {
	Addr string
	Err  error
}

func (e *ServerStartError) Error() string {
	return fmt.Sprintf("server on %s failed: %v", e.Addr, e.Err)
}

func (e *ServerStartError) Unwrap() error { return e.Err }

// ExitCode returns the process exit code for this error kind.
func (e *ServerStartError) ExitCode() int { return ExitServerStart }

// ExitCode maps err to a process exit code.
func ExitCode(err error) int {
	if err == nil {
		return ExitOK
	}
	var coded interface{ ExitCode() int }
	if errors.As(err, &coded) {
		return coded.ExitCode()
	}
	return ExitFailure
}
