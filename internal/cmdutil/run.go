package cmdutil

import (
	"context"
	"errors"
	"fmt"

	"bfgraph/internal/writers"
)

// Process exit codes.
const (
	ExitOK        = 0
	ExitConfig    = 2
	ExitRuntime   = 3
	ExitInterrupt = 130
)

// ConfigError marks a failure detected before any input was processed.
type ConfigError struct{ Err error }

func (e *ConfigError) Error() string { return e.Err.Error() }
func (e *ConfigError) Unwrap() error { return e.Err }

// Configf returns a ConfigError with a formatted message.
func Configf(format string, a ...any) error {
	return &ConfigError{Err: fmt.Errorf(format, a...)}
}

// AsConfig wraps err as a ConfigError; nil stays nil.
func AsConfig(err error) error {
	if err == nil {
		return nil
	}
	return &ConfigError{Err: err}
}

// ExitCode maps the error returned by a subcommand onto an exit status.
// Broken pipes on stdout are success.
func ExitCode(err error) int {
	var ce *ConfigError
	switch {
	case err == nil, writers.IsBrokenPipe(err):
		return ExitOK
	case errors.Is(err, context.Canceled):
		return ExitInterrupt
	case errors.As(err, &ce):
		return ExitConfig
	}
	return ExitRuntime
}
