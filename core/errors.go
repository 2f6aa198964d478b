package core

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned when a scenario, framework or method lookup
	// does not match any registered entry.
	ErrNotFound = errors.New("not found")

	// ErrDuplicateRegistration is returned when a framework/method pair is
	// registered twice in the same Registry.
	ErrDuplicateRegistration = errors.New("framework/method already registered")
)

// RetrievalError wraps an adapter-level failure (auth, network, timeout,
// framework-specific fault). It never aborts a run; the engine converts it
// into a status-flagged RetrievalRecord.
type RetrievalError struct {
	Reason string
	Err    error
}

// Error implements the error interface.
func (e *RetrievalError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("retrieval failed: %s: %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("retrieval failed: %s", e.Reason)
}

// Unwrap exposes the underlying cause for errors.Is / errors.As.
func (e *RetrievalError) Unwrap() error { return e.Err }

// JudgeError wraps a scorer-level failure: the judging call itself failed or
// its response could not be parsed to an integer score in [0,10]. An empty or
// irrelevant retrieval is NOT a JudgeError; it yields a low score.
type JudgeError struct {
	Reason string
	Err    error
}

// Error implements the error interface.
func (e *JudgeError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("judge failed: %s: %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("judge failed: %s", e.Reason)
}

// Unwrap exposes the underlying cause for errors.Is / errors.As.
func (e *JudgeError) Unwrap() error { return e.Err }

// ConfigurationError marks an inconsistent scenario set or registry (missing
// expected-content entry, unknown framework/method reference, malformed
// scenario). It is fatal for the run and surfaced before any retrieval or
// scoring begins.
type ConfigurationError struct {
	Detail string
}

// Error implements the error interface.
func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("configuration error: %s", e.Detail)
}

// NewConfigurationError builds a ConfigurationError from a format string.
func NewConfigurationError(format string, args ...any) *ConfigurationError {
	return &ConfigurationError{Detail: fmt.Sprintf(format, args...)}
}
