// Package logging provides a minimal logging interface and adapters for membench.
//
// The Logger interface defines the standard logging methods (Debug, Info,
// Warn, Error) that the engine and judge use for observability. This package
// includes:
//
//   - Logger interface for dependency injection
//   - SlogAdapter wrapping Go's structured logging
//   - NoOpLogger for silent operation (testing, minimal setups)
//   - RunLogger with run/component context and domain helpers for
//     retrieval and judge calls
//
// The design intentionally keeps the interface minimal to avoid vendor
// lock-in while supporting structured logging where available.
package logging
