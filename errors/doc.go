// Package errors provides the structured error type shared by every syncstream
// package.
//
// Failures captured from a publisher, synthetic timeouts raised while waiting,
// and interrupted waits are all reported as *AppError values carrying a
// machine-readable code and a retryable hint, so callers can branch with
// IsCode instead of matching messages.
package errors
