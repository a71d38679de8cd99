// Package errors provides structured error handling for streamkit.
// It implements error types with machine-readable codes, retryable
// detection, and cause chains compatible with the standard errors package.
package errors
