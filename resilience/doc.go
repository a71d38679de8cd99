// Package resilience provides retry and circuit breaker primitives used to
// harden page-fetch functions.
//
// Both are context-aware and generic, so they wrap any fallible call. The
// paginate package exposes them as pager options (WithRetry, WithBreaker);
// they apply inside the per-request boundary, before the pager's
// failure-to-empty-page policy.
package resilience
