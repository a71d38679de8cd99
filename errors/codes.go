package errors

// ErrorCode represents a machine-readable error code.
type ErrorCode string

// Fetch errors (retryable)
const (
	// ErrCodeFetchFailed indicates a page fetch returned an error.
	ErrCodeFetchFailed ErrorCode = "FETCH_FAILED"
	// ErrCodeFetchTimeout indicates a page fetch timed out.
	ErrCodeFetchTimeout ErrorCode = "FETCH_TIMEOUT"
	// ErrCodeBreakerOpen indicates the fetch circuit breaker rejected the call.
	ErrCodeBreakerOpen ErrorCode = "BREAKER_OPEN"
)

// Stream errors
const (
	// ErrCodeStreamTerminated indicates an upstream stream failed.
	ErrCodeStreamTerminated ErrorCode = "STREAM_TERMINATED"
	// ErrCodeSubscriptionClosed indicates the subscription was torn down.
	ErrCodeSubscriptionClosed ErrorCode = "SUBSCRIPTION_CLOSED"
)

// Configuration errors
const (
	// ErrCodeInvalidConfig indicates the configuration failed validation.
	ErrCodeInvalidConfig ErrorCode = "INVALID_CONFIG"
)

var retryableCodes = map[ErrorCode]bool{
	ErrCodeFetchFailed:  true,
	ErrCodeFetchTimeout: true,
	ErrCodeBreakerOpen:  true,
}

// IsRetryableCode reports whether a code is retryable by default.
func IsRetryableCode(code ErrorCode) bool {
	return retryableCodes[code]
}
