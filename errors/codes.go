package errors

// ErrorCode represents a machine-readable error code.
type ErrorCode string

// Waiting errors (raised by the blocking retrieval operations)
const (
	// ErrCodeTimeout indicates no terminal signal arrived within the wait bound.
	ErrCodeTimeout ErrorCode = "TIMEOUT"
	// ErrCodeInterrupted indicates the caller's wait was cancelled.
	ErrCodeInterrupted ErrorCode = "INTERRUPTED"
)

// Stream errors (captured from a publisher)
const (
	// ErrCodeUnexpected wraps a foreign error delivered by a publisher.
	ErrCodeUnexpected ErrorCode = "UNEXPECTED"
	// ErrCodeStreamFailed indicates the publisher's operation failed.
	ErrCodeStreamFailed ErrorCode = "STREAM_FAILED"
	// ErrCodeUnavailable indicates the publisher's backing service is unavailable.
	ErrCodeUnavailable ErrorCode = "UNAVAILABLE"
)

// Resource errors
const (
	// ErrCodeNotFound indicates the requested resource was not found.
	ErrCodeNotFound ErrorCode = "NOT_FOUND"
	// ErrCodeAlreadyExists indicates the resource already exists.
	ErrCodeAlreadyExists ErrorCode = "ALREADY_EXISTS"
)

// Validation errors
const (
	// ErrCodeInvalidInput indicates the input is invalid.
	ErrCodeInvalidInput ErrorCode = "INVALID_INPUT"
	// ErrCodeMissingField indicates a required field is missing.
	ErrCodeMissingField ErrorCode = "MISSING_FIELD"
)

// Internal errors
const (
	// ErrCodeInternal indicates an internal error.
	ErrCodeInternal ErrorCode = "INTERNAL_ERROR"
)

var retryableCodes = map[ErrorCode]bool{
	ErrCodeTimeout:      true,
	ErrCodeUnavailable:  true,
	ErrCodeStreamFailed: true,
	ErrCodeInterrupted:  false,
	ErrCodeInternal:     false,
}

// IsRetryableCode returns true if the error code indicates a retryable error.
func IsRetryableCode(code ErrorCode) bool {
	return retryableCodes[code]
}
