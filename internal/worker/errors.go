package worker

import "errors"

// ErrInvalidEvent marks a message that can never be processed. It is
// rejected without requeue.
var ErrInvalidEvent = errors.New("invalid audit event")

// RetryableError wraps transient errors that should trigger a requeue
type RetryableError struct {
	Err error
}

func (e *RetryableError) Error() string {
	return "retryable error: " + e.Err.Error()
}

func (e *RetryableError) Unwrap() error {
	return e.Err
}

func NewRetryableError(err error) error {
	return &RetryableError{Err: err}
}
