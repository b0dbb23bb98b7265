package transport

import "fmt"

// GrpcStatus is a non-zero gRPC status surfaced by a trailer frame.
type GrpcStatus struct {
	Code    int
	Message string
}

func (e *GrpcStatus) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("transport: grpc status %d", e.Code)
	}
	return fmt.Sprintf("transport: grpc status %d: %s", e.Code, e.Message)
}

// Retryable is always true: a non-zero gRPC status from a trailer frame
// is exactly the class of error Unary's retry loop already exists to
// absorb, per the error taxonomy's "transport/gRPC-status errors are
// retried by the Submitter".
func (e *GrpcStatus) Retryable() bool { return true }

// HttpError is a non-2xx HTTP response with no usable gRPC status.
type HttpError struct {
	StatusCode int
	Body       string
}

func (e *HttpError) Error() string {
	return fmt.Sprintf("transport: http status %d", e.StatusCode)
}

// Retryable is always true; see GrpcStatus.Retryable.
func (e *HttpError) Retryable() bool { return true }

// ErrDeadlineExceeded is returned when the caller's deadline elapses
// before an attempt is issued.
type ErrDeadlineExceeded struct{}

func (e *ErrDeadlineExceeded) Error() string {
	return "transport: deadline exceeded"
}

// Retryable is always false: the caller's own deadline has already
// elapsed, so retrying immediately would just hit the same check again.
func (e *ErrDeadlineExceeded) Retryable() bool { return false }
