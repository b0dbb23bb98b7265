package receipt

import "errors"

// ErrReceiptTimedOut is returned when the poller's wall-clock budget
// elapses without observing a terminal status.
var ErrReceiptTimedOut = errors.New("receipt: timed out waiting for a terminal receipt")

// ErrInvalidReceiptTimeout is returned when a negative timeout is
// supplied to Poll; a zero timeout selects DefaultMaxWait instead.
var ErrInvalidReceiptTimeout = errors.New("receipt: timeout must be positive")

// ErrInvalidPollInterval is returned when a negative poll interval is
// supplied to Poll; a zero interval selects DefaultPollInterval instead.
var ErrInvalidPollInterval = errors.New("receipt: poll interval must be positive")
