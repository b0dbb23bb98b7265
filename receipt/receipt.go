// Package receipt implements the bounded-deadline poller that waits for a
// submitted transaction's terminal status: query, check terminal, sleep
// the remainder of the interval, repeat, until a terminal status arrives
// or the deadline elapses.
package receipt

import (
	"context"
	"time"

	"github.com/distledger/ledger-go/ids"
)

// Status is the terminal-or-pending classification of a receipt.
type Status int

const (
	StatusUnknown Status = iota
	StatusSuccess
	StatusFailed
)

// Receipt is the (status, transaction_id) pair returned once polling
// observes a non-unknown status. On timeout Poll returns a zero Receipt
// together with ErrReceiptTimedOut.
type Receipt struct {
	Status        Status
	TransactionID ids.TransactionID
}

// IsTerminal reports whether r.Status permits no further polling.
func (r Receipt) IsTerminal() bool {
	return r.Status != StatusUnknown
}

const (
	// DefaultMaxWait is the default poll budget (receipt_max_wait_ns).
	DefaultMaxWait = 30 * time.Second
	// DefaultPollInterval is the default sleep between polls
	// (receipt_poll_interval_ns).
	DefaultPollInterval = 500 * time.Millisecond
)

// QueryFunc issues one receipt query and classifies the result. It is the
// same Submitter-backed query used by the consensus submit path, reused
// here so the poller shares the node pool's rotation/backoff policy.
type QueryFunc func(ctx context.Context, txID ids.TransactionID) (Receipt, error)

// PollOptions configures Poll. Zero values fall back to the package
// defaults; a negative Timeout or PollInterval is rejected.
type PollOptions struct {
	Timeout      time.Duration
	PollInterval time.Duration

	// pendingInjections, when non-nil, is consumed before calling Query:
	// each call pops one entry and, if true, short-circuits to a
	// pending (unknown) receipt without invoking Query. This is the
	// test hook named in the spec for making the loop deterministic.
	pendingInjections []bool
}

// WithPendingInjections attaches a queue of pre-canned "still pending"
// responses consumed in order before Query is given a chance to return a
// terminal result; used by tests to exercise the multi-iteration path
// without real network delay.
func (o PollOptions) WithPendingInjections(count int) PollOptions {
	o.pendingInjections = make([]bool, count)
	for i := range o.pendingInjections {
		o.pendingInjections[i] = true
	}
	return o
}

func (o PollOptions) resolve() (PollOptions, error) {
	if o.Timeout == 0 {
		o.Timeout = DefaultMaxWait
	}
	if o.PollInterval == 0 {
		o.PollInterval = DefaultPollInterval
	}
	if o.Timeout <= 0 {
		return o, ErrInvalidReceiptTimeout
	}
	if o.PollInterval <= 0 {
		return o, ErrInvalidPollInterval
	}
	return o, nil
}

// Poll repeatedly queries for txID's receipt until a terminal status is
// observed or opts.Timeout elapses, sleeping min(PollInterval, remaining)
// between attempts.
func Poll(ctx context.Context, txID ids.TransactionID, query QueryFunc, opts PollOptions) (Receipt, error) {
	opts, err := opts.resolve()
	if err != nil {
		return Receipt{}, err
	}

	start := time.Now()
	for {
		var r Receipt
		var qerr error
		if len(opts.pendingInjections) > 0 && opts.pendingInjections[0] {
			opts.pendingInjections = opts.pendingInjections[1:]
			r = Receipt{Status: StatusUnknown, TransactionID: txID}
		} else {
			r, qerr = query(ctx, txID)
			if qerr != nil {
				return Receipt{}, qerr
			}
		}

		if r.IsTerminal() {
			return r, nil
		}

		elapsed := time.Since(start)
		if elapsed >= opts.Timeout {
			return Receipt{}, ErrReceiptTimedOut
		}

		sleep := opts.PollInterval
		if remaining := opts.Timeout - elapsed; remaining < sleep {
			sleep = remaining
		}

		timer := time.NewTimer(sleep)
		select {
		case <-ctx.Done():
			timer.Stop()
			return Receipt{}, ctx.Err()
		case <-timer.C:
		}
	}
}
