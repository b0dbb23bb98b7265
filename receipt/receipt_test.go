package receipt

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/distledger/ledger-go/ids"
)

func testTxID() ids.TransactionID {
	return ids.TransactionID{Payer: ids.EntityID{Num: 7}, ValidStart: ids.Timestamp{Seconds: 1}}
}

func TestPollReturnsImmediatelyOnTerminalStatus(t *testing.T) {
	query := func(ctx context.Context, txID ids.TransactionID) (Receipt, error) {
		return Receipt{Status: StatusSuccess, TransactionID: txID}, nil
	}
	r, err := Poll(context.Background(), testTxID(), query, PollOptions{Timeout: time.Second, PollInterval: time.Millisecond})
	require.NoError(t, err)
	assert.Equal(t, StatusSuccess, r.Status)
}

func TestPollRetriesUntilTerminal(t *testing.T) {
	var calls int
	query := func(ctx context.Context, txID ids.TransactionID) (Receipt, error) {
		calls++
		if calls < 3 {
			return Receipt{Status: StatusUnknown}, nil
		}
		return Receipt{Status: StatusFailed}, nil
	}
	r, err := Poll(context.Background(), testTxID(), query, PollOptions{Timeout: time.Second, PollInterval: time.Millisecond})
	require.NoError(t, err)
	assert.Equal(t, StatusFailed, r.Status)
	assert.Equal(t, 3, calls)
}

func TestPollTimesOutWhenAlwaysUnknown(t *testing.T) {
	query := func(ctx context.Context, txID ids.TransactionID) (Receipt, error) {
		return Receipt{Status: StatusUnknown}, nil
	}
	_, err := Poll(context.Background(), testTxID(), query, PollOptions{Timeout: 20 * time.Millisecond, PollInterval: 5 * time.Millisecond})
	assert.ErrorIs(t, err, ErrReceiptTimedOut)
}

func TestPollInvalidTimeoutRejected(t *testing.T) {
	query := func(ctx context.Context, txID ids.TransactionID) (Receipt, error) {
		return Receipt{Status: StatusSuccess}, nil
	}
	_, err := Poll(context.Background(), testTxID(), query, PollOptions{Timeout: -1, PollInterval: time.Millisecond})
	assert.ErrorIs(t, err, ErrInvalidReceiptTimeout)
}

func TestPollInvalidPollIntervalRejected(t *testing.T) {
	query := func(ctx context.Context, txID ids.TransactionID) (Receipt, error) {
		return Receipt{Status: StatusSuccess}, nil
	}
	_, err := Poll(context.Background(), testTxID(), query, PollOptions{Timeout: time.Second, PollInterval: -1})
	assert.ErrorIs(t, err, ErrInvalidPollInterval)
}

func TestPollDefaultsApplyWhenZero(t *testing.T) {
	query := func(ctx context.Context, txID ids.TransactionID) (Receipt, error) {
		return Receipt{Status: StatusSuccess}, nil
	}
	r, err := Poll(context.Background(), testTxID(), query, PollOptions{})
	require.NoError(t, err)
	assert.Equal(t, StatusSuccess, r.Status)
}

func TestPollPendingInjectionsAreDeterministic(t *testing.T) {
	var calls int
	query := func(ctx context.Context, txID ids.TransactionID) (Receipt, error) {
		calls++
		return Receipt{Status: StatusSuccess}, nil
	}
	opts := PollOptions{Timeout: time.Second, PollInterval: time.Millisecond}.WithPendingInjections(2)
	r, err := Poll(context.Background(), testTxID(), query, opts)
	require.NoError(t, err)
	assert.Equal(t, StatusSuccess, r.Status)
	assert.Equal(t, 1, calls)
}

func TestPollPropagatesQueryError(t *testing.T) {
	wantErr := assert.AnError
	query := func(ctx context.Context, txID ids.TransactionID) (Receipt, error) {
		return Receipt{}, wantErr
	}
	_, err := Poll(context.Background(), testTxID(), query, PollOptions{Timeout: time.Second, PollInterval: time.Millisecond})
	assert.ErrorIs(t, err, wantErr)
}

func TestPollRespectsContextCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	query := func(ctx context.Context, txID ids.TransactionID) (Receipt, error) {
		return Receipt{Status: StatusUnknown}, nil
	}
	go func() {
		time.Sleep(5 * time.Millisecond)
		cancel()
	}()
	_, err := Poll(ctx, testTxID(), query, PollOptions{Timeout: time.Second, PollInterval: 50 * time.Millisecond})
	assert.ErrorIs(t, err, context.Canceled)
}
