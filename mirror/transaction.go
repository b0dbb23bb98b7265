package mirror

import (
	"context"
	"fmt"

	"github.com/distledger/ledger-go/ids"
)

// TransactionTransfer is one entry of a Mirror transaction's transfer
// list.
type TransactionTransfer struct {
	Account string    `json:"account"`
	Amount  flexInt64 `json:"amount"`
}

// Transaction is the decoded `/transactions/{seconds}.{nanos}` response
// envelope's single transaction entry.
type Transaction struct {
	TransactionID string                 `json:"transaction_id"`
	Result        string                 `json:"result"`
	ConsensusTimestamp string           `json:"consensus_timestamp"`
	Transfers     []TransactionTransfer `json:"transfers"`
	ChargedTxFee  flexUint64             `json:"charged_tx_fee"`
	Memo          string                 `json:"memo_base64"`
}

type transactionListResponse struct {
	Transactions []Transaction `json:"transactions"`
}

// GetTransaction reads the Mirror record for the transaction whose
// valid-start is (seconds, nanos). REST-only: the record's full shape
// (transfers, fee, memo) is a Mirror-specific read with no RPC parity
// named by the spec beyond the receipt/record queries already served by
// the consensus node directly (see the query package).
func (c *Client) GetTransaction(ctx context.Context, seconds, nanos int64) (Transaction, error) {
	path := fmt.Sprintf("/transactions/%d.%09d", seconds, nanos)
	url := buildURL(c.BaseURL, path, nil)
	var out transactionListResponse
	if err := getJSON(ctx, c, "transaction", url, &out); err != nil {
		return Transaction{}, err
	}
	if len(out.Transactions) == 0 {
		return Transaction{}, &DecodeError{Read: "transaction", Err: fmt.Errorf("empty transactions list")}
	}
	return out.Transactions[0], nil
}

// GetTransactionByID is a convenience for callers holding an
// ids.TransactionID who want the Mirror transaction record.
func (c *Client) GetTransactionByID(ctx context.Context, txID ids.TransactionID) (Transaction, error) {
	ts := txID.ValidStart.Normalize()
	return c.GetTransaction(ctx, ts.Seconds, ts.Nanos)
}
