package query

import (
	"testing"

	"github.com/distledger/ledger-go/ids"
	"github.com/distledger/ledger-go/receipt"
	"github.com/distledger/ledger-go/wire"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testTxID() ids.TransactionID {
	return ids.TransactionID{
		Payer:      ids.EntityID{Shard: 0, Realm: 0, Num: 100},
		ValidStart: ids.Timestamp{Seconds: 1700000000, Nanos: 1},
	}
}

func TestEncodeReceiptQueryEmbedsTransactionID(t *testing.T) {
	txID := testTxID()
	out := EncodeReceiptQuery(txID, true, false)

	wrapperField, ok, err := wire.FindFirst(out, FieldReceipt)
	require.NoError(t, err)
	require.True(t, ok)

	inner, ok, err := wire.FindFirst(wrapperField.Bytes, 2)
	require.NoError(t, err)
	require.True(t, ok)

	fields, err := wire.Fields(inner.Bytes)
	require.NoError(t, err)

	var gotIncludeDuplicates, gotIncludeChildren bool
	var haveTxID bool
	for _, f := range fields {
		switch f.Number {
		case 1:
			haveTxID = true
			txFields, err := wire.Fields(f.Bytes)
			require.NoError(t, err)
			var payerField wire.Field
			for _, tf := range txFields {
				if tf.Number == 1 {
					payerField = tf
				}
			}
			payer, err := ids.DecodeEntityID(payerField.Bytes)
			require.NoError(t, err)
			assert.Equal(t, txID.Payer, payer)
		case 2:
			gotIncludeDuplicates = f.Bool()
		case 3:
			gotIncludeChildren = f.Bool()
		}
	}
	assert.True(t, haveTxID)
	assert.True(t, gotIncludeDuplicates)
	assert.False(t, gotIncludeChildren)
}

func TestDecodeReceiptResponseSuccessStatus(t *testing.T) {
	txID := testTxID()
	buf := wrapResponse(FieldReceipt, func(inner *wire.Writer) {
		inner.WriteMessage(2, func(r *wire.Writer) {
			r.WriteVarint(1, 22)
		})
	})

	got, err := DecodeReceiptResponse(buf, txID)
	require.NoError(t, err)
	assert.Equal(t, receipt.StatusSuccess, got.Status)
	assert.Equal(t, txID, got.TransactionID)
	assert.True(t, got.IsTerminal())
}

func TestDecodeReceiptResponseUnknownStatus(t *testing.T) {
	txID := testTxID()
	buf := wrapResponse(FieldReceipt, func(inner *wire.Writer) {
		inner.WriteMessage(2, func(r *wire.Writer) {
			r.WriteVarint(1, 1)
		})
	})

	got, err := DecodeReceiptResponse(buf, txID)
	require.NoError(t, err)
	assert.Equal(t, receipt.StatusUnknown, got.Status)
	assert.False(t, got.IsTerminal())
}

func TestDecodeReceiptResponseFailedStatus(t *testing.T) {
	txID := testTxID()
	buf := wrapResponse(FieldReceipt, func(inner *wire.Writer) {
		inner.WriteMessage(2, func(r *wire.Writer) {
			r.WriteVarint(1, 999)
		})
	})

	got, err := DecodeReceiptResponse(buf, txID)
	require.NoError(t, err)
	assert.Equal(t, receipt.StatusFailed, got.Status)
	assert.True(t, got.IsTerminal())
}

func TestDecodeReceiptResponseMissingStatusFails(t *testing.T) {
	txID := testTxID()
	buf := wrapResponse(FieldReceipt, func(inner *wire.Writer) {
		inner.WriteMessage(2, func(r *wire.Writer) {})
	})

	_, err := DecodeReceiptResponse(buf, txID)
	require.Error(t, err)
	var missing *MissingFieldError
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, "status", missing.Field)
}

func TestDecodeReceiptResponseMissingReceiptMessageFails(t *testing.T) {
	txID := testTxID()
	buf := wrapResponse(FieldReceipt, func(inner *wire.Writer) {})

	_, err := DecodeReceiptResponse(buf, txID)
	require.Error(t, err)
	var missing *MissingFieldError
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, "receipt", missing.Field)
}
