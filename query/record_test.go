package query

import (
	"testing"

	"github.com/distledger/ledger-go/ids"
	"github.com/distledger/ledger-go/receipt"
	"github.com/distledger/ledger-go/wire"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeRecordResponseFull(t *testing.T) {
	txID := testTxID()
	consensus := ids.Timestamp{Seconds: 1700000100, Nanos: 5}
	transferAccountA := ids.EntityID{Shard: 0, Realm: 0, Num: 1111}
	transferAccountB := ids.EntityID{Shard: 0, Realm: 0, Num: 2222}

	buf := wrapResponse(FieldRecord, func(inner *wire.Writer) {
		inner.WriteMessage(2, func(rec *wire.Writer) {
			rec.WriteVarint(1, 22)
			consensus.WriteTo(rec, 2)
			rec.WriteMessage(3, func(tr *wire.Writer) {
				transferAccountA.WriteTo(tr, 1)
				tr.WriteZigzag(2, -50)
			})
			rec.WriteMessage(3, func(tr *wire.Writer) {
				transferAccountB.WriteTo(tr, 1)
				tr.WriteZigzag(2, 50)
			})
			rec.WriteBytes(4, []byte("memo text"))
			rec.WriteZigzag(5, 100_000)
		})
	})

	got, err := DecodeRecordResponse(buf, txID)
	require.NoError(t, err)
	assert.Equal(t, receipt.StatusSuccess, got.Receipt.Status)
	assert.Equal(t, txID, got.Receipt.TransactionID)
	assert.Equal(t, consensus, got.ConsensusTimestamp)
	require.Len(t, got.Transfers, 2)
	assert.Equal(t, transferAccountA, got.Transfers[0].AccountID)
	assert.EqualValues(t, -50, got.Transfers[0].Amount)
	assert.Equal(t, transferAccountB, got.Transfers[1].AccountID)
	assert.EqualValues(t, 50, got.Transfers[1].Amount)
	assert.Equal(t, "memo text", got.Memo)
	assert.EqualValues(t, 100_000, got.ChargedFee)
	assert.Empty(t, got.Duplicates)
	assert.Empty(t, got.Children)
}

func TestDecodeRecordResponseWithChildAndDuplicate(t *testing.T) {
	txID := testTxID()

	childBytes := func(w *wire.Writer) {
		w.WriteVarint(1, 22)
	}
	dupBytes := func(w *wire.Writer) {
		w.WriteVarint(1, 999)
	}

	buf := wrapResponse(FieldRecord, func(inner *wire.Writer) {
		inner.WriteMessage(2, func(rec *wire.Writer) {
			rec.WriteVarint(1, 22)
			rec.WriteMessage(6, dupBytes)
			rec.WriteMessage(7, childBytes)
		})
	})

	got, err := DecodeRecordResponse(buf, txID)
	require.NoError(t, err)
	require.Len(t, got.Duplicates, 1)
	assert.Equal(t, receipt.StatusFailed, got.Duplicates[0].Receipt.Status)
	require.Len(t, got.Children, 1)
	assert.Equal(t, receipt.StatusSuccess, got.Children[0].Receipt.Status)
}

func TestDecodeRecordResponseMissingStatusFails(t *testing.T) {
	txID := testTxID()
	buf := wrapResponse(FieldRecord, func(inner *wire.Writer) {
		inner.WriteMessage(2, func(rec *wire.Writer) {
			rec.WriteBytes(4, []byte("memo"))
		})
	})

	_, err := DecodeRecordResponse(buf, txID)
	require.Error(t, err)
	var missing *MissingFieldError
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, "status", missing.Field)
}
