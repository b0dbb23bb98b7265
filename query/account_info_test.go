package query

import (
	"testing"

	"github.com/distledger/ledger-go/ids"
	"github.com/distledger/ledger-go/wire"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeAccountInfoQuery(t *testing.T) {
	accountID := ids.EntityID{Shard: 0, Realm: 0, Num: 42}
	out := EncodeAccountInfoQuery(accountID)

	wrapperField, ok, err := wire.FindFirst(out, FieldAccountInfo)
	require.NoError(t, err)
	require.True(t, ok)

	inner, ok, err := wire.FindFirst(wrapperField.Bytes, 2)
	require.NoError(t, err)
	require.True(t, ok)

	accountField, ok, err := wire.FindFirst(inner.Bytes, 1)
	require.NoError(t, err)
	require.True(t, ok)
	decoded, err := ids.DecodeEntityID(accountField.Bytes)
	require.NoError(t, err)
	assert.Equal(t, accountID, decoded)
}

func TestDecodeAccountInfoResponseFull(t *testing.T) {
	accountID := ids.EntityID{Shard: 0, Realm: 0, Num: 55}
	expiry := ids.Timestamp{Seconds: 1700000000, Nanos: 123}
	ed25519Key := []byte{1, 2, 3, 4}

	buf := wrapResponse(FieldAccountInfo, func(inner *wire.Writer) {
		inner.WriteMessage(2, func(info *wire.Writer) {
			accountID.WriteTo(info, 1)
			info.WriteBytes(2, []byte("0.0.55"))
			info.WriteBool(3, false)
			info.WriteVarint(4, 500_000_000)
			info.WriteMessage(5, func(key *wire.Writer) {
				key.WriteBytes(1, ed25519Key)
			})
			info.WriteVarint(6, 7776000)
			expiry.WriteTo(info, 7)
			info.WriteBytes(8, []byte("memo"))
			info.WriteVarint(9, 10)
		})
	})

	got, err := DecodeAccountInfoResponse(buf)
	require.NoError(t, err)
	assert.Equal(t, accountID, got.AccountID)
	assert.Equal(t, "0.0.55", got.ContractAccountID)
	assert.False(t, got.Deleted)
	assert.EqualValues(t, 500_000_000, got.Balance)
	assert.Equal(t, KeyKindEd25519, got.Key.Kind)
	assert.Equal(t, ed25519Key, got.Key.Raw)
	assert.EqualValues(t, 7776000, got.AutoRenewPeriodSeconds)
	assert.Equal(t, expiry, got.Expiry)
	assert.Equal(t, "memo", got.Memo)
	assert.EqualValues(t, 10, got.MaxAutomaticTokenAssociations)
}

func TestDecodeAccountInfoResponseMissingAccountFails(t *testing.T) {
	buf := wrapResponse(FieldAccountInfo, func(inner *wire.Writer) {
		inner.WriteMessage(2, func(info *wire.Writer) {
			info.WriteBool(3, true)
		})
	})

	_, err := DecodeAccountInfoResponse(buf)
	require.Error(t, err)
	var missing *MissingFieldError
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, "account_id", missing.Field)
}

func TestDecodeAccountInfoResponseMissingInfoMessageFails(t *testing.T) {
	buf := wrapResponse(FieldAccountInfo, func(inner *wire.Writer) {})

	_, err := DecodeAccountInfoResponse(buf)
	require.Error(t, err)
	var missing *MissingFieldError
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, "account_info", missing.Field)
}
