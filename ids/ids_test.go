package ids

import (
	"testing"

	"github.com/distledger/ledger-go/wire"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEntityIDParseFormat(t *testing.T) {
	id, err := ParseEntityID("0.0.500")
	require.NoError(t, err)
	assert.Equal(t, EntityID{Shard: 0, Realm: 0, Num: 500}, id)
	assert.Equal(t, "0.0.500", id.String())

	_, err = ParseEntityID("not-an-id")
	assert.Error(t, err)
}

func TestEntityIDWireRoundTrip(t *testing.T) {
	id := EntityID{Shard: 1, Realm: 2, Num: 9001}
	w := wire.NewWriter()
	id.WriteTo(w, 7)

	field, ok, err := wire.FindFirst(w.Bytes(), 7)
	require.NoError(t, err)
	require.True(t, ok)

	decoded, err := DecodeEntityID(field.Bytes)
	require.NoError(t, err)
	assert.Equal(t, id, decoded)
}

func TestTimestampParseFormatRoundTrip(t *testing.T) {
	cases := []string{"1700000000.420000000", "0.000000000", "1700000000.000000007"}
	for _, s := range cases {
		ts, err := ParseTimestamp(s)
		require.NoError(t, err)
		assert.Equal(t, s, ts.String(), "round-trip for %q", s)
	}
}

func TestTimestampParseShortAndLongNanos(t *testing.T) {
	ts, err := ParseTimestamp("100.5")
	require.NoError(t, err)
	assert.Equal(t, int64(500000000), ts.Nanos)

	ts, err = ParseTimestamp("100.123456789999")
	require.NoError(t, err)
	assert.Equal(t, int64(123456789), ts.Nanos)
}

func TestTimestampAdvanceIsStrictlyGreater(t *testing.T) {
	ts := Timestamp{Seconds: 1700000000, Nanos: 999999999}
	next := ts.Advance()
	assert.True(t, ts.Before(next))
	assert.Equal(t, Timestamp{Seconds: 1700000001, Nanos: 0}, next)
}

func TestTimestampNormalizeNegativeNanos(t *testing.T) {
	ts := Timestamp{Seconds: 10, Nanos: -1}
	n := ts.Normalize()
	assert.Equal(t, Timestamp{Seconds: 9, Nanos: 999999999}, n)
}

func TestTransactionIDParseFormatRoundTrip(t *testing.T) {
	txID, err := ParseTransactionID("0.0.500-1700000000-42")
	require.NoError(t, err)
	assert.Equal(t, "0.0.500-1700000000-42", txID.String())
}

func TestTransactionIDParseHyphenatedForm(t *testing.T) {
	txID, err := ParseTransactionID("0.0.500@1700000000.000000042")
	require.NoError(t, err)
	assert.Equal(t, EntityID{Num: 500}, txID.Payer)
	assert.Equal(t, int64(42), txID.ValidStart.Nanos)
}

func TestTransactionIDEqualIgnoresNonce(t *testing.T) {
	a, _ := ParseTransactionID("0.0.500-1700000000-42")
	b := a
	nonce := int32(7)
	b.Nonce = &nonce
	assert.True(t, a.Equal(b))
}

func TestAmountDisplayConversion(t *testing.T) {
	amt := Amount(150_000_000)
	assert.InDelta(t, 1.5, amt.DisplayUnits(), 1e-9)
	assert.Equal(t, amt, FromDisplayUnits(1.5))
}
