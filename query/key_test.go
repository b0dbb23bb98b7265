package query

import (
	"testing"

	"github.com/distledger/ledger-go/wire"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeKeyEd25519(t *testing.T) {
	raw := []byte{1, 2, 3}
	w := wire.NewWriter()
	w.WriteBytes(1, raw)

	key, err := decodeKey(w.Bytes())
	require.NoError(t, err)
	assert.Equal(t, KeyKindEd25519, key.Kind)
	assert.Equal(t, 1, key.VariantField)
	assert.Equal(t, raw, key.Raw)
}

func TestDecodeKeyECDSASecp256k1(t *testing.T) {
	raw := []byte{4, 5, 6}
	w := wire.NewWriter()
	w.WriteBytes(3, raw)

	key, err := decodeKey(w.Bytes())
	require.NoError(t, err)
	assert.Equal(t, KeyKindECDSASecp256k1, key.Kind)
	assert.Equal(t, 3, key.VariantField)
	assert.Equal(t, raw, key.Raw)
}

func TestDecodeKeyUnsupportedVariantFails(t *testing.T) {
	w := wire.NewWriter()
	w.WriteBytes(7, []byte{9})

	_, err := decodeKey(w.Bytes())
	require.Error(t, err)
	var unsupported *UnsupportedKeyTypeError
	require.ErrorAs(t, err, &unsupported)
	assert.Equal(t, 7, unsupported.VariantField)
}
