package query

import "github.com/distledger/ledger-go/wire"

// KeyKind names which oneof variant a decoded Key carries.
type KeyKind int

const (
	KeyKindUnknown KeyKind = iota
	KeyKindEd25519
	KeyKindECDSASecp256k1
)

// Key preserves the (variant_field_number, raw_key) layout the Ledger's
// key schema uses, exactly as emitted, so that a signature verification
// step downstream operates on the identical raw bytes the node holds.
type Key struct {
	Kind         KeyKind
	VariantField int
	Raw          []byte
}

// keyVariantFields maps the oneof's field numbers to the kinds this
// client recognizes. Field 1 (ed25519) and field 3 (ECDSA secp256k1) are
// the two variants the consensus submit and query paths need to round
// trip; other oneof members (threshold key, key list, contract id) are
// not meaningful as a simple account key for this client's purposes.
var keyVariantFields = map[int]KeyKind{
	1: KeyKindEd25519,
	3: KeyKindECDSASecp256k1,
}

// decodeKey walks an embedded Key message's fields and returns the first
// recognized oneof variant, preserving its raw bytes untouched.
func decodeKey(buf []byte) (Key, error) {
	fields, err := wire.Fields(buf)
	if err != nil {
		return Key{}, err
	}
	var firstUnrecognized int
	for _, f := range fields {
		if kind, ok := keyVariantFields[f.Number]; ok {
			return Key{Kind: kind, VariantField: f.Number, Raw: f.Bytes}, nil
		}
		if firstUnrecognized == 0 {
			firstUnrecognized = f.Number
		}
	}
	return Key{}, &UnsupportedKeyTypeError{VariantField: firstUnrecognized}
}
