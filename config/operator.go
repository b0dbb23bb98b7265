package config

import (
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/distledger/ledger-go/ids"
)

// KeyFormat names how an operator private key's raw bytes were encoded
// on input: PEM if it begins with `-----BEGIN`, hex if 64 characters
// with an optional `0x` prefix, or DER otherwise. This package only
// detects the format and recovers the encoded bytes; constructing a
// signer from them is left to the caller.
type KeyFormat int

const (
	KeyFormatDER KeyFormat = iota
	KeyFormatPEM
	KeyFormatHex
)

func (f KeyFormat) String() string {
	switch f {
	case KeyFormatPEM:
		return "pem"
	case KeyFormatHex:
		return "hex"
	default:
		return "der"
	}
}

// OperatorKey is an operator private key together with the format it was
// supplied in. Raw holds the decoded bytes for PEM (the PEM block
// payload, not yet further parsed) and hex (the decoded byte string);
// for DER it holds the input unchanged, since DER is already binary.
type OperatorKey struct {
	Format KeyFormat
	Raw    []byte
}

// ParseOperatorKey classifies and decodes an OPERATOR_KEY-shaped string.
func ParseOperatorKey(s string) (OperatorKey, error) {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return OperatorKey{}, fmt.Errorf("config: operator key is empty")
	}

	if strings.HasPrefix(trimmed, "-----BEGIN") {
		return OperatorKey{Format: KeyFormatPEM, Raw: []byte(trimmed)}, nil
	}

	hexCandidate := strings.TrimPrefix(trimmed, "0x")
	hexCandidate = strings.TrimPrefix(hexCandidate, "0X")
	if len(hexCandidate) == 64 {
		raw, err := hex.DecodeString(hexCandidate)
		if err == nil {
			return OperatorKey{Format: KeyFormatHex, Raw: raw}, nil
		}
	}

	return OperatorKey{Format: KeyFormatDER, Raw: []byte(trimmed)}, nil
}

// Operator is the resolved (account id, private key) pair an
// OPERATOR_ID/OPERATOR_KEY pair (or a config file's operator object)
// produces. The two must appear together or neither.
type Operator struct {
	AccountID ids.EntityID
	Key       OperatorKey
}

// parseOperator builds an Operator from raw accountID/key strings,
// enforcing the "both or neither" rule.
func parseOperator(accountID, key string) (*Operator, error) {
	if accountID == "" && key == "" {
		return nil, nil
	}
	if accountID == "" || key == "" {
		return nil, fmt.Errorf("config: operator account id and key must both be set, or neither")
	}
	parsedID, err := ids.ParseEntityID(accountID)
	if err != nil {
		return nil, fmt.Errorf("config: invalid operator account id %q: %w", accountID, err)
	}
	parsedKey, err := ParseOperatorKey(key)
	if err != nil {
		return nil, err
	}
	return &Operator{AccountID: parsedID, Key: parsedKey}, nil
}
