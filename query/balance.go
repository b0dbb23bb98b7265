package query

import (
	"github.com/distledger/ledger-go/ids"
	"github.com/distledger/ledger-go/wire"
)

// TokenBalance is one entry of a balance response's per-token breakdown.
type TokenBalance struct {
	TokenID ids.EntityID
	Balance uint64
}

// AccountBalance is the decoded CryptoGetAccountBalance response.
type AccountBalance struct {
	AccountID     ids.EntityID
	Tinybars      uint64
	TokenBalances []TokenBalance
}

// EncodeBalanceQuery builds a balance query for accountID, outer field 7.
func EncodeBalanceQuery(accountID ids.EntityID) []byte {
	return encodeQuery(FieldBalance, func(inner *wire.Writer) {
		accountID.WriteTo(inner, 1)
	})
}

// DecodeBalanceResponse decodes a balance query's response. The treasury
// (account_id) field is required; its absence fails with MissingField.
func DecodeBalanceResponse(buf []byte) (AccountBalance, error) {
	inner, err := decodeResponse(buf, FieldBalance)
	if err != nil {
		return AccountBalance{}, err
	}

	fields, err := wire.Fields(inner)
	if err != nil {
		return AccountBalance{}, err
	}

	var out AccountBalance
	var haveAccount bool
	for _, f := range fields {
		switch f.Number {
		case 2:
			acct, err := ids.DecodeEntityID(f.Bytes)
			if err != nil {
				return AccountBalance{}, err
			}
			out.AccountID = acct
			haveAccount = true
		case 3:
			out.Tinybars = f.Varint
		case 4:
			tb, err := decodeTokenBalance(f.Bytes)
			if err != nil {
				return AccountBalance{}, err
			}
			out.TokenBalances = append(out.TokenBalances, tb)
		}
	}
	if !haveAccount {
		return AccountBalance{}, &MissingFieldError{Message: "AccountBalance", Field: "account_id"}
	}
	return out, nil
}

func decodeTokenBalance(buf []byte) (TokenBalance, error) {
	fields, err := wire.Fields(buf)
	if err != nil {
		return TokenBalance{}, err
	}
	var out TokenBalance
	for _, f := range fields {
		switch f.Number {
		case 1:
			tokenID, err := ids.DecodeEntityID(f.Bytes)
			if err != nil {
				return TokenBalance{}, err
			}
			out.TokenID = tokenID
		case 2:
			out.Balance = f.Varint
		}
	}
	return out, nil
}
