package query

import (
	"github.com/distledger/ledger-go/ids"
	"github.com/distledger/ledger-go/wire"
)

// CryptoAllowance grants spender the right to transfer up to Amount
// tinybars from owner's account.
type CryptoAllowance struct {
	Owner   ids.EntityID
	Spender ids.EntityID
	Amount  uint64
}

// TokenAllowance grants spender the right to transfer up to Amount units
// of TokenID from owner's account.
type TokenAllowance struct {
	Owner   ids.EntityID
	Spender ids.EntityID
	TokenID ids.EntityID
	Amount  uint64
}

// NftAllowance grants spender the right to transfer the named Serials of
// TokenID from owner's account, or every serial the owner holds when
// ApprovedForAll is set.
type NftAllowance struct {
	Owner          ids.EntityID
	Spender        ids.EntityID
	TokenID        ids.EntityID
	Serials        []int64
	ApprovedForAll bool
}

// AccountAllowances is the decoded CryptoGetAccountDetails response's
// allowance lists (outer field 58).
type AccountAllowances struct {
	AccountID        ids.EntityID
	CryptoAllowances []CryptoAllowance
	TokenAllowances  []TokenAllowance
	NftAllowances    []NftAllowance
}

// EncodeAccountAllowancesQuery builds a CryptoGetAccountDetails query,
// outer field 58.
func EncodeAccountAllowancesQuery(accountID ids.EntityID) []byte {
	return encodeQuery(FieldAccountDetails, func(inner *wire.Writer) {
		accountID.WriteTo(inner, 1)
	})
}

// DecodeAccountAllowancesResponse decodes a CryptoGetAccountDetails
// response's allowance lists. account_id is required.
func DecodeAccountAllowancesResponse(buf []byte) (AccountAllowances, error) {
	inner, err := decodeResponse(buf, FieldAccountDetails)
	if err != nil {
		return AccountAllowances{}, err
	}

	detailsField, ok, err := wire.FindFirst(inner, 2)
	if err != nil {
		return AccountAllowances{}, err
	}
	if !ok {
		return AccountAllowances{}, &MissingFieldError{Message: "AccountDetails", Field: "account_details"}
	}

	fields, err := wire.Fields(detailsField.Bytes)
	if err != nil {
		return AccountAllowances{}, err
	}

	var out AccountAllowances
	var haveAccount bool
	for _, f := range fields {
		switch f.Number {
		case 1:
			acct, err := ids.DecodeEntityID(f.Bytes)
			if err != nil {
				return AccountAllowances{}, err
			}
			out.AccountID = acct
			haveAccount = true
		case 2:
			a, err := decodeCryptoAllowance(f.Bytes)
			if err != nil {
				return AccountAllowances{}, err
			}
			out.CryptoAllowances = append(out.CryptoAllowances, a)
		case 3:
			a, err := decodeTokenAllowance(f.Bytes)
			if err != nil {
				return AccountAllowances{}, err
			}
			out.TokenAllowances = append(out.TokenAllowances, a)
		case 4:
			a, err := decodeNftAllowance(f.Bytes)
			if err != nil {
				return AccountAllowances{}, err
			}
			out.NftAllowances = append(out.NftAllowances, a)
		}
	}
	if !haveAccount {
		return AccountAllowances{}, &MissingFieldError{Message: "AccountDetails", Field: "account_id"}
	}
	return out, nil
}

func decodeCryptoAllowance(buf []byte) (CryptoAllowance, error) {
	fields, err := wire.Fields(buf)
	if err != nil {
		return CryptoAllowance{}, err
	}
	var out CryptoAllowance
	for _, f := range fields {
		switch f.Number {
		case 1:
			owner, err := ids.DecodeEntityID(f.Bytes)
			if err != nil {
				return CryptoAllowance{}, err
			}
			out.Owner = owner
		case 2:
			spender, err := ids.DecodeEntityID(f.Bytes)
			if err != nil {
				return CryptoAllowance{}, err
			}
			out.Spender = spender
		case 3:
			out.Amount = f.Varint
		}
	}
	return out, nil
}

func decodeTokenAllowance(buf []byte) (TokenAllowance, error) {
	fields, err := wire.Fields(buf)
	if err != nil {
		return TokenAllowance{}, err
	}
	var out TokenAllowance
	for _, f := range fields {
		switch f.Number {
		case 1:
			owner, err := ids.DecodeEntityID(f.Bytes)
			if err != nil {
				return TokenAllowance{}, err
			}
			out.Owner = owner
		case 2:
			spender, err := ids.DecodeEntityID(f.Bytes)
			if err != nil {
				return TokenAllowance{}, err
			}
			out.Spender = spender
		case 3:
			tokenID, err := ids.DecodeEntityID(f.Bytes)
			if err != nil {
				return TokenAllowance{}, err
			}
			out.TokenID = tokenID
		case 4:
			out.Amount = f.Varint
		}
	}
	return out, nil
}

func decodeNftAllowance(buf []byte) (NftAllowance, error) {
	fields, err := wire.Fields(buf)
	if err != nil {
		return NftAllowance{}, err
	}
	var out NftAllowance
	for _, f := range fields {
		switch f.Number {
		case 1:
			owner, err := ids.DecodeEntityID(f.Bytes)
			if err != nil {
				return NftAllowance{}, err
			}
			out.Owner = owner
		case 2:
			spender, err := ids.DecodeEntityID(f.Bytes)
			if err != nil {
				return NftAllowance{}, err
			}
			out.Spender = spender
		case 3:
			tokenID, err := ids.DecodeEntityID(f.Bytes)
			if err != nil {
				return NftAllowance{}, err
			}
			out.TokenID = tokenID
		case 4:
			out.Serials = append(out.Serials, f.Int64())
		case 5:
			out.ApprovedForAll = f.Bool()
		}
	}
	return out, nil
}
