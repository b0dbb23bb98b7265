package query

import (
	"github.com/distledger/ledger-go/ids"
	"github.com/distledger/ledger-go/wire"
)

// TokenType names a token's fungibility.
type TokenType int

const (
	TokenTypeFungibleCommon TokenType = iota
	TokenTypeNonFungibleUnique
)

// SupplyType names whether a token's total supply is capped.
type SupplyType int

const (
	SupplyTypeInfinite SupplyType = iota
	SupplyTypeFinite
)

// TokenInfo is the decoded TokenGetInfo response.
type TokenInfo struct {
	TokenID     ids.EntityID
	Name        string
	Symbol      string
	Decimals    uint32
	TotalSupply uint64
	Treasury    ids.EntityID
	TokenType   TokenType
	SupplyType  SupplyType
	MaxSupply   uint64
	Deleted     bool
}

// EncodeTokenInfoQuery builds a TokenGetInfo query, outer field 52.
func EncodeTokenInfoQuery(tokenID ids.EntityID) []byte {
	return encodeQuery(FieldTokenInfo, func(inner *wire.Writer) {
		tokenID.WriteTo(inner, 1)
	})
}

// DecodeTokenInfoResponse decodes a TokenGetInfo response. token_id, name,
// and symbol are required; an unrecognized token_type or supply_type enum
// value fails with InvalidMessage rather than silently defaulting.
func DecodeTokenInfoResponse(buf []byte) (TokenInfo, error) {
	inner, err := decodeResponse(buf, FieldTokenInfo)
	if err != nil {
		return TokenInfo{}, err
	}

	infoField, ok, err := wire.FindFirst(inner, 2)
	if err != nil {
		return TokenInfo{}, err
	}
	if !ok {
		return TokenInfo{}, &MissingFieldError{Message: "TokenInfo", Field: "token_info"}
	}

	fields, err := wire.Fields(infoField.Bytes)
	if err != nil {
		return TokenInfo{}, err
	}

	var out TokenInfo
	var haveToken, haveName, haveSymbol bool
	for _, f := range fields {
		switch f.Number {
		case 1:
			tokenID, err := ids.DecodeEntityID(f.Bytes)
			if err != nil {
				return TokenInfo{}, err
			}
			out.TokenID = tokenID
			haveToken = true
		case 2:
			out.Name = string(f.Bytes)
			haveName = out.Name != ""
		case 3:
			out.Symbol = string(f.Bytes)
			haveSymbol = out.Symbol != ""
		case 4:
			out.Decimals = uint32(f.Varint)
		case 5:
			out.TotalSupply = f.Varint
		case 6:
			treasury, err := ids.DecodeEntityID(f.Bytes)
			if err != nil {
				return TokenInfo{}, err
			}
			out.Treasury = treasury
		case 7:
			tt, err := decodeTokenType(f.Varint)
			if err != nil {
				return TokenInfo{}, err
			}
			out.TokenType = tt
		case 8:
			st, err := decodeSupplyType(f.Varint)
			if err != nil {
				return TokenInfo{}, err
			}
			out.SupplyType = st
		case 9:
			out.MaxSupply = f.Varint
		case 10:
			out.Deleted = f.Bool()
		}
	}
	if !haveToken {
		return TokenInfo{}, &MissingFieldError{Message: "TokenInfo", Field: "token_id"}
	}
	if !haveName {
		return TokenInfo{}, &MissingFieldError{Message: "TokenInfo", Field: "name"}
	}
	if !haveSymbol {
		return TokenInfo{}, &MissingFieldError{Message: "TokenInfo", Field: "symbol"}
	}
	return out, nil
}

func decodeTokenType(v uint64) (TokenType, error) {
	switch v {
	case 0:
		return TokenTypeFungibleCommon, nil
	case 1:
		return TokenTypeNonFungibleUnique, nil
	default:
		return 0, &InvalidMessageError{Message: "TokenInfo", Reason: "unrecognized token_type enum value"}
	}
}

func decodeSupplyType(v uint64) (SupplyType, error) {
	switch v {
	case 0:
		return SupplyTypeInfinite, nil
	case 1:
		return SupplyTypeFinite, nil
	default:
		return 0, &InvalidMessageError{Message: "TokenInfo", Reason: "unrecognized supply_type enum value"}
	}
}
