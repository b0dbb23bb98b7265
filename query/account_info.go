package query

import (
	"github.com/distledger/ledger-go/ids"
	"github.com/distledger/ledger-go/wire"
)

// AccountInfo is the decoded CryptoGetInfo response.
type AccountInfo struct {
	AccountID                    ids.EntityID
	ContractAccountID            string
	Deleted                      bool
	Balance                      ids.Amount
	Key                          Key
	AutoRenewPeriodSeconds       int64
	Expiry                       ids.Timestamp
	Memo                         string
	MaxAutomaticTokenAssociations int32
}

// EncodeAccountInfoQuery builds an account-info query, outer field 9.
func EncodeAccountInfoQuery(accountID ids.EntityID) []byte {
	return encodeQuery(FieldAccountInfo, func(inner *wire.Writer) {
		accountID.WriteTo(inner, 1)
	})
}

// DecodeAccountInfoResponse decodes an account-info query's response.
// account_id is required; everything else defaults to its zero value
// when absent.
func DecodeAccountInfoResponse(buf []byte) (AccountInfo, error) {
	inner, err := decodeResponse(buf, FieldAccountInfo)
	if err != nil {
		return AccountInfo{}, err
	}

	infoField, ok, err := wire.FindFirst(inner, 2)
	if err != nil {
		return AccountInfo{}, err
	}
	if !ok {
		return AccountInfo{}, &MissingFieldError{Message: "AccountInfo", Field: "account_info"}
	}

	fields, err := wire.Fields(infoField.Bytes)
	if err != nil {
		return AccountInfo{}, err
	}

	var out AccountInfo
	var haveAccount bool
	for _, f := range fields {
		switch f.Number {
		case 1:
			acct, err := ids.DecodeEntityID(f.Bytes)
			if err != nil {
				return AccountInfo{}, err
			}
			out.AccountID = acct
			haveAccount = true
		case 2:
			out.ContractAccountID = string(f.Bytes)
		case 3:
			out.Deleted = f.Bool()
		case 4:
			out.Balance = ids.Amount(f.Int64())
		case 5:
			key, err := decodeKey(f.Bytes)
			if err != nil {
				return AccountInfo{}, err
			}
			out.Key = key
		case 6:
			out.AutoRenewPeriodSeconds = f.Int64()
		case 7:
			expiry, err := ids.DecodeTimestamp(f.Bytes)
			if err != nil {
				return AccountInfo{}, err
			}
			out.Expiry = expiry
		case 8:
			out.Memo = string(f.Bytes)
		case 9:
			out.MaxAutomaticTokenAssociations = int32(f.Int64())
		}
	}
	if !haveAccount {
		return AccountInfo{}, &MissingFieldError{Message: "AccountInfo", Field: "account_id"}
	}
	return out, nil
}
