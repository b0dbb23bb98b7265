package query

import (
	"github.com/distledger/ledger-go/ids"
	"github.com/distledger/ledger-go/receipt"
	"github.com/distledger/ledger-go/wire"
)

// Transfer is one entry of a record's transfer list.
type Transfer struct {
	AccountID ids.EntityID
	Amount    ids.Amount
}

// Record is the decoded TransactionGetRecord response: the receipt plus
// consensus timestamp, transfers, memo, fee, and nested duplicate/child
// records.
type Record struct {
	Receipt            receipt.Receipt
	ConsensusTimestamp ids.Timestamp
	Transfers          []Transfer
	Memo               string
	ChargedFee         ids.Amount
	Duplicates         []Record
	Children           []Record
}

// EncodeRecordQuery builds a TransactionGetRecord query, outer field 15.
func EncodeRecordQuery(txID ids.TransactionID, includeDuplicates, includeChildren bool) []byte {
	return encodeQuery(FieldRecord, func(inner *wire.Writer) {
		inner.WriteMessage(1, func(txIDWriter *wire.Writer) {
			writeTransactionID(txIDWriter, txID)
		})
		inner.WriteBool(2, includeDuplicates)
		inner.WriteBool(3, includeChildren)
	})
}

// DecodeRecordResponse decodes a TransactionGetRecord response.
func DecodeRecordResponse(buf []byte, txID ids.TransactionID) (Record, error) {
	inner, err := decodeResponse(buf, FieldRecord)
	if err != nil {
		return Record{}, err
	}
	recordField, ok, err := wire.FindFirst(inner, 2)
	if err != nil {
		return Record{}, err
	}
	if !ok {
		return Record{}, &MissingFieldError{Message: "TransactionRecord", Field: "record"}
	}
	return decodeRecordMessage(recordField.Bytes, txID)
}

func decodeRecordMessage(buf []byte, txID ids.TransactionID) (Record, error) {
	fields, err := wire.Fields(buf)
	if err != nil {
		return Record{}, err
	}

	var out Record
	var haveStatus bool
	for _, f := range fields {
		switch f.Number {
		case 1:
			out.Receipt.Status = classifyStatus(int(f.Varint))
			out.Receipt.TransactionID = txID
			haveStatus = true
		case 2:
			ts, err := ids.DecodeTimestamp(f.Bytes)
			if err != nil {
				return Record{}, err
			}
			out.ConsensusTimestamp = ts
		case 3:
			transfer, err := decodeTransfer(f.Bytes)
			if err != nil {
				return Record{}, err
			}
			out.Transfers = append(out.Transfers, transfer)
		case 4:
			out.Memo = string(f.Bytes)
		case 5:
			out.ChargedFee = ids.Amount(f.ZigzagInt64())
		case 6:
			dup, err := decodeRecordMessage(f.Bytes, txID)
			if err != nil {
				return Record{}, err
			}
			out.Duplicates = append(out.Duplicates, dup)
		case 7:
			child, err := decodeRecordMessage(f.Bytes, txID)
			if err != nil {
				return Record{}, err
			}
			out.Children = append(out.Children, child)
		}
	}
	if !haveStatus {
		return Record{}, &MissingFieldError{Message: "TransactionRecord", Field: "status"}
	}
	return out, nil
}

func decodeTransfer(buf []byte) (Transfer, error) {
	fields, err := wire.Fields(buf)
	if err != nil {
		return Transfer{}, err
	}
	var out Transfer
	for _, f := range fields {
		switch f.Number {
		case 1:
			acct, err := ids.DecodeEntityID(f.Bytes)
			if err != nil {
				return Transfer{}, err
			}
			out.AccountID = acct
		case 2:
			out.Amount = ids.Amount(f.ZigzagInt64())
		}
	}
	return out, nil
}
