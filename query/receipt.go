package query

import (
	"github.com/distledger/ledger-go/ids"
	"github.com/distledger/ledger-go/receipt"
	"github.com/distledger/ledger-go/wire"
)

// successStatusCodes and unknownStatusCode mirror the submitter's
// precheck classification: OK/SUCCESS/OK_ENTITY_UPDATED count as
// success, UNKNOWN stays unknown, everything else is failed. Receipt
// and record queries decode the same underlying status enum the
// submit precheck uses, so the classification rule is identical.
var successStatusCodes = map[int]bool{0: true, 22: true, 21: true}

const unknownStatusCode = 1

func classifyStatus(code int) receipt.Status {
	switch {
	case successStatusCodes[code]:
		return receipt.StatusSuccess
	case code == unknownStatusCode:
		return receipt.StatusUnknown
	default:
		return receipt.StatusFailed
	}
}

// EncodeReceiptQuery builds a TransactionGetReceipt query, outer field 14.
func EncodeReceiptQuery(txID ids.TransactionID, includeDuplicates, includeChildren bool) []byte {
	return encodeQuery(FieldReceipt, func(inner *wire.Writer) {
		inner.WriteMessage(1, func(txIDWriter *wire.Writer) {
			writeTransactionID(txIDWriter, txID)
		})
		inner.WriteBool(2, includeDuplicates)
		inner.WriteBool(3, includeChildren)
	})
}

// DecodeReceiptResponse decodes a TransactionGetReceipt response into a
// receipt.Receipt. The status field is required.
func DecodeReceiptResponse(buf []byte, txID ids.TransactionID) (receipt.Receipt, error) {
	inner, err := decodeResponse(buf, FieldReceipt)
	if err != nil {
		return receipt.Receipt{}, err
	}

	receiptField, ok, err := wire.FindFirst(inner, 2)
	if err != nil {
		return receipt.Receipt{}, err
	}
	if !ok {
		return receipt.Receipt{}, &MissingFieldError{Message: "TransactionReceipt", Field: "receipt"}
	}

	fields, err := wire.Fields(receiptField.Bytes)
	if err != nil {
		return receipt.Receipt{}, err
	}

	var haveStatus bool
	var status receipt.Status
	for _, f := range fields {
		if f.Number == 1 {
			status = classifyStatus(int(f.Varint))
			haveStatus = true
		}
	}
	if !haveStatus {
		return receipt.Receipt{}, &MissingFieldError{Message: "TransactionReceipt", Field: "status"}
	}

	return receipt.Receipt{Status: status, TransactionID: txID}, nil
}

// writeTransactionID encodes a TransactionID as an embedded message:
// field 1 = payer (EntityID), field 2 = valid_start (Timestamp), field 3
// = nonce (optional varint), field 4 = scheduled (bool).
func writeTransactionID(w *wire.Writer, txID ids.TransactionID) {
	txID.Payer.WriteTo(w, 1)
	txID.ValidStart.WriteTo(w, 2)
	if txID.Nonce != nil {
		w.WriteVarint(3, int64(*txID.Nonce))
	}
	if txID.Scheduled {
		w.WriteBool(4, true)
	}
}
