// Package query implements the request encoders and response decoders for
// every read the client issues against a consensus node: balance, account
// info, receipt, record, token info, and (supplementing the distilled
// spec) account allowances. Every query shares the same outer wrapper
// shape described in the wire codec's forward-compatible Reader design —
// unrecognized fields are skipped rather than rejected, so a newer node
// can add fields without breaking this client.
package query

import (
	"github.com/distledger/ledger-go/wire"
)

// responseTypeAnswerOnly is the only response_type this client ever
// requests.
const responseTypeAnswerOnly = 0

// Outer wrapper field numbers naming each query kind.
const (
	FieldBalance        = 7
	FieldAccountInfo    = 9
	FieldReceipt        = 14
	FieldRecord         = 15
	FieldTokenInfo      = 52
	FieldAccountDetails = 58
)

// encodeQuery wraps innerBody under the query kind's outer field number,
// preceded by a query_header carrying response_type=ANSWER_ONLY.
func encodeQuery(outerField int, innerBody func(*wire.Writer)) []byte {
	w := wire.NewWriter()
	w.WriteMessage(outerField, func(wrapper *wire.Writer) {
		wrapper.WriteMessage(1, func(header *wire.Writer) {
			header.WriteVarint(1, responseTypeAnswerOnly)
		})
		wrapper.WriteMessage(2, innerBody)
	})
	return w.Bytes()
}

// decodeResponse navigates to the inner response message nested under
// the query kind's outer field number, returning its raw bytes (field 2
// of the wrapper) for the caller's type-specific decoder to walk.
func decodeResponse(buf []byte, outerField int) ([]byte, error) {
	wrapperField, ok, err := wire.FindFirst(buf, outerField)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, &MissingFieldError{Message: "query response", Field: "wrapper"}
	}
	inner, ok, err := wire.FindFirst(wrapperField.Bytes, 2)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, &MissingFieldError{Message: "query response", Field: "body"}
	}
	return inner.Bytes, nil
}
