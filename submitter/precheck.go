package submitter

import "fmt"

// precheckLabels maps the wire enum's numeric precheck/response codes to
// the local label set. This is not an exhaustive copy of the Ledger's
// full response-code enum — only the codes this client's callers need to
// distinguish (success, the Poller's pending marker, and a representative
// spread of rejection reasons) are named; anything else decodes to a
// generic "ERROR_<code>" label, which still flows correctly through the
// success-set / unknown / failed classification in response.go.
var precheckLabels = map[int]string{
	0:  "OK",
	22: "SUCCESS",
	21: "OK_ENTITY_UPDATED",
	1:  "UNKNOWN",
	2:  "INVALID_TRANSACTION",
	3:  "PAYER_ACCOUNT_NOT_FOUND",
	4:  "INVALID_NODE_ACCOUNT",
	5:  "TRANSACTION_EXPIRED",
	6:  "INVALID_TRANSACTION_START",
	7:  "INVALID_TRANSACTION_DURATION",
	8:  "INVALID_SIGNATURE",
	9:  "MEMO_TOO_LONG",
	10: "INSUFFICIENT_TX_FEE",
	11: "INSUFFICIENT_PAYER_BALANCE",
	12: "DUPLICATE_TRANSACTION",
	13: "BUSY",
	14: "NOT_SUPPORTED",
}

// precheckLabel resolves a numeric precheck code to its label, falling
// back to a generic but still-classifiable label for codes this client
// does not name explicitly.
func precheckLabel(code int) string {
	if label, ok := precheckLabels[code]; ok {
		return label
	}
	return fmt.Sprintf("ERROR_%d", code)
}
