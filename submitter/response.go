package submitter

import "github.com/distledger/ledger-go/ids"

// successPrecheckCodes is the set of precheck labels that count as
// success.
var successPrecheckCodes = map[string]bool{
	"OK":                 true,
	"SUCCESS":            true,
	"OK_ENTITY_UPDATED":  true,
}

// unknownPrecheckCode is the Poller's not-yet-available marker.
const unknownPrecheckCode = "UNKNOWN"

// Response is the normalized result of a submit attempt.
type Response struct {
	TransactionID *ids.TransactionID
	NodeID        *ids.EntityID
	StatusLabel   string
	StatusCode    int
	Hash          []byte
	ErrorMessage  string
	Success       bool
}

func normalizeResponse(label string, code int, txID *ids.TransactionID, nodeID *ids.EntityID, hash []byte, errMsg string) Response {
	return Response{
		TransactionID: txID,
		NodeID:        nodeID,
		StatusLabel:   label,
		StatusCode:    code,
		Hash:          hash,
		ErrorMessage:  errMsg,
		Success:       successPrecheckCodes[label],
	}
}

// IsUnknown reports whether the response's status is the Poller's
// not-yet-available marker.
func (r Response) IsUnknown() bool {
	return r.StatusLabel == unknownPrecheckCode
}
