// Package wire implements the tag/varint/length-delimited field codec and
// the stream-frame framing shared by the Ledger's binary RPC surface.
package wire

import "fmt"

// Error classifies a codec failure. Decode failures are never retried by
// higher layers; they signal a server- or version-incompatibility bug.
type Error struct {
	Code    string
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

const (
	CodeUnsupportedWireType = "UnsupportedWireType"
	CodeUnexpectedEnd       = "UnexpectedEnd"
	CodeVarintOverflow      = "VarintOverflow"
)

func errUnsupportedWireType(wt WireType) error {
	return &Error{Code: CodeUnsupportedWireType, Message: fmt.Sprintf("wire type %d is not supported", wt)}
}

func errUnexpectedEnd() error {
	return &Error{Code: CodeUnexpectedEnd, Message: "input ended before the field could be read"}
}

func errVarintOverflow() error {
	return &Error{Code: CodeVarintOverflow, Message: "varint exceeds 10 bytes"}
}
