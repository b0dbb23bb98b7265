package query

import "fmt"

// MissingFieldError reports a required field absent from a decoded
// message.
type MissingFieldError struct {
	Message string
	Field   string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("query: %s missing required field %q", e.Message, e.Field)
}

// Retryable is always false: a decode failure means the bytes a node
// already returned don't parse, and retrying the same query will parse
// the same bytes the same way. Per the error taxonomy, decode failures
// are never retried.
func (e *MissingFieldError) Retryable() bool { return false }

// InvalidMessageError reports a message that could be navigated to but
// whose contents don't satisfy a cross-field invariant, or an enum value
// this decoder does not recognize.
type InvalidMessageError struct {
	Message string
	Reason  string
}

func (e *InvalidMessageError) Error() string {
	return fmt.Sprintf("query: invalid %s: %s", e.Message, e.Reason)
}

// Retryable is always false; see MissingFieldError.Retryable.
func (e *InvalidMessageError) Retryable() bool { return false }

// ValueOverflowError reports a numeric field whose wire value exceeds the
// target integer range.
type ValueOverflowError struct {
	Field string
	Value uint64
}

func (e *ValueOverflowError) Error() string {
	return fmt.Sprintf("query: field %q value %d overflows target type", e.Field, e.Value)
}

// Retryable is always false; see MissingFieldError.Retryable.
func (e *ValueOverflowError) Retryable() bool { return false }

// UnsupportedKeyTypeError reports a key oneof variant this decoder does
// not recognize.
type UnsupportedKeyTypeError struct {
	VariantField int
}

func (e *UnsupportedKeyTypeError) Error() string {
	return fmt.Sprintf("query: unsupported key variant field %d", e.VariantField)
}

// Retryable is always false; see MissingFieldError.Retryable.
func (e *UnsupportedKeyTypeError) Retryable() bool { return false }
