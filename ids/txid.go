package ids

import (
	"fmt"
	"strconv"
	"strings"
)

// TransactionID is the (payer, valid_start, nonce, scheduled) tuple that
// uniquely identifies a submitted transaction at the Ledger. The payer
// plus valid-start form the uniqueness key the node uses for duplicate
// detection; submitting the same pair twice is idempotent from the
// caller's point of view.
type TransactionID struct {
	Payer      EntityID
	ValidStart Timestamp
	Nonce      *int32
	Scheduled  bool
}

// String renders "payer-seconds-nanos", the canonical form used when
// quoting a transaction ID back to the Ledger in a follow-up query.
func (id TransactionID) String() string {
	ts := id.ValidStart.Normalize()
	return fmt.Sprintf("%s-%d-%d", id.Payer, ts.Seconds, ts.Nanos)
}

// ParseTransactionID accepts both the dash-separated canonical form
// ("payer-seconds-nanos") and an "@"-separated "payer@seconds.nanos" form some
// Mirror responses use.
func ParseTransactionID(s string) (TransactionID, error) {
	s = strings.TrimSpace(s)
	if at := strings.Index(s, "@"); at >= 0 {
		payerStr := s[:at]
		tsStr := s[at+1:]
		payer, err := ParseEntityID(payerStr)
		if err != nil {
			return TransactionID{}, err
		}
		ts, err := ParseTimestamp(tsStr)
		if err != nil {
			return TransactionID{}, fmt.Errorf("ids: invalid valid-start in %q: %w", s, err)
		}
		return TransactionID{Payer: payer, ValidStart: ts}, nil
	}

	parts := strings.Split(s, "-")
	if len(parts) != 3 {
		return TransactionID{}, fmt.Errorf("ids: %q is not a payer-seconds-nanos transaction id", s)
	}
	// parts: [payer, seconds, nanos]
	payer, err := ParseEntityID(parts[0])
	if err != nil {
		return TransactionID{}, err
	}
	seconds, err := strconv.ParseInt(parts[1], 10, 64)
	if err != nil {
		return TransactionID{}, fmt.Errorf("ids: invalid valid-start seconds in %q: %w", s, err)
	}
	nanos, err := strconv.ParseInt(parts[2], 10, 64)
	if err != nil {
		return TransactionID{}, fmt.Errorf("ids: invalid valid-start nanos in %q: %w", s, err)
	}
	return TransactionID{Payer: payer, ValidStart: Timestamp{Seconds: seconds, Nanos: nanos}.Normalize()}, nil
}

// Equal reports whether two transaction identifiers name the same
// (payer, valid_start) uniqueness key, ignoring nonce/scheduled.
func (id TransactionID) Equal(other TransactionID) bool {
	a := id.ValidStart.Normalize()
	b := other.ValidStart.Normalize()
	return id.Payer == other.Payer && a == b
}
