package ids

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/distledger/ledger-go/wire"
)

const nanosPerSecond = int64(1_000_000_000)

// Timestamp is a (seconds, nanos) pair with nanosecond precision. Nanos is
// always normalized to [0, 1e9) by the constructors and decoders in this
// package; callers that build one by hand should call Normalize.
type Timestamp struct {
	Seconds int64
	Nanos   int64
}

// Normalize folds an out-of-range Nanos back into [0, 1e9), carrying the
// overflow/underflow into Seconds.
func (t Timestamp) Normalize() Timestamp {
	s, n := t.Seconds, t.Nanos
	if n >= nanosPerSecond {
		s += n / nanosPerSecond
		n = n % nanosPerSecond
	} else if n < 0 {
		borrow := (-n + nanosPerSecond - 1) / nanosPerSecond
		s -= borrow
		n += borrow * nanosPerSecond
	}
	return Timestamp{Seconds: s, Nanos: n}
}

// Before reports whether t is strictly less than other under lexicographic
// (seconds, nanos) ordering.
func (t Timestamp) Before(other Timestamp) bool {
	if t.Seconds != other.Seconds {
		return t.Seconds < other.Seconds
	}
	return t.Nanos < other.Nanos
}

// Advance returns the timestamp immediately following t: nanos incremented
// by one, carrying into seconds on overflow. Used to derive the next
// pagination cursor and the next topic-subscription start time.
func (t Timestamp) Advance() Timestamp {
	return Timestamp{Seconds: t.Seconds, Nanos: t.Nanos + 1}.Normalize()
}

// String renders the REST dotted form "S.NNNNNNNNN".
func (t Timestamp) String() string {
	n := t.Normalize()
	return fmt.Sprintf("%d.%09d", n.Seconds, n.Nanos)
}

// ParseTimestamp parses the dotted "S.NNNNNNNNN" REST form. The nanosecond
// component is left-padded or right-truncated to exactly nine digits
// before being interpreted, matching Mirror's formatting tolerance.
func ParseTimestamp(s string) (Timestamp, error) {
	s = strings.TrimSpace(s)
	secPart, nanoPart, found := strings.Cut(s, ".")
	seconds, err := strconv.ParseInt(secPart, 10, 64)
	if err != nil {
		return Timestamp{}, fmt.Errorf("ids: invalid timestamp seconds in %q: %w", s, err)
	}
	if !found {
		return Timestamp{Seconds: seconds}, nil
	}
	switch {
	case len(nanoPart) < 9:
		nanoPart = nanoPart + strings.Repeat("0", 9-len(nanoPart))
	case len(nanoPart) > 9:
		nanoPart = nanoPart[:9]
	}
	nanos, err := strconv.ParseInt(nanoPart, 10, 64)
	if err != nil {
		return Timestamp{}, fmt.Errorf("ids: invalid timestamp nanos in %q: %w", s, err)
	}
	return Timestamp{Seconds: seconds, Nanos: nanos}, nil
}

// WriteTo encodes t as an embedded message of two varint fields
// (seconds=1, nanos=2), the layout the wire form carries both components
// in.
func (t Timestamp) WriteTo(w *wire.Writer, fieldNumber int) {
	n := t.Normalize()
	w.WriteMessage(fieldNumber, func(inner *wire.Writer) {
		inner.WriteVarint(1, n.Seconds)
		inner.WriteVarint(2, n.Nanos)
	})
}

// DecodeTimestamp decodes a Timestamp from its embedded-message bytes,
// normalizing nanos into [0, 1e9) as it goes.
func DecodeTimestamp(buf []byte) (Timestamp, error) {
	var t Timestamp
	fields, err := wire.Fields(buf)
	if err != nil {
		return Timestamp{}, err
	}
	for _, f := range fields {
		switch f.Number {
		case 1:
			t.Seconds = f.Int64()
		case 2:
			t.Nanos = f.Int64()
		}
	}
	return t.Normalize(), nil
}
