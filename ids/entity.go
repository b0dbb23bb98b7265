// Package ids holds the Ledger's small value types: entity identifiers,
// tinybar amounts, nanosecond timestamps, and transaction identifiers. Every
// Ledger entity (account, token, topic, file, contract, schedule) shares
// the shard.realm.num shape modeled here.
package ids

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/distledger/ledger-go/wire"
)

// EntityID is the 3-tuple (shard, realm, num) shared by every Ledger
// entity. All three components are non-negative.
type EntityID struct {
	Shard uint64
	Realm uint64
	Num   uint64
}

// String renders the canonical "s.r.n" form.
func (id EntityID) String() string {
	return fmt.Sprintf("%d.%d.%d", id.Shard, id.Realm, id.Num)
}

// IsZero reports whether id is the zero-value identifier.
func (id EntityID) IsZero() bool {
	return id.Shard == 0 && id.Realm == 0 && id.Num == 0
}

// ParseEntityID parses a dotted "s.r.n" string.
func ParseEntityID(s string) (EntityID, error) {
	parts := strings.Split(strings.TrimSpace(s), ".")
	if len(parts) != 3 {
		return EntityID{}, fmt.Errorf("ids: %q is not a shard.realm.num identifier", s)
	}
	shard, err := strconv.ParseUint(parts[0], 10, 64)
	if err != nil {
		return EntityID{}, fmt.Errorf("ids: invalid shard in %q: %w", s, err)
	}
	realm, err := strconv.ParseUint(parts[1], 10, 64)
	if err != nil {
		return EntityID{}, fmt.Errorf("ids: invalid realm in %q: %w", s, err)
	}
	num, err := strconv.ParseUint(parts[2], 10, 64)
	if err != nil {
		return EntityID{}, fmt.Errorf("ids: invalid num in %q: %w", s, err)
	}
	return EntityID{Shard: shard, Realm: realm, Num: num}, nil
}

// WriteTo encodes id as an embedded message of three unsigned varint
// fields (shard=1, realm=2, num=3), the layout every Ledger entity-ID
// field uses on the wire.
func (id EntityID) WriteTo(w *wire.Writer, fieldNumber int) {
	w.WriteMessage(fieldNumber, func(inner *wire.Writer) {
		inner.WriteUvarint(1, id.Shard)
		inner.WriteUvarint(2, id.Realm)
		inner.WriteUvarint(3, id.Num)
	})
}

// DecodeEntityID decodes an EntityID from its embedded-message bytes.
func DecodeEntityID(buf []byte) (EntityID, error) {
	var id EntityID
	fields, err := wire.Fields(buf)
	if err != nil {
		return EntityID{}, err
	}
	for _, f := range fields {
		switch f.Number {
		case 1:
			id.Shard = f.Varint
		case 2:
			id.Realm = f.Varint
		case 3:
			id.Num = f.Varint
		}
	}
	return id, nil
}
