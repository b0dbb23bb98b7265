package mirror

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/ethereum/go-ethereum/common/hexutil"
)

// flexUint64 accepts a Mirror numeric field that may arrive as either a
// JSON number or a quoted string; Mirror nodes commonly quote fields
// that can exceed a JSON number's safe integer range.
type flexUint64 uint64

func (f *flexUint64) UnmarshalJSON(data []byte) error {
	if len(data) == 0 {
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		if s == "" {
			*f = 0
			return nil
		}
		v, err := strconv.ParseUint(s, 10, 64)
		if err != nil {
			return fmt.Errorf("mirror: invalid numeric string %q: %w", s, err)
		}
		*f = flexUint64(v)
		return nil
	}
	var v uint64
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*f = flexUint64(v)
	return nil
}

// flexInt64 is flexUint64's signed counterpart, for fields like tinybar
// transfer amounts that may be negative.
type flexInt64 int64

func (f *flexInt64) UnmarshalJSON(data []byte) error {
	if len(data) == 0 {
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		if s == "" {
			*f = 0
			return nil
		}
		v, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return fmt.Errorf("mirror: invalid numeric string %q: %w", s, err)
		}
		*f = flexInt64(v)
		return nil
	}
	var v int64
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*f = flexInt64(v)
	return nil
}

// decodeFlexBytes decodes a byte-valued field that may be base64 or
// "0x"-prefixed hex. Different Mirror fields use different conventions,
// so the caller names which one the specific field uses via preferHex;
// a value that starts with "0x" is decoded as hex even when preferHex is
// false.
func decodeFlexBytes(s string, preferHex bool) ([]byte, error) {
	if s == "" {
		return nil, nil
	}
	if preferHex || strings.HasPrefix(s, "0x") {
		return decodeHexField(s)
	}
	return base64.StdEncoding.DecodeString(s)
}

func decodeHexField(s string) ([]byte, error) {
	if !strings.HasPrefix(s, "0x") {
		s = "0x" + s
	}
	out, err := hexutil.Decode(s)
	if err != nil {
		return nil, fmt.Errorf("mirror: invalid hex field %q: %w", s, err)
	}
	return out, nil
}
