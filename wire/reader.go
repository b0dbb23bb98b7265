package wire

// Field is one decoded (tag, payload) pair. For WireVarint, Varint carries
// the raw decoded value (callers apply zigzag/sign interpretation
// themselves, since the wire format alone can't distinguish the two).
// For WireBytes, Bytes is a subslice of the original buffer — callers that
// retain it beyond the decode call should copy it.
type Field struct {
	Number  int
	Type    WireType
	Varint  uint64
	Bytes   []byte
}

// Reader walks the fields of a single encoded message in order.
type Reader struct {
	buf []byte
	pos int
}

// NewReader wraps buf for sequential field reads. buf is not copied; the
// caller must keep it alive and unmodified for the Reader's lifetime.
func NewReader(buf []byte) *Reader {
	return &Reader{buf: buf}
}

// Done reports whether every byte of the message has been consumed.
func (r *Reader) Done() bool {
	return r.pos >= len(r.buf)
}

// Next decodes the next field. ok is false once Done(); err is non-nil on
// malformed input (truncation, varint overflow, or an unsupported wire
// type).
func (r *Reader) Next() (field Field, ok bool, err error) {
	if r.Done() {
		return Field{}, false, nil
	}

	tag, next, err := readVarint(r.buf, r.pos)
	if err != nil {
		return Field{}, false, err
	}
	fieldNumber, wt := decodeTag(tag)
	r.pos = next

	switch wt {
	case WireVarint:
		v, next, err := readVarint(r.buf, r.pos)
		if err != nil {
			return Field{}, false, err
		}
		r.pos = next
		return Field{Number: fieldNumber, Type: wt, Varint: v}, true, nil

	case WireBytes:
		length, next, err := readVarint(r.buf, r.pos)
		if err != nil {
			return Field{}, false, err
		}
		end := next + int(length)
		if length > uint64(len(r.buf)) || end < next || end > len(r.buf) {
			return Field{}, false, errUnexpectedEnd()
		}
		r.pos = end
		return Field{Number: fieldNumber, Type: wt, Bytes: r.buf[next:end]}, true, nil

	default:
		return Field{}, false, errUnsupportedWireType(wt)
	}
}

// Int64 interprets a WireVarint field's raw value as plain two's-complement.
func (f Field) Int64() int64 {
	return int64(f.Varint)
}

// ZigzagInt64 interprets a WireVarint field's raw value as zigzag-encoded.
func (f Field) ZigzagInt64() int64 {
	return zigzagDecode(f.Varint)
}

// Bool interprets a WireVarint field's raw value as a boolean.
func (f Field) Bool() bool {
	return f.Varint != 0
}

// FindFirst scans buf for the first top-level field with the given number,
// skipping everything else. Used by query decoders to navigate to the
// named inner-response message without materializing the whole wrapper.
func FindFirst(buf []byte, fieldNumber int) (Field, bool, error) {
	r := NewReader(buf)
	for {
		f, ok, err := r.Next()
		if err != nil {
			return Field{}, false, err
		}
		if !ok {
			return Field{}, false, nil
		}
		if f.Number == fieldNumber {
			return f, true, nil
		}
	}
}

// Fields decodes every top-level field in buf into a slice, for decoders
// that need to look at several fields of the same message.
func Fields(buf []byte) ([]Field, error) {
	r := NewReader(buf)
	var fields []Field
	for {
		f, ok, err := r.Next()
		if err != nil {
			return nil, err
		}
		if !ok {
			return fields, nil
		}
		fields = append(fields, f)
	}
}
