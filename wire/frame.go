package wire

import (
	"bytes"
	"encoding/binary"
	"strconv"
	"strings"
)

// frameHeaderLen is the flag byte plus the 4-byte big-endian length prefix
// that precedes every frame's payload.
const frameHeaderLen = 5

// trailerFlag is the high bit of the flag byte; when set the frame carries
// trailer metadata (grpc-status/grpc-message) instead of a data payload.
const trailerFlag = 0x80

// EncodeDataFrame wraps payload as a single data frame: flag 0x00, a
// 4-byte big-endian length, then the payload itself.
func EncodeDataFrame(payload []byte) []byte {
	out := make([]byte, frameHeaderLen+len(payload))
	out[0] = 0x00
	binary.BigEndian.PutUint32(out[1:5], uint32(len(payload)))
	copy(out[5:], payload)
	return out
}

// Trailer carries the status reported by a stream's trailer frame (or by
// trailers-in-headers on a response that never sent one).
type Trailer struct {
	GrpcStatus  int
	GrpcMessage string
	set         bool
}

// Set reports whether a trailer has actually been observed.
func (t Trailer) Set() bool { return t.set }

// ParseTrailerPayload parses the ASCII "name: value\r\n" pairs carried by a
// trailer frame's payload.
func ParseTrailerPayload(payload []byte) Trailer {
	t := Trailer{set: true}
	for _, line := range strings.Split(string(payload), "\r\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		name, value, found := strings.Cut(line, ":")
		if !found {
			continue
		}
		name = strings.ToLower(strings.TrimSpace(name))
		value = strings.TrimSpace(value)
		switch name {
		case "grpc-status":
			if n, err := strconv.Atoi(value); err == nil {
				t.GrpcStatus = n
			}
		case "grpc-message":
			t.GrpcMessage = value
		}
	}
	return t
}

// FrameParser incrementally decodes a stream of frames out of a byte
// stream that may be delivered in arbitrarily small chunks (as is typical
// of a chunked HTTP/1.1 response body). Feed() buffers incoming bytes and
// returns every complete frame currently available.
type FrameParser struct {
	buf bytes.Buffer
}

// DecodedFrame is one fully-buffered frame: either a data payload or a
// parsed trailer.
type DecodedFrame struct {
	IsTrailer bool
	Data      []byte
	Trailer   Trailer
}

// Feed appends chunk to the internal buffer and drains every frame whose
// header and payload are now fully present.
func (p *FrameParser) Feed(chunk []byte) ([]DecodedFrame, error) {
	p.buf.Write(chunk)
	return p.drain()
}

func (p *FrameParser) drain() ([]DecodedFrame, error) {
	var out []DecodedFrame
	for {
		raw := p.buf.Bytes()
		if len(raw) < frameHeaderLen {
			return out, nil
		}
		flag := raw[0]
		length := binary.BigEndian.Uint32(raw[1:5])
		total := frameHeaderLen + int(length)
		if len(raw) < total {
			return out, nil
		}
		payload := make([]byte, length)
		copy(payload, raw[frameHeaderLen:total])
		p.buf.Next(total)

		if flag&trailerFlag != 0 {
			out = append(out, DecodedFrame{IsTrailer: true, Trailer: ParseTrailerPayload(payload)})
		} else {
			out = append(out, DecodedFrame{Data: payload})
		}
	}
}
