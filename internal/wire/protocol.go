// Package wire implements the framing and serialization layer: a
// length-prefixed frame around a versioned, codec-driven payload.
package wire

import (
	"encoding/binary"

	"wireline/internal/message"
	"wireline/pkg/comerr"
)

const (
	// ProtocolVersion is the single byte following the length prefix.
	// A frame carrying any other value is unrecoverable.
	ProtocolVersion byte = 0x01

	// MaxPayloadSize is the largest payload a frame may declare (128 MiB).
	MaxPayloadSize = 128 * 1024 * 1024

	frameHeaderSize = 5 // 4-byte length + 1-byte version
)

// Protocol frames and serializes messages for one connection. It owns an
// accumulator holding the unconsumed tail of the byte stream. It is not
// thread-safe: a Channel calls CreateMessages only from its single receive
// goroutine.
type Protocol struct {
	codec Codec
	acc   []byte
}

// NewProtocol builds a Protocol around codec, defaulting to BinaryCodec
// when codec is nil.
func NewProtocol(codec Codec) *Protocol {
	if codec == nil {
		codec = BinaryCodec{}
	}
	return &Protocol{codec: codec}
}

// GetBytes serializes m and prepends the length prefix and version byte.
func (p *Protocol) GetBytes(m message.Message) ([]byte, error) {
	payload, err := p.codec.Encode(m)
	if err != nil {
		return nil, comerr.Wrap(err, "encode message payload")
	}
	if len(payload) > MaxPayloadSize {
		return nil, comerr.ErrFrameTooLarge
	}

	frame := make([]byte, frameHeaderSize+len(payload))
	binary.BigEndian.PutUint32(frame[0:4], uint32(len(payload)))
	frame[4] = ProtocolVersion
	copy(frame[frameHeaderSize:], payload)

	return frame, nil
}

// Reset discards the accumulator. CreateMessages calls it on a fatal frame
// error; a (re)connect builds a new Channel and so a new, empty Protocol.
func (p *Protocol) Reset() {
	p.acc = nil
}

// CreateMessages appends chunk to the accumulator, then extracts every
// whole frame currently available, returning the decoded messages in
// order. Any partial frame remains buffered for the next call.
//
// A malformed length prefix or version byte, or a codec decode failure,
// is fatal: the accumulator is reset before the error is returned, so a
// bad frame can't poison whatever bytes follow it.
func (p *Protocol) CreateMessages(chunk []byte) ([]message.Message, error) {
	if len(chunk) > 0 {
		p.acc = append(p.acc, chunk...)
	}

	var out []message.Message

	for {
		if len(p.acc) < frameHeaderSize {
			break
		}

		length := binary.BigEndian.Uint32(p.acc[0:4])
		if length > MaxPayloadSize {
			p.Reset()
			return out, comerr.ErrFrameTooLarge
		}

		version := p.acc[4]
		if version != ProtocolVersion {
			p.Reset()
			return out, comerr.ErrProtocolVersionMismatch
		}

		total := frameHeaderSize + int(length)
		if len(p.acc) < total {
			break
		}

		payload := p.acc[frameHeaderSize:total]
		msg, err := p.codec.Decode(payload)
		if err != nil {
			p.Reset()
			return out, comerr.Wrap(err, "decode frame payload")
		}

		out = append(out, msg)

		remaining := make([]byte, len(p.acc)-total)
		copy(remaining, p.acc[total:])
		p.acc = remaining
	}

	return out, nil
}
