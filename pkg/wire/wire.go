// Package wire re-exports the framing and codec types for callers wanting
// a custom Codec.
package wire

import "wireline/internal/wire"

type (
	Codec    = wire.Codec
	Protocol = wire.Protocol
)

const (
	ProtocolVersion = wire.ProtocolVersion
	MaxPayloadSize  = wire.MaxPayloadSize
)

type BinaryCodec = wire.BinaryCodec

var NewProtocol = wire.NewProtocol
