package socket

import "sync/atomic"

// ConnectionID identifies a server-side peer.
type ConnectionID uint64

var nextConnectionID atomic.Uint64

// NewConnectionID returns a fresh, monotonically increasing identifier.
func NewConnectionID() ConnectionID {
	return ConnectionID(nextConnectionID.Add(1))
}
