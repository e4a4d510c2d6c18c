// Package reconnector re-exports the client auto-reconnect auxiliary.
package reconnector

import (
	_client "wireline/internal/client"
	_reconnector "wireline/internal/reconnector"
)

type Reconnector = _reconnector.Reconnector

// New builds a Reconnector that periodically reconnects c while it is
// Disconnected. Call Start to begin.
func New(c *_client.Client) *Reconnector {
	return _reconnector.New(c)
}
