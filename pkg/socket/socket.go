// Package socket re-exports the transport tuning knobs.
package socket

import "wireline/internal/socket"

type (
	Options      = socket.Options
	ConnectionID = socket.ConnectionID
)

var DefaultOptions = socket.DefaultOptions
