package server

import _config "wireline/internal/config/server"

// NewConfig builds a server Config for host:port with this module's
// default socket and connection-limit settings. The server listens on port
// on all local interfaces.
func NewConfig(host string, port uint16) _config.Config {
	return _config.NewConfig(host, port)
}
