package client

import _config "wireline/internal/config/client"

// NewConfig builds a client Config for host:port with this module's
// default timeouts and socket settings.
func NewConfig(host string, port uint16) _config.Config {
	return _config.NewConfig(host, port)
}
