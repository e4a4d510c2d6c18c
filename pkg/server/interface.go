package server

import (
	_config "wireline/internal/config/server"
	_server "wireline/internal/server"
)

// Server accepts connections on a bound endpoint and tracks each peer.
type Server = _server.Server

// Client is the server-side peer object.
type Client = _server.Client

// Config is the server's configuration record.
type Config = _config.Config

// New builds a Server around cfg. It does not start listening.
func New(cfg Config) *Server {
	return _server.New(cfg)
}
