package client

import (
	_client "wireline/internal/client"
	_config "wireline/internal/config/client"
)

// Client drives one connection to a configured server endpoint.
type Client = _client.Client

// Config is the client's configuration record.
type Config = _config.Config

// New builds a Client around cfg. It does not connect.
func New(cfg Config) *Client {
	return _client.New(cfg)
}
