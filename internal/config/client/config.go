package client

import (
	"wireline/internal/endpoint"
	"wireline/internal/socket"
)

const (
	defaultConnectTimeoutMs = 15000 // how long to wait for the server to accept
	defaultPingIntervalMs   = 30000 // spacing between keepalive pings
)

type Config struct {
	Endpoint         endpoint.Endpoint
	ConnectTimeoutMs int
	PingIntervalMs   int
	SocketOptions    socket.Options
}

func NewConfig(host string, port uint16) Config {
	return Config{
		Endpoint:         endpoint.New(host, port),
		ConnectTimeoutMs: defaultConnectTimeoutMs,
		PingIntervalMs:   defaultPingIntervalMs,
		SocketOptions:    socket.DefaultOptions(),
	}
}
