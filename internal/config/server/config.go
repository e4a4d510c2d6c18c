package server

import (
	"wireline/internal/endpoint"
	"wireline/internal/socket"
)

const (
	defaultClientConnectionLimit = -1  // <0 means 4096, 0 means unlimited
	defaultErrorChanBufferSize   = 100 // error count
)

type Config struct {
	Endpoint              endpoint.Endpoint
	ClientConnectionLimit int
	ErrorChanBufferSize   int
	SocketOptions         socket.Options
}

func NewConfig(host string, port uint16) Config {
	return Config{
		Endpoint:              endpoint.New(host, port),
		ClientConnectionLimit: defaultClientConnectionLimit,
		ErrorChanBufferSize:   defaultErrorChanBufferSize,
		SocketOptions:         socket.DefaultOptions(),
	}
}
