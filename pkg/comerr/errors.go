package comerr

import "errors"

const (
	NotImplemented          = "function/feature not implemented"
	SetReadTimeout          = "failed to set read timeout"
	SetSocketOption         = "failed to set socket option"
	ConnectionAborted       = "connection attempt aborted"
	ConnectTimeout          = "could not connect within timeout period"
	DisconnectTimeout       = "could not disconnect within timeout period"
	AddressEmpty            = "address is empty"
	AddressFormatUnknown    = "address does not match a known format"
	ClientAlreadyConnected  = "client is already connected"
	ClientNotConnected      = "client is not connected"
	ServerAlreadyRunning    = "server is already running"
	ServerNotRunning        = "server is not running"
	ChannelNotConnected     = "channel is not connected"
	ConnectionLimitReached  = "connection limit reached"
	FrameTooLarge           = "frame payload exceeds the maximum allowed size"
	ProtocolVersionMismatch = "frame protocol version does not match"
	InvalidMessageFormat    = "message could not be instantiated from bytes"
	InvalidMessagePayload   = "message payload is missing or corrupt"
	RemoteInvocationFailed  = "remote invocation returned an exception"
	WireProtocolInUse       = "wire protocol cannot be changed while connected or running"
)

var (
	ErrNotImplemented          = errors.New(NotImplemented)
	ErrSetReadTimeout          = errors.New(SetReadTimeout)
	ErrSetSocketOption         = errors.New(SetSocketOption)
	ErrConnectionAborted       = errors.New(ConnectionAborted)
	ErrConnectTimeout          = errors.New(ConnectTimeout)
	ErrDisconnectTimeout       = errors.New(DisconnectTimeout)
	ErrAddressEmpty            = errors.New(AddressEmpty)
	ErrAddressFormatUnknown    = errors.New(AddressFormatUnknown)
	ErrClientAlreadyConnected  = errors.New(ClientAlreadyConnected)
	ErrClientNotConnected      = errors.New(ClientNotConnected)
	ErrServerAlreadyRunning    = errors.New(ServerAlreadyRunning)
	ErrServerNotRunning        = errors.New(ServerNotRunning)
	ErrChannelNotConnected     = errors.New(ChannelNotConnected)
	ErrConnectionLimitReached  = errors.New(ConnectionLimitReached)
	ErrFrameTooLarge           = errors.New(FrameTooLarge)
	ErrProtocolVersionMismatch = errors.New(ProtocolVersionMismatch)
	ErrInvalidMessageFormat    = errors.New(InvalidMessageFormat)
	ErrInvalidMessagePayload   = errors.New(InvalidMessagePayload)
	ErrRemoteInvocationFailed  = errors.New(RemoteInvocationFailed)
	ErrWireProtocolInUse       = errors.New(WireProtocolInUse)
)
