// Package endpoint identifies the address a listener binds to or a client
// dials.
package endpoint

import (
	"fmt"
	"net"
	"strconv"
	"strings"

	"wireline/pkg/comerr"
)

// Endpoint is a TCP host/port pair: host is an IPv4/IPv6 literal or name,
// port is 1-65535.
type Endpoint struct {
	Host string
	Port uint16
}

// New builds an Endpoint from a host and port.
func New(host string, port uint16) Endpoint {
	return Endpoint{Host: host, Port: port}
}

// String renders the endpoint as "host:port".
func (e Endpoint) String() string {
	return fmt.Sprintf("%s:%d", e.Host, e.Port)
}

// Resolve turns the endpoint into a *net.TCPAddr suitable for dialing or
// binding.
func (e Endpoint) Resolve() (*net.TCPAddr, error) {
	if e.Port < 1 {
		return nil, comerr.ErrAddressFormatUnknown
	}
	addr, err := net.ResolveTCPAddr("tcp", e.String())
	if err != nil {
		return nil, comerr.Wrap(err, "resolve tcp address")
	}
	return addr, nil
}

// Parse splits a "host:port" address into an Endpoint, defaulting an empty
// host to all interfaces (0.0.0.0).
func Parse(address string) (Endpoint, error) {
	address = strings.TrimSpace(address)
	if address == "" {
		return Endpoint{}, comerr.ErrAddressEmpty
	}

	host, portStr, err := net.SplitHostPort(address)
	if err != nil {
		return Endpoint{}, comerr.Wrap(err, "split host and port")
	}

	port, err := strconv.ParseUint(portStr, 10, 16)
	if err != nil || port < 1 {
		return Endpoint{}, comerr.ErrAddressFormatUnknown
	}

	if host == "" {
		host = "0.0.0.0"
	}

	return Endpoint{Host: host, Port: uint16(port)}, nil
}
