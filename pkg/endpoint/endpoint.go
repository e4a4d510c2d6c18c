// Package endpoint re-exports the TCP address type for external callers.
package endpoint

import "wireline/internal/endpoint"

type Endpoint = endpoint.Endpoint

var (
	New   = endpoint.New
	Parse = endpoint.Parse
)
