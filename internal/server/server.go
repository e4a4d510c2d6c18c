// Package server owns a listener and the set of connected server-side
// peers.
package server

import (
	"fmt"
	"net"
	"sync"

	"wireline/internal/channel"
	"wireline/internal/comerr"
	"wireline/internal/comobj"
	"wireline/internal/config"
	cfgserver "wireline/internal/config/server"
	"wireline/internal/listener"
	"wireline/internal/socket"
	"wireline/internal/wire"
	pkgcomerr "wireline/pkg/comerr"
)

// Server accepts connections on a bound endpoint and tracks each as a
// Client until it disconnects.
type Server struct {
	config.DefaultConfigurable[cfgserver.Config]
	comerr.DefaultProducer
	comobj.DefaultRunnable

	codecMu      sync.Mutex
	codecFactory func() wire.Codec
	l            *listener.Listener

	clients sync.Map // map[socket.ConnectionID]*Client

	handlersMu                 sync.Mutex
	clientConnectedHandlers    []func(*Client)
	clientDisconnectedHandlers []func(*Client)
}

// New builds a Server around cfg. It does not start listening.
func New(cfg cfgserver.Config) *Server {
	s := &Server{codecFactory: func() wire.Codec { return wire.BinaryCodec{} }}
	s.SetConfig(cfg)
	return s
}

// WireProtocolFactory returns the factory used to build a codec for each
// newly accepted connection.
func (s *Server) WireProtocolFactory() func() wire.Codec {
	s.codecMu.Lock()
	defer s.codecMu.Unlock()
	return s.codecFactory
}

// SetWireProtocolFactory swaps the codec factory used for future accepted
// connections. It fails with a state error while the server is running,
// since already-accepted channels keep the codec they were built with.
func (s *Server) SetWireProtocolFactory(factory func() wire.Codec) error {
	s.codecMu.Lock()
	defer s.codecMu.Unlock()

	if s.IsRunning() {
		return pkgcomerr.ErrWireProtocolInUse
	}
	if factory == nil {
		factory = func() wire.Codec { return wire.BinaryCodec{} }
	}
	s.codecFactory = factory
	return nil
}

// OnClientConnected registers a handler fired once a newly accepted
// connection has been wrapped and tracked.
func (s *Server) OnClientConnected(h func(*Client)) {
	s.handlersMu.Lock()
	s.clientConnectedHandlers = append(s.clientConnectedHandlers, h)
	s.handlersMu.Unlock()
}

// OnClientDisconnected registers a handler fired once a tracked client's
// channel has closed and it has been removed from the client map.
func (s *Server) OnClientDisconnected(h func(*Client)) {
	s.handlersMu.Lock()
	s.clientDisconnectedHandlers = append(s.clientDisconnectedHandlers, h)
	s.handlersMu.Unlock()
}

// Start binds the configured endpoint's port on all local interfaces and
// begins accepting connections. The endpoint's host is resolved only to
// validate the config.
func (s *Server) Start() error {
	if s.IsRunning() {
		return pkgcomerr.ErrServerAlreadyRunning
	}

	cfg := s.Config()
	s.ConfigureErrors(cfg.ErrorChanBufferSize)

	addr, err := cfg.Endpoint.Resolve()
	if err != nil {
		return err
	}
	addr = &net.TCPAddr{Port: addr.Port}

	limit := cfg.ClientConnectionLimit
	if limit < 0 {
		limit = 4096
	}

	s.l = listener.New(cfg.SocketOptions)
	if err = s.l.Start(addr, cfg.ErrorChanBufferSize, limit); err != nil {
		return err
	}

	go s.acceptLoop(limit)
	go s.pumpListenerErrors()

	s.SetIsRunning(true)
	return nil
}

// Stop closes the listener and disconnects every tracked client.
func (s *Server) Stop() error {
	if !s.IsRunning() {
		return nil
	}

	err := s.l.Stop()

	s.clients.Range(func(_, v any) bool {
		_ = v.(*Client).Disconnect()
		return true
	})

	s.CloseErrors()
	s.SetIsRunning(false)
	return err
}

// Clients returns a point-in-time snapshot of connected peers.
func (s *Server) Clients() []*Client {
	var out []*Client
	s.clients.Range(func(_, v any) bool {
		out = append(out, v.(*Client))
		return true
	})
	return out
}

// Addr returns the bound local address once Start has succeeded.
func (s *Server) Addr() net.Addr {
	if s.l == nil {
		return nil
	}
	return s.l.Addr()
}

// ClientCount returns the number of currently tracked peers.
func (s *Server) ClientCount() int {
	n := 0
	s.clients.Range(func(_, _ any) bool {
		n++
		return true
	})
	return n
}

func (s *Server) acceptLoop(limit int) {
	for conn := range s.l.Accepted() {
		if limit > 0 && s.ClientCount() >= limit {
			s.SendError(fmt.Errorf("%w: %d", pkgcomerr.ErrConnectionLimitReached, s.ClientCount()))
			_ = conn.Close()
			continue
		}

		ch := channel.New(conn, s.WireProtocolFactory()(), s.Config().SocketOptions)
		sc := newClient(socket.NewConnectionID(), ch)

		ch.OnDisconnect(func(error) { s.handleClientDisconnect(sc) })

		s.clients.Store(sc.ID(), sc)
		ch.Start()

		s.fireClientConnected(sc)
	}
}

func (s *Server) pumpListenerErrors() {
	for err := range s.l.Errors() {
		s.SendError(err)
	}
}

func (s *Server) handleClientDisconnect(sc *Client) {
	s.clients.Delete(sc.ID())
	s.fireClientDisconnected(sc)
}

func (s *Server) fireClientConnected(sc *Client) {
	s.handlersMu.Lock()
	handlers := append([]func(*Client){}, s.clientConnectedHandlers...)
	s.handlersMu.Unlock()
	for _, h := range handlers {
		h(sc)
	}
}

func (s *Server) fireClientDisconnected(sc *Client) {
	s.handlersMu.Lock()
	handlers := append([]func(*Client){}, s.clientDisconnectedHandlers...)
	s.handlersMu.Unlock()
	for _, h := range handlers {
		h(sc)
	}
}
