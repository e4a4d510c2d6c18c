// Package client drives one communication channel from the caller's side:
// dialing, the ping/RTT subsystem, and the connect/disconnect/send
// surface.
package client

import (
	"net"
	"sync"
	"sync/atomic"
	"time"

	"wireline/internal/channel"
	"wireline/internal/comobj"
	"wireline/internal/config"
	cfgclient "wireline/internal/config/client"
	"wireline/internal/message"
	"wireline/internal/socket"
	"wireline/internal/wire"
	"wireline/pkg/comerr"
)

// Client drives a single channel to a configured remote endpoint. It is
// safe for concurrent use: Connect/Disconnect are serialized by an
// internal mutex, and handler slices are guarded independently.
type Client struct {
	config.DefaultConfigurable[cfgclient.Config]
	comobj.DefaultConnectable

	codec wire.Codec

	mu sync.Mutex
	ch *channel.Channel

	pendingPings sync.Map // map[string]time.Time
	rtt          *rttTracker

	pingIntervalMs atomic.Int64
	pingStop       chan struct{}
	pingDone       chan struct{}

	handlersMu            sync.Mutex
	connectedHandlers     []func()
	disconnectedHandlers  []func(error)
	messageHandlers       []func(message.Message)
	sentHandlers          []func(message.Message)
	pingCompletedHandlers []func(rttMs int64)
}

// New builds a Client around cfg. It does not connect.
func New(cfg cfgclient.Config) *Client {
	c := &Client{codec: wire.BinaryCodec{}, rtt: newRTTTracker()}
	c.SetConfig(cfg)
	c.pingIntervalMs.Store(int64(cfg.PingIntervalMs))
	return c
}

func (c *Client) OnConnected(h func())                    { c.addHandler(&c.connectedHandlers, h) }
func (c *Client) OnDisconnected(h func(error))             { c.addDisconnectHandler(h) }
func (c *Client) OnMessageReceived(h func(message.Message)) { c.addMessageHandler(&c.messageHandlers, h) }
func (c *Client) OnMessageSent(h func(message.Message))     { c.addMessageHandler(&c.sentHandlers, h) }
func (c *Client) OnPingCompleted(h func(rttMs int64)) {
	c.handlersMu.Lock()
	c.pingCompletedHandlers = append(c.pingCompletedHandlers, h)
	c.handlersMu.Unlock()
}

func (c *Client) addHandler(slice *[]func(), h func()) {
	c.handlersMu.Lock()
	*slice = append(*slice, h)
	c.handlersMu.Unlock()
}

func (c *Client) addDisconnectHandler(h func(error)) {
	c.handlersMu.Lock()
	c.disconnectedHandlers = append(c.disconnectedHandlers, h)
	c.handlersMu.Unlock()
}

func (c *Client) addMessageHandler(slice *[]func(message.Message), h func(message.Message)) {
	c.handlersMu.Lock()
	*slice = append(*slice, h)
	c.handlersMu.Unlock()
}

// WireProtocol returns the codec used to encode and decode messages on
// this client's channel.
func (c *Client) WireProtocol() wire.Codec {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.codec
}

// SetWireProtocol swaps the codec used for future connections. It fails
// with a state error while Connected, since the channel's Protocol is
// built once at Connect time and cannot be swapped underneath a live
// connection.
func (c *Client) SetWireProtocol(codec wire.Codec) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.IsConnected() {
		return comerr.ErrWireProtocolInUse
	}
	if codec == nil {
		codec = wire.BinaryCodec{}
	}
	c.codec = codec
	return nil
}

// PingInterval returns the current ping period.
func (c *Client) PingInterval() time.Duration {
	return time.Duration(c.pingIntervalMs.Load()) * time.Millisecond
}

// SetPingInterval changes the ping period; observed on the timer's next
// tick, mutable while connected.
func (c *Client) SetPingInterval(d time.Duration) {
	c.pingIntervalMs.Store(d.Milliseconds())
}

// LastPingRtt is nil until the first ping/reply cycle completes.
func (c *Client) LastPingRtt() *int64 {
	v, ok := c.rtt.last()
	if !ok {
		return nil
	}
	return &v
}

// AveragePingRtt is nil until the first ping/reply cycle completes, in
// lockstep with LastPingRtt.
func (c *Client) AveragePingRtt() *int64 {
	v, ok := c.rtt.average()
	if !ok {
		return nil
	}
	return &v
}

// Connect dials the configured endpoint, starts the channel and ping
// timer, and emits Connected. Only valid when Disconnected.
func (c *Client) Connect() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.IsConnected() {
		return comerr.ErrClientAlreadyConnected
	}

	cfg := c.Config()

	addr, err := cfg.Endpoint.Resolve()
	if err != nil {
		return err
	}

	dialer := net.Dialer{Timeout: time.Duration(cfg.ConnectTimeoutMs) * time.Millisecond}
	conn, err := dialer.Dial("tcp4", addr.String())
	if err != nil {
		return comerr.Wrap(err, "dial")
	}

	tcpConn, ok := conn.(*net.TCPConn)
	if !ok {
		_ = conn.Close()
		return comerr.ErrConnectionAborted
	}

	if err = socket.Apply(tcpConn, cfg.SocketOptions); err != nil {
		_ = tcpConn.Close()
		return comerr.Wrap(err, "apply socket options")
	}

	ch := channel.New(tcpConn, c.codec, cfg.SocketOptions)
	ch.OnMessage(c.handleReceived)
	ch.OnDisconnect(c.handleChannelDisconnect)

	c.pendingPings.Range(func(k, _ any) bool {
		c.pendingPings.Delete(k)
		return true
	})
	c.rtt = newRTTTracker()

	c.ch = ch
	ch.Start()

	c.SetIsConnected(true)
	c.SetConnectTime(time.Now())

	c.pingStop = make(chan struct{})
	c.pingDone = make(chan struct{})
	go c.pingLoop(c.pingStop, c.pingDone)

	c.fireConnected()

	return nil
}

// Disconnect is a no-op if not Connected; otherwise it asks the channel
// to close, which drives handleChannelDisconnect.
func (c *Client) Disconnect() error {
	c.mu.Lock()
	ch := c.ch
	connected := c.IsConnected()
	c.mu.Unlock()

	if !connected || ch == nil {
		return nil
	}

	return ch.Close(nil)
}

// SendMessage fails with a state error if not Connected; otherwise it
// delegates to the channel.
func (c *Client) SendMessage(m message.Message) error {
	c.mu.Lock()
	ch := c.ch
	connected := c.IsConnected()
	c.mu.Unlock()

	if !connected || ch == nil {
		return comerr.ErrClientNotConnected
	}

	if pm, isPing := m.(message.PingMessage); isPing && pm.Envelope().ReplyTo() == "" {
		c.pendingPings.Store(pm.Envelope().ID(), time.Now())
	}

	if err := ch.Send(m); err != nil {
		return err
	}

	c.fireSent(m)
	return nil
}

func (c *Client) handleChannelDisconnect(cause error) {
	c.mu.Lock()
	if c.pingStop != nil {
		close(c.pingStop)
		<-c.pingDone
		c.pingStop = nil
		c.pingDone = nil
	}
	c.pendingPings.Range(func(k, _ any) bool {
		c.pendingPings.Delete(k)
		return true
	})
	c.SetIsConnected(false)
	c.SetDisconnectTime(time.Now())
	c.mu.Unlock()

	c.fireDisconnected(cause)
}

// handleReceived filters ping traffic: pings never reach the application;
// a matched pong updates the RTT tracker and fires PingCompleted;
// everything else is raised unchanged.
func (c *Client) handleReceived(m message.Message) {
	if pm, isPing := m.(message.PingMessage); isPing {
		replyTo := pm.Envelope().ReplyTo()
		if replyTo != "" {
			if sentAt, found := c.pendingPings.LoadAndDelete(replyTo); found {
				rttMs := time.Since(sentAt.(time.Time)).Milliseconds()
				c.rtt.record(rttMs)
				c.firePingCompleted(rttMs)
			}
		}
		return
	}

	c.fireMessageReceived(m)
}

// pingLoop ticks at PingInterval, sending a fresh ping only when the
// channel has seen no traffic in the last 60 seconds.
func (c *Client) pingLoop(stop, done chan struct{}) {
	defer close(done)

	for {
		timer := time.NewTimer(c.PingInterval())
		select {
		case <-stop:
			timer.Stop()
			return
		case <-timer.C:
		}

		c.mu.Lock()
		ch := c.ch
		c.mu.Unlock()

		if ch == nil || ch.IsClosed() {
			continue
		}
		if !ch.IsIdle() {
			continue // recent traffic, skip this tick
		}

		// Send failures are swallowed, never propagated out of the timer.
		_ = c.SendMessage(message.NewPingMessage())
	}
}

func (c *Client) fireConnected() {
	c.handlersMu.Lock()
	handlers := append([]func(){}, c.connectedHandlers...)
	c.handlersMu.Unlock()
	for _, h := range handlers {
		h()
	}
}

func (c *Client) fireDisconnected(cause error) {
	c.handlersMu.Lock()
	handlers := append([]func(error){}, c.disconnectedHandlers...)
	c.handlersMu.Unlock()
	for _, h := range handlers {
		h(cause)
	}
}

func (c *Client) fireMessageReceived(m message.Message) {
	c.handlersMu.Lock()
	handlers := append([]func(message.Message){}, c.messageHandlers...)
	c.handlersMu.Unlock()
	for _, h := range handlers {
		h(m)
	}
}

func (c *Client) fireSent(m message.Message) {
	c.handlersMu.Lock()
	handlers := append([]func(message.Message){}, c.sentHandlers...)
	c.handlersMu.Unlock()
	for _, h := range handlers {
		h(m)
	}
}

func (c *Client) firePingCompleted(rttMs int64) {
	c.handlersMu.Lock()
	handlers := append([]func(int64){}, c.pingCompletedHandlers...)
	c.handlersMu.Unlock()
	for _, h := range handlers {
		h(rttMs)
	}
}
