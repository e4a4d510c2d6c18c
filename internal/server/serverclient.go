package server

import (
	"sync"

	"wireline/internal/channel"
	"wireline/internal/message"
	"wireline/internal/socket"
)

// Client is the server-side peer object wrapping one accepted channel.
// It auto-replies to pings, the sole mechanism the client's RTT subsystem
// relies on.
type Client struct {
	id socket.ConnectionID
	ch *channel.Channel

	handlersMu sync.Mutex
	handlers   []func(message.Message)
}

func newClient(id socket.ConnectionID, ch *channel.Channel) *Client {
	c := &Client{id: id, ch: ch}
	ch.OnMessage(c.handleReceived)
	return c
}

// ID returns the identifier assigned at accept time.
func (c *Client) ID() socket.ConnectionID {
	return c.id
}

// RemoteAddr returns the peer's address.
func (c *Client) RemoteAddr() string {
	return c.ch.RemoteAddr().String()
}

// SendMessage delegates to the underlying channel.
func (c *Client) SendMessage(m message.Message) error {
	return c.ch.Send(m)
}

// Disconnect closes the underlying channel.
func (c *Client) Disconnect() error {
	return c.ch.Close(nil)
}

// OnMessageReceived registers a handler for every non-ping message this
// peer sends (auto-replied pings never reach it).
func (c *Client) OnMessageReceived(h func(message.Message)) {
	c.handlersMu.Lock()
	c.handlers = append(c.handlers, h)
	c.handlersMu.Unlock()
}

func (c *Client) handleReceived(m message.Message) {
	if pm, isPing := m.(message.PingMessage); isPing {
		if pm.Envelope().ReplyTo() == "" {
			_ = c.ch.Send(message.NewPongMessage(pm.Envelope().ID()))
		}
		return
	}

	c.handlersMu.Lock()
	handlers := append([]func(message.Message){}, c.handlers...)
	c.handlersMu.Unlock()

	for _, h := range handlers {
		h(m)
	}
}
