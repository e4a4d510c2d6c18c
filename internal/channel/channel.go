// Package channel wraps one live TCP connection with the framing protocol
// and turns its byte stream into a stream of decoded messages delivered to
// registered handlers.
package channel

import (
	"net"
	"sync"
	"sync/atomic"
	"time"

	"wireline/internal/comobj"
	"wireline/internal/message"
	"wireline/internal/socket"
	"wireline/internal/wire"
	"wireline/pkg/comerr"
)

// defaultReceiveBufferSize is the size of the buffer the receive loop
// reads into. Overridable per Channel via SetReceiveBufferSize.
const defaultReceiveBufferSize = 4096

// MessageHandler is called once per decoded message, in receive order.
type MessageHandler func(message.Message)

// DisconnectHandler is called exactly once when the channel stops carrying
// traffic, whichever side or cause triggered it.
type DisconnectHandler func(err error)

// Channel is safe for concurrent Send calls: sendMu serializes the
// encode-then-write sequence so two goroutines calling Send at once can
// never interleave their frames or race each other's write deadline.
type Channel struct {
	comobj.DefaultIdleable

	conn              *net.TCPConn
	protocol          *wire.Protocol
	opts              socket.Options
	receiveBufferSize int

	sendMu sync.Mutex

	closeOnce sync.Once
	closed    atomic.Bool

	handlersMu         sync.Mutex
	messageHandlers    []MessageHandler
	disconnectHandlers []DisconnectHandler

	stopReceive chan struct{}
	receiveDone chan struct{}
}

// New wraps conn in a Channel using codec for payload (de)serialization and
// opts for the per-operation I/O deadlines. The receive loop is not started
// until Start is called.
func New(conn *net.TCPConn, codec wire.Codec, opts socket.Options) *Channel {
	c := &Channel{
		conn:              conn,
		protocol:          wire.NewProtocol(codec),
		opts:              opts,
		receiveBufferSize: defaultReceiveBufferSize,
		stopReceive:       make(chan struct{}),
		receiveDone:       make(chan struct{}),
	}
	// 60-second quiescence gate: the ping loop only fires when the channel
	// has seen no traffic for this long.
	c.SetIdleTimeout(60000)
	return c
}

// OnMessage registers a handler invoked for every decoded message.
func (c *Channel) OnMessage(h MessageHandler) {
	c.handlersMu.Lock()
	c.messageHandlers = append(c.messageHandlers, h)
	c.handlersMu.Unlock()
}

// OnDisconnect registers a handler invoked once when the channel closes.
func (c *Channel) OnDisconnect(h DisconnectHandler) {
	c.handlersMu.Lock()
	c.disconnectHandlers = append(c.disconnectHandlers, h)
	c.handlersMu.Unlock()
}

// Start launches the receive loop. Callers must call Start exactly once.
func (c *Channel) Start() {
	go c.receiveLoop()
}

// SetReceiveBufferSize overrides the size of the buffer the receive loop
// reads into. Must be called before Start.
func (c *Channel) SetReceiveBufferSize(n int) {
	if n <= 0 {
		n = defaultReceiveBufferSize
	}
	c.receiveBufferSize = n
}

// Send serializes and writes m, honoring the configured send timeout.
func (c *Channel) Send(m message.Message) error {
	if c.closed.Load() {
		return comerr.ErrChannelNotConnected
	}

	c.sendMu.Lock()
	defer c.sendMu.Unlock()

	frame, err := c.protocol.GetBytes(m)
	if err != nil {
		return err
	}

	if c.opts.SendTimeoutMs > 0 {
		_ = c.conn.SetWriteDeadline(time.Now().Add(time.Duration(c.opts.SendTimeoutMs) * time.Millisecond))
	} else {
		_ = c.conn.SetWriteDeadline(time.Time{})
	}

	if _, err = c.conn.Write(frame); err != nil {
		err = socket.SinkReadWriteError(err)
		_ = c.Close(err)
		return comerr.Wrap(err, "write frame")
	}

	c.NotIdle()
	return nil
}

// Close idempotently tears down the connection and notifies disconnect
// handlers with cause (nil for a graceful, locally-initiated close).
func (c *Channel) Close(cause error) error {
	var closeErr error
	c.closeOnce.Do(func() {
		c.closed.Store(true)
		close(c.stopReceive)
		closeErr = c.conn.Close()
		<-c.receiveDone

		c.handlersMu.Lock()
		handlers := append([]DisconnectHandler(nil), c.disconnectHandlers...)
		c.handlersMu.Unlock()

		for _, h := range handlers {
			h(cause)
		}
	})
	return closeErr
}

// IsClosed reports whether Close has run.
func (c *Channel) IsClosed() bool {
	return c.closed.Load()
}

// RemoteAddr returns the address of the peer.
func (c *Channel) RemoteAddr() net.Addr {
	return c.conn.RemoteAddr()
}

func (c *Channel) receiveLoop() {
	defer close(c.receiveDone)

	buf := make([]byte, c.receiveBufferSize)

	for {
		select {
		case <-c.stopReceive:
			return
		default:
		}

		if c.opts.ReceiveTimeoutMs > 0 {
			_ = c.conn.SetReadDeadline(time.Now().Add(time.Duration(c.opts.ReceiveTimeoutMs) * time.Millisecond))
		} else {
			_ = c.conn.SetReadDeadline(time.Time{})
		}

		n, err := c.conn.Read(buf)
		if err != nil {
			err = socket.SinkReadWriteError(err)
			if err != nil {
				go c.Close(err)
				return
			}
			continue
		}

		c.NotIdle()

		msgs, err := c.protocol.CreateMessages(buf[:n])
		if err != nil {
			go c.Close(err)
			return
		}

		c.handlersMu.Lock()
		handlers := append([]MessageHandler(nil), c.messageHandlers...)
		c.handlersMu.Unlock()

		for _, m := range msgs {
			for _, h := range handlers {
				h(m)
			}
		}
	}
}
