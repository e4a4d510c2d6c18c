// Package listener owns the bound TCP socket and accept loop used by the
// server, coordinated with its cancellation via errgroup.
package listener

import (
	"context"
	"errors"
	"net"
	"time"

	"golang.org/x/sync/errgroup"

	"wireline/internal/comerr"
	"wireline/internal/comobj"
	"wireline/internal/socket"
	pkgcomerr "wireline/pkg/comerr"
)

// Listener binds a TCP address and turns accepted connections, already
// option-tuned, into values delivered on Accepted().
type Listener struct {
	comobj.DefaultRunnable
	comerr.DefaultProducer

	opts        socket.Options
	netListener net.Listener
	acceptChan  chan *net.TCPConn

	group  *errgroup.Group
	cancel context.CancelFunc
}

func New(opts socket.Options) *Listener {
	return &Listener{opts: opts}
}

// Start binds addr and launches the accept loop.
func (l *Listener) Start(addr *net.TCPAddr, errChanBufferSize, acceptChanBufferSize int) error {
	if l.IsRunning() {
		return pkgcomerr.ErrServerAlreadyRunning
	}

	l.ConfigureErrors(errChanBufferSize)
	l.acceptChan = make(chan *net.TCPConn, acceptChanBufferSize)

	listenCfg := net.ListenConfig{Control: socket.ControlFunc}
	ctx, cancel := context.WithCancel(context.Background())

	netListener, err := listenCfg.Listen(ctx, "tcp4", addr.String())
	if err != nil {
		cancel()
		return pkgcomerr.Wrap(err, "bind listener")
	}

	l.netListener = netListener
	l.cancel = cancel

	group, gctx := errgroup.WithContext(ctx)
	l.group = group
	group.Go(func() error {
		l.acceptLoop(gctx)
		return nil
	})

	l.SetIsRunning(true)
	return nil
}

// Accepted delivers accepted, option-tuned connections in arrival order.
func (l *Listener) Accepted() <-chan *net.TCPConn {
	return l.acceptChan
}

// Addr returns the bound local address.
func (l *Listener) Addr() net.Addr {
	if l.netListener == nil {
		return nil
	}
	return l.netListener.Addr()
}

// Stop closes the socket and waits for the accept loop to exit.
func (l *Listener) Stop() error {
	if !l.IsRunning() {
		return nil
	}

	if l.cancel != nil {
		l.cancel()
	}

	err := l.netListener.Close()
	_ = l.group.Wait()

	close(l.acceptChan)
	l.CloseErrors()
	l.SetIsRunning(false)

	return err
}

// acceptLoop retries a transient Accept error after a one second pause
// instead of tearing the listener down.
func (l *Listener) acceptLoop(ctx context.Context) {
	for {
		conn, err := l.netListener.Accept()
		if err != nil {
			if errors.Is(err, net.ErrClosed) || ctx.Err() != nil {
				return
			}
			l.SendError(pkgcomerr.Wrap(err, "accept connection"))
			time.Sleep(time.Second)
			continue
		}

		tcpConn, ok := conn.(*net.TCPConn)
		if !ok {
			_ = conn.Close()
			l.SendError(pkgcomerr.ErrConnectionAborted)
			continue
		}

		if err = socket.Apply(tcpConn, l.opts); err != nil {
			l.SendError(pkgcomerr.Wrap(err, "apply socket options"))
			_ = tcpConn.Close()
			continue
		}

		select {
		case l.acceptChan <- tcpConn:
		case <-ctx.Done():
			_ = tcpConn.Close()
			return
		}
	}
}
