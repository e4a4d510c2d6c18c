package socket

import (
	"net"
	"syscall"

	"golang.org/x/sys/unix"
)

// ControlFunc is passed to net.ListenConfig so the listener's socket
// allows fast rebinding across restarts.
func ControlFunc(_, _ string, c syscall.RawConn) error {
	return c.Control(func(fd uintptr) {
		_ = unix.SetsockoptInt(int(fd), unix.SOL_SOCKET, unix.SO_REUSEADDR, 1)
		_ = unix.SetsockoptInt(int(fd), unix.SOL_SOCKET, unix.SO_REUSEPORT, 1)
	})
}

// Options is the socket tuning record applied to every socket,
// client-originating or server-accepted.
type Options struct {
	NoDelay bool

	KeepAliveEnabled bool
	// KeepAliveTimeSeconds and KeepAliveIntervalSeconds are nil to mean
	// "OS default"; best-effort per OS.
	KeepAliveTimeSeconds     *int
	KeepAliveIntervalSeconds *int

	// SendTimeoutMs and ReceiveTimeoutMs bound individual I/O operations
	// on the channel; 0 means infinite.
	SendTimeoutMs    int
	ReceiveTimeoutMs int
}

// DefaultOptions returns the module's default socket tuning.
func DefaultOptions() Options {
	return Options{
		NoDelay:          true,
		KeepAliveEnabled: false,
		SendTimeoutMs:    5000,
		ReceiveTimeoutMs: 0,
	}
}

// Apply configures conn per opts. Knobs the host OS doesn't expose are
// silently ignored.
func Apply(conn *net.TCPConn, opts Options) error {
	if err := conn.SetNoDelay(opts.NoDelay); err != nil {
		return err
	}
	if err := conn.SetKeepAlive(opts.KeepAliveEnabled); err != nil {
		return err
	}
	if opts.KeepAliveEnabled {
		applyKeepAliveTuning(conn, opts)
	}
	return nil
}

// applyKeepAliveTuning tunes the probe idle time/interval via raw
// setsockopt calls where the Go standard library exposes no portable
// setter. Best-effort: an unsupported constant on the host OS is ignored.
func applyKeepAliveTuning(conn *net.TCPConn, opts Options) {
	raw, err := conn.SyscallConn()
	if err != nil {
		return
	}

	_ = raw.Control(func(fd uintptr) {
		if opts.KeepAliveTimeSeconds != nil {
			_ = unix.SetsockoptInt(int(fd), unix.IPPROTO_TCP, unix.TCP_KEEPIDLE, *opts.KeepAliveTimeSeconds)
		}
		if opts.KeepAliveIntervalSeconds != nil {
			_ = unix.SetsockoptInt(int(fd), unix.IPPROTO_TCP, unix.TCP_KEEPINTVL, *opts.KeepAliveIntervalSeconds)
		}
	})
}
