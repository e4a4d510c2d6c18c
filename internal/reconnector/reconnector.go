// Package reconnector periodically re-establishes a client's channel once
// it has dropped, independent of the client's own lifecycle.
package reconnector

import (
	"sync"
	"time"

	"golang.org/x/time/rate"

	"wireline/internal/client"
	"wireline/internal/comobj"
)

const defaultCheckPeriod = 20 * time.Second

// connectable is the slice of Client the reconnector needs; kept narrow
// so tests can substitute a fake.
type connectable interface {
	comobj.Connectable
	Connect() error
}

// Reconnector owns an independent timer loop that calls Connect on its
// client whenever the client reports Disconnected. It never touches the
// client on Stop/Dispose beyond releasing its own goroutine.
type Reconnector struct {
	client connectable

	mu          sync.Mutex
	checkPeriod time.Duration
	limiter     *rate.Limiter

	stop chan struct{}
	done chan struct{}
}

// New builds a Reconnector for c, using defaultCheckPeriod until
// SetCheckPeriod is called.
func New(c *client.Client) *Reconnector {
	return &Reconnector{
		client:      c,
		checkPeriod: defaultCheckPeriod,
		limiter:     rate.NewLimiter(rate.Every(defaultCheckPeriod), 1),
	}
}

// CheckPeriod returns the current interval between disconnect checks.
func (r *Reconnector) CheckPeriod() time.Duration {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.checkPeriod
}

// SetCheckPeriod changes the interval; it also re-paces the reconnect
// attempt rate limiter so a burst of rapid disconnects can't spin the
// dialer faster than one attempt per period.
func (r *Reconnector) SetCheckPeriod(d time.Duration) {
	r.mu.Lock()
	r.checkPeriod = d
	r.limiter = rate.NewLimiter(rate.Every(d), 1)
	r.mu.Unlock()
}

// Start launches the timer loop.
func (r *Reconnector) Start() {
	r.mu.Lock()
	if r.stop != nil {
		r.mu.Unlock()
		return
	}
	r.stop = make(chan struct{})
	r.done = make(chan struct{})
	stop, done := r.stop, r.done
	r.mu.Unlock()

	go r.run(stop, done)
}

// Stop halts the timer loop without touching the client's connection
// state.
func (r *Reconnector) Stop() {
	r.mu.Lock()
	stop, done := r.stop, r.done
	r.stop, r.done = nil, nil
	r.mu.Unlock()

	if stop == nil {
		return
	}
	close(stop)
	<-done
}

// Dispose is an alias for Stop.
func (r *Reconnector) Dispose() {
	r.Stop()
}

func (r *Reconnector) run(stop, done chan struct{}) {
	defer close(done)

	for {
		timer := time.NewTimer(r.CheckPeriod())
		select {
		case <-stop:
			timer.Stop()
			return
		case <-timer.C:
		}

		if r.client.IsConnected() {
			continue
		}
		if !r.limiter.Allow() {
			continue
		}

		_ = r.client.Connect() // failures are swallowed; the next tick tries again
	}
}
