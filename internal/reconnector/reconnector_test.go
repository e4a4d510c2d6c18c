package reconnector

import (
	"sync/atomic"
	"testing"
	"time"

	"golang.org/x/time/rate"
)

// fakeConnectable is a minimal stand-in that only tests the reconnector's
// own scheduling logic, without a real socket.
type fakeConnectable struct {
	connected    atomic.Bool
	connectCalls atomic.Int64
}

func (f *fakeConnectable) IsConnected() bool          { return f.connected.Load() }
func (f *fakeConnectable) ConnectTime() *time.Time    { return nil }
func (f *fakeConnectable) DisconnectTime() *time.Time { return nil }
func (f *fakeConnectable) Connect() error {
	f.connectCalls.Add(1)
	f.connected.Store(true)
	return nil
}

func TestReconnectorConnectsWhileDisconnected(t *testing.T) {
	fake := &fakeConnectable{}

	r := &Reconnector{
		client:      fake,
		checkPeriod: 20 * time.Millisecond,
		limiter:     rate.NewLimiter(rate.Every(20*time.Millisecond), 1),
	}

	r.Start()
	defer r.Stop()

	deadline := time.Now().Add(2 * time.Second)
	for !fake.IsConnected() && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}

	if !fake.IsConnected() {
		t.Fatal("expected reconnector to have called Connect")
	}
	if fake.connectCalls.Load() == 0 {
		t.Fatal("expected at least one Connect call")
	}
}

func TestReconnectorSkipsWhileConnected(t *testing.T) {
	fake := &fakeConnectable{}
	fake.connected.Store(true)

	r := &Reconnector{
		client:      fake,
		checkPeriod: 10 * time.Millisecond,
		limiter:     rate.NewLimiter(rate.Every(10*time.Millisecond), 1),
	}

	r.Start()
	time.Sleep(100 * time.Millisecond)
	r.Stop()

	if fake.connectCalls.Load() != 0 {
		t.Fatalf("connectCalls = %d, want 0", fake.connectCalls.Load())
	}
}
