package server_test

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"wireline/pkg/client"
	"wireline/pkg/message"
	"wireline/pkg/server"
)

// nextTestPort hands out a distinct loopback port per test so sequential
// test functions never race a still-closing listener from the last one.
var nextTestPort atomic.Uint32

func init() {
	nextTestPort.Store(19100)
}

func startTestServer(t *testing.T) (*server.Server, uint16) {
	t.Helper()

	port := uint16(nextTestPort.Add(1))
	cfg := server.NewConfig("127.0.0.1", port)
	s := server.New(cfg)
	if err := s.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}
	t.Cleanup(func() { _ = s.Stop() })
	return s, port
}

func dialTestClient(t *testing.T, port uint16) *client.Client {
	t.Helper()

	cfg := client.NewConfig("127.0.0.1", port)
	c := client.New(cfg)
	if err := c.Connect(); err != nil {
		t.Fatalf("Connect: %v", err)
	}
	t.Cleanup(func() { _ = c.Disconnect() })
	return c
}

// A client sends a TextMessage; server-side MessageReceived observes it.
func TestEchoClientToServer(t *testing.T) {
	s, port := startTestServer(t)

	received := make(chan string, 1)
	s.OnClientConnected(func(sc *server.Client) {
		sc.OnMessageReceived(func(m message.Message) {
			if tm, ok := m.(message.TextMessage); ok && tm.Text != nil {
				received <- *tm.Text
			}
		})
	})

	c := dialTestClient(t, port)

	if err := c.SendMessage(message.NewTextMessage("hello")); err != nil {
		t.Fatalf("SendMessage: %v", err)
	}

	select {
	case text := <-received:
		if text != "hello" {
			t.Fatalf("got %q, want %q", text, "hello")
		}
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for server to receive the message")
	}
}

// Upon ClientConnected, server-client sends a TextMessage; the client's
// MessageReceived observes it.
func TestServerToClient(t *testing.T) {
	s, port := startTestServer(t)

	s.OnClientConnected(func(sc *server.Client) {
		_ = sc.SendMessage(message.NewTextMessage("from server"))
	})

	c := dialTestClient(t, port)

	received := make(chan string, 1)
	c.OnMessageReceived(func(m message.Message) {
		if tm, ok := m.(message.TextMessage); ok && tm.Text != nil {
			received <- *tm.Text
		}
	})

	select {
	case text := <-received:
		if text != "from server" {
			t.Fatalf("got %q, want %q", text, "from server")
		}
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for the client to receive the message")
	}
}

// Three clients connect in parallel; the server emits three
// ClientConnected events and the Clients() snapshot has three entries.
func TestThreeConcurrentClients(t *testing.T) {
	s, port := startTestServer(t)

	var connectedCount int32
	var mu sync.Mutex
	done := make(chan struct{}, 3)
	s.OnClientConnected(func(*server.Client) {
		mu.Lock()
		connectedCount++
		mu.Unlock()
		done <- struct{}{}
	})

	var wg sync.WaitGroup
	for i := 0; i < 3; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			dialTestClient(t, port)
		}()
	}
	wg.Wait()

	for i := 0; i < 3; i++ {
		select {
		case <-done:
		case <-time.After(5 * time.Second):
			t.Fatal("timed out waiting for ClientConnected events")
		}
	}

	mu.Lock()
	count := connectedCount
	mu.Unlock()
	if count != 3 {
		t.Fatalf("connectedCount = %d, want 3", count)
	}
	if got := len(s.Clients()); got != 3 {
		t.Fatalf("len(Clients()) = %d, want 3", got)
	}
}

// A client sends a fresh ping; within 5s PingCompleted fires with a
// non-negative RTT, and LastPingRtt matches.
func TestPingReplyRTT(t *testing.T) {
	_, port := startTestServer(t)
	c := dialTestClient(t, port)

	completed := make(chan int64, 1)
	c.OnPingCompleted(func(rttMs int64) {
		completed <- rttMs
	})

	if err := c.SendMessage(message.NewPingMessage()); err != nil {
		t.Fatalf("SendMessage: %v", err)
	}

	select {
	case rtt := <-completed:
		if rtt < 0 {
			t.Fatalf("rtt = %d, want >= 0", rtt)
		}
		if last := c.LastPingRtt(); last == nil || *last != rtt {
			t.Fatalf("LastPingRtt() = %v, want %d", last, rtt)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for PingCompleted")
	}
}

// After Connect/Disconnect, the client reports Disconnected, and
// disconnecting a never-connected client is a no-op.
func TestDisconnectIsIdempotentAndStateSettles(t *testing.T) {
	_, port := startTestServer(t)
	c := dialTestClient(t, port)

	if !c.IsConnected() {
		t.Fatal("expected client to be connected after Connect")
	}
	if err := c.Disconnect(); err != nil {
		t.Fatalf("Disconnect: %v", err)
	}

	deadline := time.Now().Add(2 * time.Second)
	for c.IsConnected() && time.Now().Before(deadline) {
		time.Sleep(10 * time.Millisecond)
	}
	if c.IsConnected() {
		t.Fatal("expected client to be disconnected")
	}
	if err := c.Disconnect(); err != nil {
		t.Fatalf("second Disconnect: %v", err)
	}

	neverConnected := client.New(client.NewConfig("127.0.0.1", 1))
	if err := neverConnected.Disconnect(); err != nil {
		t.Fatalf("Disconnect on never-connected client: %v", err)
	}
}

// Connected client count equals ClientConnected emissions minus
// ClientDisconnected emissions.
func TestServerClientCountTracksConnectDisconnectEvents(t *testing.T) {
	s, port := startTestServer(t)

	var connectedCount, disconnectedCount int32
	var mu sync.Mutex
	disconnectedSeen := make(chan struct{}, 1)
	s.OnClientConnected(func(*server.Client) {
		mu.Lock()
		connectedCount++
		mu.Unlock()
	})
	s.OnClientDisconnected(func(*server.Client) {
		mu.Lock()
		disconnectedCount++
		mu.Unlock()
		disconnectedSeen <- struct{}{}
	})

	c := dialTestClient(t, port)
	time.Sleep(100 * time.Millisecond) // let ClientConnected land

	_ = c.Disconnect()

	select {
	case <-disconnectedSeen:
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for ClientDisconnected")
	}

	mu.Lock()
	defer mu.Unlock()
	if got := s.ClientCount(); got != int(connectedCount-disconnectedCount) {
		t.Fatalf("ClientCount() = %d, want %d", got, connectedCount-disconnectedCount)
	}
}
