package listener

import (
	"net"
	"testing"
	"time"
)

func dialOK(t *testing.T, addr string) net.Conn {
	t.Helper()
	conn, err := net.DialTimeout("tcp", addr, time.Second)
	if err != nil {
		t.Fatalf("dial %s: %v", addr, err)
	}
	return conn
}

func TestTCPAcceptorSuspendResume(t *testing.T) {
	accepted := make(chan net.Conn, 16)
	a := NewTCPAcceptor("127.0.0.1:0", func(c net.Conn) { accepted <- c }, nil)
	if err := a.Start(); err != nil {
		t.Fatalf("start: %v", err)
	}
	t.Cleanup(func() { _ = a.Close() })
	addr := a.Addr()

	c1 := dialOK(t, addr)
	defer c1.Close()
	select {
	case <-accepted:
	case <-time.After(time.Second):
		t.Fatal("connection not accepted")
	}

	if err := a.Suspend(); err != nil {
		t.Fatalf("suspend: %v", err)
	}
	if _, err := net.DialTimeout("tcp", addr, 200*time.Millisecond); err == nil {
		t.Fatal("dial succeeded while suspended")
	}

	// The connection accepted before the suspend is still usable.
	if _, err := c1.Write([]byte("ping")); err != nil {
		t.Fatalf("pre-suspend connection broken: %v", err)
	}

	if err := a.Resume(); err != nil {
		t.Fatalf("resume: %v", err)
	}
	c2 := dialOK(t, addr)
	defer c2.Close()
	select {
	case <-accepted:
	case <-time.After(time.Second):
		t.Fatal("connection not accepted after resume")
	}
}

func TestTCPAcceptorSuspendIdempotent(t *testing.T) {
	a := NewTCPAcceptor("127.0.0.1:0", func(c net.Conn) { _ = c.Close() }, nil)
	if err := a.Start(); err != nil {
		t.Fatalf("start: %v", err)
	}
	t.Cleanup(func() { _ = a.Close() })
	if err := a.Suspend(); err != nil {
		t.Fatalf("suspend: %v", err)
	}
	if err := a.Suspend(); err != nil {
		t.Fatalf("second suspend: %v", err)
	}
	if err := a.Resume(); err != nil {
		t.Fatalf("resume: %v", err)
	}
	if err := a.Resume(); err != nil {
		t.Fatalf("second resume: %v", err)
	}
}

func TestTCPAcceptorClosed(t *testing.T) {
	a := NewTCPAcceptor("127.0.0.1:0", func(c net.Conn) { _ = c.Close() }, nil)
	if err := a.Start(); err != nil {
		t.Fatalf("start: %v", err)
	}
	if err := a.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	if err := a.Resume(); err == nil {
		t.Fatal("resume after close should fail")
	}
}
