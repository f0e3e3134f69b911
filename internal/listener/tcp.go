package listener

import (
	"errors"
	"net"
	"sync"

	logpkg "github.com/prakultomar-web/rabbitmq-server/pkg/log"
)

// TCPAcceptor is a suspendable TCP listener. Suspend closes the underlying
// socket so the OS refuses new connections; Resume rebinds the same address.
// Connections accepted before a suspend stay open.
type TCPAcceptor struct {
	handle func(net.Conn)
	logger logpkg.Logger

	mu        sync.Mutex
	addr      string
	lis       net.Listener
	suspended bool
	closed    bool
}

// NewTCPAcceptor builds an acceptor for addr. Each accepted connection is
// handed to handle on its own goroutine.
func NewTCPAcceptor(addr string, handle func(net.Conn), logger logpkg.Logger) *TCPAcceptor {
	if logger == nil {
		logger = logpkg.NewNop()
	}
	return &TCPAcceptor{addr: addr, handle: handle, logger: logger.With(logpkg.Component("tcp-acceptor"))}
}

// Start binds the address and begins accepting.
func (a *TCPAcceptor) Start() error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.closed {
		return errors.New("listener: acceptor closed")
	}
	if a.lis != nil {
		return nil
	}
	return a.listenLocked()
}

// listenLocked binds and launches the accept loop. Caller holds a.mu.
func (a *TCPAcceptor) listenLocked() error {
	lis, err := net.Listen("tcp", a.addr)
	if err != nil {
		return err
	}
	// Pin the resolved address so Resume rebinds the same port even when the
	// configured address was ":0".
	a.addr = lis.Addr().String()
	a.lis = lis
	go a.acceptLoop(lis)
	return nil
}

func (a *TCPAcceptor) acceptLoop(lis net.Listener) {
	for {
		conn, err := lis.Accept()
		if err != nil {
			// Listener closed by Suspend/Close, or a fatal accept error.
			return
		}
		go a.handle(conn)
	}
}

// Suspend implements Acceptor.
func (a *TCPAcceptor) Suspend() error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.closed {
		return errors.New("listener: acceptor closed")
	}
	if a.suspended || a.lis == nil {
		a.suspended = true
		return nil
	}
	err := a.lis.Close()
	a.lis = nil
	a.suspended = true
	if err != nil {
		return err
	}
	a.logger.Info("suspended", logpkg.Str("addr", a.addr))
	return nil
}

// Resume implements Acceptor.
func (a *TCPAcceptor) Resume() error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.closed {
		return errors.New("listener: acceptor closed")
	}
	if !a.suspended && a.lis != nil {
		return nil
	}
	a.suspended = false
	if err := a.listenLocked(); err != nil {
		return err
	}
	a.logger.Info("resumed", logpkg.Str("addr", a.addr))
	return nil
}

// Addr returns the bound address, empty until Start succeeds.
func (a *TCPAcceptor) Addr() string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.addr
}

// Close shuts the acceptor down for good.
func (a *TCPAcceptor) Close() error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.closed = true
	if a.lis == nil {
		return nil
	}
	err := a.lis.Close()
	a.lis = nil
	return err
}
