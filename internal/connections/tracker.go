package connections

import (
	"net"
	"sync"

	"github.com/google/uuid"

	"github.com/prakultomar-web/rabbitmq-server/internal/cluster"
	logpkg "github.com/prakultomar-web/rabbitmq-server/pkg/log"
)

// Conn is one tracked client connection.
type Conn struct {
	ID         string
	Node       cluster.NodeID
	RemoteAddr string
	close      func(reason string)
}

// Tracker is the registry of client connections local to this node.
type Tracker struct {
	self   cluster.NodeID
	logger logpkg.Logger

	mu    sync.Mutex
	conns map[string]Conn
}

// NewTracker builds a Tracker for the given node.
func NewTracker(self cluster.NodeID, logger logpkg.Logger) *Tracker {
	if logger == nil {
		logger = logpkg.NewNop()
	}
	return &Tracker{
		self:   self,
		logger: logger.With(logpkg.Component("connections")),
		conns:  map[string]Conn{},
	}
}

// Register adds a connection and returns its id. The close callback receives
// the eviction reason; it must tolerate being called while the connection is
// concurrently closing on its own.
func (t *Tracker) Register(remoteAddr string, close func(reason string)) string {
	id := uuid.NewString()
	t.mu.Lock()
	t.conns[id] = Conn{ID: id, Node: t.self, RemoteAddr: remoteAddr, close: close}
	t.mu.Unlock()
	return id
}

// Unregister removes a connection, typically when the client disconnects.
func (t *Tracker) Unregister(id string) {
	t.mu.Lock()
	delete(t.conns, id)
	t.mu.Unlock()
}

// CountLocal returns the number of tracked local connections.
func (t *Tracker) CountLocal() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.conns)
}

// CloseAllLocal force-closes every local connection with the given reason
// and returns the number closed. Closing is fire-and-forget per connection:
// no per-connection failure is reported.
func (t *Tracker) CloseAllLocal(reason string) int {
	t.mu.Lock()
	closing := make([]Conn, 0, len(t.conns))
	for _, c := range t.conns {
		closing = append(closing, c)
	}
	t.conns = map[string]Conn{}
	t.mu.Unlock()

	for _, c := range closing {
		t.logger.Debug("closing client connection",
			logpkg.Str("conn_id", c.ID),
			logpkg.Str("remote_addr", c.RemoteAddr),
			logpkg.Str("reason", reason),
		)
		if c.close != nil {
			c.close(reason)
		}
	}
	return len(closing)
}

// NetCloser adapts a net.Conn into a tracker close callback. The reason is
// written to the peer best-effort before the socket is torn down.
func NetCloser(c net.Conn) func(reason string) {
	return func(reason string) {
		if reason != "" {
			_, _ = c.Write([]byte(reason + "\n"))
		}
		_ = c.Close()
	}
}
