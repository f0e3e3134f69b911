package listener

import (
	"sync"

	"github.com/prakultomar-web/rabbitmq-server/internal/cluster"
	logpkg "github.com/prakultomar-web/rabbitmq-server/pkg/log"
)

// Acceptor controls whether an endpoint accepts new client connections.
type Acceptor interface {
	// Suspend stops acceptance of new connections. Open connections are
	// unaffected.
	Suspend() error
	// Resume re-enables acceptance of new connections.
	Resume() error
}

// Endpoint is a client-facing listener endpoint record. Node tags the owner;
// records for other nodes may be present (shared views) and are skipped by
// the local operations.
type Endpoint struct {
	Node     cluster.NodeID
	Proto    string
	Addr     string
	Acceptor Acceptor
}

// Controller holds endpoint records and drives suspend/resume over the ones
// owned by this node.
type Controller struct {
	self   cluster.NodeID
	logger logpkg.Logger

	mu        sync.Mutex
	endpoints []Endpoint
}

// NewController builds a Controller for the given node.
func NewController(self cluster.NodeID, logger logpkg.Logger) *Controller {
	if logger == nil {
		logger = logpkg.NewNop()
	}
	return &Controller{self: self, logger: logger.With(logpkg.Component("listeners"))}
}

// Register adds an endpoint record.
func (c *Controller) Register(ep Endpoint) {
	c.mu.Lock()
	c.endpoints = append(c.endpoints, ep)
	c.mu.Unlock()
}

// Local returns the endpoints owned by this node.
func (c *Controller) Local() []Endpoint {
	c.mu.Lock()
	defer c.mu.Unlock()
	var out []Endpoint
	for _, ep := range c.endpoints {
		if ep.Node == c.self {
			out = append(out, ep)
		}
	}
	return out
}

// SuspendAllLocal suspends every local endpoint. All endpoints are attempted
// regardless of earlier failures; every failure is logged, but only the
// first is returned.
func (c *Controller) SuspendAllLocal() error {
	return c.forEachLocal("suspend", Acceptor.Suspend)
}

// ResumeAllLocal resumes every local endpoint, with the same aggregation
// semantics as SuspendAllLocal.
func (c *Controller) ResumeAllLocal() error {
	return c.forEachLocal("resume", Acceptor.Resume)
}

func (c *Controller) forEachLocal(op string, fn func(Acceptor) error) error {
	var first error
	local := c.Local()
	for _, ep := range local {
		if err := fn(ep.Acceptor); err != nil {
			c.logger.Error("listener operation failed",
				logpkg.Str("op", op),
				logpkg.Str("proto", ep.Proto),
				logpkg.Str("addr", ep.Addr),
				logpkg.Err(err),
			)
			if first == nil {
				first = err
			}
			continue
		}
		c.logger.Debug("listener operation done",
			logpkg.Str("op", op),
			logpkg.Str("proto", ep.Proto),
			logpkg.Str("addr", ep.Addr),
		)
	}
	c.logger.Info("listener sweep finished",
		logpkg.Str("op", op),
		logpkg.Int("endpoints", len(local)),
	)
	return first
}
