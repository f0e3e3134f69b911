package runtime

import (
	"context"
	"errors"
	"net"
	"time"

	"github.com/prakultomar-web/rabbitmq-server/internal/cluster"
	cfgpkg "github.com/prakultomar-web/rabbitmq-server/internal/config"
	"github.com/prakultomar-web/rabbitmq-server/internal/connections"
	"github.com/prakultomar-web/rabbitmq-server/internal/listener"
	"github.com/prakultomar-web/rabbitmq-server/internal/maintenance"
	"github.com/prakultomar-web/rabbitmq-server/internal/queues"
	"github.com/prakultomar-web/rabbitmq-server/internal/statedb"
	pebblestore "github.com/prakultomar-web/rabbitmq-server/internal/storage/pebble"
	logpkg "github.com/prakultomar-web/rabbitmq-server/pkg/log"
)

// Options for building the Runtime.
type Options struct {
	DataDir       string
	Fsync         pebblestore.FsyncMode
	FsyncInterval time.Duration
	Config        cfgpkg.Config
	Logger        logpkg.Logger
	// Transferrer drives queue leadership transfers. When nil, a local stub
	// that acknowledges every request is used; real deployments inject the
	// replication layer's implementation.
	Transferrer queues.Transferrer
}

// Runtime wires storage, config, cluster view, and the maintenance
// subsystem for a single broker node.
type Runtime struct {
	db     *pebblestore.DB
	config cfgpkg.Config
	logger logpkg.Logger

	membership   *cluster.Registry
	store        statedb.Store
	state        *maintenance.StateStore
	listeners    *listener.Controller
	connections  *connections.Tracker
	queues       *queues.Registry
	selector     *maintenance.Selector
	orchestrator *maintenance.Orchestrator

	clientAcceptor *listener.TCPAcceptor
}

// Open initializes the underlying storage and wires the node's subsystems.
func Open(opts Options) (*Runtime, error) {
	logger := opts.Logger
	if logger == nil {
		logger = logpkg.NewNop()
	}

	db, err := pebblestore.Open(pebblestore.Options{DataDir: opts.DataDir, Fsync: opts.Fsync, FsyncInterval: opts.FsyncInterval})
	if err != nil {
		return nil, err
	}

	self := cluster.NodeID(opts.Config.NodeName)
	peers := make([]cluster.NodeID, 0, len(opts.Config.Peers))
	for _, p := range opts.Config.Peers {
		peers = append(peers, cluster.NodeID(p))
	}

	transferrer := opts.Transferrer
	if transferrer == nil {
		transferrer = queues.TransferFunc(func(context.Context, queues.Queue, cluster.NodeID) (queues.Outcome, error) {
			return queues.OutcomeMigrated, nil
		})
	}

	rt := &Runtime{
		db:          db,
		config:      opts.Config,
		logger:      logger,
		membership:  cluster.NewRegistry(self, peers),
		store:       statedb.NewPebble(db),
		listeners:   listener.NewController(self, logger),
		connections: connections.NewTracker(self, logger),
		queues:      queues.NewRegistry(db),
	}
	rt.state = maintenance.NewStateStore(rt.store, logger)
	rt.selector = maintenance.NewSelector(rt.membership, rt.state)
	coordinator := maintenance.NewTransferCoordinator(rt.queues, transferrer, rt.selector, logger)
	rt.orchestrator = maintenance.NewOrchestrator(maintenance.OrchestratorOptions{
		Self:        self,
		State:       rt.state,
		Listeners:   rt.listeners,
		Connections: rt.connections,
		Candidates:  rt.selector,
		Transfers:   coordinator,
		DrainReason: opts.Config.DrainReason,
		Logger:      logger,
	})
	return rt, nil
}

// StartClientListener binds the client-facing TCP acceptor and registers it
// as a local listener endpoint. Accepted connections are tracked so a drain
// can close them.
func (r *Runtime) StartClientListener() error {
	if r.clientAcceptor != nil {
		return nil
	}
	acceptor := listener.NewTCPAcceptor(r.config.ClientAddr, r.handleClientConn, r.logger)
	if err := acceptor.Start(); err != nil {
		return err
	}
	r.clientAcceptor = acceptor
	r.listeners.Register(listener.Endpoint{
		Node:     r.membership.Self(),
		Proto:    "tcp",
		Addr:     acceptor.Addr(),
		Acceptor: acceptor,
	})
	r.logger.Info("client listener started", logpkg.Str("addr", acceptor.Addr()))
	return nil
}

// handleClientConn tracks a client connection for its lifetime. The broker's
// client protocol is out of scope here; inbound bytes are drained and
// discarded.
func (r *Runtime) handleClientConn(c net.Conn) {
	id := r.connections.Register(c.RemoteAddr().String(), connections.NetCloser(c))
	buf := make([]byte, 4096)
	for {
		if _, err := c.Read(buf); err != nil {
			break
		}
	}
	r.connections.Unregister(id)
	_ = c.Close()
}

// ClientAddr returns the bound client listener address, empty when the
// listener has not been started.
func (r *Runtime) ClientAddr() string {
	if r.clientAcceptor == nil {
		return ""
	}
	return r.clientAcceptor.Addr()
}

// Close closes underlying resources.
func (r *Runtime) Close() error {
	if r.clientAcceptor != nil {
		_ = r.clientAcceptor.Close()
	}
	if r.db == nil {
		return nil
	}
	return r.db.Close()
}

// CheckHealth performs a simple storage health check.
func (r *Runtime) CheckHealth(ctx context.Context) error {
	if r.db == nil {
		return errors.New("db not open")
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	it, err := r.db.NewIter(nil)
	if err != nil {
		return err
	}
	return it.Close()
}

// Maintenance returns the node's drain/revive orchestrator.
func (r *Runtime) Maintenance() *maintenance.Orchestrator { return r.orchestrator }

// State returns the maintenance state store.
func (r *Runtime) State() *maintenance.StateStore { return r.state }

// Selector returns the transfer candidate selector.
func (r *Runtime) Selector() *maintenance.Selector { return r.selector }

// Membership returns the cluster membership view.
func (r *Runtime) Membership() *cluster.Registry { return r.membership }

// Queues returns the local queue registry.
func (r *Runtime) Queues() *queues.Registry { return r.queues }

// Connections returns the client connection tracker.
func (r *Runtime) Connections() *connections.Tracker { return r.connections }

// Listeners returns the listener controller.
func (r *Runtime) Listeners() *listener.Controller { return r.listeners }

// Config returns the runtime configuration.
func (r *Runtime) Config() cfgpkg.Config { return r.config }

// DB exposes the underlying DB for advanced operations (internal use only).
func (r *Runtime) DB() *pebblestore.DB { return r.db }
