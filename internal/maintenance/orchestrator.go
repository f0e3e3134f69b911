package maintenance

import (
	"context"

	"github.com/prakultomar-web/rabbitmq-server/internal/cluster"
	logpkg "github.com/prakultomar-web/rabbitmq-server/pkg/log"
)

// ListenerController suspends and resumes this node's client listeners.
type ListenerController interface {
	SuspendAllLocal() error
	ResumeAllLocal() error
}

// ConnectionEvictor force-closes this node's client connections.
type ConnectionEvictor interface {
	CloseAllLocal(reason string) int
}

// CandidateSource computes eligible transfer targets.
type CandidateSource interface {
	TransferCandidates(ctx context.Context) []cluster.NodeID
}

// TransferDriver moves queue leadership off this node.
type TransferDriver interface {
	TransferClassic(ctx context.Context, candidates []cluster.NodeID) error
	TransferQuorum(ctx context.Context, candidates []cluster.NodeID) error
}

// Orchestrator is the drain/revive state machine for the local node. The
// node cycles between regular and draining; each transition is a fixed
// sequence of best-effort steps with no rollback. Callers must not run two
// maintenance operations concurrently on the same node; the orchestrator
// provides no internal mutual exclusion.
type Orchestrator struct {
	self        cluster.NodeID
	state       *StateStore
	listeners   ListenerController
	connections ConnectionEvictor
	candidates  CandidateSource
	transfers   TransferDriver
	drainReason string
	logger      logpkg.Logger
}

// OrchestratorOptions wires the orchestrator's collaborators.
type OrchestratorOptions struct {
	Self        cluster.NodeID
	State       *StateStore
	Listeners   ListenerController
	Connections ConnectionEvictor
	Candidates  CandidateSource
	Transfers   TransferDriver
	DrainReason string
	Logger      logpkg.Logger
}

// NewOrchestrator builds an Orchestrator.
func NewOrchestrator(opts OrchestratorOptions) *Orchestrator {
	logger := opts.Logger
	if logger == nil {
		logger = logpkg.NewNop()
	}
	return &Orchestrator{
		self:        opts.Self,
		state:       opts.State,
		listeners:   opts.Listeners,
		connections: opts.Connections,
		candidates:  opts.Candidates,
		transfers:   opts.Transfers,
		drainReason: opts.DrainReason,
		logger:      logger.With(logpkg.Component("maintenance")),
	}
}

// MarkAsDraining writes this node's draining status row. True iff the write
// committed.
func (o *Orchestrator) MarkAsDraining(ctx context.Context) bool {
	ok := o.state.SetStatus(ctx, o.self, StatusDraining)
	if ok {
		o.logger.Info("marked this node as undergoing maintenance")
	} else {
		o.logger.Warn("failed to mark this node as undergoing maintenance")
	}
	return ok
}

// UnmarkAsDraining restores this node's status row to regular. True iff the
// write committed.
func (o *Orchestrator) UnmarkAsDraining(ctx context.Context) bool {
	ok := o.state.SetStatus(ctx, o.self, StatusRegular)
	if ok {
		o.logger.Info("marked this node as back in regular operating mode")
	} else {
		o.logger.Warn("failed to restore this node's regular status")
	}
	return ok
}

// Drain puts the local node into maintenance mode. Every step is attempted
// in order regardless of earlier failures; the node may end up partially
// drained if a step fails, and no compensation is performed.
func (o *Orchestrator) Drain(ctx context.Context) error {
	o.logger.Info("this node is being put into maintenance (drain) mode")

	o.MarkAsDraining(ctx)

	if err := o.listeners.SuspendAllLocal(); err != nil {
		o.logger.Warn("failed to suspend one or more listeners", logpkg.Err(err))
	} else {
		o.logger.Info("suspended all listeners; no new client connections will be accepted")
	}

	closed := o.connections.CloseAllLocal(o.drainReason)
	connectionsClosedTotal.Add(float64(closed))
	o.logger.Info("closed all local client connections", logpkg.Int("count", closed))

	candidates := o.candidates.TransferCandidates(ctx)
	o.logger.Info("computed candidate nodes for queue leadership transfer",
		logpkg.Int("count", len(candidates)),
		logpkg.F("candidates", candidates),
	)

	_ = o.transfers.TransferClassic(ctx, candidates)
	_ = o.transfers.TransferQuorum(ctx, candidates)

	drainsTotal.Inc()
	o.logger.Info("node is ready to be shut down")
	return nil
}

// Revive returns the local node to regular service.
func (o *Orchestrator) Revive(ctx context.Context) error {
	o.logger.Info("this node is being revived from maintenance (drain) mode")

	if err := o.listeners.ResumeAllLocal(); err != nil {
		o.logger.Warn("failed to resume one or more listeners", logpkg.Err(err))
	} else {
		o.logger.Info("resumed all listeners; new client connections are accepted again")
	}

	o.UnmarkAsDraining(ctx)

	revivesTotal.Inc()
	o.logger.Info("node revived")
	return nil
}

// Status reports node's maintenance status under the chosen read path.
func (o *Orchestrator) Status(ctx context.Context, node cluster.NodeID, consistency Consistency) Status {
	var draining bool
	switch consistency {
	case ConsistentRead:
		draining = o.state.IsDrainingConsistent(ctx, node)
	default:
		draining = o.state.IsDrainingLocal(node)
	}
	if draining {
		return StatusDraining
	}
	return StatusRegular
}

// Self returns the local node's identifier.
func (o *Orchestrator) Self() cluster.NodeID { return o.self }
