package maintenance

import (
	"context"

	"github.com/prakultomar-web/rabbitmq-server/internal/cluster"
	"github.com/prakultomar-web/rabbitmq-server/internal/queues"
	logpkg "github.com/prakultomar-web/rabbitmq-server/pkg/log"
)

// QueueLister enumerates the queues hosted on this node, by kind.
type QueueLister interface {
	ListByKind(kind queues.Kind) ([]queues.Queue, error)
}

// TransferCoordinator hands leadership of locally hosted queues to candidate
// peers ahead of a shutdown. Per-queue failures are observational only: the
// coordinator's operations always return nil so a drain runs to completion.
type TransferCoordinator struct {
	queues   QueueLister
	transfer queues.Transferrer
	selector *Selector
	logger   logpkg.Logger
}

// NewTransferCoordinator builds a TransferCoordinator.
func NewTransferCoordinator(lister QueueLister, transfer queues.Transferrer, selector *Selector, logger logpkg.Logger) *TransferCoordinator {
	if logger == nil {
		logger = logpkg.NewNop()
	}
	return &TransferCoordinator{
		queues:   lister,
		transfer: transfer,
		selector: selector,
		logger:   logger.With(logpkg.Component("leadership-transfer")),
	}
}

// TransferClassic visits every local classic (primary/mirror) queue once and
// asks the external protocol to move its leadership to a random candidate.
func (c *TransferCoordinator) TransferClassic(ctx context.Context, candidates []cluster.NodeID) error {
	if len(candidates) == 0 {
		c.logger.Warn("no candidate nodes for classic queue leadership transfer")
		return nil
	}
	qs, err := c.queues.ListByKind(queues.KindClassic)
	if err != nil {
		c.logger.Warn("could not enumerate local classic queues", logpkg.Err(err))
		return nil
	}
	c.logger.Info("transferring classic queue leadership",
		logpkg.Int("queues", len(qs)),
		logpkg.Int("candidates", len(candidates)),
	)
	for _, q := range qs {
		target, ok := c.selector.RandomCandidate(candidates)
		if !ok {
			c.logger.Warn("no candidate available for queue", logpkg.Str("queue", q.Name))
			continue
		}
		outcome, err := c.transfer.TransferLeadership(ctx, q, target)
		if err != nil {
			transfersTotal.WithLabelValues("error").Inc()
			c.logger.Warn("queue leadership transfer failed",
				logpkg.Str("queue", q.Name),
				logpkg.Str("target", string(target)),
				logpkg.Err(err),
			)
			continue
		}
		transfersTotal.WithLabelValues(string(outcome)).Inc()
		if outcome == queues.OutcomeMigrated {
			c.logger.Info("queue leadership migrated",
				logpkg.Str("queue", q.Name),
				logpkg.Str("target", string(target)),
			)
			continue
		}
		c.logger.Warn("queue leadership transfer reported an unexpected outcome",
			logpkg.Str("queue", q.Name),
			logpkg.Str("target", string(target)),
			logpkg.Str("outcome", string(outcome)),
		)
	}
	return nil
}

// TransferQuorum accepts the candidate list for symmetry with classic queues
// but does not drive any transfer: quorum queue leadership moves through the
// consensus protocol when the node's members go offline. It only reports how
// many local quorum queues are affected.
func (c *TransferCoordinator) TransferQuorum(ctx context.Context, candidates []cluster.NodeID) error {
	if len(candidates) == 0 {
		c.logger.Warn("no candidate nodes for quorum queue leadership transfer")
		return nil
	}
	qs, err := c.queues.ListByKind(queues.KindQuorum)
	if err != nil {
		c.logger.Warn("could not enumerate local quorum queues", logpkg.Err(err))
		return nil
	}
	c.logger.Info("leaving quorum queue leadership to the consensus layer",
		logpkg.Int("queues", len(qs)),
	)
	return nil
}
