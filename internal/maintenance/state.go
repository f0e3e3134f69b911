package maintenance

import (
	"context"
	"encoding/json"

	"github.com/prakultomar-web/rabbitmq-server/internal/cluster"
	"github.com/prakultomar-web/rabbitmq-server/internal/statedb"
	logpkg "github.com/prakultomar-web/rabbitmq-server/pkg/log"
)

// Status is a node's maintenance status. Absence of a row in the state table
// is equivalent to StatusRegular.
type Status string

const (
	// StatusRegular marks a node in normal service.
	StatusRegular Status = "regular"
	// StatusDraining marks a node undergoing maintenance.
	StatusDraining Status = "draining"
)

// Consistency selects the read path for status lookups. Callers choose
// deliberately: local reads are cheap and may be stale, consistent reads
// reflect cluster-agreed state.
type Consistency int

const (
	// LocalRead reads the node-local replica without coordination.
	LocalRead Consistency = iota
	// ConsistentRead reads through the replicated store's consistent path.
	ConsistentRead
)

var statusKeyPrefix = []byte("maint/status/")

func statusKey(node cluster.NodeID) []byte {
	k := make([]byte, 0, len(statusKeyPrefix)+len(node))
	k = append(k, statusKeyPrefix...)
	k = append(k, node...)
	return k
}

// statusRow is the persisted shape of one node's status.
type statusRow struct {
	Node   string `json:"node"`
	Status Status `json:"status"`
}

// StateStore reads and writes per-node maintenance status rows. Each node
// writes only its own row; any node may read any row.
type StateStore struct {
	store  statedb.Store
	logger logpkg.Logger
}

// NewStateStore builds a StateStore over the replicated state table.
func NewStateStore(store statedb.Store, logger logpkg.Logger) *StateStore {
	if logger == nil {
		logger = logpkg.NewNop()
	}
	return &StateStore{store: store, logger: logger.With(logpkg.Component("maintenance-state"))}
}

// SetStatus writes node's status row inside an atomic read-modify-write
// transaction. It reports only whether the transaction committed; the abort
// reason is logged and otherwise discarded.
func (s *StateStore) SetStatus(ctx context.Context, node cluster.NodeID, status Status) bool {
	err := s.store.Update(ctx, func(txn statedb.Txn) error {
		// The row is created on first write and overwritten thereafter; the
		// prior value does not influence the new one.
		if _, _, err := txn.Get(statusKey(node)); err != nil {
			return err
		}
		b, err := json.Marshal(statusRow{Node: string(node), Status: status})
		if err != nil {
			return err
		}
		return txn.Set(statusKey(node), b)
	})
	if err != nil {
		s.logger.Debug("status write transaction aborted",
			logpkg.Str("node", string(node)),
			logpkg.Str("status", string(status)),
			logpkg.Err(err),
		)
		return false
	}
	return true
}

// IsDrainingLocal reports whether node is draining according to the local
// replica. Absent rows, read errors, and malformed rows all read as false.
func (s *StateStore) IsDrainingLocal(node cluster.NodeID) bool {
	v, ok, err := s.store.LocalGet(statusKey(node))
	if err != nil || !ok {
		return false
	}
	return rowIsDraining(v)
}

// IsDrainingConsistent reports whether node is draining according to the
// consistent read path. A failed transaction reads as false.
func (s *StateStore) IsDrainingConsistent(ctx context.Context, node cluster.NodeID) bool {
	draining := false
	err := s.store.View(ctx, func(txn statedb.Txn) error {
		v, ok, err := txn.Get(statusKey(node))
		if err != nil {
			return err
		}
		if ok {
			draining = rowIsDraining(v)
		}
		return nil
	})
	if err != nil {
		return false
	}
	return draining
}

// FilterOutDrained returns nodes with every draining node removed, keeping
// the relative order of the remainder. The consistency argument selects the
// read path used per node.
func (s *StateStore) FilterOutDrained(ctx context.Context, nodes []cluster.NodeID, consistency Consistency) []cluster.NodeID {
	out := make([]cluster.NodeID, 0, len(nodes))
	for _, n := range nodes {
		var draining bool
		switch consistency {
		case ConsistentRead:
			draining = s.IsDrainingConsistent(ctx, n)
		default:
			draining = s.IsDrainingLocal(n)
		}
		if !draining {
			out = append(out, n)
		}
	}
	return out
}

func rowIsDraining(v []byte) bool {
	var row statusRow
	if err := json.Unmarshal(v, &row); err != nil {
		return false
	}
	return row.Status == StatusDraining
}
