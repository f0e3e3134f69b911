package queues

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"github.com/cockroachdb/pebble"

	"github.com/prakultomar-web/rabbitmq-server/internal/cluster"
	pebblestore "github.com/prakultomar-web/rabbitmq-server/internal/storage/pebble"
)

// Kind distinguishes the replication flavor of a queue.
type Kind string

const (
	// KindClassic queues replicate via primary/mirror roles.
	KindClassic Kind = "classic"
	// KindQuorum queues replicate via a consensus protocol.
	KindQuorum Kind = "quorum"
)

// Queue describes one locally hosted queue.
type Queue struct {
	Name        string `json:"name"`
	Kind        Kind   `json:"kind"`
	CreatedAtMs int64  `json:"createdAtMs"`
}

// Outcome is the result value reported by the external transfer protocol.
// Anything other than OutcomeMigrated is treated as a failed transfer.
type Outcome string

// OutcomeMigrated indicates leadership moved to the target node.
const OutcomeMigrated Outcome = "migrated"

// Transferrer drives the external leadership transfer protocol for a single
// queue. Implementations live with the replication layers.
type Transferrer interface {
	TransferLeadership(ctx context.Context, q Queue, to cluster.NodeID) (Outcome, error)
}

// TransferFunc adapts a function to the Transferrer interface.
type TransferFunc func(ctx context.Context, q Queue, to cluster.NodeID) (Outcome, error)

// TransferLeadership implements Transferrer.
func (f TransferFunc) TransferLeadership(ctx context.Context, q Queue, to cluster.NodeID) (Outcome, error) {
	return f(ctx, q, to)
}

var queueMetaPrefix = []byte("queues/")

func queueKey(name string) []byte {
	k := make([]byte, 0, len(queueMetaPrefix)+len(name))
	k = append(k, queueMetaPrefix...)
	k = append(k, name...)
	return k
}

// Registry persists metadata for the queues hosted on this node.
type Registry struct {
	db *pebblestore.DB
}

// NewRegistry builds a Registry on the node-local store.
func NewRegistry(db *pebblestore.DB) *Registry {
	return &Registry{db: db}
}

// Ensure creates a queue record if absent, returning the effective record.
// Idempotent: returns the existing record if already present.
func (r *Registry) Ensure(name string, kind Kind) (Queue, error) {
	key := queueKey(name)
	if b, err := r.db.Get(key); err == nil && len(b) > 0 {
		var q Queue
		if err := json.Unmarshal(b, &q); err == nil {
			return q, nil
		}
		// fallthrough to rewrite if corrupted
	}
	q := Queue{Name: name, Kind: kind, CreatedAtMs: time.Now().UnixMilli()}
	b, err := json.Marshal(q)
	if err != nil {
		return Queue{}, err
	}
	if err := r.db.Set(key, b); err != nil {
		return Queue{}, err
	}
	return q, nil
}

// Delete removes a queue record.
func (r *Registry) Delete(name string) error {
	return r.db.Delete(queueKey(name))
}

// List returns all locally hosted queues sorted by name.
func (r *Registry) List() ([]Queue, error) {
	lo := queueMetaPrefix
	hi := append(append([]byte{}, queueMetaPrefix...), 0xFF)
	it, err := r.db.NewIter(&pebble.IterOptions{LowerBound: lo, UpperBound: hi})
	if err != nil {
		return nil, fmt.Errorf("queues: iterator: %w", err)
	}
	defer func() { _ = it.Close() }()

	var out []Queue
	for ok := it.First(); ok; ok = it.Next() {
		if !bytes.HasPrefix(it.Key(), queueMetaPrefix) {
			continue
		}
		var q Queue
		if err := json.Unmarshal(it.Value(), &q); err != nil {
			continue
		}
		out = append(out, q)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// ListByKind returns the locally hosted queues of one kind, sorted by name.
func (r *Registry) ListByKind(kind Kind) ([]Queue, error) {
	all, err := r.List()
	if err != nil {
		return nil, err
	}
	out := all[:0]
	for _, q := range all {
		if q.Kind == kind {
			out = append(out, q)
		}
	}
	return out, nil
}
