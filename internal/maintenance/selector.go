package maintenance

import (
	"context"
	"encoding/binary"
	"hash/fnv"

	"github.com/prakultomar-web/rabbitmq-server/internal/cluster"
	clockpkg "github.com/prakultomar-web/rabbitmq-server/pkg/clock"
)

// IndexSource picks an index in [0, n) for n >= 1. The production source
// derives the index from a monotonic clock reading; tests inject fixed
// functions. No distribution is promised, only range.
type IndexSource func(n int) int

// ClockIndexSource builds an IndexSource hashing readings of clk.
func ClockIndexSource(clk clockpkg.Clock) IndexSource {
	return func(n int) int {
		var b [8]byte
		binary.BigEndian.PutUint64(b[:], uint64(clk.Now().UnixNano()))
		h := fnv.New64a()
		_, _ = h.Write(b[:])
		return int(h.Sum64() % uint64(n))
	}
}

// Selector computes eligible transfer targets among the cluster's nodes.
type Selector struct {
	membership cluster.Membership
	state      *StateStore
	index      IndexSource
}

// SelectorOption configures a Selector.
type SelectorOption func(*Selector)

// WithIndexSource overrides the candidate index source.
func WithIndexSource(src IndexSource) SelectorOption {
	return func(s *Selector) { s.index = src }
}

// NewSelector builds a Selector over the given membership view and state.
func NewSelector(membership cluster.Membership, state *StateStore, opts ...SelectorOption) *Selector {
	s := &Selector{
		membership: membership,
		state:      state,
		index:      ClockIndexSource(clockpkg.Real{}),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// TransferCandidates returns the running peers eligible to receive queue
// leadership: every running node except self, with draining nodes removed
// under a consistent read. A transfer target must be verified non-draining
// cluster-wide, not just against the local replica.
func (s *Selector) TransferCandidates(ctx context.Context) []cluster.NodeID {
	self := s.membership.Self()
	running := s.membership.RunningNodes()
	peers := make([]cluster.NodeID, 0, len(running))
	for _, n := range running {
		if n != self {
			peers = append(peers, n)
		}
	}
	return s.state.FilterOutDrained(ctx, peers, ConsistentRead)
}

// RandomCandidate picks some member of candidates, reporting false on empty
// input. The pick is best-effort and unpredictable, not uniform.
func (s *Selector) RandomCandidate(candidates []cluster.NodeID) (cluster.NodeID, bool) {
	if len(candidates) == 0 {
		return "", false
	}
	i := s.index(len(candidates))
	if i < 0 || i >= len(candidates) {
		i = 0
	}
	return candidates[i], true
}
