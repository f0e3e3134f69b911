package cluster

import (
	"sort"
	"sync"
)

// NodeID identifies a cluster node, e.g. "broker@host-1".
type NodeID string

// Membership is the abstraction over the underlying membership layer. It
// answers who this node is and which nodes are currently running.
type Membership interface {
	// Self returns the local node's identifier.
	Self() NodeID
	// RunningNodes returns all nodes currently observed as running,
	// including the local node.
	RunningNodes() []NodeID
}

// Registry is a Membership fed from static configuration (self + peers).
// Nodes can be marked stopped, which removes them from the running view
// until marked running again.
type Registry struct {
	self NodeID

	mu      sync.RWMutex
	running map[NodeID]bool
}

// NewRegistry builds a Registry for self with the given peers, all initially
// running.
func NewRegistry(self NodeID, peers []NodeID) *Registry {
	r := &Registry{
		self:    self,
		running: map[NodeID]bool{self: true},
	}
	for _, p := range peers {
		r.running[p] = true
	}
	return r
}

// Self implements Membership.
func (r *Registry) Self() NodeID { return r.self }

// RunningNodes implements Membership. The result is sorted for a stable view.
func (r *Registry) RunningNodes() []NodeID {
	r.mu.RLock()
	defer r.mu.RUnlock()
	nodes := make([]NodeID, 0, len(r.running))
	for n, up := range r.running {
		if up {
			nodes = append(nodes, n)
		}
	}
	sort.Slice(nodes, func(i, j int) bool { return nodes[i] < nodes[j] })
	return nodes
}

// MarkRunning records node as running.
func (r *Registry) MarkRunning(node NodeID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.running[node] = true
}

// MarkStopped records node as not running.
func (r *Registry) MarkStopped(node NodeID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.running[node] = false
}
