// Package maintenance implements the node maintenance-mode coordinator.
//
// An operator drains a node before an upgrade or restart: the node is marked
// as draining in the replicated state table, its client listeners stop
// accepting connections, open client connections are closed, and leadership
// of locally hosted queues is handed to peer nodes on a best-effort basis.
// Revive reverses the transition. Once a drain has started it always runs to
// completion: failures of individual listeners, connections, or queue
// transfers are reported and never escalated.
package maintenance
