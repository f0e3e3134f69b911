// Package statedb abstracts the cluster's replicated state table.
//
// The broker keeps a small amount of cluster-wide state (such as per-node
// maintenance status) in a replicated table. Callers choose between two read
// paths explicitly: transactional reads through the consistent path, and
// dirty reads of the node-local replica which may be stale. The replication
// machinery itself is an external collaborator; the in-tree implementation
// is Pebble-backed and serves single-node deployments and tests.
package statedb
