// Package cluster provides the node identity and membership view used by the
// maintenance subsystem. Peer discovery and failure detection belong to an
// external membership layer; this package only exposes the observed view
// (which nodes exist, which are running) behind a small interface.
package cluster
