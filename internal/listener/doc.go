// Package listener manages the node's client-facing listener endpoints.
//
// Endpoints are tagged records carrying their owning node, so the suspend
// and resume operations apply a pure "owned by this node" filter before
// touching any acceptor. Suspending stops acceptance of new connections and
// leaves already-open connections alone.
package listener
