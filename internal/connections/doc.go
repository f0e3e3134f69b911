// Package connections tracks the client connections open on this node and
// supports force-closing all of them with a human-readable reason, as
// happens when the node enters maintenance mode.
package connections
