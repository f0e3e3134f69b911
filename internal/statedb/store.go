package statedb

import "context"

// Txn provides key/value access within a transaction.
type Txn interface {
	// Get returns the value for key and whether it exists.
	Get(key []byte) ([]byte, bool, error)
	// Set stages a write; it becomes visible iff the transaction commits.
	Set(key, value []byte) error
	// Delete stages a deletion.
	Delete(key []byte) error
}

// Store is the replicated state table.
//
// Update and View run through the store's consistent path and reflect
// cluster-agreed state. LocalGet reads the node-local replica without
// coordination and may observe stale data.
type Store interface {
	// Update runs fn inside an atomic read-modify-write transaction.
	// Staged writes commit iff fn returns nil.
	Update(ctx context.Context, fn func(Txn) error) error
	// View runs fn inside a read-only transaction.
	View(ctx context.Context, fn func(Txn) error) error
	// LocalGet performs a dirty read of the local replica.
	LocalGet(key []byte) ([]byte, bool, error)
	// Close releases underlying resources.
	Close() error
}
