// Package pebblestore provides a thin wrapper around Pebble with fsync
// policy, snapshots, and batches. It backs the node-local replica of the
// cluster state tables.
//
// Usage:
//
//	db, err := pebblestore.Open(pebblestore.Options{DataDir: "./data"})
//	if err != nil { /* handle */ }
//	defer db.Close()
//
//	_ = db.Set([]byte("k"), []byte("v"))
//	v, _ := db.Get([]byte("k"))
package pebblestore
