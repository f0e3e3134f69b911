package statedb

import (
	"context"
	"errors"
	"sync"

	pebblestore "github.com/prakultomar-web/rabbitmq-server/internal/storage/pebble"
)

// pebbleStore implements Store on a single Pebble database. The database
// plays both roles: it is the authoritative copy for the consistent path
// and the local replica for dirty reads. A mutex serializes transactions,
// standing in for the replication layer's commit ordering.
type pebbleStore struct {
	mu sync.Mutex
	db *pebblestore.DB
}

// NewPebble returns a Store backed by the given Pebble database.
func NewPebble(db *pebblestore.DB) Store {
	return &pebbleStore{db: db}
}

type pebbleTxn struct {
	db       *pebblestore.DB
	writes   map[string][]byte // nil value marks deletion
	readOnly bool
}

func (t *pebbleTxn) Get(key []byte) ([]byte, bool, error) {
	if t.writes != nil {
		if v, ok := t.writes[string(key)]; ok {
			if v == nil {
				return nil, false, nil
			}
			return append([]byte(nil), v...), true, nil
		}
	}
	v, err := t.db.Get(key)
	if errors.Is(err, pebblestore.ErrNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return v, true, nil
}

func (t *pebbleTxn) Set(key, value []byte) error {
	if t.readOnly {
		return errors.New("statedb: write in read-only transaction")
	}
	t.writes[string(key)] = append([]byte(nil), value...)
	return nil
}

func (t *pebbleTxn) Delete(key []byte) error {
	if t.readOnly {
		return errors.New("statedb: delete in read-only transaction")
	}
	t.writes[string(key)] = nil
	return nil
}

// Update implements Store.
func (s *pebbleStore) Update(ctx context.Context, fn func(Txn) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	txn := &pebbleTxn{db: s.db, writes: map[string][]byte{}}
	if err := fn(txn); err != nil {
		return err
	}
	if len(txn.writes) == 0 {
		return nil
	}
	b := s.db.NewBatch()
	defer func() { _ = b.Close() }()
	for k, v := range txn.writes {
		if v == nil {
			if err := b.Delete([]byte(k), nil); err != nil {
				return err
			}
			continue
		}
		if err := b.Set([]byte(k), v, nil); err != nil {
			return err
		}
	}
	return s.db.CommitBatch(b)
}

// View implements Store.
func (s *pebbleStore) View(ctx context.Context, fn func(Txn) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(&pebbleTxn{db: s.db, readOnly: true})
}

// LocalGet implements Store.
func (s *pebbleStore) LocalGet(key []byte) ([]byte, bool, error) {
	v, err := s.db.Get(key)
	if errors.Is(err, pebblestore.ErrNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return v, true, nil
}

// Close implements Store. The underlying database is owned by the runtime,
// so Close here is a no-op.
func (s *pebbleStore) Close() error { return nil }
