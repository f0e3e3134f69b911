package queues

import (
	"testing"

	pebblestore "github.com/prakultomar-web/rabbitmq-server/internal/storage/pebble"
)

func newRegistryForTest(t *testing.T) *Registry {
	t.Helper()
	db, err := pebblestore.Open(pebblestore.Options{DataDir: t.TempDir(), Fsync: pebblestore.FsyncModeAlways})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return NewRegistry(db)
}

func TestEnsureIdempotent(t *testing.T) {
	r := newRegistryForTest(t)
	q1, err := r.Ensure("orders", KindClassic)
	if err != nil {
		t.Fatalf("ensure: %v", err)
	}
	q2, err := r.Ensure("orders", KindQuorum) // kind of existing record wins
	if err != nil {
		t.Fatalf("ensure again: %v", err)
	}
	if q2.Kind != q1.Kind || q2.CreatedAtMs != q1.CreatedAtMs {
		t.Fatalf("ensure not idempotent: %+v vs %+v", q1, q2)
	}
}

func TestListByKind(t *testing.T) {
	r := newRegistryForTest(t)
	for _, q := range []struct {
		name string
		kind Kind
	}{
		{"orders", KindClassic},
		{"payments", KindQuorum},
		{"audit", KindClassic},
	} {
		if _, err := r.Ensure(q.name, q.kind); err != nil {
			t.Fatalf("ensure %s: %v", q.name, err)
		}
	}

	classic, err := r.ListByKind(KindClassic)
	if err != nil {
		t.Fatalf("list classic: %v", err)
	}
	if len(classic) != 2 || classic[0].Name != "audit" || classic[1].Name != "orders" {
		t.Fatalf("classic queues: %v", classic)
	}

	quorum, err := r.ListByKind(KindQuorum)
	if err != nil {
		t.Fatalf("list quorum: %v", err)
	}
	if len(quorum) != 1 || quorum[0].Name != "payments" {
		t.Fatalf("quorum queues: %v", quorum)
	}
}

func TestDelete(t *testing.T) {
	r := newRegistryForTest(t)
	if _, err := r.Ensure("orders", KindClassic); err != nil {
		t.Fatalf("ensure: %v", err)
	}
	if err := r.Delete("orders"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	all, err := r.List()
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(all) != 0 {
		t.Fatalf("queue survived delete: %v", all)
	}
}
