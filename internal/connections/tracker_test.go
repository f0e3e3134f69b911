package connections

import (
	"sync"
	"testing"
)

func TestCloseAllLocal(t *testing.T) {
	tr := NewTracker("broker@a", nil)

	var mu sync.Mutex
	var reasons []string
	record := func(reason string) {
		mu.Lock()
		reasons = append(reasons, reason)
		mu.Unlock()
	}

	for i := 0; i < 3; i++ {
		tr.Register("10.0.0.1:4711", record)
	}
	if got := tr.CountLocal(); got != 3 {
		t.Fatalf("count: %d", got)
	}

	closed := tr.CloseAllLocal("maintenance")
	if closed != 3 {
		t.Fatalf("closed: %d", closed)
	}
	if tr.CountLocal() != 0 {
		t.Fatalf("connections survived close: %d", tr.CountLocal())
	}
	mu.Lock()
	defer mu.Unlock()
	if len(reasons) != 3 {
		t.Fatalf("close callbacks: %d", len(reasons))
	}
	for _, r := range reasons {
		if r != "maintenance" {
			t.Fatalf("reason: %q", r)
		}
	}
}

func TestCloseAllLocalEmpty(t *testing.T) {
	tr := NewTracker("broker@a", nil)
	if closed := tr.CloseAllLocal("maintenance"); closed != 0 {
		t.Fatalf("closed: %d", closed)
	}
}

func TestUnregister(t *testing.T) {
	tr := NewTracker("broker@a", nil)
	id := tr.Register("10.0.0.2:4711", nil)
	tr.Unregister(id)
	if closed := tr.CloseAllLocal("maintenance"); closed != 0 {
		t.Fatalf("unregistered connection closed: %d", closed)
	}
}
