package runtime

import (
	"context"
	"net"
	"testing"
	"time"

	cfgpkg "github.com/prakultomar-web/rabbitmq-server/internal/config"
	"github.com/prakultomar-web/rabbitmq-server/internal/maintenance"
	pebblestore "github.com/prakultomar-web/rabbitmq-server/internal/storage/pebble"
)

func newRuntimeForTest(t *testing.T) *Runtime {
	t.Helper()
	cfg := cfgpkg.Default()
	cfg.NodeName = "broker@test"
	cfg.ClientAddr = "127.0.0.1:0"
	rt, err := Open(Options{DataDir: t.TempDir(), Fsync: pebblestore.FsyncModeAlways, Config: cfg})
	if err != nil {
		t.Fatalf("open runtime: %v", err)
	}
	t.Cleanup(func() { _ = rt.Close() })
	return rt
}

func waitFor(t *testing.T, cond func() bool, msg string) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatal(msg)
}

func TestCheckHealth(t *testing.T) {
	rt := newRuntimeForTest(t)
	if err := rt.CheckHealth(context.Background()); err != nil {
		t.Fatalf("health: %v", err)
	}
}

func TestSingleNodeDrainRevive(t *testing.T) {
	rt := newRuntimeForTest(t)
	ctx := context.Background()

	if err := rt.StartClientListener(); err != nil {
		t.Fatalf("start client listener: %v", err)
	}
	addr := rt.ClientAddr()

	// Three clients connect and are tracked.
	for i := 0; i < 3; i++ {
		conn, err := net.DialTimeout("tcp", addr, time.Second)
		if err != nil {
			t.Fatalf("dial %d: %v", i, err)
		}
		defer conn.Close()
	}
	waitFor(t, func() bool { return rt.Connections().CountLocal() == 3 }, "connections not tracked")

	// Queues exist on the sole node; drain must still complete.
	if _, err := rt.Queues().Ensure("orders", "classic"); err != nil {
		t.Fatalf("ensure queue: %v", err)
	}

	if err := rt.Maintenance().Drain(ctx); err != nil {
		t.Fatalf("drain: %v", err)
	}

	if got := rt.Maintenance().Status(ctx, rt.Membership().Self(), maintenance.ConsistentRead); got != maintenance.StatusDraining {
		t.Fatalf("status after drain: %s", got)
	}
	if rt.Connections().CountLocal() != 0 {
		t.Fatalf("connections survived drain: %d", rt.Connections().CountLocal())
	}
	if _, err := net.DialTimeout("tcp", addr, 200*time.Millisecond); err == nil {
		t.Fatal("listener accepted a connection while draining")
	}
	// The sole node has no transfer candidates.
	if cands := rt.Selector().TransferCandidates(ctx); len(cands) != 0 {
		t.Fatalf("sole node produced candidates: %v", cands)
	}

	if err := rt.Maintenance().Revive(ctx); err != nil {
		t.Fatalf("revive: %v", err)
	}
	if got := rt.Maintenance().Status(ctx, rt.Membership().Self(), maintenance.LocalRead); got != maintenance.StatusRegular {
		t.Fatalf("status after revive: %s", got)
	}
	conn, err := net.DialTimeout("tcp", addr, time.Second)
	if err != nil {
		t.Fatalf("dial after revive: %v", err)
	}
	_ = conn.Close()
}

func TestCandidatesExcludeDrainingPeer(t *testing.T) {
	cfg := cfgpkg.Default()
	cfg.NodeName = "broker@a"
	cfg.Peers = []string{"broker@b", "broker@c"}
	rt, err := Open(Options{DataDir: t.TempDir(), Fsync: pebblestore.FsyncModeAlways, Config: cfg})
	if err != nil {
		t.Fatalf("open runtime: %v", err)
	}
	t.Cleanup(func() { _ = rt.Close() })
	ctx := context.Background()

	cands := rt.Selector().TransferCandidates(ctx)
	if len(cands) != 2 {
		t.Fatalf("candidates: %v", cands)
	}

	// Peer c is marked draining in the shared table; it must disappear.
	if !rt.State().SetStatus(ctx, "broker@c", maintenance.StatusDraining) {
		t.Fatal("set peer status")
	}
	cands = rt.Selector().TransferCandidates(ctx)
	if len(cands) != 1 || cands[0] != "broker@b" {
		t.Fatalf("candidates after peer drain: %v", cands)
	}
}
