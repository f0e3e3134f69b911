package maintenance

import (
	"context"
	"errors"
	"testing"

	"github.com/prakultomar-web/rabbitmq-server/internal/cluster"
	"github.com/prakultomar-web/rabbitmq-server/internal/queues"
)

type fakeLister struct {
	classic []queues.Queue
	quorum  []queues.Queue
	err     error
}

func (f *fakeLister) ListByKind(kind queues.Kind) ([]queues.Queue, error) {
	if f.err != nil {
		return nil, f.err
	}
	if kind == queues.KindClassic {
		return f.classic, nil
	}
	return f.quorum, nil
}

type transferCall struct {
	queue  string
	target cluster.NodeID
}

type fakeTransferrer struct {
	calls    []transferCall
	outcomes map[string]queues.Outcome
	errs     map[string]error
}

func (f *fakeTransferrer) TransferLeadership(_ context.Context, q queues.Queue, to cluster.NodeID) (queues.Outcome, error) {
	f.calls = append(f.calls, transferCall{queue: q.Name, target: to})
	if err := f.errs[q.Name]; err != nil {
		return "", err
	}
	if o, ok := f.outcomes[q.Name]; ok {
		return o, nil
	}
	return queues.OutcomeMigrated, nil
}

func newCoordinatorForTest(lister *fakeLister, tr *fakeTransferrer, self cluster.NodeID) *TransferCoordinator {
	sel := NewSelector(cluster.NewRegistry(self, nil), nil, WithIndexSource(func(n int) int { return 0 }))
	return NewTransferCoordinator(lister, tr, sel, nil)
}

func TestTransferClassicNoCandidates(t *testing.T) {
	lister := &fakeLister{classic: []queues.Queue{{Name: "orders", Kind: queues.KindClassic}}}
	tr := &fakeTransferrer{}
	c := newCoordinatorForTest(lister, tr, "broker@a")

	if err := c.TransferClassic(context.Background(), nil); err != nil {
		t.Fatalf("transfer: %v", err)
	}
	if len(tr.calls) != 0 {
		t.Fatalf("transfers attempted despite no candidates: %v", tr.calls)
	}
}

func TestTransferClassicVisitsEveryQueueOnce(t *testing.T) {
	lister := &fakeLister{classic: []queues.Queue{
		{Name: "orders", Kind: queues.KindClassic},
		{Name: "audit", Kind: queues.KindClassic},
	}}
	tr := &fakeTransferrer{}
	c := newCoordinatorForTest(lister, tr, "broker@a")
	candidates := []cluster.NodeID{"broker@b", "broker@c"}

	if err := c.TransferClassic(context.Background(), candidates); err != nil {
		t.Fatalf("transfer: %v", err)
	}
	if len(tr.calls) != 2 {
		t.Fatalf("want 2 transfer calls, got %v", tr.calls)
	}
	seen := map[string]int{}
	for _, call := range tr.calls {
		seen[call.queue]++
		if call.target != "broker@b" && call.target != "broker@c" {
			t.Fatalf("target outside candidate set: %v", call)
		}
	}
	if seen["orders"] != 1 || seen["audit"] != 1 {
		t.Fatalf("queues not visited exactly once: %v", seen)
	}
}

func TestTransferClassicBadOutcomeContinues(t *testing.T) {
	lister := &fakeLister{classic: []queues.Queue{
		{Name: "orders", Kind: queues.KindClassic},
		{Name: "audit", Kind: queues.KindClassic},
	}}
	tr := &fakeTransferrer{outcomes: map[string]queues.Outcome{"audit": "timeout"}}
	c := newCoordinatorForTest(lister, tr, "broker@a")

	if err := c.TransferClassic(context.Background(), []cluster.NodeID{"broker@b"}); err != nil {
		t.Fatalf("transfer must not escalate outcomes: %v", err)
	}
	if len(tr.calls) != 2 {
		t.Fatalf("processing stopped early: %v", tr.calls)
	}
}

func TestTransferClassicErrorContinues(t *testing.T) {
	lister := &fakeLister{classic: []queues.Queue{
		{Name: "orders", Kind: queues.KindClassic},
		{Name: "audit", Kind: queues.KindClassic},
	}}
	tr := &fakeTransferrer{errs: map[string]error{"orders": errors.New("peer unreachable")}}
	c := newCoordinatorForTest(lister, tr, "broker@a")

	if err := c.TransferClassic(context.Background(), []cluster.NodeID{"broker@b"}); err != nil {
		t.Fatalf("transfer must not escalate errors: %v", err)
	}
	if len(tr.calls) != 2 {
		t.Fatalf("processing stopped early: %v", tr.calls)
	}
}

func TestTransferClassicListFailureIsAbsorbed(t *testing.T) {
	lister := &fakeLister{err: errors.New("iterator broken")}
	c := newCoordinatorForTest(lister, &fakeTransferrer{}, "broker@a")
	if err := c.TransferClassic(context.Background(), []cluster.NodeID{"broker@b"}); err != nil {
		t.Fatalf("listing failure escalated: %v", err)
	}
}

func TestTransferQuorumDrivesNoTransfers(t *testing.T) {
	lister := &fakeLister{quorum: []queues.Queue{{Name: "payments", Kind: queues.KindQuorum}}}
	tr := &fakeTransferrer{}
	c := newCoordinatorForTest(lister, tr, "broker@a")

	if err := c.TransferQuorum(context.Background(), []cluster.NodeID{"broker@b"}); err != nil {
		t.Fatalf("quorum transfer: %v", err)
	}
	if err := c.TransferQuorum(context.Background(), nil); err != nil {
		t.Fatalf("quorum transfer (no candidates): %v", err)
	}
	if len(tr.calls) != 0 {
		t.Fatalf("quorum path must not drive transfers: %v", tr.calls)
	}
}
