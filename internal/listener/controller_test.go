package listener

import (
	"errors"
	"testing"
)

type fakeAcceptor struct {
	suspends   int
	resumes    int
	suspendErr error
	resumeErr  error
}

func (f *fakeAcceptor) Suspend() error {
	f.suspends++
	return f.suspendErr
}

func (f *fakeAcceptor) Resume() error {
	f.resumes++
	return f.resumeErr
}

func TestSuspendAllLocalFiltersOwner(t *testing.T) {
	c := NewController("broker@a", nil)
	mine := &fakeAcceptor{}
	theirs := &fakeAcceptor{}
	c.Register(Endpoint{Node: "broker@a", Proto: "amqp", Addr: ":5672", Acceptor: mine})
	c.Register(Endpoint{Node: "broker@b", Proto: "amqp", Addr: ":5672", Acceptor: theirs})

	if err := c.SuspendAllLocal(); err != nil {
		t.Fatalf("suspend: %v", err)
	}
	if mine.suspends != 1 {
		t.Fatalf("local endpoint not suspended: %d", mine.suspends)
	}
	if theirs.suspends != 0 {
		t.Fatalf("non-local endpoint touched: %d", theirs.suspends)
	}
}

func TestSuspendAllLocalFirstErrorAllAttempted(t *testing.T) {
	c := NewController("broker@a", nil)
	err1 := errors.New("first failure")
	err2 := errors.New("second failure")
	a1 := &fakeAcceptor{suspendErr: err1}
	a2 := &fakeAcceptor{suspendErr: err2}
	a3 := &fakeAcceptor{}
	for i, a := range []*fakeAcceptor{a1, a2, a3} {
		c.Register(Endpoint{Node: "broker@a", Proto: "amqp", Addr: string(rune('0' + i)), Acceptor: a})
	}

	err := c.SuspendAllLocal()
	if !errors.Is(err, err1) {
		t.Fatalf("want first error, got %v", err)
	}
	// Later endpoints are still attempted.
	if a2.suspends != 1 || a3.suspends != 1 {
		t.Fatalf("not all endpoints attempted: %d %d", a2.suspends, a3.suspends)
	}
}

func TestResumeAllLocal(t *testing.T) {
	c := NewController("broker@a", nil)
	a := &fakeAcceptor{}
	c.Register(Endpoint{Node: "broker@a", Proto: "amqp", Addr: ":5672", Acceptor: a})
	if err := c.ResumeAllLocal(); err != nil {
		t.Fatalf("resume: %v", err)
	}
	if a.resumes != 1 {
		t.Fatalf("resumes: %d", a.resumes)
	}
}

func TestNoLocalEndpoints(t *testing.T) {
	c := NewController("broker@a", nil)
	c.Register(Endpoint{Node: "broker@b", Proto: "amqp", Addr: ":5672", Acceptor: &fakeAcceptor{}})
	if err := c.SuspendAllLocal(); err != nil {
		t.Fatalf("suspend with no local endpoints: %v", err)
	}
}
