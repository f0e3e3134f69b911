// Package queues tracks the queues hosted on this node and the collaborator
// that moves a queue's leadership to another node. The replication protocols
// themselves (consensus for quorum queues, primary/mirror for classic ones)
// are external; this package only records each queue's name and kind.
package queues
