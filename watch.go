package grove

import "github.com/gordian-engine/grove/ghash"

// RootUpdate describes a [SyncTree] after a mutation.
type RootUpdate struct {
	// Seq counts published updates, starting at 1.
	Seq uint64

	Root      ghash.Digest
	LeafCount int
}

// RootStream is one entry in the sequence of updates
// published by a [SyncTree].
// The sequence has a single writer and many readers,
// and each reader advances through it at its own pace
// by waiting on Ready and then following Next.
//
// A reader holding an old entry keeps every later entry reachable,
// so readers that stop consuming should drop their reference.
type RootStream struct {
	Ready chan struct{}
	Next  *RootStream
	Val   RootUpdate
}

func newRootStream() *RootStream {
	return &RootStream{
		Ready: make(chan struct{}),
	}
}

// publish assigns s's value and initializes s.Next,
// then closes s.Ready so observers may read s.Val.
//
// Publishing the same entry twice panics.
func (s *RootStream) publish(u RootUpdate) {
	s.Val = u
	s.Next = newRootStream()
	close(s.Ready)
}
