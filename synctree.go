package grove

import (
	"github.com/gordian-engine/grove/ghash"
	"github.com/puzpuzpuz/xsync/v3"
)

// SyncTree guards a single [*Tree] for use from multiple goroutines.
//
// Every mutation holds the exclusive lock for its full duration,
// since a capacity change replaces whole levels
// before the affected hashes are recomputed.
// Reads share a reader-biased lock.
//
// Each mutation that changes the root or leaf count
// is published to the stream returned by [*SyncTree.Watch].
type SyncTree struct {
	mu *xsync.RBMutex
	t  *Tree

	// Unpublished tail of the update stream.
	updates *RootStream
	seq     uint64
}

// NewSyncTree takes ownership of t.
// The caller must not use t directly afterwards.
func NewSyncTree(t *Tree) *SyncTree {
	return &SyncTree{
		mu: xsync.NewRBMutex(),
		t:  t,

		updates: newRootStream(),
	}
}

// Watch returns the next entry to be published.
// Its Ready channel closes after the following change to the tree.
func (s *SyncTree) Watch() *RootStream {
	tok := s.mu.RLock()
	defer s.mu.RUnlock(tok)
	return s.updates
}

// mutate runs fn under the write lock
// and publishes an update if the root or leaf count changed.
func (s *SyncTree) mutate(fn func(t *Tree) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	prevRoot, prevCount := s.t.root, s.t.nLeaves
	err := fn(s.t)

	if s.t.root != prevRoot || s.t.nLeaves != prevCount {
		s.seq++
		s.updates.publish(RootUpdate{
			Seq:       s.seq,
			Root:      s.t.root,
			LeafCount: s.t.nLeaves,
		})
		s.updates = s.updates.Next
	}

	return err
}

// Root returns the current root digest under the read lock.
func (s *SyncTree) Root() ghash.Digest {
	tok := s.mu.RLock()
	defer s.mu.RUnlock(tok)
	return s.t.Root()
}

// LeafCount returns the number of real leaves under the read lock.
func (s *SyncTree) LeafCount() int {
	tok := s.mu.RLock()
	defer s.mu.RUnlock(tok)
	return s.t.LeafCount()
}

// Leaf returns the digest at idx under the read lock,
// with the same index errors as [*Tree.Leaf].
func (s *SyncTree) Leaf(idx int) (ghash.Digest, error) {
	tok := s.mu.RLock()
	defer s.mu.RUnlock(tok)
	return s.t.Leaf(idx)
}

// AddLeaf hashes data and appends it under the write lock,
// then publishes the new root to watchers.
func (s *SyncTree) AddLeaf(data []byte) {
	_ = s.mutate(func(t *Tree) error {
		t.AddLeaf(data)
		return nil
	})
}

// AddDigest appends d, unhashed, under the write lock,
// then publishes the new root to watchers.
func (s *SyncTree) AddDigest(d ghash.Digest) {
	_ = s.mutate(func(t *Tree) error {
		t.AddDigest(d)
		return nil
	})
}

// UpdateLeaf hashes data and overwrites the leaf at idx under the write lock.
// An update is published only if the root changed.
func (s *SyncTree) UpdateLeaf(idx int, data []byte) error {
	return s.mutate(func(t *Tree) error {
		return t.UpdateLeaf(idx, data)
	})
}

// UpdateDigest overwrites the leaf at idx with d under the write lock.
// An update is published only if the root changed.
func (s *SyncTree) UpdateDigest(idx int, d ghash.Digest) error {
	return s.mutate(func(t *Tree) error {
		return t.UpdateDigest(idx, d)
	})
}

// RemoveLeaf deletes the leaf at idx under the write lock
// and publishes the new root on success.
// Index errors leave the tree unchanged and publish nothing.
func (s *SyncTree) RemoveLeaf(idx int) error {
	return s.mutate(func(t *Tree) error {
		return t.RemoveLeaf(idx)
	})
}

// Do runs fn with exclusive access to the underlying tree,
// so that a sequence of operations is observed atomically.
// At most one update is published for the whole sequence,
// even if fn returns an error after changing the tree.
// fn must not retain t after returning.
func (s *SyncTree) Do(fn func(t *Tree) error) error {
	return s.mutate(fn)
}

// Snapshot returns an independent copy of the current tree.
func (s *SyncTree) Snapshot() *Tree {
	tok := s.mu.RLock()
	defer s.mu.RUnlock(tok)
	return s.t.Clone()
}

// EqualSync reports whether a and b currently hold equal trees.
// It never holds both locks at once,
// so it cannot deadlock against a concurrent EqualSync(b, a).
func EqualSync(a, b *SyncTree) bool {
	if a == b {
		return true
	}
	return Equal(a.Snapshot(), b.Snapshot())
}
