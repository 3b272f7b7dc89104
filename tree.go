package grove

import (
	"io"
	"iter"
	"log/slog"
	"slices"

	"github.com/gordian-engine/grove/ghash"
	"github.com/gordian-engine/grove/ghash/gsha256"
)

// Config is the configuration for [New].
type Config struct {
	// Hasher produces leaf and node digests.
	// If nil, SHA-256 is used.
	Hasher ghash.Hasher

	// Log receives debug records about capacity changes.
	// If nil, nothing is logged.
	Log *slog.Logger
}

// Leaf is an initial leaf value for [New].
// Create one with [RawLeaf] or [DigestLeaf].
type Leaf struct {
	data []byte

	digest    ghash.Digest
	prehashed bool
}

// RawLeaf returns a Leaf whose data is hashed with the tree's Hasher.
func RawLeaf(data []byte) Leaf {
	return Leaf{data: data}
}

// DigestLeaf returns a Leaf that is stored as-is, without hashing.
func DigestLeaf(d ghash.Digest) Leaf {
	return Leaf{digest: d, prehashed: true}
}

// Tree is an incremental Merkle tree.
//
// Create one with [New].
type Tree struct {
	log *slog.Logger

	hasher ghash.Hasher

	// The root is conceptually one level above levels[len(levels)-1].
	// It is never stored inside levels.
	root ghash.Digest

	// Count of real leaves at the start of levels[0].
	nLeaves int

	// levels[0] is the bottom level.
	// len(levels[0]) == 1<<len(levels),
	// and each level is half the length of the one below it,
	// so the top stored level always has exactly two slots.
	// Levels never share backing memory.
	levels [][]ghash.Digest
}

// New returns a tree populated with the given leaves, in order.
// With no leaves, the tree is empty and its root is [ghash.Empty].
func New(cfg Config, leaves ...Leaf) *Tree {
	h := cfg.Hasher
	if h == nil {
		h = gsha256.Hasher{}
	}

	log := cfg.Log
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	t := &Tree{
		log:    log,
		hasher: h,
	}

	for _, l := range leaves {
		if l.prehashed {
			t.AddDigest(l.digest)
		} else {
			t.AddLeaf(l.data)
		}
	}

	return t
}

// Root returns the current root digest.
func (t *Tree) Root() ghash.Digest {
	return t.root
}

// LeafCount returns the number of real leaves in the tree.
func (t *Tree) LeafCount() int {
	return t.nLeaves
}

// Capacity returns the number of slots in the bottom level,
// which is zero for an empty tree and otherwise a power of two.
func (t *Tree) Capacity() int {
	if len(t.levels) == 0 {
		return 0
	}
	return len(t.levels[0])
}

// Height returns the number of stored levels below the root.
func (t *Tree) Height() int {
	return len(t.levels)
}

// Leaf returns the digest stored for the leaf at idx.
func (t *Tree) Leaf(idx int) (ghash.Digest, error) {
	if err := t.checkIndex(idx); err != nil {
		return ghash.Digest{}, err
	}
	return t.levels[0][idx], nil
}

// Leaves iterates over every leaf index and digest, in order.
// The tree must not be modified during iteration.
func (t *Tree) Leaves() iter.Seq2[int, ghash.Digest] {
	return func(yield func(int, ghash.Digest) bool) {
		for i := range t.nLeaves {
			if !yield(i, t.levels[0][i]) {
				return
			}
		}
	}
}

// Clone returns a deep copy of t, sharing only the Hasher and logger.
func (t *Tree) Clone() *Tree {
	c := &Tree{
		log:     t.log,
		hasher:  t.hasher,
		root:    t.root,
		nLeaves: t.nLeaves,
	}
	if len(t.levels) > 0 {
		c.levels = make([][]ghash.Digest, len(t.levels))
		for i, l := range t.levels {
			c.levels[i] = slices.Clone(l)
		}
	}
	return c
}
