package grove

import (
	"slices"

	"github.com/gordian-engine/grove/ghash"
)

// AddLeaf hashes data and appends it as the last leaf.
func (t *Tree) AddLeaf(data []byte) {
	t.AddDigest(t.hasher.Leaf(data))
}

// AddDigest appends d, unhashed, as the last leaf.
// The tree doubles its capacity first if level 0 is full.
func (t *Tree) AddDigest(d ghash.Digest) {
	if len(t.levels) == 0 || t.nLeaves+1 > len(t.levels[0]) {
		t.grow()
	}

	pos := t.nLeaves
	t.levels[0][pos] = d
	t.nLeaves++

	t.updatePath(0, pos, true)
}

// UpdateLeaf hashes data and overwrites the leaf at idx.
//
// It returns a [NegativeIndexError] or [IndexError]
// without modifying the tree, if idx is out of range.
func (t *Tree) UpdateLeaf(idx int, data []byte) error {
	if err := t.checkIndex(idx); err != nil {
		return err
	}

	t.setLeaf(idx, t.hasher.Leaf(data))
	return nil
}

// UpdateDigest overwrites the leaf at idx with d, unhashed.
//
// It returns a [NegativeIndexError] or [IndexError]
// without modifying the tree, if idx is out of range.
func (t *Tree) UpdateDigest(idx int, d ghash.Digest) error {
	if err := t.checkIndex(idx); err != nil {
		return err
	}

	t.setLeaf(idx, d)
	return nil
}

func (t *Tree) setLeaf(idx int, d ghash.Digest) {
	t.levels[0][idx] = d
	t.updatePath(0, idx, true)
}

// RemoveLeaf deletes the leaf at idx.
// Every leaf after idx moves down one position.
//
// It returns a [NegativeIndexError] or [IndexError]
// without modifying the tree, if idx is out of range.
func (t *Tree) RemoveLeaf(idx int) error {
	if err := t.checkIndex(idx); err != nil {
		return err
	}

	// slices.Delete zeroes the vacated final slot, which is exactly Empty,
	// and the append restores the level's length within its own capacity.
	l0 := t.levels[0]
	t.levels[0] = append(slices.Delete(l0, idx, idx+1), ghash.Empty)
	t.nLeaves--

	switch {
	case t.nLeaves == 0:
		t.drain()
	case t.nLeaves > 1 && t.nLeaves <= len(t.levels[0])/2:
		t.shrink()
	}

	if len(t.levels) == 0 {
		return nil
	}

	if idx == len(t.levels[0]) {
		// The removed leaf was last in the upper half that shrink dropped.
		idx--
	}

	// Every leaf from idx onward changed position,
	// so the whole trailing range needs rehashing, not a single path.
	t.rebuildRange(0, idx, t.nLeaves-1)
	return nil
}
