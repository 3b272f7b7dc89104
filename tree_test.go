package grove_test

import (
	"testing"

	"github.com/gordian-engine/grove"
	"github.com/gordian-engine/grove/ghash"
	"github.com/gordian-engine/grove/ghash/gsha256"
	"github.com/gordian-engine/grove/internal/gtest"
	"github.com/stretchr/testify/require"
)

// Tests in this file use explicit Hasher calls to build the expected digests,
// so each assertion spells out the expected tree shape.
var h gsha256.Hasher

func newTree(t *testing.T, values ...string) *grove.Tree {
	t.Helper()

	leaves := make([]grove.Leaf, len(values))
	for i, v := range values {
		leaves[i] = grove.RawLeaf([]byte(v))
	}

	return grove.New(grove.Config{
		Log: gtest.NewLogger(t),
	}, leaves...)
}

func leaf(v string) ghash.Digest {
	return h.Leaf([]byte(v))
}

func TestNew_empty(t *testing.T) {
	t.Parallel()

	tree := newTree(t)

	require.Zero(t, tree.LeafCount())
	require.Zero(t, tree.Capacity())
	require.Zero(t, tree.Height())
	require.Equal(t, ghash.Empty, tree.Root())

	require.True(t, grove.Equal(tree, newTree(t)))
}

func TestTree_AddLeaf_single(t *testing.T) {
	t.Parallel()

	tree := newTree(t)
	tree.AddLeaf([]byte("a"))

	require.Equal(t, 1, tree.LeafCount())
	require.Equal(t, 2, tree.Capacity())
	require.Equal(t, 1, tree.Height())

	require.Equal(t, h.Node(leaf("a"), ghash.Empty), tree.Root())
}

func TestTree_AddLeaf_two(t *testing.T) {
	t.Parallel()

	tree := newTree(t, "a", "b")

	require.Equal(t, 2, tree.Capacity())
	require.Equal(t, h.Node(leaf("a"), leaf("b")), tree.Root())
}

func TestTree_AddLeaf_growthBoundary(t *testing.T) {
	t.Parallel()

	tree := newTree(t, "a", "b")
	tree.AddLeaf([]byte("c"))

	/* Tree structure:

	root
	ab  c_
	a b c _

	*/

	require.Equal(t, 3, tree.LeafCount())
	require.Equal(t, 4, tree.Capacity())
	require.Equal(t, 2, tree.Height())

	expRoot := h.Node(
		h.Node(leaf("a"), leaf("b")),
		h.Node(leaf("c"), ghash.Empty),
	)
	require.Equal(t, expRoot, tree.Root())
}

func TestTree_AddLeaf_paddingSubtreesStayEmpty(t *testing.T) {
	t.Parallel()

	tree := newTree(t, "a", "b", "c", "d", "e")

	/* Tree structure:

	root
	abcd    e___
	ab  cd  e_  __
	a b c d e _ _ _

	The "__" node is the literal empty digest, not a hash of two empties.

	*/

	require.Equal(t, 8, tree.Capacity())

	expRoot := h.Node(
		h.Node(
			h.Node(leaf("a"), leaf("b")),
			h.Node(leaf("c"), leaf("d")),
		),
		h.Node(
			h.Node(leaf("e"), ghash.Empty),
			ghash.Empty,
		),
	)
	require.Equal(t, expRoot, tree.Root())
}

func TestTree_AddDigest_matchesAddLeaf(t *testing.T) {
	t.Parallel()

	raw := newTree(t, "x", "y", "z")

	pre := newTree(t)
	pre.AddDigest(leaf("x"))
	pre.AddDigest(leaf("y"))
	pre.AddDigest(leaf("z"))

	require.Equal(t, raw.Root(), pre.Root())
	require.True(t, grove.Equal(raw, pre))

	mixed := grove.New(grove.Config{}, grove.RawLeaf([]byte("x")), grove.DigestLeaf(leaf("y")), grove.RawLeaf([]byte("z")))
	require.True(t, grove.Equal(raw, mixed))
}

func TestTree_UpdateLeaf(t *testing.T) {
	t.Parallel()

	tree := newTree(t, "a", "b", "c", "d")

	require.NoError(t, tree.UpdateLeaf(2, []byte("c'")))

	expRoot := h.Node(
		h.Node(leaf("a"), leaf("b")),
		h.Node(leaf("c'"), leaf("d")),
	)
	require.Equal(t, expRoot, tree.Root())
	require.Equal(t, 4, tree.LeafCount())
	require.Equal(t, 4, tree.Capacity())

	got, err := tree.Leaf(2)
	require.NoError(t, err)
	require.Equal(t, leaf("c'"), got)
}

func TestTree_UpdateDigest(t *testing.T) {
	t.Parallel()

	tree := newTree(t, "a")

	require.NoError(t, tree.UpdateDigest(0, leaf("z")))
	require.Equal(t, h.Node(leaf("z"), ghash.Empty), tree.Root())
}

func TestTree_RemoveLeaf_shiftsIndices(t *testing.T) {
	t.Parallel()

	tree := newTree(t, "a", "b", "c", "d")

	require.NoError(t, tree.RemoveLeaf(1))

	require.Equal(t, 3, tree.LeafCount())
	require.Equal(t, 4, tree.Capacity())

	for i, v := range []string{"a", "c", "d"} {
		got, err := tree.Leaf(i)
		require.NoError(t, err)
		require.Equal(t, leaf(v), got, "leaf %d", i)
	}

	expRoot := h.Node(
		h.Node(leaf("a"), leaf("c")),
		h.Node(leaf("d"), ghash.Empty),
	)
	require.Equal(t, expRoot, tree.Root())
}

func TestTree_RemoveLeaf_shrinkBoundary(t *testing.T) {
	t.Parallel()

	tree := newTree(t, "a", "b", "c", "d")

	require.NoError(t, tree.RemoveLeaf(0))
	require.Equal(t, 4, tree.Capacity())

	require.NoError(t, tree.RemoveLeaf(1))
	require.Equal(t, 2, tree.LeafCount())
	require.Equal(t, 2, tree.Capacity())
	require.Equal(t, 1, tree.Height())

	fresh := newTree(t, "b", "d")
	require.Equal(t, fresh.Root(), tree.Root())
	require.Equal(t, h.Node(leaf("b"), leaf("d")), tree.Root())
	require.True(t, grove.Equal(fresh, tree))
}

func TestTree_RemoveLeaf_last(t *testing.T) {
	t.Parallel()

	tree := newTree(t, "a", "b", "c")

	// Removing the last leaf of the upper half
	// shrinks and leaves the removed index past the new capacity.
	require.NoError(t, tree.RemoveLeaf(2))
	require.Equal(t, 2, tree.Capacity())
	require.Equal(t, newTree(t, "a", "b").Root(), tree.Root())

	require.NoError(t, tree.RemoveLeaf(1))
	require.Equal(t, 2, tree.Capacity())
	require.Equal(t, h.Node(leaf("a"), ghash.Empty), tree.Root())
}

func TestTree_RemoveLeaf_drain(t *testing.T) {
	t.Parallel()

	tree := newTree(t, "one", "two", "three", "four")

	for i := 3; i >= 0; i-- {
		require.NoError(t, tree.RemoveLeaf(i))
	}

	require.Zero(t, tree.LeafCount())
	require.Zero(t, tree.Height())
	require.Equal(t, ghash.Empty, tree.Root())
	require.True(t, grove.Equal(tree, newTree(t)))

	// And the drained tree is usable again.
	tree.AddLeaf([]byte("again"))
	require.Equal(t, newTree(t, "again").Root(), tree.Root())
}

func TestTree_outOfRange(t *testing.T) {
	t.Parallel()

	tree := newTree(t, "a", "b", "c", "d")
	before := tree.Clone()

	var ie grove.IndexError
	var nie grove.NegativeIndexError

	err := tree.UpdateLeaf(4, []byte("x"))
	require.ErrorAs(t, err, &ie)
	require.Equal(t, grove.IndexError{Index: 4, LeafCount: 4}, ie)

	err = tree.UpdateDigest(-1, leaf("x"))
	require.ErrorAs(t, err, &nie)
	require.Equal(t, -1, nie.Index)

	err = tree.RemoveLeaf(4)
	require.ErrorAs(t, err, &ie)

	err = tree.RemoveLeaf(-1)
	require.ErrorAs(t, err, &nie)

	_, err = tree.Leaf(4)
	require.ErrorAs(t, err, &ie)

	require.True(t, grove.Equal(before, tree))
	require.Equal(t, before.Root(), tree.Root())
	require.Equal(t, 4, tree.LeafCount())
}

func TestTree_outOfRange_empty(t *testing.T) {
	t.Parallel()

	tree := newTree(t)

	var ie grove.IndexError
	require.ErrorAs(t, tree.RemoveLeaf(0), &ie)
	require.ErrorAs(t, tree.UpdateLeaf(20, []byte("twenty")), &ie)
	require.Equal(t, 20, ie.Index)

	var nie grove.NegativeIndexError
	require.ErrorAs(t, tree.RemoveLeaf(-1), &nie)

	require.Equal(t, ghash.Empty, tree.Root())
}

func TestTree_Capacity_powersOfTwo(t *testing.T) {
	t.Parallel()

	for _, tc := range []struct {
		leaves, capacity int
	}{
		{1, 2},
		{2, 2},
		{3, 4},
		{5, 8},
		{15, 16},
		{21, 32},
		{54, 64},
	} {
		tree := newTree(t)
		for i := range tc.leaves {
			tree.AddLeaf([]byte{byte(i)})
		}
		require.Equal(t, tc.capacity, tree.Capacity(), "with %d leaves", tc.leaves)
		require.Equal(t, tc.capacity, 1<<tree.Height())
	}
}

func TestTree_Leaves(t *testing.T) {
	t.Parallel()

	values := []string{"a", "b", "c", "d", "e"}
	tree := newTree(t, values...)

	var got []ghash.Digest
	for i, d := range tree.Leaves() {
		require.Equal(t, len(got), i)
		got = append(got, d)
	}

	require.Len(t, got, len(values))
	for i, v := range values {
		require.Equal(t, leaf(v), got[i])
	}

	// Early break.
	n := 0
	for range tree.Leaves() {
		n++
		if n == 2 {
			break
		}
	}
	require.Equal(t, 2, n)
}

func TestTree_Clone_independent(t *testing.T) {
	t.Parallel()

	tree := newTree(t, "a", "b", "c")
	c := tree.Clone()

	require.True(t, grove.Equal(tree, c))

	c.AddLeaf([]byte("d"))
	require.NoError(t, c.RemoveLeaf(0))

	require.Equal(t, newTree(t, "a", "b", "c").Root(), tree.Root())
	require.Equal(t, newTree(t, "b", "c", "d").Root(), c.Root())
}

func TestTree_hasherIsConfigurable(t *testing.T) {
	t.Parallel()

	def := grove.New(grove.Config{}, grove.RawLeaf([]byte("ab")))
	explicit := grove.New(grove.Config{Hasher: gsha256.Hasher{}}, grove.RawLeaf([]byte("ab")))
	require.Equal(t, def.Root(), explicit.Root())

	other := grove.New(grove.Config{Hasher: reversingHasher{}}, grove.RawLeaf([]byte("ab")))
	require.NotEqual(t, def.Root(), other.Root())
}

// reversingHasher wraps SHA-256 over the reversed input.
// It is only useful to show that the configured Hasher is used.
type reversingHasher struct{}

func (reversingHasher) Leaf(in []byte) ghash.Digest {
	rev := make([]byte, len(in))
	for i, b := range in {
		rev[len(in)-1-i] = b
	}
	return h.Leaf(rev)
}

func (r reversingHasher) Node(left, right ghash.Digest) ghash.Digest {
	return r.Leaf(append(left[:], right[:]...))
}
