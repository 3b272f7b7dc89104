package ghashtest

import (
	"testing"

	"github.com/gordian-engine/grove/ghash"
	"github.com/stretchr/testify/require"
)

// TestHasherCompliance runs the set of behaviors
// every [ghash.Hasher] must satisfy for use in a grove tree.
func TestHasherCompliance(t *testing.T, h ghash.Hasher) {
	t.Run("leaf is deterministic", func(t *testing.T) {
		t.Parallel()

		d1 := h.Leaf([]byte("deterministic_data"))
		d2 := h.Leaf([]byte("deterministic_data"))

		require.Equal(t, d1, d2)
	})

	t.Run("leaf respects input", func(t *testing.T) {
		t.Parallel()

		d1 := h.Leaf([]byte("hello"))
		d2 := h.Leaf([]byte("hellp"))

		require.NotEqual(t, d1, d2)
		require.NotEqual(t, ghash.Empty, d1)
	})

	t.Run("node respects order", func(t *testing.T) {
		t.Parallel()

		a := h.Leaf([]byte("a"))
		b := h.Leaf([]byte("b"))

		require.NotEqual(t, h.Node(a, b), h.Node(b, a))
	})

	t.Run("node hashes concatenated children", func(t *testing.T) {
		t.Parallel()

		left := h.Leaf([]byte("left"))
		right := h.Leaf([]byte("right"))

		concat := make([]byte, 0, 2*ghash.Size)
		concat = append(concat, left[:]...)
		concat = append(concat, right[:]...)

		require.Equal(t, h.Leaf(concat), h.Node(left, right))
	})

	t.Run("node accepts the empty sentinel unhashed", func(t *testing.T) {
		t.Parallel()

		a := h.Leaf([]byte("a"))

		concat := make([]byte, 0, 2*ghash.Size)
		concat = append(concat, a[:]...)
		concat = append(concat, ghash.Empty[:]...)

		require.Equal(t, h.Leaf(concat), h.Node(a, ghash.Empty))
	})

	t.Run("concurrent use", func(t *testing.T) {
		t.Parallel()

		want := h.Node(h.Leaf([]byte("x")), h.Leaf([]byte("y")))

		const n = 8
		got := make(chan ghash.Digest, n)
		for range n {
			go func() {
				got <- h.Node(h.Leaf([]byte("x")), h.Leaf([]byte("y")))
			}()
		}
		for range n {
			require.Equal(t, want, <-got)
		}
	})
}
