package grove

import "slices"

// Equal reports whether a and b hold the same leaves, in the same order.
//
// Two empty trees are equal.
// Otherwise the roots must match, and then, although unreachable
// for a collision-resistant Hasher, the leaf counts and the leaf digests
// are compared directly as well.
func Equal(a, b *Tree) bool {
	if len(a.levels) == 0 && len(b.levels) == 0 {
		return true
	}

	if a.root != b.root {
		return false
	}

	if a.nLeaves != b.nLeaves {
		return false
	}

	return slices.Equal(a.levels[0][:a.nLeaves], b.levels[0][:b.nLeaves])
}

// Equal is shorthand for [Equal](t, other).
func (t *Tree) Equal(other *Tree) bool {
	return Equal(t, other)
}
