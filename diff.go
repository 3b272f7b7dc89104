package grove

import (
	"github.com/bits-and-blooms/bitset"
)

// DiffLeaves returns the set of leaf positions at which a and b differ.
// A position present in only one of the trees counts as a difference.
// The returned set has length max(a.LeafCount(), b.LeafCount()).
//
// When both trees have the same height,
// DiffLeaves walks down from the top level
// and skips every subtree whose stored digest matches in both trees,
// so nearly-equal trees are diffed in time proportional to
// the number of differences times the height.
// Otherwise the leaf levels are compared position by position.
func DiffLeaves(a, b *Tree) *bitset.BitSet {
	minLeaves := min(a.nLeaves, b.nLeaves)
	maxLeaves := max(a.nLeaves, b.nLeaves)

	diff := bitset.New(uint(maxLeaves))

	if minLeaves > 0 {
		if len(a.levels) == len(b.levels) {
			diffDescend(a, b, diff)
		} else {
			for i := range minLeaves {
				if a.levels[0][i] != b.levels[0][i] {
					diff.Set(uint(i))
				}
			}
		}
	}

	// Positions beyond the shorter tree always differ,
	// even for the degenerate leaf digest equal to the padding sentinel.
	for i := minLeaves; i < maxLeaves; i++ {
		diff.Set(uint(i))
	}

	return diff
}

// diffDescend walks a and b together from their top level,
// which must be at the same height.
func diffDescend(a, b *Tree, diff *bitset.BitSet) {
	type slot struct {
		level, pos int
	}

	top := len(a.levels) - 1
	stack := []slot{{top, 1}, {top, 0}}

	for len(stack) > 0 {
		s := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if a.levels[s.level][s.pos] == b.levels[s.level][s.pos] {
			continue
		}

		if s.level == 0 {
			diff.Set(uint(s.pos))
			continue
		}

		// Right child first, so the left child is popped first.
		left := 2 * s.pos
		stack = append(stack,
			slot{s.level - 1, left + 1},
			slot{s.level - 1, left},
		)
	}
}
