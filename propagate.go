package grove

import "github.com/gordian-engine/grove/ghash"

// updatePath hashes the pair containing pos at the given level,
// writing the result into the parent slot,
// or into the root if level is the topmost stored level.
//
// If recurse is set, it continues with the parent pair
// on each level up to the root.
func (t *Tree) updatePath(level, pos int, recurse bool) {
	top := len(t.levels) - 1
	for {
		l := t.levels[level]

		// The even position is always the left operand.
		left, right := l[pos], l[sibling(pos)]
		if !isLeft(pos) {
			left, right = right, left
		}
		sum := t.hasher.Node(left, right)

		if level == top {
			t.root = sum
			return
		}

		level++
		pos = parent(pos)
		t.levels[level][pos] = sum

		if !recurse {
			return
		}
	}
}

// rebuildRange rehashes every pair overlapping positions [start, end] of level,
// and then the corresponding range on each level above, up to the root.
//
// end is the last occupied position on the level.
// The slot just past end may hold a stale digest from before a removal,
// so it is reset to Empty first.
func (t *Tree) rebuildRange(level, start, end int) {
	for ; level < len(t.levels); level++ {
		l := t.levels[level]

		if end+1 < len(l) {
			l[end+1] = ghash.Empty
		}

		// Widen the range outward to whole pairs.
		if !isLeft(start) {
			start--
		}
		if isLeft(end) {
			end++
		}

		for pos := start; pos < end; pos += 2 {
			t.updatePath(level, pos, false)
		}

		start, end = parent(start), parent(end)
	}
}
