package grove

import (
	"fmt"
	"slices"

	"github.com/gordian-engine/grove/ghash"
)

// grow doubles every level, padding the new upper halves with Empty,
// and then adds a new top level of [oldRoot, Empty].
// The root becomes Empty until the caller repairs the path above the new leaf.
func (t *Tree) grow() {
	for i, l := range t.levels {
		// Replace the level outright, so no level ever aliases another's memory.
		g := make([]ghash.Digest, 2*len(l))
		copy(g, l)
		t.levels[i] = g
	}

	t.levels = append(t.levels, []ghash.Digest{t.root, ghash.Empty})
	t.root = ghash.Empty

	t.log.Debug(
		"Grew tree",
		"capacity", len(t.levels[0]),
		"height", len(t.levels),
		"leaves", t.nLeaves,
	)
}

// shrink halves every level, dropping each upper half,
// and then removes the top level.
// The first slot of the removed level becomes the root.
// That slot covers exactly the kept halves,
// so it is only stale where the removal's range rebuild rehashes anyway.
func (t *Tree) shrink() {
	if len(t.levels) < 2 {
		panic(fmt.Errorf(
			"BUG: cannot shrink tree with %d levels", len(t.levels),
		))
	}

	for i, l := range t.levels {
		t.levels[i] = slices.Clone(l[:len(l)/2])
	}

	t.popLevel()

	t.log.Debug(
		"Shrank tree",
		"capacity", len(t.levels[0]),
		"height", len(t.levels),
		"leaves", t.nLeaves,
	)
}

// drain handles the removal of the final leaf.
// It removes the top level and resets the root to Empty,
// independent of the shrink threshold.
func (t *Tree) drain() {
	t.popLevel()
	t.root = ghash.Empty

	if len(t.levels) == 0 {
		// Release the outer slice too, so an empty tree holds no memory.
		t.levels = nil
	}

	t.log.Debug("Drained tree", "height", len(t.levels))
}

// popLevel removes the top level, moving its first slot into the root.
func (t *Tree) popLevel() {
	top := len(t.levels) - 1
	t.root = t.levels[top][0]
	t.levels[top] = nil
	t.levels = t.levels[:top]
}
