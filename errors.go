package grove

import "fmt"

// IndexError is returned when a requested leaf index
// is at or beyond the current leaf count.
type IndexError struct {
	Index, LeafCount int
}

func (e IndexError) Error() string {
	return fmt.Sprintf(
		"leaf index %d out of range (tree has %d leaves)", e.Index, e.LeafCount,
	)
}

// NegativeIndexError is returned when a requested leaf index is negative.
type NegativeIndexError struct {
	Index int
}

func (e NegativeIndexError) Error() string {
	return fmt.Sprintf("leaf index %d is negative", e.Index)
}

// checkIndex validates idx against the current leaf count,
// before any mutation takes place.
func (t *Tree) checkIndex(idx int) error {
	if idx < 0 {
		return NegativeIndexError{Index: idx}
	}
	if idx >= t.nLeaves {
		return IndexError{Index: idx, LeafCount: t.nLeaves}
	}
	return nil
}
