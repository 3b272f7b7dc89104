package grove

// Position arithmetic, identical at every level.

// isLeft reports whether pos is the left operand of its pair.
func isLeft(pos int) bool {
	return pos&1 == 0
}

// sibling returns the other position in pos's pair.
func sibling(pos int) int {
	if isLeft(pos) {
		return pos + 1
	}
	return pos - 1
}

// parent returns the position of pos's pair hash in the level above.
func parent(pos int) int {
	return pos / 2
}
