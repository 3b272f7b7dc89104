// Package grove maintains a single root digest over an ordered,
// resizable list of leaves, rehashing only the affected paths on each mutation.
//
// The tree stores one slice of digests per level, below an implicit root.
// Level 0 holds the leaf digests followed by [ghash.Empty] padding,
// and its length is always a power of two.
// Every level above holds the pairwise hashes of the level below it,
// and the root is the hash of the topmost level's two slots.
// Slots whose whole subtree is padding hold [ghash.Empty] directly;
// the sentinel is fed into node hashes unhashed.
//
// Capacity doubles when an append would overflow level 0,
// and halves when a removal leaves the tree at most half full.
// Removal is positional: every later leaf shifts down one index,
// and the trailing range is rehashed level by level.
//
// A [*Tree] is not safe for concurrent use.
// Wrap it in a [*SyncTree] to share it between goroutines.
package grove
