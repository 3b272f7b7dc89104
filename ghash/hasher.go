// Package ghash defines the digest type stored at every position of a grove tree,
// and the [Hasher] interface the tree uses to produce those digests.
//
// Concrete hash functions live in subpackages (gsha256, gsha256simd, gblake2b, gkeccak256),
// and the ghashes package looks them up by name.
package ghash

import (
	"encoding/hex"
	"fmt"
)

// Size is the size in bytes of every [Digest].
const Size = 32

// Digest is the fixed-size output of a [Hasher].
//
// Since a Digest is only 32 bytes, it is passed and returned by value.
type Digest [Size]byte

// Empty is the all-zero digest.
//
// It is a sentinel byte pattern for an unoccupied slot,
// not the hash of any value.
// The tree feeds it directly into node hashes, unhashed,
// so a leaf digest that happens to be all zeros
// is indistinguishable from padding.
var Empty Digest

// String returns the lowercase hex encoding of d.
func (d Digest) String() string {
	return hex.EncodeToString(d[:])
}

// IsEmpty reports whether d is the [Empty] sentinel.
func (d Digest) IsEmpty() bool {
	return d == Empty
}

// ParseDigest decodes a hex string of exactly [Size] bytes.
func ParseDigest(s string) (Digest, error) {
	var d Digest
	b, err := hex.DecodeString(s)
	if err != nil {
		return d, fmt.Errorf("failed to decode digest hex: %w", err)
	}
	if len(b) != Size {
		return d, fmt.Errorf(
			"digest must be %d bytes (got %d)", Size, len(b),
		)
	}
	copy(d[:], b)
	return d, nil
}

// Hasher is the user-defined interface for hashing leaves and nodes.
//
// Leaf hashes raw leaf data.
// Node combines two child digests, left then right,
// and its result must equal Leaf applied to the 64-byte concatenation
// of left and right.
//
// Hasher implementations must hold no mutable state shared across calls,
// so that Hasher methods are safe to call concurrently.
type Hasher interface {
	Leaf(in []byte) Digest
	Node(left, right Digest) Digest
}
