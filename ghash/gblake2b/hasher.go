package gblake2b

import (
	"fmt"

	"github.com/gordian-engine/grove/ghash"
	"golang.org/x/crypto/blake2b"
)

// Name is the registry name of this hasher.
const Name = "blake2b-256"

// Hasher is a [ghash.Hasher] backed by unkeyed BLAKE2b-256.
type Hasher struct{}

func (Hasher) Leaf(in []byte) ghash.Digest {
	return ghash.Digest(blake2b.Sum256(in))
}

func (Hasher) Node(left, right ghash.Digest) ghash.Digest {
	h, err := blake2b.New256(nil)
	if err != nil {
		// Only possible with an oversized key.
		panic(fmt.Errorf("BUG: failed to create unkeyed blake2b hash: %w", err))
	}
	_, _ = h.Write(left[:])
	_, _ = h.Write(right[:])

	var d ghash.Digest
	h.Sum(d[:0])
	return d
}
