package gsha256

import (
	"crypto/sha256"

	"github.com/gordian-engine/grove/ghash"
)

// Name is the registry name of this hasher.
const Name = "sha256"

// Hasher is a [ghash.Hasher] backed by SHA-256 from the standard library.
type Hasher struct{}

func (Hasher) Leaf(in []byte) ghash.Digest {
	return ghash.Digest(sha256.Sum256(in))
}

func (Hasher) Node(left, right ghash.Digest) ghash.Digest {
	h := sha256.New()
	_, _ = h.Write(left[:])
	_, _ = h.Write(right[:])

	var d ghash.Digest
	h.Sum(d[:0])
	return d
}
