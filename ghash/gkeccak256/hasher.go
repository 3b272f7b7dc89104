package gkeccak256

import (
	"github.com/gordian-engine/grove/ghash"
	"golang.org/x/crypto/sha3"
)

// Name is the registry name of this hasher.
const Name = "keccak-256"

// Hasher is a [ghash.Hasher] backed by the legacy Keccak-256 function,
// as used by Ethereum (not the standardized SHA3-256 padding).
type Hasher struct{}

func (Hasher) Leaf(in []byte) ghash.Digest {
	h := sha3.NewLegacyKeccak256()
	_, _ = h.Write(in)

	var d ghash.Digest
	h.Sum(d[:0])
	return d
}

func (Hasher) Node(left, right ghash.Digest) ghash.Digest {
	h := sha3.NewLegacyKeccak256()
	_, _ = h.Write(left[:])
	_, _ = h.Write(right[:])

	var d ghash.Digest
	h.Sum(d[:0])
	return d
}
