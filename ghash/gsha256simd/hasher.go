// Package gsha256simd provides a [ghash.Hasher] using the SIMD-accelerated
// SHA-256 implementation from minio.
//
// Its digests are identical to those of gsha256.
package gsha256simd

import (
	"github.com/gordian-engine/grove/ghash"
	sha256 "github.com/minio/sha256-simd"
)

// Name is the registry name of this hasher.
const Name = "sha256-simd"

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
