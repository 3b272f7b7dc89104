// Package ghashes looks up [ghash.Hasher] implementations by name,
// so that the hash function is a configuration choice of the host application.
package ghashes

import (
	"fmt"
	"slices"

	"github.com/gordian-engine/grove/ghash"
	"github.com/gordian-engine/grove/ghash/gblake2b"
	"github.com/gordian-engine/grove/ghash/gkeccak256"
	"github.com/gordian-engine/grove/ghash/gsha256"
	"github.com/gordian-engine/grove/ghash/gsha256simd"
	"github.com/multiformats/go-multihash"
)

// Default is the name of the hasher used when none is configured.
const Default = gsha256.Name

// Entry is a named hasher with the multihash code describing its digests.
type Entry struct {
	Name   string
	Hasher ghash.Hasher

	// MultihashCode is the multicodec identifier for the digest function.
	// Both SHA-256 entries share the sha2-256 code,
	// since their output is identical.
	MultihashCode uint64
}

// Multihash wraps d in a self-describing multihash for this entry's function.
func (e Entry) Multihash(d ghash.Digest) (multihash.Multihash, error) {
	mh, err := multihash.Encode(d[:], e.MultihashCode)
	if err != nil {
		return nil, fmt.Errorf("failed to encode %s multihash: %w", e.Name, err)
	}
	return mh, nil
}

var entries = map[string]Entry{
	gsha256.Name: {
		Name:          gsha256.Name,
		Hasher:        gsha256.Hasher{},
		MultihashCode: multihash.SHA2_256,
	},
	gsha256simd.Name: {
		Name:          gsha256simd.Name,
		Hasher:        gsha256simd.Hasher{},
		MultihashCode: multihash.SHA2_256,
	},
	gblake2b.Name: {
		Name:   gblake2b.Name,
		Hasher: gblake2b.Hasher{},
		// BLAKE2b codes are offset by output length in bytes, minus one.
		MultihashCode: multihash.BLAKE2B_MIN + ghash.Size - 1,
	},
	gkeccak256.Name: {
		Name:          gkeccak256.Name,
		Hasher:        gkeccak256.Hasher{},
		MultihashCode: multihash.KECCAK_256,
	},
}

// UnknownHasherError is returned from [ByName]
// when no hasher is registered under the requested name.
type UnknownHasherError struct {
	Name string
}

func (e UnknownHasherError) Error() string {
	return fmt.Sprintf("unknown hasher %q (known: %v)", e.Name, Names())
}

// ByName returns the registered entry for name.
func ByName(name string) (Entry, error) {
	e, ok := entries[name]
	if !ok {
		return Entry{}, UnknownHasherError{Name: name}
	}
	return e, nil
}

// Names returns the sorted names of all registered hashers.
func Names() []string {
	names := make([]string, 0, len(entries))
	for n := range entries {
		names = append(names, n)
	}
	slices.Sort(names)
	return names
}
