// Package gtest contains helpers shared by grove tests.
package gtest

import (
	"crypto/sha256"
	"io"
	"log/slog"
	"math/rand/v2"
	"testing"

	"github.com/neilotoole/slogt"
)

// NewLogger returns a debug-level logger whose output is attached to t.
func NewLogger(t testing.TB) *slog.Logger {
	return slogt.New(t, slogt.Factory(func(w io.Writer) slog.Handler {
		return slog.NewTextHandler(w, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		})
	}))
}

// NewRand returns a deterministic pseudorandom source
// whose seed is derived from the test name,
// so that a failing sequence reproduces on rerun.
func NewRand(t testing.TB) *rand.Rand {
	// Sha256 happens to be the right size for the chacha8 seed,
	// and this way we are not limited by the length of any particular test name.
	seed := sha256.Sum256([]byte(t.Name()))
	return rand.New(rand.NewChaCha8(seed))
}

// RandomDataForTest returns a byte slice of size sz
// containing pseudorandom data, derived from a seed based on the test name.
func RandomDataForTest(t testing.TB, sz int) []byte {
	seed := sha256.Sum256([]byte(t.Name()))
	chacha := rand.NewChaCha8(seed)

	out := make([]byte, sz)

	if _, err := chacha.Read(out); err != nil {
		panic(err)
	}

	return out
}
