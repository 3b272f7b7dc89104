package gsha256_test

import (
	"testing"

	"github.com/gordian-engine/grove/ghash"
	"github.com/gordian-engine/grove/ghash/ghashtest"
	"github.com/gordian-engine/grove/ghash/gsha256"
	"github.com/stretchr/testify/require"
)

func TestCompliance(t *testing.T) {
	t.Parallel()

	ghashtest.TestHasherCompliance(t, gsha256.Hasher{})
}

func TestHasher_Leaf_knownVector(t *testing.T) {
	t.Parallel()

	exp, err := ghash.ParseDigest("e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855")
	require.NoError(t, err)

	require.Equal(t, exp, gsha256.Hasher{}.Leaf(nil))
}
