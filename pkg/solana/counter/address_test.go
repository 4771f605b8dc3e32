package counter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/code-payments/example-program/pkg/solana"
	"github.com/code-payments/example-program/pkg/testutil"
)

func TestGetAuthorityAddress(t *testing.T) {
	keys := testutil.GenerateSolanaKeys(t, 2)

	authority, bump, err := GetAuthorityAddress(keys[0])
	require.NoError(t, err)
	assert.NotEqual(t, keys[0], authority)

	// Anyone recomputing the derivation with the same bump lands on the
	// same authority.
	recomputed, err := solana.CreateProgramAddress(keys[0], keys[0], []byte{bump})
	require.NoError(t, err)
	assert.EqualValues(t, authority, recomputed)

	// Deterministic per program, distinct across programs.
	repeated, repeatedBump, err := GetAuthorityAddress(keys[0])
	require.NoError(t, err)
	assert.EqualValues(t, authority, repeated)
	assert.Equal(t, bump, repeatedBump)

	other, _, err := GetAuthorityAddress(keys[1])
	require.NoError(t, err)
	assert.NotEqual(t, authority, other)
}
