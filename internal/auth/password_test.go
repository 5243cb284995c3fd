package auth

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHashAndVerifyPassword(t *testing.T) {
	// Min cost keeps the test fast.
	hash, err := HashPassword("s3cret-pass", 4)
	require.NoError(t, err)
	require.NotEqual(t, "s3cret-pass", hash)

	require.True(t, VerifyPassword("s3cret-pass", hash))
	require.False(t, VerifyPassword("wrong-pass", hash))
}

func TestHashPassword_CostOutOfRange(t *testing.T) {
	hash, err := HashPassword("s3cret-pass", 99)
	require.NoError(t, err)
	require.True(t, VerifyPassword("s3cret-pass", hash))
}
