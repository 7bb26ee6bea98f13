package security_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/thanaritk/markvault/shared/security"
)

func TestHashAndVerifyPassword(t *testing.T) {
	hash, err := security.HashPassword("s3cret-password")
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(hash, "$argon2id$"))

	ok, err := security.VerifyPassword("s3cret-password", hash)
	require.NoError(t, err)
	require.True(t, ok)

	ok, err = security.VerifyPassword("wrong-password", hash)
	require.NoError(t, err)
	require.False(t, ok)
}

func TestHashPasswordIsSalted(t *testing.T) {
	first, err := security.HashPassword("s3cret-password")
	require.NoError(t, err)
	second, err := security.HashPassword("s3cret-password")
	require.NoError(t, err)

	require.NotEqual(t, first, second)
}
