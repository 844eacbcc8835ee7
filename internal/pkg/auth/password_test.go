package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := HashPassword("s3cretpass")
	require.NoError(t, err)
	require.NotEmpty(t, hash)
	assert.NotEqual(t, "s3cretpass", hash)

	assert.NoError(t, CheckPassword(hash, "s3cretpass"))
	assert.Error(t, CheckPassword(hash, "wrongpass"))
	assert.Error(t, CheckPassword("not-a-bcrypt-digest", "s3cretpass"))
}

func TestHashPassword_UniqueSalts(t *testing.T) {
	first, err := HashPassword("s3cretpass")
	require.NoError(t, err)
	second, err := HashPassword("s3cretpass")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}
