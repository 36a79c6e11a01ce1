package utils_test

import (
	"testing"

	"kirim/server/internal/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := utils.HashPassword("s3cret-password")
	require.NoError(t, err)
	require.NotEmpty(t, hash)
	assert.NotEqual(t, "s3cret-password", hash)

	assert.True(t, utils.CheckPassword(hash, "s3cret-password"))
	assert.False(t, utils.CheckPassword(hash, "wrong-password"))
	assert.False(t, utils.CheckPassword(hash, ""))
}

func TestHashPassword_DistinctSalts(t *testing.T) {
	h1, err := utils.HashPassword("same-input")
	require.NoError(t, err)
	h2, err := utils.HashPassword("same-input")
	require.NoError(t, err)

	assert.NotEqual(t, h1, h2)
}
