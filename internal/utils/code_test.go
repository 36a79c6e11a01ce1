package utils_test

import (
	"encoding/hex"
	"testing"

	"kirim/server/internal/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateVerificationCode(t *testing.T) {
	code, err := utils.GenerateVerificationCode()
	require.NoError(t, err)

	assert.Len(t, code, 32)
	_, err = hex.DecodeString(code)
	assert.NoError(t, err, "code must be valid hex")
}

func TestGenerateVerificationCode_Unique(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		code, err := utils.GenerateVerificationCode()
		require.NoError(t, err)
		assert.False(t, seen[code], "codes must not repeat")
		seen[code] = true
	}
}
