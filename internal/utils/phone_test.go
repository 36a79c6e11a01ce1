package utils_test

import (
	"testing"

	"kirim/server/internal/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizePhone(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"already E.164", "+6281234567890", "+6281234567890"},
		{"spaces stripped", "+62 812 3456 7890", "+6281234567890"},
		{"US number with punctuation", "+1 (415) 555-2671", "+14155552671"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := utils.NormalizePhone(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNormalizePhone_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"empty", ""},
		{"not a number", "hello"},
		{"no country prefix", "08123456789"},
		{"too short", "+62"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := utils.NormalizePhone(tt.input)
			require.Error(t, err)
			assert.ErrorIs(t, err, utils.ErrInvalidPhone)
		})
	}
}
