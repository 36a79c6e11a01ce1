package handlers

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsAllowedExtension(t *testing.T) {
	assert.True(t, isAllowedExtension(".jpg", "image"))
	assert.True(t, isAllowedExtension(".webp", "image"))
	assert.True(t, isAllowedExtension(".mp3", "voice"))
	assert.True(t, isAllowedExtension(".ogg", "voice"))
	assert.True(t, isAllowedExtension(".pdf", "file"))

	assert.False(t, isAllowedExtension(".exe", "file"))
	assert.False(t, isAllowedExtension(".mp3", "image"))
	assert.False(t, isAllowedExtension(".jpg", "voice"))
	assert.False(t, isAllowedExtension(".jpg", "avatar"))
	assert.False(t, isAllowedExtension("", "file"))
}

func TestGetContentType(t *testing.T) {
	assert.Equal(t, "image/jpeg", getContentType(".jpg"))
	assert.Equal(t, "image/jpeg", getContentType(".jpeg"))
	assert.Equal(t, "audio/mpeg", getContentType(".mp3"))
	assert.Equal(t, "application/pdf", getContentType(".pdf"))
	assert.Equal(t, "application/octet-stream", getContentType(".unknown"))
}
