package store_test

import (
	"fmt"
	"testing"

	"kirim/server/internal/models"
	"kirim/server/internal/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func str(s string) *string { return &s }

func TestNormalizePageLimit(t *testing.T) {
	tests := []struct {
		name      string
		page      int
		limit     int
		wantPage  int
		wantLimit int
	}{
		{"defaults applied to zero values", 0, 0, 1, 50},
		{"negative values fall back to defaults", -3, -10, 1, 50},
		{"valid values pass through", 4, 25, 4, 25},
		{"limit above maximum falls back to default", 2, 500, 2, 50},
		{"limit at maximum is kept", 1, 100, 1, 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page, limit := store.NormalizePageLimit(tt.page, tt.limit)
			assert.Equal(t, tt.wantPage, page)
			assert.Equal(t, tt.wantLimit, limit)
		})
	}
}

func TestTotalPages(t *testing.T) {
	tests := []struct {
		total int
		limit int
		want  int
	}{
		{0, 50, 0},
		{1, 50, 1},
		{50, 50, 1},
		{51, 50, 2},
		{150, 50, 3},
		{7, 3, 3},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("%d/%d", tt.total, tt.limit), func(t *testing.T) {
			assert.Equal(t, tt.want, store.TotalPages(tt.total, tt.limit))
		})
	}
}

func TestReverseMessages(t *testing.T) {
	newestFirst := []models.MessageWithSender{
		{ID: "3"}, {ID: "2"}, {ID: "1"},
	}

	store.ReverseMessages(newestFirst)

	require.Len(t, newestFirst, 3)
	assert.Equal(t, "1", newestFirst[0].ID)
	assert.Equal(t, "2", newestFirst[1].ID)
	assert.Equal(t, "3", newestFirst[2].ID)

	var empty []models.MessageWithSender
	store.ReverseMessages(empty) // must not panic

	single := []models.MessageWithSender{{ID: "only"}}
	store.ReverseMessages(single)
	assert.Equal(t, "only", single[0].ID)
}

func TestCreateMessageParamsValidate(t *testing.T) {
	tests := []struct {
		name    string
		params  store.CreateMessageParams
		wantErr bool
	}{
		{
			name:    "missing chat id",
			params:  store.CreateMessageParams{Type: models.MessageTypeText, Content: str("hi")},
			wantErr: true,
		},
		{
			name:   "text with content",
			params: store.CreateMessageParams{ChatID: "c1", Type: models.MessageTypeText, Content: str("hi")},
		},
		{
			name:    "text without content",
			params:  store.CreateMessageParams{ChatID: "c1", Type: models.MessageTypeText},
			wantErr: true,
		},
		{
			name:    "text with empty content",
			params:  store.CreateMessageParams{ChatID: "c1", Type: models.MessageTypeText, Content: str("")},
			wantErr: true,
		},
		{
			name:   "voice with file path",
			params: store.CreateMessageParams{ChatID: "c1", Type: models.MessageTypeVoice, FilePath: str("/uploads/voices/a.mp3")},
		},
		{
			name:    "voice without file path",
			params:  store.CreateMessageParams{ChatID: "c1", Type: models.MessageTypeVoice},
			wantErr: true,
		},
		{
			name:   "file with file path",
			params: store.CreateMessageParams{ChatID: "c1", Type: models.MessageTypeFile, FilePath: str("/uploads/files/a.pdf")},
		},
		{
			name:    "unknown type",
			params:  store.CreateMessageParams{ChatID: "c1", Type: "sticker", Content: str("hi")},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.params.Validate()
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, store.ErrInvalidMessage)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
