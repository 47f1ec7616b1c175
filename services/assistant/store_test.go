package assistant

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"superclinic/models"
)

func TestMemoryStoreInitializesWithSystemPrompt(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore(0, 0)

	require.NoError(t, store.Append(ctx, "u1", models.ChatMessage{Role: models.RoleUser, Content: "hi"}))

	msgs, err := store.Get(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, msgs, 2)
	assert.Equal(t, models.RoleSystem, msgs[0].Role)
	assert.Equal(t, SystemPrompt, msgs[0].Content)
	assert.Equal(t, "hi", msgs[1].Content)
}

func TestMemoryStoreGetUnknownUserIsEmpty(t *testing.T) {
	store := NewMemoryStore(0, 0)
	msgs, err := store.Get(context.Background(), "ghost")
	require.NoError(t, err)
	assert.Empty(t, msgs)
}

func TestMemoryStoreGetReturnsCopy(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore(0, 0)
	require.NoError(t, store.Ensure(ctx, "u1"))

	msgs, err := store.Get(ctx, "u1")
	require.NoError(t, err)
	msgs[0].Content = "tampered"

	again, err := store.Get(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, SystemPrompt, again[0].Content)
}

func TestMemoryStoreReplacePrependsSystemPrompt(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore(0, 0)

	require.NoError(t, store.Replace(ctx, "u1", []models.ChatMessage{
		{Role: models.RoleUser, Content: "first"},
	}))

	msgs, err := store.Get(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, msgs, 2)
	assert.Equal(t, models.RoleSystem, msgs[0].Role)

	// Empty replacement resets to the prompt alone.
	require.NoError(t, store.Replace(ctx, "u1", nil))
	msgs, err = store.Get(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, msgs, 1)
	assert.Equal(t, models.RoleSystem, msgs[0].Role)
}

func TestMemoryStoreClear(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore(0, 0)
	require.NoError(t, store.Ensure(ctx, "u1"))

	existed, err := store.Clear(ctx, "u1")
	require.NoError(t, err)
	assert.True(t, existed)

	existed, err = store.Clear(ctx, "u1")
	require.NoError(t, err)
	assert.False(t, existed)
}

func TestMemoryStoreExpiresIdleHistories(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore(time.Hour, 0)
	now := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return now }

	require.NoError(t, store.Ensure(ctx, "u1"))

	now = now.Add(2 * time.Hour)
	msgs, err := store.Get(ctx, "u1")
	require.NoError(t, err)
	assert.Empty(t, msgs)
}

func TestMemoryStoreEvictsLeastRecentlyUsed(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore(0, 2)
	now := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return now }

	require.NoError(t, store.Ensure(ctx, "u1"))
	now = now.Add(time.Minute)
	require.NoError(t, store.Ensure(ctx, "u2"))
	now = now.Add(time.Minute)
	require.NoError(t, store.Ensure(ctx, "u3"))

	msgs, err := store.Get(ctx, "u1")
	require.NoError(t, err)
	assert.Empty(t, msgs, "oldest history should be evicted")

	msgs, err = store.Get(ctx, "u3")
	require.NoError(t, err)
	assert.NotEmpty(t, msgs)
}
