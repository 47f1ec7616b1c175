package assistant

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"superclinic/models"
)

func newTestRedisStore(t *testing.T, ttl time.Duration) (*RedisStore, *miniredis.Miniredis) {
	t.Helper()
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewRedisStore(client, ttl), mr
}

func TestRedisStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	store, _ := newTestRedisStore(t, 0)

	require.NoError(t, store.Append(ctx, "u1", models.ChatMessage{Role: models.RoleUser, Content: "hi"}))
	require.NoError(t, store.Append(ctx, "u1", models.ChatMessage{
		Role: models.RoleAssistant,
		ToolCalls: []models.ToolCall{
			{ID: "call_1", Name: "get_doctors", Arguments: "{}"},
		},
	}))

	msgs, err := store.Get(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, msgs, 3)
	assert.Equal(t, models.RoleSystem, msgs[0].Role)
	assert.Equal(t, "hi", msgs[1].Content)
	require.Len(t, msgs[2].ToolCalls, 1)
	assert.Equal(t, "call_1", msgs[2].ToolCalls[0].ID)
}

func TestRedisStoreReplacePrependsSystemPrompt(t *testing.T) {
	ctx := context.Background()
	store, _ := newTestRedisStore(t, 0)

	require.NoError(t, store.Replace(ctx, "u1", []models.ChatMessage{
		{Role: models.RoleUser, Content: "first"},
	}))

	msgs, err := store.Get(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, msgs, 2)
	assert.Equal(t, models.RoleSystem, msgs[0].Role)
}

func TestRedisStoreGetUnknownUserIsEmpty(t *testing.T) {
	store, _ := newTestRedisStore(t, 0)
	msgs, err := store.Get(context.Background(), "ghost")
	require.NoError(t, err)
	assert.Empty(t, msgs)
}

func TestRedisStoreClear(t *testing.T) {
	ctx := context.Background()
	store, _ := newTestRedisStore(t, 0)
	require.NoError(t, store.Ensure(ctx, "u1"))

	existed, err := store.Clear(ctx, "u1")
	require.NoError(t, err)
	assert.True(t, existed)

	existed, err = store.Clear(ctx, "u1")
	require.NoError(t, err)
	assert.False(t, existed)
}

func TestRedisStoreHistoryExpires(t *testing.T) {
	ctx := context.Background()
	store, mr := newTestRedisStore(t, time.Minute)
	require.NoError(t, store.Ensure(ctx, "u1"))

	mr.FastForward(2 * time.Minute)

	msgs, err := store.Get(ctx, "u1")
	require.NoError(t, err)
	assert.Empty(t, msgs)
}
