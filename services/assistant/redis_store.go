package assistant

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	"superclinic/models"
)

const chatKeyPrefix = "chat:history:"

// RedisStore is a ChatStore backed by redis, for deployments where chat
// history must survive restarts or be shared across instances. Histories
// expire via key TTL.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisStore wraps an existing redis client. Zero ttl means keys never
// expire.
func NewRedisStore(client *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{client: client, ttl: ttl}
}

func (s *RedisStore) key(userID string) string {
	return chatKeyPrefix + userID
}

func (s *RedisStore) load(ctx context.Context, userID string) ([]models.ChatMessage, error) {
	raw, err := s.client.Get(ctx, s.key(userID)).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load chat history: %w", err)
	}
	var msgs []models.ChatMessage
	if err := json.Unmarshal([]byte(raw), &msgs); err != nil {
		return nil, fmt.Errorf("failed to decode chat history: %w", err)
	}
	return msgs, nil
}

func (s *RedisStore) save(ctx context.Context, userID string, msgs []models.ChatMessage) error {
	data, err := json.Marshal(msgs)
	if err != nil {
		return fmt.Errorf("failed to encode chat history: %w", err)
	}
	if err := s.client.Set(ctx, s.key(userID), data, s.ttl).Err(); err != nil {
		return fmt.Errorf("failed to store chat history: %w", err)
	}
	return nil
}

func (s *RedisStore) Ensure(ctx context.Context, userID string) error {
	msgs, err := s.load(ctx, userID)
	if err != nil {
		return err
	}
	if msgs != nil {
		return nil
	}
	return s.save(ctx, userID, []models.ChatMessage{systemMessage()})
}

func (s *RedisStore) Append(ctx context.Context, userID string, msg models.ChatMessage) error {
	msgs, err := s.load(ctx, userID)
	if err != nil {
		return err
	}
	if msgs == nil {
		msgs = []models.ChatMessage{systemMessage()}
	}
	return s.save(ctx, userID, append(msgs, msg))
}

func (s *RedisStore) Replace(ctx context.Context, userID string, msgs []models.ChatMessage) error {
	return s.save(ctx, userID, withSystemFirst(msgs))
}

func (s *RedisStore) Get(ctx context.Context, userID string) ([]models.ChatMessage, error) {
	msgs, err := s.load(ctx, userID)
	if err != nil {
		return nil, err
	}
	if msgs == nil {
		return []models.ChatMessage{}, nil
	}
	return msgs, nil
}

func (s *RedisStore) Clear(ctx context.Context, userID string) (bool, error) {
	n, err := s.client.Del(ctx, s.key(userID)).Result()
	if err != nil {
		return false, fmt.Errorf("failed to clear chat history: %w", err)
	}
	return n > 0, nil
}
