package mem

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const clarificationKeyPrefix = "tripspark:clarification:"

// RedisClarifications keeps pending clarifications in Redis so several API replicas share them.
type RedisClarifications struct {
	client *redis.Client
}

func NewRedisClarifications(redisURL string) (*RedisClarifications, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	return &RedisClarifications{client: redis.NewClient(opts)}, nil
}

func NewRedisClarificationsWithClient(client *redis.Client) *RedisClarifications {
	return &RedisClarifications{client: client}
}

func clarificationKey(conversationID string) string {
	return clarificationKeyPrefix + conversationID
}

func (s *RedisClarifications) Get(ctx context.Context, conversationID string) (*PendingClarification, bool, error) {
	raw, err := s.client.Get(ctx, clarificationKey(conversationID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("redis get clarification: %w", err)
	}

	var p PendingClarification
	if err := json.Unmarshal(raw, &p); err != nil {
		return nil, false, fmt.Errorf("decode clarification: %w", err)
	}
	return &p, true, nil
}

func (s *RedisClarifications) Set(ctx context.Context, conversationID string, pending PendingClarification, ttl time.Duration) error {
	raw, err := json.Marshal(pending)
	if err != nil {
		return fmt.Errorf("encode clarification: %w", err)
	}
	if err := s.client.Set(ctx, clarificationKey(conversationID), raw, ttl).Err(); err != nil {
		return fmt.Errorf("redis set clarification: %w", err)
	}
	return nil
}

func (s *RedisClarifications) Clear(ctx context.Context, conversationID string) error {
	if err := s.client.Del(ctx, clarificationKey(conversationID)).Err(); err != nil {
		return fmt.Errorf("redis del clarification: %w", err)
	}
	return nil
}

func (s *RedisClarifications) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

func (s *RedisClarifications) Close() error {
	return s.client.Close()
}
