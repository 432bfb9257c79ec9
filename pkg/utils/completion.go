package utils

import (
	"context"
	"crypto/sha256"
	"fmt"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"go.uber.org/zap"
)

// TextCompletionClient turns a prompt into free text. Implementations return
// ErrModelEmptyResponse when the provider answers without usable text.
type TextCompletionClient interface {
	CompleteText(ctx context.Context, prompt string) (string, error)
}

// CachedCompletionClient memoises completions by prompt hash so a repeated
// route/day request does not pay for a second model call.
type CachedCompletionClient struct {
	next   TextCompletionClient
	cache  *expirable.LRU[string, string]
	logger *zap.Logger
}

func NewCachedCompletionClient(next TextCompletionClient, size int, ttl time.Duration, logger *zap.Logger) *CachedCompletionClient {
	return &CachedCompletionClient{
		next:   next,
		cache:  expirable.NewLRU[string, string](size, nil, ttl),
		logger: logger,
	}
}

func (c *CachedCompletionClient) CompleteText(ctx context.Context, prompt string) (string, error) {
	key := promptCacheKey(prompt)
	if cached, ok := c.cache.Get(key); ok {
		c.logger.Debug("completion cache hit", zap.String("key", key))
		return cached, nil
	}

	text, err := c.next.CompleteText(ctx, prompt)
	if err != nil {
		return "", err
	}
	c.cache.Add(key, text)
	return text, nil
}

func promptCacheKey(prompt string) string {
	return fmt.Sprintf("%x", sha256.Sum256([]byte(prompt)))[:32]
}
