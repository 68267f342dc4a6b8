// Package cache keeps a Redis-backed read cache of card records. The cache
// is strictly an accelerator: every miss or Redis failure falls through to
// the store, and writes invalidate rather than update.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	log "github.com/sirupsen/logrus"

	"github.com/cashvault/cashcard/internal/models"
)

// CardCache caches single-card lookups keyed by (owner, id). A nil
// *CardCache is valid and behaves as a permanent miss.
type CardCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewClient connects to Redis and verifies the connection.
func NewClient(addr, password string, db int) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         addr,
		Password:     password,
		DB:           db,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
		PoolSize:     10,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("cache: connect redis: %w", err)
	}
	return client, nil
}

// NewCardCache constructs a card cache with the given TTL.
func NewCardCache(client *redis.Client, ttl time.Duration) *CardCache {
	if client == nil {
		return nil
	}
	return &CardCache{client: client, ttl: ttl}
}

func cardKey(owner string, id uint64) string {
	return fmt.Sprintf("card:%s:%d", owner, id)
}

// Get returns the cached card, or nil on any miss or Redis error.
func (c *CardCache) Get(ctx context.Context, owner string, id uint64) *models.Card {
	if c == nil {
		return nil
	}
	data, err := c.client.Get(ctx, cardKey(owner, id)).Result()
	if err != nil {
		return nil
	}
	var card models.Card
	if errDecode := json.Unmarshal([]byte(data), &card); errDecode != nil {
		return nil
	}
	return &card
}

// Set stores a card view. Failures are logged, not returned.
func (c *CardCache) Set(ctx context.Context, card *models.Card) {
	if c == nil || card == nil {
		return
	}
	data, err := json.Marshal(card)
	if err != nil {
		log.WithError(err).Warn("card cache: marshal failed")
		return
	}
	if errSet := c.client.Set(ctx, cardKey(card.Owner, card.ID), data, c.ttl).Err(); errSet != nil {
		log.WithError(errSet).Warn("card cache: write failed")
	}
}

// Invalidate drops a cached card after an update or delete.
func (c *CardCache) Invalidate(ctx context.Context, owner string, id uint64) {
	if c == nil {
		return
	}
	if err := c.client.Del(ctx, cardKey(owner, id)).Err(); err != nil {
		log.WithError(err).Warn("card cache: invalidate failed")
	}
}
