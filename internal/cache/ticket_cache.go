// Package cache keeps recent upstream ticket-list responses in Redis so
// repeated list renders between manual refreshes do not hammer the backend.
package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/flashy-app/moderation-console/internal/config"
	"github.com/flashy-app/moderation-console/internal/domain"
)

// TicketCache caches ticket lists per user with a short TTL. A nil cache
// (Redis unconfigured) is valid and degrades to direct fetches.
type TicketCache struct {
	client *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

// New connects to Redis using the provided configuration. Returns nil when
// no address is configured.
func New(cfg config.RedisConfig, logger *zap.Logger) *TicketCache {
	if cfg.Addr == "" {
		logger.Info("redis not configured; ticket list cache disabled")
		return nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	if err := client.Ping(context.Background()).Err(); err != nil {
		logger.Warn("unable to reach redis", zap.Error(err))
	} else {
		logger.Info("connected to redis")
	}

	return &TicketCache{client: client, ttl: cfg.TTL(), logger: logger}
}

// Get returns the cached ticket list for the user, or ok=false on miss or
// any Redis error. Cache errors are never surfaced to callers.
func (c *TicketCache) Get(ctx context.Context, userID string) ([]domain.Ticket, bool) {
	if c == nil {
		return nil, false
	}
	raw, err := c.client.Get(ctx, key(userID)).Bytes()
	if err != nil {
		if err != redis.Nil {
			c.logger.Warn("ticket cache read failed", zap.Error(err))
		}
		return nil, false
	}
	var tickets []domain.Ticket
	if err := json.Unmarshal(raw, &tickets); err != nil {
		c.logger.Warn("ticket cache entry corrupt", zap.Error(err))
		return nil, false
	}
	return tickets, true
}

// Set stores the ticket list for the user.
func (c *TicketCache) Set(ctx context.Context, userID string, tickets []domain.Ticket) {
	if c == nil {
		return
	}
	raw, err := json.Marshal(tickets)
	if err != nil {
		return
	}
	if err := c.client.Set(ctx, key(userID), raw, c.ttl).Err(); err != nil {
		c.logger.Warn("ticket cache write failed", zap.Error(err))
	}
}

// Invalidate drops the user's cached list, used after any mutation so the
// next list render refetches server truth.
func (c *TicketCache) Invalidate(ctx context.Context, userID string) {
	if c == nil {
		return
	}
	if err := c.client.Del(ctx, key(userID)).Err(); err != nil {
		c.logger.Warn("ticket cache invalidate failed", zap.Error(err))
	}
}

// Close releases the Redis client.
func (c *TicketCache) Close() {
	if c != nil && c.client != nil {
		_ = c.client.Close()
	}
}

func key(userID string) string {
	return "modconsole:tickets:" + userID
}
