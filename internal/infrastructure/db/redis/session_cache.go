package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/relaydesk/handover-api/internal/api/metrics"
	"github.com/relaydesk/handover-api/internal/core/domain"
)

const defaultSessionTTL = 15 * time.Minute

// SessionCache caches session records keyed session:<token>. Entries are
// written at login and deleted on logout and user deletion; the relational
// store stays authoritative and a miss is never an authentication failure.
// The TTL only bounds how long an entry can survive a crash between the
// store delete and the cache delete.
type SessionCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewSessionCache creates a SessionCache wrapping the given Redis client.
// If ttl <= 0, defaultSessionTTL is used.
func NewSessionCache(client *redis.Client, ttl time.Duration) *SessionCache {
	if ttl <= 0 {
		ttl = defaultSessionTTL
	}
	return &SessionCache{client: client, ttl: ttl}
}

// Get returns the cached session, or nil on a miss.
func (c *SessionCache) Get(ctx context.Context, token string) (*domain.Session, error) {
	data, err := c.client.Get(ctx, c.key(token)).Bytes()
	if err == redis.Nil {
		metrics.SessionCacheTotal.WithLabelValues("miss").Inc()
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("session cache get: %w", err)
	}

	var session domain.Session
	if err := json.Unmarshal(data, &session); err != nil {
		return nil, fmt.Errorf("session cache decode: %w", err)
	}
	session.Token = token

	metrics.SessionCacheTotal.WithLabelValues("hit").Inc()
	return &session, nil
}

func (c *SessionCache) Set(ctx context.Context, session *domain.Session) error {
	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("session cache encode: %w", err)
	}
	if err := c.client.Set(ctx, c.key(session.Token), data, c.ttl).Err(); err != nil {
		return fmt.Errorf("session cache set: %w", err)
	}
	return nil
}

func (c *SessionCache) Delete(ctx context.Context, tokens ...string) error {
	if len(tokens) == 0 {
		return nil
	}
	keys := make([]string, len(tokens))
	for i, token := range tokens {
		keys[i] = c.key(token)
	}
	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("session cache delete: %w", err)
	}
	return nil
}

func (c *SessionCache) key(token string) string {
	return "session:" + token
}
