package redis

import (
	"context"
	"time"

	redisclient "github.com/bondyapp/bondy/cmd/redis"
)

// Repository defines methods for interacting with Redis key-values
type Repository interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value interface{}) error
	SetWithTTL(ctx context.Context, key, value string, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	SetSession(ctx context.Context, sessionID, actorID string, ttl time.Duration) error
	GetSession(ctx context.Context, sessionID string) (string, error)
	DeleteSession(ctx context.Context, sessionID string) error
	CacheAuthz(ctx context.Context, actorID, resourceID string, allowed bool, ttl time.Duration) error
	GetAuthz(ctx context.Context, actorID, resourceID string) (allowed, found bool)
	Publish(ctx context.Context, channel string, payload []byte) error
}

type redis struct {
	// *redis.Client
}

// NewRepository returns a Redis Repository implementation
func NewRepository() Repository {
	return &redis{}
}

// Get retrieves a value by key from Redis
func (r *redis) Get(ctx context.Context, key string) (string, error) {
	client := redisclient.Get()
	if client == nil {
		return "", nil
	}
	val, err := client.Get(ctx, key).Result()
	if err != nil {
		return "", err
	}
	return val, nil
}

// Set stores a key/value pair without expiration
func (r *redis) Set(ctx context.Context, key string, value interface{}) error {
	client := redisclient.Get()
	if client == nil {
		return nil
	}
	return client.Set(ctx, key, value, 0).Err()
}

// SetWithTTL stores a key/value pair with time-to-live
func (r *redis) SetWithTTL(ctx context.Context, key, value string, ttl time.Duration) error {
	client := redisclient.Get()
	if client == nil {
		return nil
	}
	return client.Set(ctx, key, value, ttl).Err()
}

// Delete removes a key from Redis
func (r *redis) Delete(ctx context.Context, key string) error {
	client := redisclient.Get()
	if client == nil {
		return nil
	}
	return client.Del(ctx, key).Err()
}

// SetSession stores a session with the owning actor id and TTL
func (r *redis) SetSession(ctx context.Context, sessionID, actorID string, ttl time.Duration) error {
	client := redisclient.Get()
	if client == nil {
		return nil
	}
	key := "session:" + sessionID
	return client.Set(ctx, key, actorID, ttl).Err()
}

// GetSession retrieves the actor id bound to a session
func (r *redis) GetSession(ctx context.Context, sessionID string) (string, error) {
	client := redisclient.Get()
	if client == nil {
		return "", nil
	}
	key := "session:" + sessionID
	return client.Get(ctx, key).Result()
}

// DeleteSession removes a session from Redis
func (r *redis) DeleteSession(ctx context.Context, sessionID string) error {
	client := redisclient.Get()
	if client == nil {
		return nil
	}
	key := "session:" + sessionID
	return client.Del(ctx, key).Err()
}

// CacheAuthz stores a bounded, TTL-based authorization verdict keyed by
// (actor, resource).
func (r *redis) CacheAuthz(ctx context.Context, actorID, resourceID string, allowed bool, ttl time.Duration) error {
	client := redisclient.Get()
	if client == nil {
		return nil
	}
	val := "0"
	if allowed {
		val = "1"
	}
	return client.Set(ctx, "authz:"+actorID+":"+resourceID, val, ttl).Err()
}

// GetAuthz returns a cached authorization verdict, if any.
func (r *redis) GetAuthz(ctx context.Context, actorID, resourceID string) (bool, bool) {
	client := redisclient.Get()
	if client == nil {
		return false, false
	}
	val, err := client.Get(ctx, "authz:"+actorID+":"+resourceID).Result()
	if err != nil {
		return false, false
	}
	return val == "1", true
}

// Publish pushes a payload onto a pub/sub channel.
func (r *redis) Publish(ctx context.Context, channel string, payload []byte) error {
	client := redisclient.Get()
	if client == nil {
		return nil
	}
	return client.Publish(ctx, channel, payload).Err()
}
