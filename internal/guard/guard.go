// Package guard makes create submissions idempotent: a submission key can be
// acquired once per TTL.
package guard

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"
)

// ErrDuplicate is returned by Acquire when the key was already used.
var ErrDuplicate = errors.New("duplicate submission")

// Guard hands out submission keys. An empty key is never guarded.
type Guard interface {
	Acquire(ctx context.Context, key string) error
	Release(ctx context.Context, key string) error
}

// RedisGuard stores keys with SET NX so concurrent gateways share them.
type RedisGuard struct {
	client *redis.Client
	ttl    time.Duration
	prefix string
}

func NewRedisGuard(client *redis.Client, ttl time.Duration) *RedisGuard {
	return &RedisGuard{client: client, ttl: ttl, prefix: "submission:"}
}

func (g *RedisGuard) Acquire(ctx context.Context, key string) error {
	if key == "" {
		return nil
	}
	ok, err := g.client.SetNX(ctx, g.prefix+key, 1, g.ttl).Result()
	if err != nil {
		return err
	}
	if !ok {
		return ErrDuplicate
	}
	return nil
}

func (g *RedisGuard) Release(ctx context.Context, key string) error {
	if key == "" {
		return nil
	}
	return g.client.Del(ctx, g.prefix+key).Err()
}

// MemoryGuard keeps keys in process memory.
type MemoryGuard struct {
	mu   sync.Mutex
	keys map[string]time.Time
	ttl  time.Duration
	now  func() time.Time
}

func NewMemoryGuard(ttl time.Duration) *MemoryGuard {
	return &MemoryGuard{
		keys: make(map[string]time.Time),
		ttl:  ttl,
		now:  time.Now,
	}
}

func (g *MemoryGuard) Acquire(_ context.Context, key string) error {
	if key == "" {
		return nil
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	now := g.now()
	for k, exp := range g.keys {
		if !exp.After(now) {
			delete(g.keys, k)
		}
	}
	if _, ok := g.keys[key]; ok {
		return ErrDuplicate
	}
	g.keys[key] = now.Add(g.ttl)
	return nil
}

func (g *MemoryGuard) Release(_ context.Context, key string) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	delete(g.keys, key)
	return nil
}
