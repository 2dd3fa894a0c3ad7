package lock

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/bsm/redislock"
	"github.com/redis/go-redis/v9"
)

var ErrNotObtained = errors.New("lock not obtained")

type Lock interface {
	Release(ctx context.Context) error
}

// Locker hands out short-lived exclusive locks by key.
type Locker interface {
	// Obtain returns ErrNotObtained when another holder owns key.
	Obtain(ctx context.Context, key string, ttl time.Duration) (Lock, error)
}

// RedisLocker locks across instances through Redis.
type RedisLocker struct {
	client *redislock.Client
}

func NewRedisLocker(rdb *redis.Client) *RedisLocker {
	return &RedisLocker{client: redislock.New(rdb)}
}

func (l *RedisLocker) Obtain(ctx context.Context, key string, ttl time.Duration) (Lock, error) {
	lk, err := l.client.Obtain(ctx, key, ttl, nil)
	if err != nil {
		if errors.Is(err, redislock.ErrNotObtained) {
			return nil, ErrNotObtained
		}
		return nil, fmt.Errorf("obtain lock %s: %w", key, err)
	}
	return lk, nil
}

// NewRedisClient connects and pings Redis.
func NewRedisClient(ctx context.Context, addr, password string, db int) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("ping redis %s: %w", addr, err)
	}
	return rdb, nil
}

// LocalLocker locks within one process. Used when Redis is not configured.
type LocalLocker struct {
	mu    sync.Mutex
	held  map[string]time.Time
	nowFn func() time.Time
}

func NewLocalLocker() *LocalLocker {
	return &LocalLocker{
		held:  make(map[string]time.Time),
		nowFn: time.Now,
	}
}

func (l *LocalLocker) Obtain(_ context.Context, key string, ttl time.Duration) (Lock, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.nowFn()
	if expires, ok := l.held[key]; ok && now.Before(expires) {
		return nil, ErrNotObtained
	}
	expires := now.Add(ttl)
	l.held[key] = expires
	return &localLock{owner: l, key: key, expires: expires}, nil
}

type localLock struct {
	owner   *LocalLocker
	key     string
	expires time.Time
}

func (k *localLock) Release(_ context.Context) error {
	k.owner.mu.Lock()
	defer k.owner.mu.Unlock()

	// a lock that expired and was re-obtained by someone else is not ours to drop
	if current, ok := k.owner.held[k.key]; ok && current.Equal(k.expires) {
		delete(k.owner.held, k.key)
	}
	return nil
}
