package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const sessionKeyPrefix = "session:"

// DefaultSessionTTL bounds how long an abandoned conversation lingers.
const DefaultSessionTTL = 24 * time.Hour

// RedisStore persists sessions as JSON values under "session:<id>" keys.
type RedisStore struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewRedisStore connects to the given Redis URL (redis://host:port/db) and
// verifies the connection with a ping. A ttl of zero uses DefaultSessionTTL.
func NewRedisStore(ctx context.Context, url string, ttl time.Duration) (*RedisStore, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}

	rdb := redis.NewClient(opts)
	if err := rdb.Ping(ctx).Err(); err != nil {
		rdb.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return &RedisStore{rdb: rdb, ttl: ttl}, nil
}

// NewRedisStoreFromClient wraps an existing client; used by tests.
func NewRedisStoreFromClient(rdb *redis.Client, ttl time.Duration) *RedisStore {
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}
	return &RedisStore{rdb: rdb, ttl: ttl}
}

func (r *RedisStore) Get(ctx context.Context, id string) (*Session, error) {
	var s *Session
	err := withRetry(ctx, "redis get", func() error {
		raw, err := r.rdb.Get(ctx, sessionKeyPrefix+id).Bytes()
		if errors.Is(err, redis.Nil) {
			return ErrNotFound
		}
		if err != nil {
			return err
		}

		var decoded Session
		if err := json.Unmarshal(raw, &decoded); err != nil {
			return fmt.Errorf("decode session %s: %w", id, err)
		}
		s = &decoded
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s, nil
}

func (r *RedisStore) Save(ctx context.Context, s *Session) error {
	raw, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("encode session %s: %w", s.ID, err)
	}

	return withRetry(ctx, "redis save", func() error {
		return r.rdb.Set(ctx, sessionKeyPrefix+s.ID, raw, r.ttl).Err()
	})
}

// Stats scans the session keyspace and aggregates. SCAN keeps the walk
// incremental; fine for the session volumes a single instance holds.
func (r *RedisStore) Stats(ctx context.Context) (Stats, error) {
	var st Stats
	var cursor uint64
	for {
		keys, next, err := r.rdb.Scan(ctx, cursor, sessionKeyPrefix+"*", 100).Result()
		if err != nil {
			return Stats{}, fmt.Errorf("redis scan: %w", err)
		}

		for _, key := range keys {
			raw, err := r.rdb.Get(ctx, key).Bytes()
			if err != nil {
				continue
			}
			var s Session
			if err := json.Unmarshal(raw, &s); err != nil {
				continue
			}
			st.TotalSessions++
			if s.Status == StatusActive {
				st.ActiveSessions++
			}
			if s.ScamDetected {
				st.ScamsDetected++
			}
			st.IntelItems += s.Intelligence.TotalItems()
		}

		cursor = next
		if cursor == 0 {
			return st, nil
		}
	}
}

func (r *RedisStore) Close() error {
	return r.rdb.Close()
}
