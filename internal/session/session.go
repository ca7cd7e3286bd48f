// Package session provides the Redis-backed per-application session state:
// the previous page name used for back navigation and flash validation
// errors carried across a redirect.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

const defaultTTL = 2 * time.Hour

// Store holds transient wizard state in Redis.
type Store struct {
	rdb *redis.Client
	ttl time.Duration
}

// New creates a session store over the given Redis client.
func New(rdb *redis.Client, ttl time.Duration) *Store {
	if ttl <= 0 {
		ttl = defaultTTL
	}
	return &Store{rdb: rdb, ttl: ttl}
}

// PreviousPage returns the page name recorded for back navigation, or ""
// when none is recorded.
func (s *Store) PreviousPage(ctx context.Context, applicationID string) (string, error) {
	val, err := s.rdb.Get(ctx, prevPageKey(applicationID)).Result()
	if errors.Is(err, redis.Nil) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("get previous page: %w", err)
	}
	return val, nil
}

// SetPreviousPage records the page name the applicant is leaving.
func (s *Store) SetPreviousPage(ctx context.Context, applicationID, page string) error {
	if err := s.rdb.Set(ctx, prevPageKey(applicationID), page, s.ttl).Err(); err != nil {
		return fmt.Errorf("set previous page: %w", err)
	}
	return nil
}

// PutFlashErrors stores field errors to redisplay after a redirect.
func (s *Store) PutFlashErrors(ctx context.Context, applicationID string, fieldErrors map[string]string) error {
	payload, err := json.Marshal(fieldErrors)
	if err != nil {
		return fmt.Errorf("marshal flash errors: %w", err)
	}
	if err := s.rdb.Set(ctx, flashKey(applicationID), payload, s.ttl).Err(); err != nil {
		return fmt.Errorf("put flash errors: %w", err)
	}
	return nil
}

// TakeFlashErrors returns and clears any stored field errors. Flash state is
// single-read.
func (s *Store) TakeFlashErrors(ctx context.Context, applicationID string) (map[string]string, error) {
	key := flashKey(applicationID)
	val, err := s.rdb.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get flash errors: %w", err)
	}
	if err := s.rdb.Del(ctx, key).Err(); err != nil {
		return nil, fmt.Errorf("clear flash errors: %w", err)
	}

	var fieldErrors map[string]string
	if err := json.Unmarshal([]byte(val), &fieldErrors); err != nil {
		return nil, fmt.Errorf("unmarshal flash errors: %w", err)
	}
	return fieldErrors, nil
}

func prevPageKey(id string) string { return "intake:prevpage:" + id }
func flashKey(id string) string    { return "intake:flash:" + id }
