package history

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	searchesKeyPrefix = "history:%s:searches"
	// A caller who has not searched for 30 days loses their history.
	keyTTL = 30 * 24 * time.Hour
)

// Store persists history entries in Redis lists, newest at the head.
type Store struct {
	redis *redis.Client
	size  int
}

func NewStore(redis *redis.Client, size int) *Store {
	if size <= 0 {
		size = DefaultSize
	}
	return &Store{redis: redis, size: size}
}

// Push prepends e to the caller's list and trims it to the configured size.
func (s *Store) Push(ctx context.Context, uid string, e Entry) error {
	payload, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("history: encode entry: %w", err)
	}
	key := searchesKey(uid)
	pipe := s.redis.TxPipeline()
	pipe.LPush(ctx, key, payload)
	pipe.LTrim(ctx, key, 0, int64(s.size-1))
	pipe.Expire(ctx, key, keyTTL)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("history: push: %w", err)
	}
	return nil
}

// Range returns up to limit entries, newest first. Entries that no longer
// decode are skipped.
func (s *Store) Range(ctx context.Context, uid string, limit int) ([]Entry, error) {
	vals, err := s.redis.LRange(ctx, searchesKey(uid), 0, int64(limit-1)).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("history: range: %w", err)
	}
	out := make([]Entry, 0, len(vals))
	for _, v := range vals {
		var e Entry
		if err := json.Unmarshal([]byte(v), &e); err != nil {
			continue
		}
		out = append(out, e)
	}
	return out, nil
}

// Size is the configured maximum list length.
func (s *Store) Size() int {
	return s.size
}

func searchesKey(uid string) string {
	return fmt.Sprintf(searchesKeyPrefix, uid)
}
