package outcome

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"
)

const DefaultRedisKey = "smarterstarts:fanout:outcomes"

// listStore is the part of *redis.Client the recorder uses.
type listStore interface {
	LPush(ctx context.Context, key string, values ...interface{}) *redis.IntCmd
	LTrim(ctx context.Context, key string, start, stop int64) *redis.StatusCmd
	LRange(ctx context.Context, key string, start, stop int64) *redis.StringSliceCmd
}

// RedisRecorder keeps the newest maxLen outcomes in a Redis list so every
// instance sees the same history.
type RedisRecorder struct {
	rdb    listStore
	key    string
	maxLen int64
}

func NewRedisRecorder(rdb *redis.Client, key string, maxLen int64) *RedisRecorder {
	return newRedisRecorder(rdb, key, maxLen)
}

func newRedisRecorder(rdb listStore, key string, maxLen int64) *RedisRecorder {
	if key == "" {
		key = DefaultRedisKey
	}
	if maxLen <= 0 {
		maxLen = 200
	}
	return &RedisRecorder{rdb: rdb, key: key, maxLen: maxLen}
}

func (r *RedisRecorder) Record(ctx context.Context, o Outcome) error {
	data, err := json.Marshal(o)
	if err != nil {
		return fmt.Errorf("marshal outcome: %w", err)
	}
	if err := r.rdb.LPush(ctx, r.key, data).Err(); err != nil {
		return fmt.Errorf("push outcome: %w", err)
	}
	if err := r.rdb.LTrim(ctx, r.key, 0, r.maxLen-1).Err(); err != nil {
		return fmt.Errorf("trim outcomes: %w", err)
	}
	return nil
}

func (r *RedisRecorder) Recent(ctx context.Context, limit int) ([]Outcome, error) {
	stop := r.maxLen - 1
	if limit > 0 && int64(limit) <= r.maxLen {
		stop = int64(limit) - 1
	}
	raw, err := r.rdb.LRange(ctx, r.key, 0, stop).Result()
	if err != nil {
		return nil, fmt.Errorf("read outcomes: %w", err)
	}
	out := make([]Outcome, 0, len(raw))
	for _, item := range raw {
		var o Outcome
		if err := json.Unmarshal([]byte(item), &o); err != nil {
			continue
		}
		out = append(out, o)
	}
	return out, nil
}
