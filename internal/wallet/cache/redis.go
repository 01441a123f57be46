package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/MrJamesThe3rd/sanctuary/internal/wallet"
)

// Both keys hash to one cluster slot so they can share a transaction.
const (
	summaryKey    = "{wallets}:summary"
	generationKey = "{wallets}:summary:generation"
)

// RedisCache keeps the wallet summary in Redis for a short TTL. Writes are guarded by a
// generation counter that DeleteSummary increments.
type RedisCache struct {
	client redis.UniversalClient
	ttl    time.Duration
}

func NewRedisCache(client redis.UniversalClient, ttl time.Duration) *RedisCache {
	return &RedisCache{client: client, ttl: ttl}
}

func (c *RedisCache) GetSummary(ctx context.Context) (*wallet.Summary, int64, error) {
	var summaryCmd, genCmd *redis.StringCmd

	_, err := c.client.Pipelined(ctx, func(p redis.Pipeliner) error {
		genCmd = p.Get(ctx, generationKey)
		summaryCmd = p.Get(ctx, summaryKey)

		return nil
	})
	if err != nil && !errors.Is(err, redis.Nil) {
		return nil, 0, fmt.Errorf("failed to get summary from redis: %w", err)
	}

	gen, err := genCmd.Int64()
	if err != nil && !errors.Is(err, redis.Nil) {
		return nil, 0, fmt.Errorf("failed to read summary generation: %w", err)
	}

	raw, err := summaryCmd.Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, gen, wallet.ErrNotCached
		}

		return nil, gen, fmt.Errorf("failed to get summary from redis: %w", err)
	}

	var summary wallet.Summary
	if err := json.Unmarshal(raw, &summary); err != nil {
		return nil, gen, fmt.Errorf("failed to decode cached summary: %w", err)
	}

	return &summary, gen, nil
}

var errGenerationMoved = errors.New("summary generation moved")

// SetSummary is a no-op when the generation has moved past gen, including when it moves
// while the write is in flight.
func (c *RedisCache) SetSummary(ctx context.Context, summary *wallet.Summary, gen int64) error {
	raw, err := json.Marshal(summary)
	if err != nil {
		return fmt.Errorf("failed to encode summary: %w", err)
	}

	err = c.client.Watch(ctx, func(tx *redis.Tx) error {
		current, err := tx.Get(ctx, generationKey).Int64()
		if err != nil && !errors.Is(err, redis.Nil) {
			return err
		}

		if current != gen {
			return errGenerationMoved
		}

		_, err = tx.TxPipelined(ctx, func(p redis.Pipeliner) error {
			p.Set(ctx, summaryKey, raw, c.ttl)
			return nil
		})

		return err
	}, generationKey)

	switch {
	case err == nil, errors.Is(err, errGenerationMoved), errors.Is(err, redis.TxFailedErr):
		return nil
	default:
		return fmt.Errorf("failed to set summary in redis: %w", err)
	}
}

func (c *RedisCache) DeleteSummary(ctx context.Context) error {
	_, err := c.client.TxPipelined(ctx, func(p redis.Pipeliner) error {
		p.Del(ctx, summaryKey)
		p.Incr(ctx, generationKey)

		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to delete summary from redis: %w", err)
	}

	return nil
}
