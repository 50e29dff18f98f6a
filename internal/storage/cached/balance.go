package cached

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	redis "github.com/redis/go-redis/v9"

	"github.com/ledgerkit/pointsvc/internal/domain/model"
	"github.com/ledgerkit/pointsvc/internal/domain/repository"
)

// Cache stores balance records keyed by user. A miss is reported via the
// boolean, not an error.
type Cache interface {
	GetBalance(ctx context.Context, userID int64) (*model.UserPoint, bool, error)
	// SetBalance stores the record unconditionally. Reserved for records that
	// were just committed to the backing store.
	SetBalance(ctx context.Context, record *model.UserPoint) error
	// FillBalance stores the record only when no entry exists for the user.
	FillBalance(ctx context.Context, record *model.UserPoint) error
	// DeleteBalance drops the entry for the user, if any.
	DeleteBalance(ctx context.Context, userID int64) error
}

// BalanceRepository decorates a balance store with a read-through cache. The
// cache is best effort: any cache fault falls back to the inner store and the
// operation proceeds.
//
// Writes refresh the cache unconditionally; read misses fill it only when the
// entry is still absent. A read that loaded the inner store before a
// concurrent write committed must not overwrite the refreshed entry with the
// older balance, or the next serialized mutation would compute from a stale
// value.
type BalanceRepository struct {
	inner  repository.BalanceRepository
	cache  Cache
	logger *slog.Logger
}

// NewBalanceRepository constructs the caching decorator.
func NewBalanceRepository(inner repository.BalanceRepository, cache Cache, logger *slog.Logger) *BalanceRepository {
	return &BalanceRepository{inner: inner, cache: cache, logger: logger}
}

// Get serves from cache when possible, otherwise reads through and fills the
// still-absent entry.
func (r *BalanceRepository) Get(ctx context.Context, userID int64) (*model.UserPoint, error) {
	record, ok, err := r.cache.GetBalance(ctx, userID)
	if err != nil {
		r.logger.Warn("balance cache read failed",
			slog.Int64("user_id", userID),
			slog.String("error", err.Error()),
		)
	} else if ok {
		return record, nil
	}

	record, err = r.inner.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	if cacheErr := r.cache.FillBalance(ctx, record); cacheErr != nil {
		r.logger.Warn("balance cache fill failed",
			slog.Int64("user_id", userID),
			slog.String("error", cacheErr.Error()),
		)
	}
	return record, nil
}

// Upsert writes through to the inner store and refreshes the cached record.
// When the refresh fails the entry is invalidated so no reader serves the
// superseded balance.
func (r *BalanceRepository) Upsert(ctx context.Context, userID, balance int64) (*model.UserPoint, error) {
	record, err := r.inner.Upsert(ctx, userID, balance)
	if err != nil {
		return nil, err
	}
	if cacheErr := r.cache.SetBalance(ctx, record); cacheErr != nil {
		r.logger.Warn("balance cache refresh failed",
			slog.Int64("user_id", userID),
			slog.String("error", cacheErr.Error()),
		)
		if delErr := r.cache.DeleteBalance(ctx, userID); delErr != nil {
			r.logger.Warn("balance cache invalidation failed",
				slog.Int64("user_id", userID),
				slog.String("error", delErr.Error()),
			)
		}
	}
	return record, nil
}

// RedisCache keeps balance records in Redis with a bounded lifetime.
type RedisCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisCache constructs a Redis-backed balance cache.
func NewRedisCache(client *redis.Client, ttl time.Duration) *RedisCache {
	if ttl <= 0 {
		ttl = time.Minute
	}
	return &RedisCache{client: client, ttl: ttl}
}

func balanceKey(userID int64) string {
	return fmt.Sprintf("points:balance:%d", userID)
}

// GetBalance fetches a cached record; a missing key is a miss, not an error.
func (c *RedisCache) GetBalance(ctx context.Context, userID int64) (*model.UserPoint, bool, error) {
	val, err := c.client.Get(ctx, balanceKey(userID)).Result()
	if err == redis.Nil {
		return nil, false, nil
	} else if err != nil {
		return nil, false, err
	}

	var record model.UserPoint
	if err := json.Unmarshal([]byte(val), &record); err != nil {
		return nil, false, err
	}
	return &record, true, nil
}

// SetBalance stores the record with the configured TTL.
func (c *RedisCache) SetBalance(ctx context.Context, record *model.UserPoint) error {
	payload, err := json.Marshal(record)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, balanceKey(record.UserID), payload, c.ttl).Err()
}

// FillBalance stores the record only when the key does not exist yet.
func (c *RedisCache) FillBalance(ctx context.Context, record *model.UserPoint) error {
	payload, err := json.Marshal(record)
	if err != nil {
		return err
	}
	return c.client.SetNX(ctx, balanceKey(record.UserID), payload, c.ttl).Err()
}

// DeleteBalance removes the cached record for the user.
func (c *RedisCache) DeleteBalance(ctx context.Context, userID int64) error {
	return c.client.Del(ctx, balanceKey(userID)).Err()
}
