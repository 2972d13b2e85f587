package coupon

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"bakery-kart/internal/pricing"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

const (
	savedKeyPrefix = "saved_coupons:"
	maxTxRetries   = 5
)

// redisSavedStore keeps each user's saved coupons as a JSON array under
// saved_coupons:<userID>.
type redisSavedStore struct {
	client *redis.Client
	logger zerolog.Logger
}

// NewRedisSavedStore creates a Redis-backed SavedStore.
func NewRedisSavedStore(client *redis.Client, logger zerolog.Logger) SavedStore {
	return &redisSavedStore{
		client: client,
		logger: logger.With().Str("component", "redis-saved-store").Logger(),
	}
}

func savedKey(userID string) string {
	return savedKeyPrefix + userID
}

func (s *redisSavedStore) List(ctx context.Context, userID string) ([]SavedCoupon, error) {
	return s.read(ctx, s.client, savedKey(userID))
}

// Save appends c under WATCH so concurrent saves of the same code cannot
// both succeed.
func (s *redisSavedStore) Save(ctx context.Context, userID string, c SavedCoupon) (bool, error) {
	c.Code = pricing.NormalizeCode(c.Code)
	key := savedKey(userID)
	added := false

	txf := func(tx *redis.Tx) error {
		list, err := s.read(ctx, tx, key)
		if err != nil {
			return err
		}
		if indexOf(list, c.Code) >= 0 {
			added = false
			return nil
		}

		data, err := json.Marshal(append(list, c))
		if err != nil {
			return fmt.Errorf("marshal saved coupons: %w", err)
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, data, 0)
			return nil
		})
		added = err == nil
		return err
	}

	if err := s.watch(ctx, key, txf); err != nil {
		return false, err
	}

	if added {
		s.logger.Debug().Str("user_id", userID).Str("code", c.Code).Msg("coupon saved")
	}
	return added, nil
}

func (s *redisSavedStore) Remove(ctx context.Context, userID, code string) error {
	code = pricing.NormalizeCode(code)
	key := savedKey(userID)

	txf := func(tx *redis.Tx) error {
		list, err := s.read(ctx, tx, key)
		if err != nil {
			return err
		}
		i := indexOf(list, code)
		if i < 0 {
			return nil
		}
		list = append(list[:i:i], list[i+1:]...)

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			if len(list) == 0 {
				pipe.Del(ctx, key)
				return nil
			}
			data, err := json.Marshal(list)
			if err != nil {
				return fmt.Errorf("marshal saved coupons: %w", err)
			}
			pipe.Set(ctx, key, data, 0)
			return nil
		})
		return err
	}

	return s.watch(ctx, key, txf)
}

func (s *redisSavedStore) IsSaved(ctx context.Context, userID, code string) (bool, error) {
	list, err := s.List(ctx, userID)
	if err != nil {
		return false, err
	}
	return indexOf(list, pricing.NormalizeCode(code)) >= 0, nil
}

func (s *redisSavedStore) watch(ctx context.Context, key string, txf func(*redis.Tx) error) error {
	for i := 0; i < maxTxRetries; i++ {
		err := s.client.Watch(ctx, txf, key)
		if err == nil {
			return nil
		}
		if errors.Is(err, redis.TxFailedErr) {
			continue
		}
		return err
	}
	return fmt.Errorf("redis saved coupons %s: too much contention", key)
}

// getter is satisfied by both *redis.Client and *redis.Tx.
type getter interface {
	Get(ctx context.Context, key string) *redis.StringCmd
}

func (s *redisSavedStore) read(ctx context.Context, cmd getter, key string) ([]SavedCoupon, error) {
	data, err := cmd.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return []SavedCoupon{}, nil
		}
		return nil, fmt.Errorf("redis get saved coupons: %w", err)
	}

	var list []SavedCoupon
	if err := json.Unmarshal(data, &list); err != nil {
		return nil, fmt.Errorf("unmarshal saved coupons: %w", err)
	}
	return list, nil
}
