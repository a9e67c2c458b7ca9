package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/gotaagota/collections-api/internal/core/ports"
)

const idempotencyTTL = 24 * time.Hour

// IdempotencyStore caches payment results by Idempotency-Key so duplicate
// submissions replay the first outcome instead of moving the ledger twice.
// Key format: payment:idem:<key>
type IdempotencyStore struct {
	client *redis.Client
}

func NewIdempotencyStore(client *redis.Client) *IdempotencyStore {
	return &IdempotencyStore{client: client}
}

// Get returns the stored result for key, or (nil, nil) when unseen.
func (s *IdempotencyStore) Get(ctx context.Context, key string) (*ports.PaymentResult, error) {
	raw, err := s.client.Get(ctx, s.key(key)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("idempotency get: %w", err)
	}

	var result ports.PaymentResult
	if err := json.Unmarshal(raw, &result); err != nil {
		return nil, fmt.Errorf("idempotency decode: %w", err)
	}
	return &result, nil
}

// Put records the result under key (expires after idempotencyTTL).
func (s *IdempotencyStore) Put(ctx context.Context, key string, result *ports.PaymentResult) error {
	raw, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("idempotency encode: %w", err)
	}
	return s.client.Set(ctx, s.key(key), raw, idempotencyTTL).Err()
}

func (s *IdempotencyStore) key(k string) string {
	return "payment:idem:" + k
}
