package idempotency

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Store records processed message identities in redis so that redelivered
// messages can be skipped. Delivery here is at-least-once: offset keys catch
// consumer-side redelivery only; duplicates produced upstream under a new
// offset are not covered.
type Store struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewStore(rdb *redis.Client, ttl time.Duration) *Store {
	return &Store{rdb: rdb, ttl: ttl}
}

// OffsetKey identifies one delivery slot of a topic partition.
func (s *Store) OffsetKey(topic string, partition int, offset int64) string {
	return fmt.Sprintf("idem:%s:%d:%d", topic, partition, offset)
}

// BusinessKey identifies a message by its business identity, e.g. an order id,
// for callers that want dedup across producer-side duplicates as well.
func (s *Store) BusinessKey(kind, id string) string {
	return fmt.Sprintf("idem:%s:%s", kind, id)
}

// Seen marks the key and reports whether it had been marked before.
func (s *Store) Seen(ctx context.Context, key string) (bool, error) {
	ok, err := s.rdb.SetNX(ctx, key, "1", s.ttl).Result()
	if err != nil {
		return false, err
	}
	return !ok, nil
}
