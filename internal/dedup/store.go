// README: Webhook delivery dedup backed by Redis SETNX with a TTL.
package dedup

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	keyPrefix = "setrae:webhook:msg:"
	// The Cloud API retries deliveries for up to a day.
	keyTTL = 24 * time.Hour
)

// Store remembers WhatsApp message ids so retried webhook deliveries are
// processed once. A nil *Store accepts everything (dedup disabled).
type Store struct {
	redis *redis.Client
}

func NewStore(redis *redis.Client) *Store {
	return &Store{redis: redis}
}

// FirstDelivery marks the message id as seen and reports whether this call
// was the first to do so. Redis failures count as first delivery: processing
// twice beats dropping a message.
func (s *Store) FirstDelivery(ctx context.Context, messageID string) bool {
	if s == nil || messageID == "" {
		return true
	}
	ok, err := s.redis.SetNX(ctx, keyPrefix+messageID, "1", keyTTL).Result()
	if err != nil {
		return true
	}
	return ok
}
