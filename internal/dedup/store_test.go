package dedup

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	mr := miniredis.RunT(t)
	return NewStore(redis.NewClient(&redis.Options{Addr: mr.Addr()}))
}

func TestFirstDelivery(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	assert.True(t, store.FirstDelivery(ctx, "wamid.A"))
	assert.False(t, store.FirstDelivery(ctx, "wamid.A"))
	assert.True(t, store.FirstDelivery(ctx, "wamid.B"))
}

func TestFirstDelivery_NilStoreAcceptsAll(t *testing.T) {
	var store *Store
	ctx := context.Background()

	assert.True(t, store.FirstDelivery(ctx, "wamid.A"))
	assert.True(t, store.FirstDelivery(ctx, "wamid.A"))
}

func TestFirstDelivery_EmptyIDAccepted(t *testing.T) {
	store := newTestStore(t)
	assert.True(t, store.FirstDelivery(context.Background(), ""))
	assert.True(t, store.FirstDelivery(context.Background(), ""))
}
