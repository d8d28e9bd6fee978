package myredis

import (
	"context"
	"os"
	"testing"

	"github.com/go-redis/redis/v9"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"parking-violations/internal/interfaces"
	"parking-violations/internal/models"
)

var _ interfaces.Violations = (*MyRedis[models.Violation])(nil)

// newTestStore connects to REDIS_ADDR under a random prefix.
func newTestStore(t *testing.T) *MyRedis[models.Violation] {
	t.Helper()
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		t.Skip("REDIS_ADDR not set")
	}

	ctx := context.Background()
	store := New(&redis.Options{Addr: addr}, models.ViolationID).WithPrefix("test-" + uuid.NewString())
	require.NoError(t, store.Ping(ctx))
	t.Cleanup(func() {
		_ = store.Clear(ctx)
		store.Destroy()
	})
	return store
}

func TestRedisRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	v := models.Violation{ID: "1", Car: models.Car{Plate: "ABC123", State: "AZ"}, Location: "123 Main St", Date: "2023-04-15T10:30:00Z"}
	require.NoError(t, store.Upsert(ctx, v))

	got, found, err := store.Get(ctx, "1")
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, v, got)

	_, found, err = store.Get(ctx, "missing")
	require.NoError(t, err)
	assert.False(t, found)
}

func TestRedisKeepsInsertionOrder(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	for _, id := range []string{"3", "1", "2"} {
		require.NoError(t, store.Upsert(ctx, models.Violation{ID: id}))
	}
	require.NoError(t, store.Upsert(ctx, models.Violation{ID: "3", Resolved: true}))

	all, err := store.AsSlice(ctx)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, []string{"3", "1", "2"}, []string{all[0].ID, all[1].ID, all[2].ID})
	assert.True(t, all[0].Resolved)
}
