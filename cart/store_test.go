package cart

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testStores(t *testing.T) map[string]Store {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return map[string]Store{
		"memory": NewMemoryStore(time.Hour),
		"redis":  NewRedisStore(client, time.Hour),
	}
}

func TestStores_RoundTrip(t *testing.T) {
	ctx := context.Background()
	for name, store := range testStores(t) {
		t.Run(name, func(t *testing.T) {
			empty, err := store.Load(ctx, "unknown")
			require.NoError(t, err)
			assert.True(t, empty.IsEmpty())

			c := New()
			c.Add(honey(), 2, "")
			require.NoError(t, store.Save(ctx, "s1", c))

			loaded, err := store.Load(ctx, "s1")
			require.NoError(t, err)
			require.Len(t, loaded.Items, 1)
			assert.Equal(t, 2, loaded.Items[0].Quantity)
			assert.True(t, loaded.Items[0].Product.Price.Equal(decimal.NewFromInt(500)))

			other, err := store.Load(ctx, "s2")
			require.NoError(t, err)
			assert.True(t, other.IsEmpty())

			require.NoError(t, store.Delete(ctx, "s1"))
			gone, err := store.Load(ctx, "s1")
			require.NoError(t, err)
			assert.True(t, gone.IsEmpty())
		})
	}
}

func TestMemoryStore_Expires(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 1, 1, 10, 0, 0, 0, time.UTC)
	store := NewMemoryStore(time.Hour)
	store.now = func() time.Time { return now }

	c := New()
	c.Add(honey(), 1, "")
	require.NoError(t, store.Save(ctx, "s1", c))

	now = now.Add(59 * time.Minute)
	loaded, err := store.Load(ctx, "s1")
	require.NoError(t, err)
	assert.False(t, loaded.IsEmpty())

	now = now.Add(2 * time.Minute)
	loaded, err = store.Load(ctx, "s1")
	require.NoError(t, err)
	assert.True(t, loaded.IsEmpty())
}

func TestMemoryStore_SaveCopies(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore(time.Hour)
	c := New()
	c.Add(honey(), 1, "")
	require.NoError(t, store.Save(ctx, "s1", c))

	c.Items[0].Quantity = 5

	loaded, err := store.Load(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, 1, loaded.Items[0].Quantity)
}

func TestRedisStore_TTL(t *testing.T) {
	ctx := context.Background()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer client.Close()
	store := NewRedisStore(client, 30*time.Minute)

	c := New()
	c.Add(honey(), 1, "")
	require.NoError(t, store.Save(ctx, "s1", c))
	assert.Equal(t, 30*time.Minute, mr.TTL("cart:s1"))

	mr.FastForward(31 * time.Minute)
	loaded, err := store.Load(ctx, "s1")
	require.NoError(t, err)
	assert.True(t, loaded.IsEmpty())
}

func TestRedisStore_CorruptValue(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer client.Close()
	require.NoError(t, mr.Set("cart:s1", "{not json"))

	_, err := NewRedisStore(client, time.Hour).Load(context.Background(), "s1")
	assert.Error(t, err)
}
