package coupon

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupRedisSavedStore(t *testing.T) (SavedStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return NewRedisSavedStore(client, zerolog.Nop()), mr
}

func savedStores(t *testing.T) map[string]SavedStore {
	redisStore, _ := setupRedisSavedStore(t)
	return map[string]SavedStore{
		"memory": NewMemorySavedStore(),
		"redis":  redisStore,
	}
}

func TestSavedStore_SaveAndList(t *testing.T) {
	for name, store := range savedStores(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			savedAt := time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC)

			added, err := store.Save(ctx, "user-1", SavedCoupon{Code: "hbd10", Title: "Birthday", SavedAt: savedAt})
			require.NoError(t, err)
			assert.True(t, added)

			added, err = store.Save(ctx, "user-1", SavedCoupon{Code: "FREEDEL", Title: "Free delivery", SavedAt: savedAt})
			require.NoError(t, err)
			assert.True(t, added)

			list, err := store.List(ctx, "user-1")
			require.NoError(t, err)
			require.Len(t, list, 2)
			assert.Equal(t, "HBD10", list[0].Code)
			assert.Equal(t, "FREEDEL", list[1].Code)
			assert.True(t, savedAt.Equal(list[0].SavedAt))

			other, err := store.List(ctx, "user-2")
			require.NoError(t, err)
			assert.Empty(t, other)
		})
	}
}

func TestSavedStore_RejectsDuplicates(t *testing.T) {
	for name, store := range savedStores(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			added, err := store.Save(ctx, "user-1", SavedCoupon{Code: "WELCOME50"})
			require.NoError(t, err)
			assert.True(t, added)

			added, err = store.Save(ctx, "user-1", SavedCoupon{Code: " welcome50 "})
			require.NoError(t, err)
			assert.False(t, added)

			list, err := store.List(ctx, "user-1")
			require.NoError(t, err)
			assert.Len(t, list, 1)
		})
	}
}

func TestSavedStore_RemoveAndIsSaved(t *testing.T) {
	for name, store := range savedStores(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			_, err := store.Save(ctx, "user-1", SavedCoupon{Code: "HBD10"})
			require.NoError(t, err)
			_, err = store.Save(ctx, "user-1", SavedCoupon{Code: "CUPCAKE3GET1"})
			require.NoError(t, err)

			saved, err := store.IsSaved(ctx, "user-1", "hbd10")
			require.NoError(t, err)
			assert.True(t, saved)

			require.NoError(t, store.Remove(ctx, "user-1", "HBD10"))
			require.NoError(t, store.Remove(ctx, "user-1", "UNKNOWN"))

			saved, err = store.IsSaved(ctx, "user-1", "HBD10")
			require.NoError(t, err)
			assert.False(t, saved)

			list, err := store.List(ctx, "user-1")
			require.NoError(t, err)
			require.Len(t, list, 1)
			assert.Equal(t, "CUPCAKE3GET1", list[0].Code)
		})
	}
}

func TestSavedStore_ConcurrentDuplicateSaves(t *testing.T) {
	for name, store := range savedStores(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			var wg sync.WaitGroup
			var mu sync.Mutex
			addedCount := 0
			for i := 0; i < 3; i++ {
				wg.Add(1)
				go func() {
					defer wg.Done()
					added, err := store.Save(ctx, "user-1", SavedCoupon{Code: "FREEDEL"})
					if err == nil && added {
						mu.Lock()
						addedCount++
						mu.Unlock()
					}
				}()
			}
			wg.Wait()

			assert.Equal(t, 1, addedCount)
			list, err := store.List(ctx, "user-1")
			require.NoError(t, err)
			assert.Len(t, list, 1)
		})
	}
}

func TestRedisSavedStore_KeyLayout(t *testing.T) {
	store, mr := setupRedisSavedStore(t)
	ctx := context.Background()

	_, err := store.Save(ctx, "user-42", SavedCoupon{Code: "HBD10", Title: "Birthday"})
	require.NoError(t, err)

	raw, err := mr.Get("saved_coupons:user-42")
	require.NoError(t, err)
	assert.Contains(t, raw, `"code":"HBD10"`)

	require.NoError(t, store.Remove(ctx, "user-42", "HBD10"))
	assert.False(t, mr.Exists("saved_coupons:user-42"))
}

func TestRedisSavedStore_CorruptValue(t *testing.T) {
	store, mr := setupRedisSavedStore(t)
	require.NoError(t, mr.Set("saved_coupons:user-1", "not json"))

	_, err := store.List(context.Background(), "user-1")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "unmarshal saved coupons")
}
