package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type cachedThing struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

func withMiniredis(t *testing.T) *miniredis.Miniredis {
	t.Helper()
	mr := miniredis.RunT(t)
	SetClient(redis.NewClient(&redis.Options{Addr: mr.Addr()}))
	t.Cleanup(func() { SetClient(nil) })
	return mr
}

func TestGetSetJSON(t *testing.T) {
	ctx := context.Background()

	t.Run("round trip", func(t *testing.T) {
		withMiniredis(t)

		in := cachedThing{ID: 7, Name: "widget"}
		require.NoError(t, SetJSON(ctx, "thing:7", in, time.Minute))

		var out cachedThing
		found, err := GetJSON(ctx, "thing:7", &out)
		require.NoError(t, err)
		assert.True(t, found)
		assert.Equal(t, in, out)
	})

	t.Run("miss returns not found", func(t *testing.T) {
		withMiniredis(t)

		var out cachedThing
		found, err := GetJSON(ctx, "thing:missing", &out)
		require.NoError(t, err)
		assert.False(t, found)
	})

	t.Run("nil client is a no-op", func(t *testing.T) {
		SetClient(nil)

		require.NoError(t, SetJSON(ctx, "k", cachedThing{}, time.Minute))
		found, err := GetJSON(ctx, "k", &cachedThing{})
		require.NoError(t, err)
		assert.False(t, found)
	})
}

func TestAside(t *testing.T) {
	ctx := context.Background()

	t.Run("miss fetches and stores", func(t *testing.T) {
		mr := withMiniredis(t)

		fetches := 0
		var out cachedThing
		err := Aside(ctx, "thing:1", &out, time.Minute, func() error {
			fetches++
			out = cachedThing{ID: 1, Name: "fetched"}
			return nil
		})
		require.NoError(t, err)
		assert.Equal(t, 1, fetches)
		assert.True(t, mr.Exists("thing:1"))

		// Second read comes from the cache.
		var again cachedThing
		err = Aside(ctx, "thing:1", &again, time.Minute, func() error {
			fetches++
			return nil
		})
		require.NoError(t, err)
		assert.Equal(t, 1, fetches)
		assert.Equal(t, "fetched", again.Name)
	})

	t.Run("fetch errors propagate and nothing is stored", func(t *testing.T) {
		mr := withMiniredis(t)

		wantErr := errors.New("db down")
		var out cachedThing
		err := Aside(ctx, "thing:2", &out, time.Minute, func() error {
			return wantErr
		})
		assert.ErrorIs(t, err, wantErr)
		assert.False(t, mr.Exists("thing:2"))
	})

	t.Run("invalidate removes the key", func(t *testing.T) {
		mr := withMiniredis(t)

		require.NoError(t, SetJSON(ctx, UserKey(42), cachedThing{ID: 42}, time.Minute))
		require.True(t, mr.Exists(UserKey(42)))

		InvalidateUser(ctx, 42)
		assert.False(t, mr.Exists(UserKey(42)))
	})
}
