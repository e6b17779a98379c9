package session

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	errx "github.com/Cheertaboi/storefront-service/internal/core/error"
)

func setupTestRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()

	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("Failed to start miniredis: %v", err)
	}
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() {
		client.Close()
		mr.Close()
	})
	return mr, client
}

func TestRedisStore_PutGetDelete(t *testing.T) {
	mr, client := setupTestRedis(t)
	store := NewRedisStore(client, 30*time.Minute)
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, "s1", "orderDetails", `{"total":"255"}`))
	assert.True(t, mr.Exists("session:s1:orderDetails"))
	assert.Equal(t, 30*time.Minute, mr.TTL("session:s1:orderDetails"))

	v, err := store.Get(ctx, "s1", "orderDetails")
	require.NoError(t, err)
	assert.Equal(t, `{"total":"255"}`, v)

	require.NoError(t, store.Delete(ctx, "s1", "orderDetails"))
	_, err = store.Get(ctx, "s1", "orderDetails")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRedisStore_Expires(t *testing.T) {
	mr, client := setupTestRedis(t)
	store := NewRedisStore(client, time.Minute)
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, "s1", "orderDetails", "x"))
	mr.FastForward(2 * time.Minute)

	_, err := store.Get(ctx, "s1", "orderDetails")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRedisStore_UnavailableIsCollaboratorError(t *testing.T) {
	mr, client := setupTestRedis(t)
	store := NewRedisStore(client, time.Minute)
	mr.Close()

	_, err := store.Get(context.Background(), "s1", "orderDetails")
	require.Error(t, err)

	var appErr *errx.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, errx.KindCollaborator, appErr.Kind)
}
