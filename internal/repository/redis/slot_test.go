package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/utafrali/storefront/pkg/errors"
)

const testKey = "storefront:cart"

func setupTestRedis(t *testing.T, ttl time.Duration) (*SlotStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return NewSlotStore(client, testKey, ttl), mr
}

// ---------------------------------------------------------------------------
// Get
// ---------------------------------------------------------------------------

func TestSlotStore_Get_Success(t *testing.T) {
	store, mr := setupTestRedis(t, 0)
	require.NoError(t, mr.Set(testKey, `[{"id":"1","quantity":2}]`))

	got, err := store.Get(context.Background())
	require.NoError(t, err)
	assert.JSONEq(t, `[{"id":"1","quantity":2}]`, string(got))
}

func TestSlotStore_Get_NotFound(t *testing.T) {
	store, _ := setupTestRedis(t, 0)

	_, err := store.Get(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestSlotStore_Get_ConnectionError(t *testing.T) {
	store, mr := setupTestRedis(t, 0)
	mr.SetError("ERR backend unavailable")

	_, err := store.Get(context.Background())
	require.Error(t, err)
	assert.NotErrorIs(t, err, apperrors.ErrNotFound)
	assert.Contains(t, err.Error(), "redis get")
}

// ---------------------------------------------------------------------------
// Save
// ---------------------------------------------------------------------------

func TestSlotStore_Save_WithTTL(t *testing.T) {
	store, mr := setupTestRedis(t, 48*time.Hour)

	require.NoError(t, store.Save(context.Background(), []byte(`[]`)))

	val, err := mr.Get(testKey)
	require.NoError(t, err)
	assert.Equal(t, `[]`, val)
	assert.Equal(t, 48*time.Hour, mr.TTL(testKey))
}

func TestSlotStore_Save_NoTTL(t *testing.T) {
	store, mr := setupTestRedis(t, 0)

	require.NoError(t, store.Save(context.Background(), []byte(`[]`)))
	assert.Equal(t, time.Duration(0), mr.TTL(testKey))
}

func TestSlotStore_Save_Overwrites(t *testing.T) {
	store, mr := setupTestRedis(t, 0)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, []byte(`[{"id":"1"}]`)))
	require.NoError(t, store.Save(ctx, []byte(`[{"id":"2"}]`)))

	val, err := mr.Get(testKey)
	require.NoError(t, err)
	assert.Equal(t, `[{"id":"2"}]`, val)
}

func TestSlotStore_Save_ConnectionError(t *testing.T) {
	store, mr := setupTestRedis(t, 0)
	mr.SetError("ERR backend unavailable")

	err := store.Save(context.Background(), []byte(`[]`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "redis set")
}

// ---------------------------------------------------------------------------
// Delete
// ---------------------------------------------------------------------------

func TestSlotStore_Delete(t *testing.T) {
	store, mr := setupTestRedis(t, 0)
	require.NoError(t, mr.Set(testKey, `[]`))

	require.NoError(t, store.Delete(context.Background()))
	assert.False(t, mr.Exists(testKey))
}

func TestSlotStore_Delete_Absent(t *testing.T) {
	store, _ := setupTestRedis(t, 0)
	assert.NoError(t, store.Delete(context.Background()))
}
