package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/utafrali/storefront/pkg/errors"
)

func TestSlotStore_EmptyIsNotFound(t *testing.T) {
	s := NewSlotStore("k")
	_, err := s.Get(context.Background())
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestSlotStore_SaveGetDelete(t *testing.T) {
	ctx := context.Background()
	s := NewSlotStore("k")

	payload := []byte(`[{"id":"1"}]`)
	require.NoError(t, s.Save(ctx, payload))

	got, err := s.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, payload, got)

	// Neither the caller's buffer nor the returned one alias the stored bytes.
	payload[0] = 'x'
	got[1] = 'y'
	again, err := s.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, `[{"id":"1"}]`, string(again))

	require.NoError(t, s.Delete(ctx))
	_, err = s.Get(ctx)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestSlotStore_SaveEmptyPayloadIsPresent(t *testing.T) {
	ctx := context.Background()
	s := NewSlotStore("k")

	require.NoError(t, s.Save(ctx, []byte{}))
	got, err := s.Get(ctx)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestSlotStore_DeleteAbsent(t *testing.T) {
	assert.NoError(t, NewSlotStore("k").Delete(context.Background()))
}
