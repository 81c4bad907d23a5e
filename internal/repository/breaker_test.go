package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/sony/gobreaker/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/utafrali/storefront/pkg/errors"
	"github.com/utafrali/storefront/pkg/logger"
)

type fakeSlot struct {
	data  []byte
	err   error
	calls int
}

func (f *fakeSlot) Get(context.Context) ([]byte, error) {
	f.calls++
	return f.data, f.err
}

func (f *fakeSlot) Save(_ context.Context, data []byte) error {
	f.calls++
	if f.err == nil {
		f.data = data
	}
	return f.err
}

func (f *fakeSlot) Delete(context.Context) error {
	f.calls++
	return f.err
}

func testBreakerConfig() BreakerConfig {
	cfg := DefaultBreakerConfig("test-slot")
	cfg.MinRequests = 2
	cfg.Timeout = time.Hour
	return cfg
}

func TestBreakerSlotStore_PassesThrough(t *testing.T) {
	inner := &fakeSlot{}
	b := NewBreakerSlotStore(inner, testBreakerConfig(), nil, logger.Discard())
	ctx := context.Background()

	require.NoError(t, b.Save(ctx, []byte(`[]`)))
	got, err := b.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, `[]`, string(got))
	require.NoError(t, b.Delete(ctx))
	assert.Equal(t, 3, inner.calls)
	assert.Equal(t, gobreaker.StateClosed, b.State())
}

func TestBreakerSlotStore_NotFoundDoesNotTrip(t *testing.T) {
	inner := &fakeSlot{err: apperrors.NotFound("cart slot", "k")}
	b := NewBreakerSlotStore(inner, testBreakerConfig(), nil, logger.Discard())

	for i := 0; i < 5; i++ {
		_, err := b.Get(context.Background())
		assert.ErrorIs(t, err, apperrors.ErrNotFound)
	}
	assert.Equal(t, gobreaker.StateClosed, b.State())
}

func TestBreakerSlotStore_OpensAfterFailures(t *testing.T) {
	inner := &fakeSlot{err: errors.New("backend down")}
	reg := prometheus.NewRegistry()
	metrics := NewBreakerMetrics(reg)
	b := NewBreakerSlotStore(inner, testBreakerConfig(), metrics, logger.Discard())
	ctx := context.Background()

	assert.Equal(t, float64(0), testutil.ToFloat64(metrics.state.WithLabelValues("test-slot")))

	for i := 0; i < 2; i++ {
		assert.Error(t, b.Save(ctx, []byte(`[]`)))
	}
	assert.Equal(t, gobreaker.StateOpen, b.State())
	assert.Equal(t, float64(2), testutil.ToFloat64(metrics.state.WithLabelValues("test-slot")))

	callsBefore := inner.calls
	_, err := b.Get(ctx)
	assert.ErrorIs(t, err, ErrCircuitOpen)
	assert.Contains(t, err.Error(), "slot breaker test-slot")
	assert.Equal(t, callsBefore, inner.calls, "open breaker must not reach the slot")
}

func TestStateToFloat(t *testing.T) {
	assert.Equal(t, float64(0), stateToFloat(gobreaker.StateClosed))
	assert.Equal(t, float64(1), stateToFloat(gobreaker.StateHalfOpen))
	assert.Equal(t, float64(2), stateToFloat(gobreaker.StateOpen))
	assert.Equal(t, float64(-1), stateToFloat(gobreaker.State(99)))
}
