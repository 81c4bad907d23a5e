package app

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/utafrali/storefront/internal/config"
	"github.com/utafrali/storefront/pkg/logger"
)

func loadConfig(t *testing.T, env map[string]string) *config.Config {
	t.Helper()
	for k, v := range env {
		t.Setenv(k, v)
	}
	cfg, err := config.Load()
	require.NoError(t, err)
	return cfg
}

func addItem(t *testing.T, h http.Handler, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/cart/items", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestNewApp_MemorySlot(t *testing.T) {
	cfg := loadConfig(t, map[string]string{"STORAGE_DRIVER": config.StorageMemory})

	a, err := NewApp(cfg, logger.Discard())
	require.NoError(t, err)

	rec := addItem(t, a.Handler(), `{"product_id":"1","quantity":2}`)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"total_price":"35.98"`)

	req := httptest.NewRequest(http.MethodGet, "/health/ready", nil)
	rec = httptest.NewRecorder()
	a.Handler().ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)

	require.NoError(t, a.Shutdown())
}

func TestNewApp_RedisSlot(t *testing.T) {
	mr := miniredis.RunT(t)
	cfg := loadConfig(t, map[string]string{
		"STORAGE_DRIVER": config.StorageRedis,
		"REDIS_ADDR":     mr.Addr(),
		"CART_SLOT_KEY":  "storefront:test",
	})

	a, err := NewApp(cfg, logger.Discard())
	require.NoError(t, err)

	rec := addItem(t, a.Handler(), `{"product_id":"1"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	payload, err := mr.Get("storefront:test")
	require.NoError(t, err)
	assert.Contains(t, payload, `"id":"1"`)
	assert.Contains(t, payload, `"quantity":1`)

	req := httptest.NewRequest(http.MethodGet, "/health/ready", nil)
	rec = httptest.NewRecorder()
	a.Handler().ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "redis")

	require.NoError(t, a.Shutdown())
}

func TestNewApp_RedisUnreachable(t *testing.T) {
	cfg := loadConfig(t, map[string]string{
		"STORAGE_DRIVER": config.StorageRedis,
		"REDIS_ADDR":     "127.0.0.1:1",
	})

	_, err := NewApp(cfg, logger.Discard())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "connect redis")
}

func TestNewApp_MissingCatalog(t *testing.T) {
	cfg := loadConfig(t, map[string]string{"CATALOG_PATH": "/nonexistent/products.yaml"})

	_, err := NewApp(cfg, logger.Discard())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "load catalog")
}
