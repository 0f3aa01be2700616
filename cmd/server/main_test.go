package main

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iho/costledger/internal/infrastructure/config"
)

func memoryConfig() *config.Config {
	return &config.Config{
		StorageDriver:       config.StorageMemory,
		HTTPPort:            "0",
		HTTPShutdownTimeout: time.Second,
		IdempotencyTTL:      time.Hour,
		BalanceCacheTTL:     time.Minute,
		RetryMaxAttempts:    3,
		OutboxInterval:      time.Hour,
		OutboxBatchSize:     10,
	}
}

func newTestApp(t *testing.T, cfg *config.Config) *app {
	t.Helper()

	reg := prometheus.NewRegistry()
	a, err := newApp(context.Background(), cfg, zerolog.Nop(), reg, reg)
	require.NoError(t, err)
	t.Cleanup(a.Close)
	return a
}

func call(t *testing.T, h http.Handler, method, path string, body any, headers ...string) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()

	var out map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}

func TestNewApp_MemoryStorage(t *testing.T) {
	a := newTestApp(t, memoryConfig())

	assert.Nil(t, a.limiter)
	assert.NotNil(t, a.publisher)

	rec := call(t, a.router, http.MethodGet, "/ready", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ready", decodeBody(t, rec)["status"])

	rec = call(t, a.router, http.MethodPost, "/api/v1/accounts", map[string]string{"name": "bank", "type": "bank"})
	require.Equal(t, http.StatusCreated, rec.Code)
	id := decodeBody(t, rec)["id"].(string)

	rec = call(t, a.router, http.MethodPost, "/api/v1/transactions", map[string]string{
		"type":                   "deposit",
		"destination_account_id": id,
		"total_amount":           "250",
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = call(t, a.router, http.MethodGet, "/api/v1/accounts/"+id+"/balance", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "250", decodeBody(t, rec)["balance"])

	rec = call(t, a.router, http.MethodGet, "/metrics", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "costledger_transactions_total")
}

func TestNewApp_WithRedis(t *testing.T) {
	mr := miniredis.RunT(t)
	cfg := memoryConfig()
	cfg.RedisURL = "redis://" + mr.Addr()
	cfg.RateLimitRPS = 100
	cfg.RateLimitBurst = 100

	a := newTestApp(t, cfg)
	require.NotNil(t, a.limiter)

	rec := call(t, a.router, http.MethodGet, "/ready", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", decodeBody(t, rec)["redis"])

	body := map[string]string{"name": "till", "type": "cash"}
	first := call(t, a.router, http.MethodPost, "/api/v1/accounts", body, "Idempotency-Key", "acc-1")
	require.Equal(t, http.StatusCreated, first.Code)

	replay := call(t, a.router, http.MethodPost, "/api/v1/accounts", body, "Idempotency-Key", "acc-1")
	require.Equal(t, http.StatusCreated, replay.Code)
	assert.Equal(t, "true", replay.Header().Get("X-Idempotency-Replay"))
	assert.Equal(t, decodeBody(t, first)["id"], decodeBody(t, replay)["id"])

	mr.Close()
	rec = call(t, a.router, http.MethodGet, "/ready", nil)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestNewApp_RedisUnavailable(t *testing.T) {
	cfg := memoryConfig()
	cfg.RedisURL = "redis://127.0.0.1:1"

	_, err := newApp(context.Background(), cfg, zerolog.Nop(), prometheus.NewRegistry(), prometheus.NewRegistry())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "redis")
}

func TestOpenStorage_UnknownDriver(t *testing.T) {
	cfg := memoryConfig()
	cfg.StorageDriver = "sqlite"

	_, err := openStorage(context.Background(), cfg, zerolog.Nop())
	assert.EqualError(t, err, `unknown storage driver "sqlite"`)
}

func TestRun_StopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- run(ctx, memoryConfig(), zerolog.Nop())
	}()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}
}
