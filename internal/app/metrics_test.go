package app

import (
	"context"
	"io"
	"net/http"
	"sync/atomic"
	"testing"

	"github.com/dshills/eventgate/internal/metrics"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func get(t *testing.T, url string) (int, string) {
	t.Helper()
	resp, err := http.Get(url) //nolint:noctx // test helper
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, string(body)
}

func TestMetricsServer(t *testing.T) {
	reg := prometheus.NewRegistry()
	rec := metrics.NewRecorder("eventgate_test")
	rec.Register(reg)
	rec.RecordFire("saved")

	var ready atomic.Bool
	srv := NewMetricsServer("127.0.0.1:0", reg, ready.Load, zerolog.Nop())
	assert.Empty(t, srv.Addr())

	errCh, err := srv.Start()
	require.NoError(t, err)
	base := "http://" + srv.Addr()

	_, err = srv.Start()
	assert.Error(t, err)

	code, body := get(t, base+"/metrics")
	assert.Equal(t, http.StatusOK, code)
	assert.Contains(t, body, `eventgate_test_channel_fires_total{channel="saved"} 1`)
	assert.Contains(t, body, "go_goroutines")

	code, _ = get(t, base+"/healthz/readiness")
	assert.Equal(t, http.StatusServiceUnavailable, code)
	ready.Store(true)
	code, body = get(t, base+"/healthz/readiness")
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "ok\n", body)

	require.NoError(t, srv.Stop(context.Background()))
	require.NoError(t, srv.Stop(context.Background()))
	_, open := <-errCh
	assert.False(t, open)
}
