package server

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avollmer/gsheets-mcp/internal/instrumentation"
)

func newTestProvider(t *testing.T, enabled bool) *instrumentation.Provider {
	t.Helper()
	ctx := context.Background()
	provider, err := instrumentation.NewProvider(ctx, instrumentation.Config{
		ServiceName:     "test-service",
		ServiceVersion:  "1.0.0",
		Enabled:         enabled,
		MetricsExporter: "prometheus",
		TracingExporter: "none",
	})
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = provider.Shutdown(ctx)
	})
	return provider
}

func TestNewMetricsServer(t *testing.T) {
	t.Run("valid config", func(t *testing.T) {
		srv, err := NewMetricsServer(MetricsServerConfig{
			Addr:                    ":9090",
			InstrumentationProvider: newTestProvider(t, true),
		})
		require.NoError(t, err)
		assert.Equal(t, ":9090", srv.Addr())
	})

	t.Run("empty addr uses default", func(t *testing.T) {
		srv, err := NewMetricsServer(MetricsServerConfig{
			InstrumentationProvider: newTestProvider(t, true),
		})
		require.NoError(t, err)
		assert.Equal(t, DefaultMetricsAddr, srv.Addr())
	})

	t.Run("nil provider", func(t *testing.T) {
		_, err := NewMetricsServer(MetricsServerConfig{Addr: ":9090"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "instrumentation provider is required")
	})

	t.Run("disabled provider", func(t *testing.T) {
		_, err := NewMetricsServer(MetricsServerConfig{
			Addr:                    ":9090",
			InstrumentationProvider: newTestProvider(t, false),
		})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "not enabled")
	})
}

func TestMetricsServer_StartWithReadySignal(t *testing.T) {
	srv, err := NewMetricsServer(MetricsServerConfig{
		Addr:                    "localhost:0",
		InstrumentationProvider: newTestProvider(t, true),
	})
	require.NoError(t, err)

	ready := make(chan struct{})
	serveErr := make(chan error, 1)
	go func() {
		serveErr <- srv.StartWithReadySignal(ready)
	}()

	select {
	case <-ready:
	case err := <-serveErr:
		t.Fatalf("server failed to start: %v", err)
	case <-time.After(5 * time.Second):
		t.Fatal("metrics server startup timed out")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, srv.Shutdown(ctx))

	assert.ErrorIs(t, <-serveErr, http.ErrServerClosed)
}

func TestMetricsServer_ShutdownWithoutStart(t *testing.T) {
	srv, err := NewMetricsServer(MetricsServerConfig{
		Addr:                    ":9090",
		InstrumentationProvider: newTestProvider(t, true),
	})
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	assert.NoError(t, srv.Shutdown(ctx))
}
