package instrumentation

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
)

func newTestMetrics(t *testing.T) (*Metrics, *sdkmetric.ManualReader) {
	t.Helper()
	reader := sdkmetric.NewManualReader()
	provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	t.Cleanup(func() {
		_ = provider.Shutdown(context.Background())
	})

	m, err := NewMetrics(provider.Meter("test"))
	require.NoError(t, err)
	return m, reader
}

func collectMetricNames(t *testing.T, reader *sdkmetric.ManualReader) map[string]bool {
	t.Helper()
	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(context.Background(), &rm))

	names := make(map[string]bool)
	for _, scope := range rm.ScopeMetrics {
		for _, m := range scope.Metrics {
			names[m.Name] = true
		}
	}
	return names
}

func TestMetricsRecording(t *testing.T) {
	m, reader := newTestMetrics(t)
	ctx := context.Background()

	m.RecordGoogleAPIOperation(ctx, ServiceSheets, "get_values", StatusSuccess, 120*time.Millisecond)
	m.RecordToolInvocation(ctx, "get_sheet_data", StatusSuccess, 150*time.Millisecond)
	m.RecordCredentialResolution(ctx, "service_account", OAuthResultSuccess)
	m.RecordOAuthTokenRefresh(ctx, OAuthResultExpired)

	names := collectMetricNames(t, reader)
	assert.True(t, names["google_api_operations_total"])
	assert.True(t, names["google_api_operation_duration_seconds"])
	assert.True(t, names["mcp_tool_invocations_total"])
	assert.True(t, names["mcp_tool_duration_seconds"])
	assert.True(t, names["credential_resolutions_total"])
	assert.True(t, names["oauth_token_refresh_total"])
}

func TestMetricsZeroValueIsNoOp(t *testing.T) {
	var m Metrics
	ctx := context.Background()

	// Must not panic with uninitialized instruments
	m.RecordGoogleAPIOperation(ctx, ServiceDrive, "list_files", StatusError, time.Second)
	m.RecordToolInvocation(ctx, "list_spreadsheets", StatusError, time.Second)
	m.RecordCredentialResolution(ctx, "oauth_interactive", OAuthResultFailure)
	m.RecordOAuthTokenRefresh(ctx, OAuthResultFailure)
}
