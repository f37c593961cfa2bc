package telemetry

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitWithoutEndpointReturnsNoopProviders(t *testing.T) {
	t.Parallel()

	providers, err := Init(context.Background(), Config{})
	require.NoError(t, err)
	require.NotNil(t, providers.TracerProvider)
	require.NotNil(t, providers.MeterProvider)

	_, span := providers.TracerProvider.Tracer("test").Start(context.Background(), "span")
	assert.False(t, span.SpanContext().IsValid())
	span.End()

	assert.NoError(t, providers.Shutdown(context.Background()))
}

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("OTEL_EXPORTER_OTLP_ENDPOINT", "")
	t.Setenv("OTEL_SERVICE_NAME", "")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Empty(t, cfg.Endpoint)
	assert.Equal(t, "crh", cfg.ServiceName)
}

func TestLoadConfigReadsEndpoint(t *testing.T) {
	t.Setenv("OTEL_EXPORTER_OTLP_ENDPOINT", "http://collector:4317")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "http://collector:4317", cfg.Endpoint)
}
