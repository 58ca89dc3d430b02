package otel

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigFromEnv_Defaults(t *testing.T) {
	envVars := []string{
		"OTEL_SERVICE_NAME",
		"OTEL_ENABLED",
		"OTEL_EXPORTER_OTLP_ENDPOINT",
		"OTEL_TRACE_SAMPLE_RATIO",
	}
	for _, key := range envVars {
		_ = os.Unsetenv(key)
	}

	cfg := ConfigFromEnv()

	assert.Equal(t, "qa-orchestrator", cfg.ServiceName)
	assert.False(t, cfg.Enabled)
	assert.Equal(t, "http://localhost:4318", cfg.OTLPEndpoint)
	assert.Equal(t, 0.1, cfg.SampleRatio)
}

func TestConfigFromEnv_Overrides(t *testing.T) {
	t.Setenv("OTEL_SERVICE_NAME", "qa-staging")
	t.Setenv("OTEL_ENABLED", "true")
	t.Setenv("OTEL_EXPORTER_OTLP_ENDPOINT", "http://collector:4318")
	t.Setenv("OTEL_TRACE_SAMPLE_RATIO", "0.5")

	cfg := ConfigFromEnv()

	assert.Equal(t, "qa-staging", cfg.ServiceName)
	assert.True(t, cfg.Enabled)
	assert.Equal(t, "http://collector:4318", cfg.OTLPEndpoint)
	assert.Equal(t, 0.5, cfg.SampleRatio)
}

func TestConfigFromEnv_InvalidSampleRatioFallsBack(t *testing.T) {
	t.Setenv("OTEL_TRACE_SAMPLE_RATIO", "2.0")

	cfg := ConfigFromEnv()

	assert.Equal(t, 0.1, cfg.SampleRatio)
}

func TestInitProvider_Disabled(t *testing.T) {
	cfg := Config{
		ServiceName:  "test",
		Enabled:      false,
		OTLPEndpoint: "http://localhost:4318",
	}

	shutdown, err := InitProvider(context.Background(), cfg)
	require.NoError(t, err)

	assert.NoError(t, shutdown(context.Background()))
}
