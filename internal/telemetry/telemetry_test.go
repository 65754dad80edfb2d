package telemetry

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
)

func TestSetupWithoutEndpointKeepsNoopProvider(t *testing.T) {
	before := otel.GetTracerProvider()

	shutdown, err := Setup(context.Background(), "wanderly-api", "  ")
	require.NoError(t, err)
	require.NotNil(t, shutdown)
	require.NoError(t, shutdown(context.Background()))
	require.Equal(t, before, otel.GetTracerProvider())
}

func TestSetupInstallsProvider(t *testing.T) {
	before := otel.GetTracerProvider()
	t.Cleanup(func() { otel.SetTracerProvider(before) })

	shutdown, err := Setup(context.Background(), "wanderly-api", "http://127.0.0.1:4318/v1/traces")
	require.NoError(t, err)
	require.NotEqual(t, before, otel.GetTracerProvider())
	require.NoError(t, shutdown(context.Background()))
}
