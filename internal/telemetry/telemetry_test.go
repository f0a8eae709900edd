package telemetry

import (
	"context"
	"testing"
	"time"

	"bookstore/internal/config"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func restoreGlobals(t *testing.T) {
	prevTracer, prevMeter := otel.GetTracerProvider(), otel.GetMeterProvider()
	t.Cleanup(func() {
		otel.SetTracerProvider(prevTracer)
		otel.SetMeterProvider(prevMeter)
	})
}

func TestSetupDisabled(t *testing.T) {
	shutdown, err := Setup(context.Background(), config.TelemetryConfig{ServiceName: "bookstore"}, zerolog.Nop())
	require.NoError(t, err)
	assert.NoError(t, shutdown(context.Background()))
}

func TestSetupInstallsProviders(t *testing.T) {
	restoreGlobals(t)

	cfg := config.TelemetryConfig{ServiceName: "bookstore", OTLPEndpoint: "127.0.0.1:1", Insecure: true}
	shutdown, err := Setup(context.Background(), cfg, zerolog.Nop())
	require.NoError(t, err)
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
		defer cancel()
		shutdown(ctx)
	})

	assert.IsType(t, &sdktrace.TracerProvider{}, otel.GetTracerProvider())
	assert.IsType(t, &sdkmetric.MeterProvider{}, otel.GetMeterProvider())
}

func TestInstallExportsSpans(t *testing.T) {
	restoreGlobals(t)

	exporter := tracetest.NewInMemoryExporter()
	p := install(sdktrace.WithSyncer(exporter), sdkmetric.NewManualReader(), "bookstore-test")
	t.Cleanup(func() { p.Shutdown(context.Background()) })

	_, span := otel.Tracer("bookstore/test").Start(context.Background(), "orders.place")
	span.End()
	require.NoError(t, p.Tracer.ForceFlush(context.Background()))

	spans := exporter.GetSpans()
	require.Len(t, spans, 1)
	assert.Equal(t, "orders.place", spans[0].Name)
	assert.Contains(t, spans[0].Resource.Attributes(), attribute.String("service.name", "bookstore-test"))
}

func TestInstallRecordsMetrics(t *testing.T) {
	restoreGlobals(t)

	reader := sdkmetric.NewManualReader()
	p := install(sdktrace.WithSyncer(tracetest.NewInMemoryExporter()), reader, "bookstore-test")
	t.Cleanup(func() { p.Shutdown(context.Background()) })

	counter, err := otel.Meter("bookstore/test").Int64Counter("bookstore.orders.placed")
	require.NoError(t, err)
	counter.Add(context.Background(), 2)

	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(context.Background(), &rm))
	require.Len(t, rm.ScopeMetrics, 1)
	require.Len(t, rm.ScopeMetrics[0].Metrics, 1)

	sum, ok := rm.ScopeMetrics[0].Metrics[0].Data.(metricdata.Sum[int64])
	require.True(t, ok)
	require.Len(t, sum.DataPoints, 1)
	assert.Equal(t, int64(2), sum.DataPoints[0].Value)
	assert.Contains(t, rm.Resource.Attributes(), attribute.String("service.name", "bookstore-test"))
}
