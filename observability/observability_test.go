package observability

import (
	"context"
	"fmt"
	"testing"
	"time"

	"go.opentelemetry.io/otel"
	otelcodes "go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric/noop"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func TestDefaultTracerConfig(t *testing.T) {
	cfg := DefaultTracerConfig("test-service")

	if cfg.ServiceName != "test-service" {
		t.Errorf("expected ServiceName 'test-service', got %s", cfg.ServiceName)
	}
	if cfg.Endpoint != "localhost:4318" {
		t.Errorf("expected Endpoint 'localhost:4318', got %s", cfg.Endpoint)
	}
	if cfg.SampleRate != 1.0 {
		t.Errorf("expected SampleRate 1.0, got %f", cfg.SampleRate)
	}
	if !cfg.Insecure {
		t.Error("expected Insecure to be true")
	}
}

func TestDefaultMeterConfig(t *testing.T) {
	cfg := DefaultMeterConfig("test-service")

	if cfg.ServiceName != "test-service" {
		t.Errorf("expected ServiceName 'test-service', got %s", cfg.ServiceName)
	}
	if cfg.Interval != 15*time.Second {
		t.Errorf("expected Interval 15s, got %v", cfg.Interval)
	}
}

func TestNewResource(t *testing.T) {
	res, err := newResource("svc", "1.2.3", "test")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	found := false
	for _, kv := range res.Attributes() {
		if string(kv.Key) == "service.name" && kv.Value.AsString() == "svc" {
			found = true
		}
	}
	if !found {
		t.Error("expected service.name attribute")
	}
}

func TestSampler(t *testing.T) {
	tests := []struct {
		rate float64
		want string
	}{
		{1.0, "AlwaysOnSampler"},
		{0, "AlwaysOffSampler"},
		{0.5, "TraceIDRatioBased{0.5}"},
	}
	for _, tc := range tests {
		t.Run(tc.want, func(t *testing.T) {
			if got := sampler(tc.rate).Description(); got != tc.want {
				t.Errorf("sampler(%v) = %s, want %s", tc.rate, got, tc.want)
			}
		})
	}
}

func TestNewStreamMetrics_Noop(t *testing.T) {
	metrics, err := NewStreamMetrics(noop.NewMeterProvider().Meter("test"))
	if err != nil {
		t.Fatalf("unexpected error creating metrics: %v", err)
	}

	ctx := context.Background()
	metrics.RecordSubscribe(ctx, "operation")
	metrics.RecordElement(ctx, "operation")
	metrics.RecordFailure(ctx, "operation", "TIMEOUT")
	metrics.RecordAwait(ctx, "operation", OutcomeCompleted, 10*time.Millisecond)
}

func TestStreamMetrics_NilIsSafe(t *testing.T) {
	var metrics *StreamMetrics
	ctx := context.Background()
	metrics.RecordSubscribe(ctx, "x")
	metrics.RecordElement(ctx, "x")
	metrics.RecordFailure(ctx, "x", "UNEXPECTED")
	metrics.RecordAwait(ctx, "x", OutcomeTimeout, time.Second)
}

func TestStreamMetrics_Records(t *testing.T) {
	reader := sdkmetric.NewManualReader()
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	defer func() { _ = mp.Shutdown(context.Background()) }()

	metrics, err := NewStreamMetrics(mp.Meter("test"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	ctx := context.Background()
	for i := 0; i < 3; i++ {
		metrics.RecordElement(ctx, "consumer")
	}
	metrics.RecordAwait(ctx, "consumer", OutcomeCompleted, 5*time.Millisecond)

	var rm metricdata.ResourceMetrics
	if err := reader.Collect(ctx, &rm); err != nil {
		t.Fatalf("collect failed: %v", err)
	}

	got := map[string]int64{}
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			if sum, ok := m.Data.(metricdata.Sum[int64]); ok {
				for _, dp := range sum.DataPoints {
					got[m.Name] += dp.Value
				}
			}
		}
	}
	if got["stream.elements"] != 3 {
		t.Errorf("expected 3 elements, got %d", got["stream.elements"])
	}
	if got["stream.await.total"] != 1 {
		t.Errorf("expected 1 await, got %d", got["stream.await.total"])
	}
}

func TestStartSpanAndEndSpan(t *testing.T) {
	exporter := tracetest.NewInMemoryExporter()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSyncer(exporter))
	defer func() { _ = tp.Shutdown(context.Background()) }()
	otel.SetTracerProvider(tp)

	_, ok := StartSpan(context.Background(), "ok-span")
	EndSpan(ok, nil)

	_, failed := StartSpan(context.Background(), "failed-span")
	EndSpan(failed, fmt.Errorf("boom"))

	spans := exporter.GetSpans()
	if len(spans) != 2 {
		t.Fatalf("expected 2 spans, got %d", len(spans))
	}
	if spans[0].Status.Code != otelcodes.Unset {
		t.Errorf("expected unset status for ok span, got %v", spans[0].Status.Code)
	}
	if spans[1].Status.Code != otelcodes.Error {
		t.Errorf("expected error status, got %v", spans[1].Status.Code)
	}
	if len(spans[1].Events) == 0 {
		t.Error("expected an exception event on the failed span")
	}
}
