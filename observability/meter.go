package observability

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetrichttp"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"

	"github.com/kbukum/syncstream/logger"
)

// Await outcomes recorded on stream.await.total.
const (
	OutcomeCompleted   = "completed"
	OutcomeFailed      = "failed"
	OutcomeTimeout     = "timeout"
	OutcomeInterrupted = "interrupted"
)

// MeterConfig configures the OpenTelemetry meter provider.
type MeterConfig struct {
	// ServiceName is the name of the service.
	ServiceName string `mapstructure:"service_name"`
	// ServiceVersion is the version of the service.
	ServiceVersion string `mapstructure:"service_version"`
	// Environment is the deployment environment (dev, staging, prod).
	Environment string `mapstructure:"environment"`
	// Endpoint is the OTLP HTTP endpoint host:port (e.g., "localhost:4318").
	Endpoint string `mapstructure:"endpoint"`
	// Insecure allows insecure connections (for development).
	Insecure bool `mapstructure:"insecure"`
	// Interval is the metric export interval.
	Interval time.Duration `mapstructure:"interval"`
}

// DefaultMeterConfig returns sensible defaults for development.
func DefaultMeterConfig(serviceName string) MeterConfig {
	return MeterConfig{
		ServiceName:    serviceName,
		ServiceVersion: "1.0.0",
		Environment:    "development",
		Endpoint:       "localhost:4318",
		Insecure:       true,
		Interval:       15 * time.Second,
	}
}

// InitMeter initializes the OpenTelemetry meter provider.
// Returns a MeterProvider that should be shut down on application exit.
func InitMeter(ctx context.Context, config *MeterConfig) (*sdkmetric.MeterProvider, error) {
	opts := []otlpmetrichttp.Option{
		otlpmetrichttp.WithEndpoint(config.Endpoint),
	}
	if config.Insecure {
		opts = append(opts, otlpmetrichttp.WithInsecure())
	}

	exporter, err := otlpmetrichttp.New(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("creating metric exporter: %w", err)
	}

	res, err := newResource(config.ServiceName, config.ServiceVersion, config.Environment)
	if err != nil {
		return nil, fmt.Errorf("creating resource: %w", err)
	}

	readerOpts := []sdkmetric.PeriodicReaderOption{}
	if config.Interval > 0 {
		readerOpts = append(readerOpts, sdkmetric.WithInterval(config.Interval))
	}

	mp := sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(sdkmetric.NewPeriodicReader(exporter, readerOpts...)),
		sdkmetric.WithResource(res),
	)

	otel.SetMeterProvider(mp)

	logger.Info("meter initialized", logger.Fields(
		"service", config.ServiceName,
		"endpoint", config.Endpoint,
		"interval", config.Interval.String(),
	))

	return mp, nil
}

// Meter returns a named meter from the global provider.
func Meter(name string) metric.Meter {
	return otel.Meter(name)
}

// StreamMetrics holds the instruments recorded by subscribers.
// A nil *StreamMetrics is valid and records nothing.
type StreamMetrics struct {
	subscriptions metric.Int64Counter
	elements      metric.Int64Counter
	failures      metric.Int64Counter
	awaits        metric.Int64Counter
	awaitDuration metric.Float64Histogram
}

// NewStreamMetrics creates metric instruments on the given meter.
func NewStreamMetrics(meter metric.Meter) (*StreamMetrics, error) {
	subscriptions, err := meter.Int64Counter("stream.subscriptions",
		metric.WithDescription("Handshakes accepted by subscribers"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating stream.subscriptions counter: %w", err)
	}

	elements, err := meter.Int64Counter("stream.elements",
		metric.WithDescription("Elements received by subscribers"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating stream.elements counter: %w", err)
	}

	failures, err := meter.Int64Counter("stream.failures",
		metric.WithDescription("Failures delivered by publishers, by error code"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating stream.failures counter: %w", err)
	}

	awaits, err := meter.Int64Counter("stream.await.total",
		metric.WithDescription("Blocking waits by outcome"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating stream.await.total counter: %w", err)
	}

	awaitDuration, err := meter.Float64Histogram("stream.await.duration",
		metric.WithDescription("Time callers spent blocked waiting for a terminal signal"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating stream.await.duration histogram: %w", err)
	}

	return &StreamMetrics{
		subscriptions: subscriptions,
		elements:      elements,
		failures:      failures,
		awaits:        awaits,
		awaitDuration: awaitDuration,
	}, nil
}

// RecordSubscribe counts an accepted handshake.
func (m *StreamMetrics) RecordSubscribe(ctx context.Context, subscriber string) {
	if m == nil {
		return
	}
	m.subscriptions.Add(ctx, 1, metric.WithAttributes(attribute.String("subscriber", subscriber)))
}

// RecordElement counts one received element.
func (m *StreamMetrics) RecordElement(ctx context.Context, subscriber string) {
	if m == nil {
		return
	}
	m.elements.Add(ctx, 1, metric.WithAttributes(attribute.String("subscriber", subscriber)))
}

// RecordFailure counts a failure delivered by a publisher.
func (m *StreamMetrics) RecordFailure(ctx context.Context, subscriber, code string) {
	if m == nil {
		return
	}
	m.failures.Add(ctx, 1, metric.WithAttributes(
		attribute.String("subscriber", subscriber),
		attribute.String("code", code),
	))
}

// RecordAwait records one blocking wait and how it ended.
func (m *StreamMetrics) RecordAwait(ctx context.Context, subscriber, outcome string, duration time.Duration) {
	if m == nil {
		return
	}
	attrs := metric.WithAttributes(
		attribute.String("subscriber", subscriber),
		attribute.String("outcome", outcome),
	)
	m.awaits.Add(ctx, 1, attrs)
	m.awaitDuration.Record(ctx, duration.Seconds(), attrs)
}
