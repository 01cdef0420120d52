// Package observability wires OpenTelemetry tracing and metrics into the
// blocking retrieval path.
//
// Tracing:
//
//	tp, err := observability.InitTracer(ctx, observability.DefaultTracerConfig("syncstream-demo"))
//	defer tp.Shutdown(ctx)
//
// Metrics:
//
//	mp, err := observability.InitMeter(ctx, observability.DefaultMeterConfig("syncstream-demo"))
//	defer mp.Shutdown(ctx)
//
//	metrics, err := observability.NewStreamMetrics(observability.Meter("syncstream"))
//	sub := subscriber.NewOperation[string](subscriber.WithMetrics(metrics))
//
// Without Init* calls the global providers are no-ops, so spans and
// instruments cost nothing.
package observability
