// Package observability provides OpenTelemetry tracing and metrics for
// streamkit pagination.
//
// Tracing:
//
//	tp, err := observability.InitTracer(ctx, observability.DefaultTracerConfig("my-service"))
//	defer tp.Shutdown(ctx)
//
// Metrics:
//
//	mp, err := observability.InitMeter(ctx, observability.DefaultMeterConfig("my-service"))
//	defer mp.Shutdown(ctx)
//
//	metrics, err := observability.NewMetrics(observability.Meter("my-service"))
//	pager := paginate.NewPager(fetch, paginate.WithMetrics(metrics))
//
// A nil *Metrics is safe everywhere; recording on it is a no-op, so library
// code never needs to branch on whether telemetry is configured.
package observability
