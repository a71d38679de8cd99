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

	"github.com/kbukum/streamkit/logger"
	"github.com/kbukum/streamkit/version"
)

// MeterConfig configures the OpenTelemetry meter provider.
type MeterConfig struct {
	// ServiceName is the name of the service.
	ServiceName string
	// ServiceVersion is the version of the service.
	ServiceVersion string
	// Environment is the deployment environment (dev, staging, prod).
	Environment string
	// Endpoint is the OTLP HTTP endpoint host:port (e.g., "localhost:4318").
	Endpoint string
	// Insecure allows insecure connections (for development).
	Insecure bool
	// Interval is the metric export interval.
	Interval time.Duration
}

// DefaultMeterConfig returns sensible defaults for development.
func DefaultMeterConfig(serviceName string) MeterConfig {
	return MeterConfig{
		ServiceName:    serviceName,
		ServiceVersion: version.Short(),
		Environment:    "development",
		Endpoint:       "localhost:4318",
		Insecure:       true,
		Interval:       15 * time.Second,
	}
}

// InitMeter initializes the OpenTelemetry meter provider.
// Returns a MeterProvider that should be shut down on application exit.
func InitMeter(ctx context.Context, config MeterConfig) (*sdkmetric.MeterProvider, error) {
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

// Metrics holds the metric instruments for one pagination pipeline.
type Metrics struct {
	fetchTotal    metric.Int64Counter
	fetchDuration metric.Float64Histogram
	fetchSwitched metric.Int64Counter
	epochTotal    metric.Int64Counter
	bufferLen     metric.Int64Gauge
}

// NewMetrics creates metric instruments on the given meter.
func NewMetrics(meter metric.Meter) (*Metrics, error) {
	fetchTotal, err := meter.Int64Counter("paginate.fetch.total",
		metric.WithDescription("Total page fetches by outcome"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating paginate.fetch.total counter: %w", err)
	}

	fetchDuration, err := meter.Float64Histogram("paginate.fetch.duration",
		metric.WithDescription("Duration of page fetches in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating paginate.fetch.duration histogram: %w", err)
	}

	fetchSwitched, err := meter.Int64Counter("paginate.fetch.switched",
		metric.WithDescription("In-flight fetches superseded by a newer request"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating paginate.fetch.switched counter: %w", err)
	}

	epochTotal, err := meter.Int64Counter("paginate.epoch.total",
		metric.WithDescription("Buffer re-initializations (reset epochs)"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating paginate.epoch.total counter: %w", err)
	}

	bufferLen, err := meter.Int64Gauge("paginate.buffer.length",
		metric.WithDescription("Current accumulated buffer length"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating paginate.buffer.length gauge: %w", err)
	}

	return &Metrics{
		fetchTotal:    fetchTotal,
		fetchDuration: fetchDuration,
		fetchSwitched: fetchSwitched,
		epochTotal:    epochTotal,
		bufferLen:     bufferLen,
	}, nil
}

// RecordFetch records a settled page fetch. A nil receiver is a no-op.
func (m *Metrics) RecordFetch(ctx context.Context, page int, duration time.Duration, err error) {
	if m == nil {
		return
	}
	status := "ok"
	if err != nil {
		status = "error"
	}
	m.fetchTotal.Add(ctx, 1, metric.WithAttributes(
		attribute.Int("page", page),
		attribute.String("status", status),
	))
	m.fetchDuration.Record(ctx, duration.Seconds(), metric.WithAttributes(
		attribute.String("status", status),
	))
}

// RecordSwitch records an in-flight fetch superseded by a newer request.
func (m *Metrics) RecordSwitch(ctx context.Context) {
	if m == nil {
		return
	}
	m.fetchSwitched.Add(ctx, 1)
}

// RecordEpoch records a buffer re-initialization.
func (m *Metrics) RecordEpoch(ctx context.Context) {
	if m == nil {
		return
	}
	m.epochTotal.Add(ctx, 1)
}

// RecordBufferLen records the current buffer length.
func (m *Metrics) RecordBufferLen(ctx context.Context, length int) {
	if m == nil {
		return
	}
	m.bufferLen.Record(ctx, int64(length))
}
