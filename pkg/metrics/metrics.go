// Package metrics defines the OpenTelemetry instruments recorded by the monitor
// and wires them to a Prometheus exporter.
package metrics

import (
	"context"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel/attribute"
	otelprom "go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
)

// meterName is the instrumentation scope of every instrument in this package.
const meterName = "ctwatch"

// DefaultBuckets provides histogram buckets in seconds for single upstream requests,
// which may legitimately take up to a minute.
var DefaultBuckets = []float64{.1, .25, .5, 1, 2.5, 5, 10, 20, 30, 45, 60} //nolint: gochecknoglobals

// CycleBuckets provides histogram buckets in seconds for whole monitoring cycles,
// which include inter-domain delays and retry backoff.
var CycleBuckets = []float64{1, 10, 30, 60, 120, 300, 600, 1200, 1800, 3600, 7200} //nolint: gochecknoglobals

// Recorder records monitoring metrics. A nil *Recorder is valid and records nothing.
type Recorder struct {
	fetchAttempts metric.Int64Counter
	fetchFailures metric.Int64Counter
	fetchDuration metric.Float64Histogram
	newSubdomains metric.Int64Counter
	scanErrors    metric.Int64Counter
	persistErrors metric.Int64Counter
	cycles        metric.Int64Counter
	cycleDuration metric.Float64Histogram
}

// New creates a Recorder with instruments obtained from mp.
func New(mp metric.MeterProvider) (*Recorder, error) {
	m := mp.Meter(meterName)
	r := &Recorder{}

	var err error
	if r.fetchAttempts, err = m.Int64Counter("ctwatch.certlog.fetch.attempts",
		metric.WithDescription("Certificate log requests issued, by outcome class.")); err != nil {
		return nil, fmt.Errorf("could not create fetch attempts counter: %w", err)
	}
	if r.fetchFailures, err = m.Int64Counter("ctwatch.certlog.fetch.failures",
		metric.WithDescription("Certificate log fetches that failed after all retries.")); err != nil {
		return nil, fmt.Errorf("could not create fetch failures counter: %w", err)
	}
	if r.fetchDuration, err = m.Float64Histogram("ctwatch.certlog.fetch.duration",
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(DefaultBuckets...)); err != nil {
		return nil, fmt.Errorf("could not create fetch duration histogram: %w", err)
	}
	if r.newSubdomains, err = m.Int64Counter("ctwatch.subdomains.new",
		metric.WithDescription("Hostnames discovered for the first time.")); err != nil {
		return nil, fmt.Errorf("could not create new subdomains counter: %w", err)
	}
	if r.scanErrors, err = m.Int64Counter("ctwatch.scan.errors"); err != nil {
		return nil, fmt.Errorf("could not create scan errors counter: %w", err)
	}
	if r.persistErrors, err = m.Int64Counter("ctwatch.persist.errors"); err != nil {
		return nil, fmt.Errorf("could not create persist errors counter: %w", err)
	}
	if r.cycles, err = m.Int64Counter("ctwatch.cycles",
		metric.WithDescription("Completed monitoring cycles, by outcome.")); err != nil {
		return nil, fmt.Errorf("could not create cycles counter: %w", err)
	}
	if r.cycleDuration, err = m.Float64Histogram("ctwatch.cycle.duration",
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(CycleBuckets...)); err != nil {
		return nil, fmt.Errorf("could not create cycle duration histogram: %w", err)
	}

	return r, nil
}

// NewNoop returns a Recorder backed by a no-op meter provider.
func NewNoop() *Recorder {
	r, _ := New(noop.NewMeterProvider())

	return r
}

// NewPrometheusProvider creates a meter provider whose readings are exported to reg.
func NewPrometheusProvider(reg prometheus.Registerer) (*sdkmetric.MeterProvider, error) {
	exp, err := otelprom.New(otelprom.WithRegisterer(reg))
	if err != nil {
		return nil, fmt.Errorf("could not create otel exporter: %w", err)
	}

	return sdkmetric.NewMeterProvider(sdkmetric.WithReader(exp)), nil
}

// FetchAttempt records one certificate log request and its outcome class.
func (r *Recorder) FetchAttempt(ctx context.Context, class string, took time.Duration) {
	if r == nil {
		return
	}
	attrs := metric.WithAttributes(attribute.String("class", class))
	r.fetchAttempts.Add(ctx, 1, attrs)
	r.fetchDuration.Record(ctx, took.Seconds(), attrs)
}

// FetchFailed records a fetch that gave up.
func (r *Recorder) FetchFailed(ctx context.Context, class string) {
	if r == nil {
		return
	}
	r.fetchFailures.Add(ctx, 1, metric.WithAttributes(attribute.String("class", class)))
}

// NewSubdomains records n newly discovered hostnames for domain.
func (r *Recorder) NewSubdomains(ctx context.Context, domain string, n int) {
	if r == nil || n == 0 {
		return
	}
	r.newSubdomains.Add(ctx, int64(n), metric.WithAttributes(attribute.String("domain", domain)))
}

// ScanError records a domain that could not be scanned.
func (r *Recorder) ScanError(ctx context.Context, domain string) {
	if r == nil {
		return
	}
	r.scanErrors.Add(ctx, 1, metric.WithAttributes(attribute.String("domain", domain)))
}

// PersistError records a delta that could not be stored.
func (r *Recorder) PersistError(ctx context.Context, domain string) {
	if r == nil {
		return
	}
	r.persistErrors.Add(ctx, 1, metric.WithAttributes(attribute.String("domain", domain)))
}

// CycleCompleted records a finished cycle.
func (r *Recorder) CycleCompleted(ctx context.Context, took time.Duration, clean bool) {
	if r == nil {
		return
	}
	attrs := metric.WithAttributes(attribute.Bool("clean", clean))
	r.cycles.Add(ctx, 1, attrs)
	r.cycleDuration.Record(ctx, took.Seconds(), attrs)
}
