package chameleon

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const meterName = "github.com/muzin/chameleon"

var derivationBuckets = []float64{0.00001, 0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05}

type metrics struct {
	derivations metric.Int64Counter
	cacheHits   metric.Int64Counter
	transforms  metric.Int64Counter
	duration    metric.Float64Histogram
}

func newMetrics(meter metric.Meter) (*metrics, error) {
	if meter == nil {
		meter = otel.GetMeterProvider().Meter(meterName)
	}

	var (
		m   metrics
		err error
	)

	m.derivations, err = meter.Int64Counter(
		"chameleon_derivations_total",
		metric.WithDescription("Type pairs derived"),
		metric.WithUnit("1"),
	)
	if err != nil {
		return nil, err
	}

	m.cacheHits, err = meter.Int64Counter(
		"chameleon_cache_hits_total",
		metric.WithDescription("Adapt calls and transforms answered from the cache"),
		metric.WithUnit("1"),
	)
	if err != nil {
		return nil, err
	}

	m.transforms, err = meter.Int64Counter(
		"chameleon_transforms_total",
		metric.WithDescription("Values transformed"),
		metric.WithUnit("1"),
	)
	if err != nil {
		return nil, err
	}

	m.duration, err = meter.Float64Histogram(
		"chameleon_derivation_duration_seconds",
		metric.WithDescription("Time spent deriving both directions of a type pair"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(derivationBuckets...),
	)
	if err != nil {
		return nil, err
	}

	return &m, nil
}

func (m *metrics) recordDerivation(pair string, d time.Duration, err error) {
	if m == nil {
		return
	}

	outcome := "success"
	if err != nil {
		outcome = "error"
	}

	attrs := metric.WithAttributes(attribute.String("pair", pair), attribute.String("outcome", outcome))
	m.derivations.Add(context.Background(), 1, attrs)
	m.duration.Record(context.Background(), d.Seconds(), attrs)
}

func (m *metrics) recordHit() {
	if m == nil {
		return
	}

	m.cacheHits.Add(context.Background(), 1)
}

func (m *metrics) recordTransform(strategy string) {
	if m == nil {
		return
	}

	m.transforms.Add(context.Background(), 1, metric.WithAttributes(attribute.String("strategy", strategy)))
}
