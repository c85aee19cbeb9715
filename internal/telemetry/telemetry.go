// Package telemetry holds the OpenTelemetry instruments of the console.
// Instruments come from the global providers, which are no-ops unless the
// binary installs an SDK.
package telemetry

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

// InstrumentationName identifies marina spans and metrics.
const InstrumentationName = "github.com/example/marina"

// Attribute keys for router spans.
var (
	AttrIntent    = attribute.Key("marina.intent")
	AttrOperation = attribute.Key("marina.operation")
	AttrDenied    = attribute.Key("marina.denied")
	AttrRemote    = attribute.Key("marina.remote")
)

// Metrics holds the console counters.
type Metrics struct {
	Requests          metric.Int64Counter
	AccessDenials     metric.Int64Counter
	SettlementSkipped metric.Int64Counter
}

// NewMetrics creates the counters from meter.
func NewMetrics(meter metric.Meter) (*Metrics, error) {
	m := &Metrics{}
	var err error

	m.Requests, err = meter.Int64Counter("marina.requests",
		metric.WithDescription("Console requests processed"),
	)
	if err != nil {
		return nil, err
	}

	m.AccessDenials, err = meter.Int64Counter("marina.access_denials",
		metric.WithDescription("Requests denied by the access policy or a legal hold"),
	)
	if err != nil {
		return nil, err
	}

	m.SettlementSkipped, err = meter.Int64Counter("marina.settlement_skipped",
		metric.WithDescription("Bank transactions that could not be matched to a vessel"),
	)
	if err != nil {
		return nil, err
	}

	return m, nil
}

// Default returns counters on the global meter. Counter creation on the
// no-op meter cannot fail, so errors fall back to no-op instruments.
func Default() *Metrics {
	m, err := NewMetrics(otel.Meter(InstrumentationName))
	if err != nil {
		m, _ = NewMetrics(noopMeter())
	}
	return m
}

// Tracer returns the marina tracer from the global provider.
func Tracer() trace.Tracer {
	return otel.Tracer(InstrumentationName)
}

// StartSpan starts an internal span with attributes.
func StartSpan(ctx context.Context, tracer trace.Tracer, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	return tracer.Start(ctx, name,
		trace.WithAttributes(attrs...),
		trace.WithSpanKind(trace.SpanKindInternal),
	)
}
