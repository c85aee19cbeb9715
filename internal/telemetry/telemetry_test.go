package telemetry

import (
	"context"
	"testing"

	"go.opentelemetry.io/otel/metric/noop"
)

func TestNewMetrics(t *testing.T) {
	m, err := NewMetrics(noop.NewMeterProvider().Meter("test"))
	if err != nil {
		t.Fatalf("NewMetrics failed: %v", err)
	}
	if m.Requests == nil || m.AccessDenials == nil || m.SettlementSkipped == nil {
		t.Fatal("expected all counters to be created")
	}
	m.Requests.Add(context.Background(), 1)
}

func TestDefaultAndSpan(t *testing.T) {
	if Default() == nil {
		t.Fatal("Default returned nil")
	}
	ctx, span := StartSpan(context.Background(), Tracer(), "test", AttrIntent.String("berth"))
	defer span.End()
	if ctx == nil {
		t.Fatal("expected context")
	}
}
