package telemetry

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/hapkiduki/loadplan-go/internal/application/port"
)

// Tracer starts OpenTelemetry spans behind port.Tracer.
type Tracer struct {
	tracer trace.Tracer
}

// NewTracer wraps t, or the global tracer when t is nil.
func NewTracer(t trace.Tracer) *Tracer {
	if t == nil {
		t = otel.Tracer(instrumentationName)
	}
	return &Tracer{tracer: t}
}

// StartSpan implements port.Tracer.
func (t *Tracer) StartSpan(ctx context.Context, operationName string) (context.Context, port.Span) {
	ctx, s := t.tracer.Start(ctx, operationName)
	return ctx, &span{s: s}
}

type span struct {
	s trace.Span
}

func (s *span) End() { s.s.End() }

func (s *span) SetAttribute(key string, value any) {
	s.s.SetAttributes(toAttribute(key, value))
}

func (s *span) SetError(err error) {
	if err == nil {
		return
	}
	s.s.RecordError(err)
	s.s.SetStatus(codes.Error, err.Error())
}

func (s *span) AddEvent(name string, attributes map[string]any) {
	kvs := make([]attribute.KeyValue, 0, len(attributes))
	for k, v := range attributes {
		kvs = append(kvs, toAttribute(k, v))
	}
	s.s.AddEvent(name, trace.WithAttributes(kvs...))
}

func toAttribute(key string, value any) attribute.KeyValue {
	switch v := value.(type) {
	case string:
		return attribute.String(key, v)
	case bool:
		return attribute.Bool(key, v)
	case int:
		return attribute.Int(key, v)
	case int64:
		return attribute.Int64(key, v)
	case float64:
		return attribute.Float64(key, v)
	case fmt.Stringer:
		return attribute.String(key, v.String())
	default:
		return attribute.String(key, fmt.Sprint(v))
	}
}

var _ port.Tracer = (*Tracer)(nil)
