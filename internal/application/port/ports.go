// Package port contains the driven ports of the application layer.
// The calculator service depends on these interfaces; adapters in
// infrastructure and cmd supply zap logging and OpenTelemetry metrics
// and tracing.
package port

import (
	"context"
	"time"
)

// Logger defines the interface for structured logging.
//
// Example usage:
//
//	log.Info("calculation recorded", "kind", calc.Kind, "outcome", calc.Outcome)
type Logger interface {
	// Debug logs a debug message with optional key-value pairs.
	Debug(msg string, keysAndValues ...any)

	// Info logs an info message with optional key-value pairs.
	Info(msg string, keysAndValues ...any)

	// Warn logs a warning message with optional key-value pairs.
	Warn(msg string, keysAndValues ...any)

	// Error logs an error message with optional key-value pairs.
	Error(msg string, keysAndValues ...any)

	// With returns a logger with additional context fields.
	With(keysAndValues ...any) Logger

	// WithContext returns a logger with context information (e.g., request ID).
	WithContext(ctx context.Context) Logger
}

// Metrics defines the interface for recording application metrics.
type Metrics interface {
	// Counter increments a counter metric.
	Counter(name string, value float64, tags map[string]string)

	// Gauge sets a gauge metric value.
	Gauge(name string, value float64, tags map[string]string)

	// Histogram records a value in a histogram.
	Histogram(name string, value float64, tags map[string]string)

	// Timing records a timing/duration metric.
	Timing(name string, duration time.Duration, tags map[string]string)
}

// Tracer defines the interface for distributed tracing.
type Tracer interface {
	// StartSpan starts a new span for tracing.
	//
	// Parameters:
	//   - ctx: the context for parent span
	//   - operationName: the name of the operation being traced
	//
	// Returns:
	//   - context.Context: the new context containing the span
	//   - Span: the created span (must be ended)
	StartSpan(ctx context.Context, operationName string) (context.Context, Span)
}

// Span represents a single operation in a trace.
type Span interface {
	// End ends the span.
	End()

	// SetAttribute sets an attribute on the span.
	SetAttribute(key string, value any)

	// SetError marks the span with an error.
	SetError(err error)

	// AddEvent adds an event to the span.
	AddEvent(name string, attributes map[string]any)
}

// NopLogger discards everything.
type NopLogger struct{}

func (NopLogger) Debug(string, ...any)                 {}
func (NopLogger) Info(string, ...any)                  {}
func (NopLogger) Warn(string, ...any)                  {}
func (NopLogger) Error(string, ...any)                 {}
func (n NopLogger) With(...any) Logger                 { return n }
func (n NopLogger) WithContext(context.Context) Logger { return n }

// NopMetrics discards every measurement.
type NopMetrics struct{}

func (NopMetrics) Counter(string, float64, map[string]string)      {}
func (NopMetrics) Gauge(string, float64, map[string]string)        {}
func (NopMetrics) Histogram(string, float64, map[string]string)    {}
func (NopMetrics) Timing(string, time.Duration, map[string]string) {}

// NopTracer produces spans that record nothing.
type NopTracer struct{}

func (NopTracer) StartSpan(ctx context.Context, _ string) (context.Context, Span) {
	return ctx, nopSpan{}
}

type nopSpan struct{}

func (nopSpan) End()                            {}
func (nopSpan) SetAttribute(string, any)        {}
func (nopSpan) SetError(error)                  {}
func (nopSpan) AddEvent(string, map[string]any) {}
