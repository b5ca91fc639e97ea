// Package telemetry adapts OpenTelemetry to the application's Metrics and
// Tracer ports. Instruments are created lazily and cached by name.
package telemetry

import (
	"context"
	"sort"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/hapkiduki/loadplan-go/internal/application/port"
)

const instrumentationName = "github.com/hapkiduki/loadplan-go"

// Metrics records port.Metrics calls on an OpenTelemetry meter.
type Metrics struct {
	meter metric.Meter

	mu         sync.Mutex
	counters   map[string]metric.Float64Counter
	gauges     map[string]metric.Float64Gauge
	histograms map[string]metric.Float64Histogram
	onError    func(name string, err error)
}

// NewMetrics creates an adapter on the given meter. A nil meter uses the
// global provider, which is a no-op until one is installed.
func NewMetrics(meter metric.Meter) *Metrics {
	if meter == nil {
		meter = otel.Meter(instrumentationName)
	}
	return &Metrics{
		meter:      meter,
		counters:   make(map[string]metric.Float64Counter),
		gauges:     make(map[string]metric.Float64Gauge),
		histograms: make(map[string]metric.Float64Histogram),
		onError:    func(string, error) {},
	}
}

// OnError registers a callback for instrument creation failures.
func (m *Metrics) OnError(fn func(name string, err error)) {
	if fn != nil {
		m.onError = fn
	}
}

// Counter implements port.Metrics.
func (m *Metrics) Counter(name string, value float64, tags map[string]string) {
	c, ok := m.counter(name)
	if !ok {
		return
	}
	c.Add(context.Background(), value, metric.WithAttributes(attributes(tags)...))
}

// Gauge implements port.Metrics.
func (m *Metrics) Gauge(name string, value float64, tags map[string]string) {
	g, ok := m.gauge(name)
	if !ok {
		return
	}
	g.Record(context.Background(), value, metric.WithAttributes(attributes(tags)...))
}

// Histogram implements port.Metrics.
func (m *Metrics) Histogram(name string, value float64, tags map[string]string) {
	h, ok := m.histogram(name, "")
	if !ok {
		return
	}
	h.Record(context.Background(), value, metric.WithAttributes(attributes(tags)...))
}

// Timing implements port.Metrics. Durations are recorded in seconds.
func (m *Metrics) Timing(name string, duration time.Duration, tags map[string]string) {
	h, ok := m.histogram(name, "s")
	if !ok {
		return
	}
	h.Record(context.Background(), duration.Seconds(), metric.WithAttributes(attributes(tags)...))
}

func (m *Metrics) counter(name string) (metric.Float64Counter, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if c, ok := m.counters[name]; ok {
		return c, true
	}
	c, err := m.meter.Float64Counter(name)
	if err != nil {
		m.onError(name, err)
		return nil, false
	}
	m.counters[name] = c
	return c, true
}

func (m *Metrics) gauge(name string) (metric.Float64Gauge, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if g, ok := m.gauges[name]; ok {
		return g, true
	}
	g, err := m.meter.Float64Gauge(name)
	if err != nil {
		m.onError(name, err)
		return nil, false
	}
	m.gauges[name] = g
	return g, true
}

func (m *Metrics) histogram(name, unit string) (metric.Float64Histogram, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if h, ok := m.histograms[name]; ok {
		return h, true
	}
	var opts []metric.Float64HistogramOption
	if unit != "" {
		opts = append(opts, metric.WithUnit(unit))
	}
	h, err := m.meter.Float64Histogram(name, opts...)
	if err != nil {
		m.onError(name, err)
		return nil, false
	}
	m.histograms[name] = h
	return h, true
}

// attributes converts tags in key order so identical tag sets produce
// identical attribute sets.
func attributes(tags map[string]string) []attribute.KeyValue {
	if len(tags) == 0 {
		return nil
	}
	keys := make([]string, 0, len(tags))
	for k := range tags {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := make([]attribute.KeyValue, 0, len(keys))
	for _, k := range keys {
		out = append(out, attribute.String(k, tags[k]))
	}
	return out
}

var _ port.Metrics = (*Metrics)(nil)
