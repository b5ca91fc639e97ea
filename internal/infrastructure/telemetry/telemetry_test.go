package telemetry

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	metricnoop "go.opentelemetry.io/otel/metric/noop"
	"go.opentelemetry.io/otel/trace"
	tracenoop "go.opentelemetry.io/otel/trace/noop"
)

type recorded struct {
	name  string
	value float64
	attrs attribute.Set
}

type recordingMeter struct {
	metricnoop.Meter
	mu        sync.Mutex
	created   map[string]int
	records   []recorded
	failNames map[string]bool
}

func newRecordingMeter() *recordingMeter {
	return &recordingMeter{created: map[string]int{}, failNames: map[string]bool{}}
}

func (m *recordingMeter) add(name string, v float64, attrs attribute.Set) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.records = append(m.records, recorded{name: name, value: v, attrs: attrs})
}

func (m *recordingMeter) Float64Counter(name string, _ ...metric.Float64CounterOption) (metric.Float64Counter, error) {
	if m.failNames[name] {
		return nil, errors.New("boom")
	}
	m.created[name]++
	return &recCounter{name: name, m: m}, nil
}

func (m *recordingMeter) Float64Gauge(name string, _ ...metric.Float64GaugeOption) (metric.Float64Gauge, error) {
	m.created[name]++
	return &recGauge{name: name, m: m}, nil
}

func (m *recordingMeter) Float64Histogram(name string, _ ...metric.Float64HistogramOption) (metric.Float64Histogram, error) {
	m.created[name]++
	return &recHistogram{name: name, m: m}, nil
}

type recCounter struct {
	metricnoop.Float64Counter
	name string
	m    *recordingMeter
}

func (c *recCounter) Add(_ context.Context, v float64, opts ...metric.AddOption) {
	c.m.add(c.name, v, metric.NewAddConfig(opts).Attributes())
}

type recGauge struct {
	metricnoop.Float64Gauge
	name string
	m    *recordingMeter
}

func (g *recGauge) Record(_ context.Context, v float64, opts ...metric.RecordOption) {
	g.m.add(g.name, v, metric.NewRecordConfig(opts).Attributes())
}

type recHistogram struct {
	metricnoop.Float64Histogram
	name string
	m    *recordingMeter
}

func (h *recHistogram) Record(_ context.Context, v float64, opts ...metric.RecordOption) {
	h.m.add(h.name, v, metric.NewRecordConfig(opts).Attributes())
}

func TestMetrics_RecordsAndCachesInstruments(t *testing.T) {
	meter := newRecordingMeter()
	m := NewMetrics(meter)

	tags := map[string]string{"kind": "restraint", "outcome": "pass"}
	m.Counter("calculations_total", 1, tags)
	m.Counter("calculations_total", 1, tags)
	m.Gauge("history_entries", 12, nil)
	m.Histogram("strap_count", 4, nil)
	m.Timing("calculation_duration", 250*time.Millisecond, map[string]string{"kind": "cog"})

	assert.Equal(t, 1, meter.created["calculations_total"])
	require.Len(t, meter.records, 5)

	kind, ok := meter.records[0].attrs.Value("kind")
	require.True(t, ok)
	assert.Equal(t, "restraint", kind.AsString())

	assert.Equal(t, "history_entries", meter.records[2].name)
	assert.InDelta(t, 12.0, meter.records[2].value, 1e-12)
	assert.InDelta(t, 0.25, meter.records[4].value, 1e-12)
}

func TestMetrics_InstrumentErrorIsReported(t *testing.T) {
	meter := newRecordingMeter()
	meter.failNames["bad"] = true

	var reported string
	m := NewMetrics(meter)
	m.OnError(func(name string, err error) { reported = name })

	m.Counter("bad", 1, nil)
	assert.Equal(t, "bad", reported)
	assert.Empty(t, meter.records)
}

func TestMetrics_GlobalNoopDoesNotPanic(t *testing.T) {
	m := NewMetrics(nil)
	assert.NotPanics(t, func() {
		m.Counter("c", 1, nil)
		m.Gauge("g", 1, nil)
		m.Histogram("h", 1, nil)
		m.Timing("t", time.Second, nil)
	})
}

type recordingSpan struct {
	tracenoop.Span
	attrs  []attribute.KeyValue
	events map[string][]attribute.KeyValue
	status codes.Code
	errs   []error
	ended  bool
}

func (s *recordingSpan) SetAttributes(kv ...attribute.KeyValue) { s.attrs = append(s.attrs, kv...) }
func (s *recordingSpan) SetStatus(c codes.Code, _ string)       { s.status = c }
func (s *recordingSpan) End(...trace.SpanEndOption)             { s.ended = true }

func (s *recordingSpan) RecordError(err error, _ ...trace.EventOption) {
	s.errs = append(s.errs, err)
}

func (s *recordingSpan) AddEvent(name string, opts ...trace.EventOption) {
	cfg := trace.NewEventConfig(opts...)
	s.events[name] = cfg.Attributes()
}

type recordingTracer struct {
	tracenoop.Tracer
	names []string
	span  *recordingSpan
}

func (t *recordingTracer) Start(ctx context.Context, name string, _ ...trace.SpanStartOption) (context.Context, trace.Span) {
	t.names = append(t.names, name)
	return ctx, t.span
}

func TestTracer_SpanAdapter(t *testing.T) {
	rs := &recordingSpan{events: map[string][]attribute.KeyValue{}}
	rt := &recordingTracer{span: rs}
	tr := NewTracer(rt)

	_, s := tr.StartSpan(context.Background(), "calculate.restraint")
	s.SetAttribute("mass_kg", 1200.0)
	s.SetAttribute("pass", true)
	s.SetAttribute("straps", 4)
	s.AddEvent("history.recorded", map[string]any{"id": "abc"})
	s.SetError(nil)
	s.SetError(errors.New("store down"))
	s.End()

	assert.Equal(t, []string{"calculate.restraint"}, rt.names)
	require.Len(t, rs.attrs, 3)
	assert.Equal(t, attribute.Float64("mass_kg", 1200), rs.attrs[0])
	assert.Equal(t, attribute.Bool("pass", true), rs.attrs[1])
	assert.Equal(t, attribute.Int("straps", 4), rs.attrs[2])
	assert.Equal(t, []attribute.KeyValue{attribute.String("id", "abc")}, rs.events["history.recorded"])
	assert.Len(t, rs.errs, 1)
	assert.Equal(t, codes.Error, rs.status)
	assert.True(t, rs.ended)
}

func TestToAttribute(t *testing.T) {
	assert.Equal(t, attribute.String("k", "v"), toAttribute("k", "v"))
	assert.Equal(t, attribute.Int64("k", 7), toAttribute("k", int64(7)))
	assert.Equal(t, attribute.String("k", "1s"), toAttribute("k", time.Second))
	assert.Equal(t, attribute.String("k", "[1 2]"), toAttribute("k", []int{1, 2}))
}

func TestTracer_GlobalNoop(t *testing.T) {
	tr := NewTracer(nil)
	ctx, s := tr.StartSpan(context.Background(), "op")
	assert.NotNil(t, ctx)
	assert.NotPanics(t, func() {
		s.SetAttribute("a", 1)
		s.End()
	})
}
