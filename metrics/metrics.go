package metrics

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"salespoint/events"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "salespoint"

// Metrics owns the Prometheus collectors for the process
type Metrics struct {
	registry *prometheus.Registry

	events          *prometheus.CounterVec
	entriesRecorded *prometheus.CounterVec
	entryCalls      *prometheus.CounterVec
	aiRequests      *prometheus.CounterVec
	httpRequests    *prometheus.CounterVec
	httpDuration    *prometheus.HistogramVec
}

// New creates the collectors on a dedicated registry
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		events: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "events_total",
			Help:      "Domain events published after commit.",
		}, []string{"type"}),
		entriesRecorded: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "entries_recorded_total",
			Help:      "Checkpoint entries recorded, by team and whether an entry was replaced.",
		}, []string{"team", "replaced"}),
		entryCalls: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "entry_calls_total",
			Help:      "Calls carried by newly recorded checkpoint entries.",
		}, []string{"team"}),
		aiRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "ai_requests_total",
			Help:      "Text generation requests by kind and outcome.",
		}, []string{"kind", "outcome"}),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by method, route and status.",
		}, []string{"method", "route", "status"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by route.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"route"}),
	}

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.events,
		m.entriesRecorded,
		m.entryCalls,
		m.aiRequests,
		m.httpRequests,
		m.httpDuration,
	)
	return m
}

// Subscribe counts every event emitted on bus
func (m *Metrics) Subscribe(bus *events.Bus) {
	bus.SubscribeAll(func(ctx context.Context, event events.Event) {
		m.events.WithLabelValues(string(event.Type())).Inc()

		if recorded, ok := event.(events.EntryRecordedEvent); ok {
			m.entriesRecorded.WithLabelValues(string(recorded.Team), strconv.FormatBool(recorded.Replaced)).Inc()
			if !recorded.Replaced {
				m.entryCalls.WithLabelValues(string(recorded.Team)).Add(float64(recorded.Calls))
			}
		}
	})
}

// ObserveAI counts one text generation request
func (m *Metrics) ObserveAI(kind string, err error) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	m.aiRequests.WithLabelValues(kind, outcome).Inc()
}

// ObserveHTTP records one served request
func (m *Metrics) ObserveHTTP(method, route string, status int, elapsed time.Duration) {
	m.httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.httpDuration.WithLabelValues(route).Observe(elapsed.Seconds())
}

// Handler exposes the registry in the Prometheus text format
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
