package monitoring

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics. A nil *Metrics is valid and records
// nothing.
type Metrics struct {
	// Translation metrics
	TranslationsTotal   *prometheus.CounterVec
	TranslationDuration *prometheus.HistogramVec
	TranslationErrors   *prometheus.CounterVec
	LinkHops            prometheus.Histogram

	// Runtime metrics
	InitRefs prometheus.Gauge
	Panics   *prometheus.CounterVec
	Handles  *prometheus.GaugeVec

	registry *prometheus.Registry

	// Snapshot for JSON output - track current values
	snapshot MetricsSnapshot

	mu sync.RWMutex
}

// MetricsSnapshot holds current metric values for JSON output
type MetricsSnapshot struct {
	Translations  int64            `json:"translations"`
	Errors        int64            `json:"errors"`
	ErrorsByCause map[string]int64 `json:"errors_by_cause,omitempty"`
	LinksFollowed int64            `json:"links_followed"`
	TotalDuration float64          `json:"total_duration_seconds"`
}

// NewMetrics creates a metrics collector on its own registry.
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,

		TranslationsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "posixshim_translations_total",
				Help: "Total number of translated paths by prefix class",
			},
			[]string{"class"},
		),
		TranslationDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "posixshim_translation_duration_seconds",
				Help:    "Path translation latency including link resolution",
				Buckets: prometheus.ExponentialBuckets(1e-6, 4, 10),
			},
			[]string{"class"},
		),
		TranslationErrors: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "posixshim_translation_errors_total",
				Help: "Total number of failed translations by cause",
			},
			[]string{"cause"},
		),
		LinkHops: factory.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "posixshim_link_hops",
				Help:    "Links followed per dereferencing translation",
				Buckets: prometheus.LinearBuckets(0, 1, 11),
			},
		),

		InitRefs: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "posixshim_init_refs",
				Help: "Outstanding Init calls",
			},
		),
		Panics: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "posixshim_panics_total",
				Help: "Unrecoverable internal errors reported to the panic callback",
			},
			[]string{"code"},
		),
		Handles: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "posixshim_handles",
				Help: "Entries in the handle tables",
			},
			[]string{"table"},
		),
	}
}

// Registry returns the registry the metrics are registered on.
func (m *Metrics) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.registry
}

// RecordTranslation records a successful translation
func (m *Metrics) RecordTranslation(class string, duration time.Duration) {
	if m == nil {
		return
	}
	m.TranslationsTotal.WithLabelValues(class).Inc()
	m.TranslationDuration.WithLabelValues(class).Observe(duration.Seconds())

	m.mu.Lock()
	m.snapshot.Translations++
	m.snapshot.TotalDuration += duration.Seconds()
	m.mu.Unlock()
}

// RecordTranslationError records a failed translation
func (m *Metrics) RecordTranslationError(cause string) {
	if m == nil {
		return
	}
	m.TranslationErrors.WithLabelValues(cause).Inc()

	m.mu.Lock()
	m.snapshot.Errors++
	if m.snapshot.ErrorsByCause == nil {
		m.snapshot.ErrorsByCause = make(map[string]int64)
	}
	m.snapshot.ErrorsByCause[cause]++
	m.mu.Unlock()
}

// ObserveLinkHops records the length of a followed link chain
func (m *Metrics) ObserveLinkHops(hops int) {
	if m == nil {
		return
	}
	m.LinkHops.Observe(float64(hops))

	m.mu.Lock()
	m.snapshot.LinksFollowed += int64(hops)
	m.mu.Unlock()
}

// SetInitRefs sets the outstanding Init count
func (m *Metrics) SetInitRefs(n int) {
	if m == nil {
		return
	}
	m.InitRefs.Set(float64(n))
}

// RecordPanic counts a report to the panic callback
func (m *Metrics) RecordPanic(code string) {
	if m == nil {
		return
	}
	m.Panics.WithLabelValues(code).Inc()
}

// SetHandles sets the size of a handle table
func (m *Metrics) SetHandles(table string, n int) {
	if m == nil {
		return
	}
	m.Handles.WithLabelValues(table).Set(float64(n))
}

// Snapshot returns a copy of the current values
func (m *Metrics) Snapshot() MetricsSnapshot {
	if m == nil {
		return MetricsSnapshot{}
	}
	m.mu.RLock()
	defer m.mu.RUnlock()

	s := m.snapshot
	if m.snapshot.ErrorsByCause != nil {
		s.ErrorsByCause = make(map[string]int64, len(m.snapshot.ErrorsByCause))
		for k, v := range m.snapshot.ErrorsByCause {
			s.ErrorsByCause[k] = v
		}
	}
	return s
}
