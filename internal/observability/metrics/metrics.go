package metrics

import (
	"strings"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Config carries constant labels applied to every metric.
type Config struct {
	ServiceName string
	Environment string
}

// StoreMetrics captures record-store health signals.
type StoreMetrics struct {
	operations  *prometheus.CounterVec
	opDuration  *prometheus.HistogramVec
	opFailures  *prometheus.CounterVec
	seedApplied *prometheus.CounterVec
}

// LayoutMetrics captures layout simulation signals.
type LayoutMetrics struct {
	ticks    *prometheus.CounterVec
	sessions prometheus.Gauge
}

var (
	storeMetricsOnce sync.Once
	storeMetrics     *StoreMetrics

	layoutMetricsOnce sync.Once
	layoutMetrics     *LayoutMetrics
)

// Store returns the singleton store metrics registry.
func Store() *StoreMetrics {
	return StoreWithConfig(Config{})
}

// StoreWithConfig returns the singleton store metrics registry using config labels.
func StoreWithConfig(cfg Config) *StoreMetrics {
	storeMetricsOnce.Do(func() {
		storeMetrics = newStoreMetrics(prometheus.DefaultRegisterer, cfg)
	})
	return storeMetrics
}

// Layout returns the singleton layout metrics registry.
func Layout() *LayoutMetrics {
	return LayoutWithConfig(Config{})
}

// LayoutWithConfig returns the singleton layout metrics registry using config labels.
func LayoutWithConfig(cfg Config) *LayoutMetrics {
	layoutMetricsOnce.Do(func() {
		layoutMetrics = newLayoutMetrics(prometheus.DefaultRegisterer, cfg)
	})
	return layoutMetrics
}

// ResetForTest resets the metrics singletons for tests.
func ResetForTest() {
	storeMetricsOnce = sync.Once{}
	storeMetrics = nil
	layoutMetricsOnce = sync.Once{}
	layoutMetrics = nil
}

func constLabels(cfg Config) prometheus.Labels {
	serviceName := strings.TrimSpace(cfg.ServiceName)
	if serviceName == "" {
		serviceName = "guardian"
	}
	environment := strings.TrimSpace(cfg.Environment)
	if environment == "" {
		environment = "unknown"
	}
	return prometheus.Labels{
		"service": serviceName,
		"env":     environment,
	}
}

func newStoreMetrics(registerer prometheus.Registerer, cfg Config) *StoreMetrics {
	if registerer == nil {
		registerer = prometheus.DefaultRegisterer
	}
	labels := constLabels(cfg)

	operations := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name:        "guardian_store_operations_total",
		Help:        "Record store operations by collection and op.",
		ConstLabels: labels,
	}, []string{"collection", "op"})
	opDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:        "guardian_store_operation_duration_seconds",
		Help:        "Record store operation latency including simulated latency.",
		Buckets:     []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		ConstLabels: labels,
	}, []string{"collection", "op"})
	opFailures := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name:        "guardian_store_operation_failures_total",
		Help:        "Record store operation failures by collection, op and kind.",
		ConstLabels: labels,
	}, []string{"collection", "op", "kind"})
	seedApplied := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name:        "guardian_store_seeds_applied_total",
		Help:        "Times a collection was observed empty and re-seeded.",
		ConstLabels: labels,
	}, []string{"collection"})

	for _, c := range []prometheus.Collector{operations, opDuration, opFailures, seedApplied} {
		if err := registerer.Register(c); err != nil {
			if _, ok := err.(prometheus.AlreadyRegisteredError); ok {
				continue
			}
		}
	}

	return &StoreMetrics{
		operations:  operations,
		opDuration:  opDuration,
		opFailures:  opFailures,
		seedApplied: seedApplied,
	}
}

func newLayoutMetrics(registerer prometheus.Registerer, cfg Config) *LayoutMetrics {
	if registerer == nil {
		registerer = prometheus.DefaultRegisterer
	}
	labels := constLabels(cfg)

	ticks := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name:        "guardian_layout_ticks_total",
		Help:        "Layout simulation ticks by session state.",
		ConstLabels: labels,
	}, []string{"state"})
	sessions := prometheus.NewGauge(prometheus.GaugeOpts{
		Name:        "guardian_layout_sessions_active",
		Help:        "Currently running layout sessions.",
		ConstLabels: labels,
	})

	for _, c := range []prometheus.Collector{ticks, sessions} {
		if err := registerer.Register(c); err != nil {
			if _, ok := err.(prometheus.AlreadyRegisteredError); ok {
				continue
			}
		}
	}

	return &LayoutMetrics{ticks: ticks, sessions: sessions}
}

// IncOperation counts one store operation.
func (m *StoreMetrics) IncOperation(collection, op string) {
	if m == nil {
		return
	}
	m.operations.WithLabelValues(collection, op).Inc()
}

// ObserveOperation records the duration of one store operation.
func (m *StoreMetrics) ObserveOperation(collection, op string, d time.Duration) {
	if m == nil {
		return
	}
	m.opDuration.WithLabelValues(collection, op).Observe(d.Seconds())
}

// IncFailure counts one failed store operation.
func (m *StoreMetrics) IncFailure(collection, op, kind string) {
	if m == nil {
		return
	}
	m.opFailures.WithLabelValues(collection, op, kind).Inc()
}

// IncSeed counts one seed application.
func (m *StoreMetrics) IncSeed(collection string) {
	if m == nil {
		return
	}
	m.seedApplied.WithLabelValues(collection).Inc()
}

// IncTick counts one simulation tick in the given state.
func (m *LayoutMetrics) IncTick(state string) {
	if m == nil {
		return
	}
	m.ticks.WithLabelValues(state).Inc()
}

// SessionStarted increments the active session gauge.
func (m *LayoutMetrics) SessionStarted() {
	if m == nil {
		return
	}
	m.sessions.Inc()
}

// SessionStopped decrements the active session gauge.
func (m *LayoutMetrics) SessionStopped() {
	if m == nil {
		return
	}
	m.sessions.Dec()
}
